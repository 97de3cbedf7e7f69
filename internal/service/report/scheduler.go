package report

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

var timeOfDayPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// Scheduler запускает Job раз в сутки в заданное локальное время.
// Перекрытия запусков не ожидаются: интервал между срабатываниями на порядки
// больше длительности цикла, планировщик их не сериализует.
type Scheduler struct {
	cron   *cron.Cron
	job    *Job
	logger *log.Entry
}

// NewScheduler создаёт планировщик. at — время суток "HH:MM" в location.
func NewScheduler(job *Job, at string, location *time.Location, logger *log.Entry) (*Scheduler, error) {
	matches := timeOfDayPattern.FindStringSubmatch(at)
	if matches == nil {
		return nil, fmt.Errorf("invalid report time %q, want HH:MM", at)
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = log.WithField("component", "report-scheduler")
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(location)),
		job:    job,
		logger: logger,
	}

	spec := fmt.Sprintf("%s %s * * *", matches[2], matches[1])
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("schedule daily report: %w", err)
	}

	return s, nil
}

// Start запускает планировщик и останавливает его при отмене ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("daily report scheduler started")

	go func() {
		<-ctx.Done()
		stopCtx := s.cron.Stop()
		// Дожидаемся завершения текущего запуска, если он идёт.
		<-stopCtx.Done()
		s.logger.Info("daily report scheduler stopped")
	}()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Ошибка уже залогирована внутри Job.Run; ретраев по контракту нет.
	_ = s.job.Run(ctx, time.Now())
}
