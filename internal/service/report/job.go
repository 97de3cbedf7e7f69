package report

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/metrics"
	"github.com/vladislavdragonenkov/pos/internal/service/sales"
)

// Job выполняет один цикл ежедневного отчёта: выборка заказов за день,
// агрегация, формат, доставка. Любая ошибка логируется и завершает цикл —
// пропущенная сводка не критична, ретраев нет.
type Job struct {
	orders   domain.OrderRepository
	notifier domain.Notifier
	location *time.Location
	shopName string
	logger   *log.Entry
	metrics  *metrics.POSMetrics
}

// NewJob создаёт job ежедневного отчёта.
func NewJob(orders domain.OrderRepository, notifier domain.Notifier, location *time.Location, shopName string, logger *log.Entry) *Job {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = log.WithField("component", "daily-report")
	}
	return &Job{
		orders:   orders,
		notifier: notifier,
		location: location,
		shopName: shopName,
		logger:   logger,
		metrics:  metrics.NewPOSMetrics(),
	}
}

// NewJobWithoutMetrics создаёт job без метрик (для тестов).
func NewJobWithoutMetrics(orders domain.OrderRepository, notifier domain.Notifier, location *time.Location, shopName string, logger *log.Entry) *Job {
	job := NewJob(orders, notifier, location, shopName, logger)
	job.metrics = nil
	return job
}

// Run формирует и отправляет сводку за календарный день, в который попадает at.
// Окно — [полночь, полночь+24ч) в таймзоне отчёта.
func (j *Job) Run(ctx context.Context, at time.Time) error {
	day := at.In(j.location)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, j.location)
	to := from.Add(24 * time.Hour)

	j.logger.WithField("date", from.Format("2006-01-02")).Info("building daily sales report")

	orders, err := j.orders.ListByWindow(ctx, from, to)
	if err != nil {
		j.recordRun("error")
		j.logger.WithError(err).Warn("daily report aborted: order query failed")
		return fmt.Errorf("list orders for report: %w", err)
	}

	result := sales.Aggregate(orders)
	text := Format(j.shopName, day, result)

	if err := j.notifier.Push(ctx, text); err != nil {
		j.recordRun("error")
		j.logger.WithError(err).Warn("daily report delivery failed")
		return fmt.Errorf("push daily report: %w", err)
	}

	if result.OrderCount == 0 {
		j.recordRun("empty")
	} else {
		j.recordRun("ok")
	}
	j.logger.WithFields(log.Fields{
		"orders":      result.OrderCount,
		"total_minor": result.TotalMinor,
	}).Info("daily sales report delivered")

	return nil
}

func (j *Job) recordRun(result string) {
	if j.metrics != nil {
		j.metrics.RecordReportRun(result)
	}
}
