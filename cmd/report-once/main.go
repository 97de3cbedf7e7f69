// report-once прогоняет один цикл ежедневного отчёта вне расписания:
// пересобрать и переотправить сводку за день, когда это нужно руками.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/app"
	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/service/notify"
	"github.com/vladislavdragonenkov/pos/internal/service/report"
	"github.com/vladislavdragonenkov/pos/internal/storage/memory"
	"github.com/vladislavdragonenkov/pos/internal/storage/postgres"
)

const runTimeout = time.Minute

// printNotifier печатает сводку в stdout вместо отправки.
type printNotifier struct{}

func (printNotifier) Push(_ context.Context, text string) error {
	fmt.Println(text)
	return nil
}

func main() {
	var (
		date   string
		dryRun bool
	)
	flag.StringVar(&date, "date", "", "report day as YYYY-MM-DD (default: today)")
	flag.BoolVar(&dryRun, "dry-run", false, "print the digest instead of pushing it")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)

	cfg, err := app.LoadConfig()
	if err != nil {
		fail("invalid configuration: %v", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fail("load timezone %q: %v", cfg.Timezone, err)
	}

	at := time.Now().In(location)
	if date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, location)
		if err != nil {
			fail("invalid -date %q, want YYYY-MM-DD: %v", date, err)
		}
		at = day
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	var orders domain.OrderRepository
	switch cfg.Storage {
	case app.StoragePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			fail("open postgres store: %v", err)
		}
		defer store.Close()
		orders = postgres.NewOrderRepository(store, nil)
	default:
		// Режим memory живёт только внутри процесса сервера; здесь окно
		// всегда пустое, но прогон полезен для проверки доставки.
		orders = memory.NewOrderRepository()
	}

	var notifier domain.Notifier
	switch {
	case dryRun:
		notifier = printNotifier{}
	case cfg.LineToken != "" && cfg.LineRecipient != "":
		lineClient, err := notify.NewLineClient(cfg.LineToken, cfg.LineRecipient, nil)
		if err != nil {
			fail("create line client: %v", err)
		}
		notifier = lineClient
	default:
		fail("LINE is not configured, use -dry-run or set POS_LINE_TOKEN/POS_LINE_RECIPIENT")
	}

	job := report.NewJobWithoutMetrics(orders, notifier, location, cfg.ShopName, nil)
	if err := job.Run(ctx, at); err != nil {
		fail("report run failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "report for %s delivered\n", at.In(location).Format("2006-01-02"))
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
