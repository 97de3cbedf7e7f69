// Package app собирает кассу из частей: хранилище, сервисы, HTTP API,
// планировщик отчёта и метрики.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/pos/internal/health"
	"github.com/vladislavdragonenkov/pos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/pos/internal/metrics"
	"github.com/vladislavdragonenkov/pos/internal/service/checkout"
	"github.com/vladislavdragonenkov/pos/internal/service/notify"
	"github.com/vladislavdragonenkov/pos/internal/service/report"
	"github.com/vladislavdragonenkov/pos/internal/service/rest"
	"github.com/vladislavdragonenkov/pos/internal/service/session"
	"github.com/vladislavdragonenkov/pos/internal/storage/memory"
	"github.com/vladislavdragonenkov/pos/internal/storage/postgres"
	"github.com/vladislavdragonenkov/pos/internal/version"
)

// Run запускает кассу и блокируется до отмены ctx или фатальной ошибки.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	posMetrics := metrics.NewPOSMetrics()
	healthHandler := healthcheck.NewHandler(version.String())

	var (
		catalogRepo domain.CatalogRepository
		orderRepo   domain.OrderRepository
	)
	switch cfg.Storage {
	case StoragePostgres:
		store, storeErr := postgres.Open(ctx, cfg.PostgresDSN)
		if storeErr != nil {
			return fmt.Errorf("open postgres: %w", storeErr)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.WithError(closeErr).Warn("failed to close postgres store")
			}
		}()

		catalogRepo = postgres.NewCatalogRepository(store)
		orderRepo = postgres.NewOrderRepository(store, logger.WithField("layer", "storage"))
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
		logger.Info("postgres storage initialized")
	default:
		catalog := memory.NewCatalogRepository()
		catalog.Seed(DemoCatalog())
		catalogRepo = catalog
		orderRepo = memory.NewOrderRepository()
		logger.Info("in-memory storage initialized with demo catalog")
	}

	// Kafka опционален: без брокеров события о продажах просто не публикуются.
	var (
		kafkaProducer *kafka.Producer
		events        domain.EventPublisher
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer, kafkaErr := kafka.NewProducer(cfg.KafkaBrokers)
		if kafkaErr != nil {
			logger.WithError(kafkaErr).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			events = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}
	closeKafka := func() {
		if kafkaProducer == nil {
			return
		}
		if closeErr := kafkaProducer.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close kafka producer")
		}
	}

	registry := session.NewRegistry(cfg.SessionTTL, logger.WithField("layer", "sessions"))
	go registry.Run(ctx)

	var notifier domain.Notifier
	if cfg.LineToken != "" && cfg.LineRecipient != "" {
		lineClient, lineErr := notify.NewLineClient(
			cfg.LineToken,
			cfg.LineRecipient,
			logger.WithField("layer", "notify"),
			notify.WithMetrics(posMetrics),
		)
		if lineErr != nil {
			closeKafka()
			return fmt.Errorf("create line client: %w", lineErr)
		}
		notifier = lineClient
	} else {
		logger.Warn("LINE is not configured, daily reports will only be logged")
		notifier = notify.NopNotifier{Logger: logger.WithField("layer", "notify")}
	}

	job := report.NewJob(orderRepo, notifier, location, cfg.ShopName, logger.WithField("layer", "report"))
	scheduler, err := report.NewScheduler(job, cfg.ReportTime, location, nil)
	if err != nil {
		closeKafka()
		return fmt.Errorf("create report scheduler: %w", err)
	}
	scheduler.Start(ctx)

	apiServer := rest.NewServer(rest.Config{
		Catalog:         catalogRepo,
		Orders:          orderRepo,
		Sessions:        registry,
		Checkout:        checkout.NewService(orderRepo, events, logger.WithField("layer", "checkout")),
		DashboardSecret: cfg.DashboardSecret,
		PromptPayID:     cfg.PromptPayID,
		Location:        location,
		Logger:          logger.WithField("layer", "rest"),
		Metrics:         posMetrics,
	})

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apiServer.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(srv, logger)
		shutdownHTTP(metricsSrv, logger)
		closeKafka()
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		closeKafka()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics и health checks.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
