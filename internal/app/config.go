package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые режимы хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config описывает настройки запуска кассы.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// Storage — memory (разработка, демо) или postgres.
	Storage     string
	PostgresDSN string

	// ShopName подставляется в заголовок ежедневного отчёта.
	ShopName string
	// DashboardSecret — пароль дашборда; пустой закрывает дашборд.
	DashboardSecret string
	// PromptPayID — телефон или налоговый идентификатор получателя оплаты.
	PromptPayID string

	// LINE Messaging API; пустой токен отключает доставку отчётов.
	LineToken     string
	LineRecipient string

	// ReportTime — локальное время суток "HH:MM" для отчёта.
	ReportTime string
	// Timezone — часовой пояс магазина (IANA).
	Timezone string

	SessionTTL time.Duration

	// KafkaBrokers — опциональная шина событий о продажах.
	KafkaBrokers []string
}

// DefaultConfig возвращает конфигурацию локальной разработки: in-memory
// хранилище с демо-каталогом, часовой пояс магазина — Бангкок.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		Storage:     StorageMemory,
		ShopName:    "POS",
		PromptPayID: "0800000000",
		ReportTime:  "20:00",
		Timezone:    "Asia/Bangkok",
		SessionTTL:  12 * time.Hour,
	}
}

// LoadConfig читает конфигурацию из окружения поверх значений по умолчанию.
// .env в рабочем каталоге подхватывается, если есть.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.HTTPAddr = envOr("POS_HTTP_ADDR", cfg.HTTPAddr)
	cfg.MetricsAddr = envOr("POS_METRICS_ADDR", cfg.MetricsAddr)
	cfg.Storage = envOr("POS_STORAGE", cfg.Storage)
	cfg.PostgresDSN = os.Getenv("POS_POSTGRES_DSN")
	cfg.ShopName = envOr("POS_SHOP_NAME", cfg.ShopName)
	cfg.DashboardSecret = os.Getenv("POS_DASHBOARD_SECRET")
	cfg.PromptPayID = envOr("POS_PROMPTPAY_ID", cfg.PromptPayID)
	cfg.LineToken = os.Getenv("POS_LINE_TOKEN")
	cfg.LineRecipient = os.Getenv("POS_LINE_RECIPIENT")
	cfg.ReportTime = envOr("POS_REPORT_TIME", cfg.ReportTime)
	cfg.Timezone = envOr("POS_TZ", cfg.Timezone)

	if v := os.Getenv("POS_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse POS_SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации до старта приложения.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POS_POSTGRES_DSN is required when POS_STORAGE=postgres")
		}
	default:
		return fmt.Errorf("unknown storage %q, want %s or %s", c.Storage, StorageMemory, StoragePostgres)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
