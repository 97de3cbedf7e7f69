// Package rest реализует HTTP JSON API кассы: витрина, корзины сессий,
// checkout, QR для оплаты и дашборд за сегодня.
package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/metrics"
	"github.com/vladislavdragonenkov/pos/internal/service/checkout"
	"github.com/vladislavdragonenkov/pos/internal/service/session"
)

const requestTimeout = 30 * time.Second

// Config — зависимости HTTP API.
type Config struct {
	Catalog  domain.CatalogRepository
	Orders   domain.OrderRepository
	Sessions *session.Registry
	Checkout *checkout.Service

	// DashboardSecret защищает дашборд; пустой секрет закрывает его целиком.
	DashboardSecret string
	// PromptPayID — идентификатор получателя платежа (телефон или налоговый id).
	PromptPayID string
	// Location — часовой пояс магазина, определяет границы "сегодня" дашборда.
	Location *time.Location

	Logger  *log.Entry
	Metrics *metrics.POSMetrics
}

// Server обслуживает REST API кассы.
type Server struct {
	catalog  domain.CatalogRepository
	orders   domain.OrderRepository
	sessions *session.Registry
	checkout *checkout.Service

	dashboardSecret string
	promptpayID     string
	location        *time.Location

	logger  *log.Entry
	metrics *metrics.POSMetrics
	now     func() time.Time
}

// NewServer создаёт API-сервер.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.WithField("component", "rest-api")
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	return &Server{
		catalog:         cfg.Catalog,
		orders:          cfg.Orders,
		sessions:        cfg.Sessions,
		checkout:        cfg.Checkout,
		dashboardSecret: cfg.DashboardSecret,
		promptpayID:     cfg.PromptPayID,
		location:        location,
		logger:          logger,
		metrics:         cfg.Metrics,
		now:             time.Now,
	}
}

// Router собирает маршруты API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.observeRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/dashboard", s.handleDashboard)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleOpenSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/cart", s.handleGetCart)
				r.Delete("/cart", s.handleClearCart)
				r.Post("/cart/items", s.handleAddItem)
				r.Patch("/cart/items/{productID}", s.handleAdjustItem)
				r.Delete("/cart/items/{productID}", s.handleRemoveItem)
				r.Post("/checkout", s.handleCheckout)
				r.Get("/payment/qr", s.handlePaymentQR)
			})
		})
	})

	return r
}

// observeRequests записывает длительность запроса с меткой маршрута.
func (s *Server) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveHTTPRequest(route, r.Method, strconv.Itoa(ww.Status()), time.Since(start))
	})
}
