// Package checkout превращает корзину в записанный заказ.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/metrics"
)

// Service выполняет checkout: проверка корзины, одна атомарная запись заказа,
// очистка корзины строго после подтверждения записи.
type Service struct {
	orders  domain.OrderRepository
	events  domain.EventPublisher // опциональная шина событий о продажах
	logger  *log.Entry
	metrics *metrics.POSMetrics
}

// NewService создаёт рабочий сервис checkout. events может быть nil.
func NewService(orders domain.OrderRepository, events domain.EventPublisher, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Service{
		orders:  orders,
		events:  events,
		logger:  logger,
		metrics: metrics.NewPOSMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(orders domain.OrderRepository, events domain.EventPublisher, logger *log.Entry) *Service {
	svc := NewService(orders, events, logger)
	svc.metrics = nil
	return svc
}

// Checkout записывает продажу по текущему состоянию корзины.
//
// Пустая корзина — нарушение предусловия, возвращается domain.ErrCartEmpty без
// обращения к хранилищу. При ошибке записи корзина остаётся нетронутой, чтобы
// кассир мог повторить попытку; частично видимых заказов не бывает, запись —
// один атомарный документ.
func (s *Service) Checkout(ctx context.Context, cart *domain.Cart) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCheckoutDuration(time.Since(start))
		}
	}()

	if cart.IsEmpty() {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailure("empty_cart")
		}
		return domain.Order{}, domain.ErrCartEmpty
	}

	totalMinor := cart.TotalMinor()
	lines := cart.Lines()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{Name: line.Name, Qty: line.Qty})
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		TotalMinor: totalMinor,
		Items:      items,
	}
	if errs := order.ValidateInvariants(totalMinor); len(errs) != 0 {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailure("validation")
		}
		return domain.Order{}, fmt.Errorf("order invariants violated: %v", errs)
	}

	saved, err := s.orders.Create(ctx, order)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailure("store")
		}
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("order write failed, cart preserved")
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	// Запись подтверждена — только теперь очищаем корзину под следующего
	// покупателя.
	cart.Clear()

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(saved.TotalMinor)
	}
	s.logger.WithFields(log.Fields{
		"order_id":    saved.ID,
		"total_minor": saved.TotalMinor,
		"items":       len(saved.Items),
	}).Info("order persisted")

	s.publishCreated(saved)

	return saved, nil
}

// publishCreated отправляет событие о продаже fire-and-forget: ошибка шины
// логируется и не влияет на завершённый checkout.
func (s *Service) publishCreated(order domain.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderCreated(order); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("order event publish failed")
	}
}
