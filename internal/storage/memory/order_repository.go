package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// OrderRepository — in-memory реализация хранилища продаж. Помимо интерфейса
// domain.OrderRepository отдаёт счётчик записей, который нужен тестам
// свойств "checkout без записи".
type OrderRepository struct {
	mu         sync.RWMutex
	orders     []domain.Order
	writeCount int
	now        func() time.Time
}

// NewOrderRepository возвращает пустое in-memory хранилище заказов.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{now: time.Now}
}

// Create сохраняет копию заказа и проставляет CreatedAt временем хранилища.
func (r *OrderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.CreatedAt = r.now().UTC()
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	r.orders = append(r.orders, order)
	r.writeCount++

	return order, nil
}

// ListByWindow возвращает заказы с CreatedAt в [from, to) по возрастанию времени.
func (r *OrderRepository) ListByWindow(_ context.Context, from, to time.Time) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.CreatedAt.Before(from) || !order.CreatedAt.Before(to) {
			continue
		}
		result = append(result, order)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// WriteCount возвращает количество выполненных записей.
func (r *OrderRepository) WriteCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writeCount
}

// SetClock подменяет источник времени (для тестов окна агрегации).
func (r *OrderRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
