package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/service/checkout"
	"github.com/vladislavdragonenkov/pos/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

// failingOrderRepository всегда отказывает в записи.
type failingOrderRepository struct{}

func (failingOrderRepository) Create(context.Context, domain.Order) (domain.Order, error) {
	return domain.Order{}, errors.New("store unavailable")
}

func (failingOrderRepository) ListByWindow(context.Context, time.Time, time.Time) ([]domain.Order, error) {
	return nil, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(order domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
	return p.err
}

func cartWith(products ...domain.Product) *domain.Cart {
	cart := domain.NewCart()
	for _, p := range products {
		cart.AddProduct(p)
	}
	return cart
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := memory.NewOrderRepository()
	svc := checkout.NewServiceWithoutMetrics(repo, nil, loggerForTests())

	_, err := svc.Checkout(context.Background(), domain.NewCart())

	require.ErrorIs(t, err, domain.ErrCartEmpty)
	// Пустая корзина не должна доходить до хранилища.
	require.Equal(t, 0, repo.WriteCount())
}

func TestCheckoutWritesOrderAndClearsCart(t *testing.T) {
	repo := memory.NewOrderRepository()
	svc := checkout.NewServiceWithoutMetrics(repo, nil, loggerForTests())

	cart := cartWith(
		domain.Product{ID: "p-latte", Name: "Latte", PriceMinor: 5500},
		domain.Product{ID: "p-tea", Name: "Tea", PriceMinor: 3000},
	)
	cart.AdjustQuantity("p-latte", 1)
	wantTotal := cart.TotalMinor()

	order, err := svc.Checkout(context.Background(), cart)

	require.NoError(t, err)
	require.Equal(t, wantTotal, order.TotalMinor)
	require.Len(t, order.Items, 2)
	require.Equal(t, domain.OrderItem{Name: "Latte", Qty: 2}, order.Items[0])
	require.False(t, order.CreatedAt.IsZero(), "store must assign created_at")
	require.Equal(t, 1, repo.WriteCount())
	require.True(t, cart.IsEmpty(), "cart must be cleared after the write is acknowledged")
}

func TestCheckoutStoreFailureKeepsCart(t *testing.T) {
	svc := checkout.NewServiceWithoutMetrics(failingOrderRepository{}, nil, loggerForTests())

	cart := cartWith(domain.Product{ID: "p-latte", Name: "Latte", PriceMinor: 5500})

	_, err := svc.Checkout(context.Background(), cart)

	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrCartEmpty)
	require.False(t, cart.IsEmpty(), "cart must stay untouched on persistence failure")
	require.Equal(t, int64(5500), cart.TotalMinor())
}

func TestCheckoutPublishesOrderEvent(t *testing.T) {
	repo := memory.NewOrderRepository()
	publisher := &recordingPublisher{}
	svc := checkout.NewServiceWithoutMetrics(repo, publisher, loggerForTests())

	cart := cartWith(domain.Product{ID: "p-tea", Name: "Tea", PriceMinor: 3000})

	order, err := svc.Checkout(context.Background(), cart)

	require.NoError(t, err)
	require.Len(t, publisher.orders, 1)
	require.Equal(t, order.ID, publisher.orders[0].ID)
}

func TestCheckoutPublishFailureDoesNotFailSale(t *testing.T) {
	repo := memory.NewOrderRepository()
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := checkout.NewServiceWithoutMetrics(repo, publisher, loggerForTests())

	cart := cartWith(domain.Product{ID: "p-tea", Name: "Tea", PriceMinor: 3000})

	_, err := svc.Checkout(context.Background(), cart)

	require.NoError(t, err, "event publish is fire-and-forget")
	require.Equal(t, 1, repo.WriteCount())
	require.True(t, cart.IsEmpty())
}
