package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// openStoreForIntegrationTest подключается к тестовой базе и накатывает схему.
// Без POS_POSTGRES_TEST_DSN тест пропускается.
func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("POS_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("POS_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if _, err := store.DB().ExecContext(ctx, `TRUNCATE orders`); err != nil {
		t.Fatalf("truncate orders: %v", err)
	}

	return store
}

func TestOrderRepositoryIntegration_CreateAndListByWindow(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderRepository(store, nil)
	ctx := context.Background()

	order := domain.Order{
		ID:         uuid.NewString(),
		TotalMinor: 15000,
		Items: []domain.OrderItem{
			{Name: "Latte", Qty: 2},
			{Name: "Tea", Qty: 3},
		},
	}

	saved, err := repo.Create(ctx, order)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("store must assign created_at")
	}

	from := saved.CreatedAt.Add(-time.Minute)
	to := saved.CreatedAt.Add(time.Minute)
	orders, err := repo.ListByWindow(ctx, from, to)
	if err != nil {
		t.Fatalf("list by window: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order in window, got %d", len(orders))
	}
	if orders[0].TotalMinor != 15000 || len(orders[0].Items) != 2 {
		t.Fatalf("unexpected order payload: %+v", orders[0])
	}

	// Заказ за пределами окна не возвращается.
	empty, err := repo.ListByWindow(ctx, to, to.Add(time.Hour))
	if err != nil {
		t.Fatalf("list outside window: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty window, got %d orders", len(empty))
	}
}

func TestOrderRepositoryIntegration_MalformedItemsAreSkipped(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderRepository(store, nil)
	ctx := context.Background()

	// Историческая запись с повреждённым документом позиций.
	id := uuid.NewString()
	if _, err := store.DB().ExecContext(ctx, `
		INSERT INTO orders (id, total_minor, items, created_at)
		VALUES ($1, 7000, '{"broken": true}'::jsonb, NOW())
	`, id); err != nil {
		t.Fatalf("insert malformed order: %v", err)
	}

	orders, err := repo.ListByWindow(ctx, time.Now().Add(-time.Minute), time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("list by window: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("malformed order must still be listed, got %d", len(orders))
	}
	if orders[0].Items != nil {
		t.Fatalf("malformed items must decode to nil, got %+v", orders[0].Items)
	}
	if orders[0].TotalMinor != 7000 {
		t.Fatalf("revenue of malformed order must survive, got %d", orders[0].TotalMinor)
	}
}
