package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// orderItemDoc — форма позиции в JSONB-документе заказа. Хранится ровно то,
// что попадает в отчёты: имя и количество.
type orderItemDoc struct {
	Name string `json:"name"`
	Qty  int32  `json:"quantity"`
}

type orderRepository struct {
	db     *sql.DB
	logger *log.Entry
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// Заказ пишется одной строкой с позициями в JSONB: одна атомарная вставка,
// промежуточных состояний у записи не бывает.
func NewOrderRepository(store *Store, logger *log.Entry) domain.OrderRepository {
	if logger == nil {
		logger = log.WithField("component", "order-repository")
	}
	return &orderRepository{db: store.DB(), logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	payload, err := encodeItems(order.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order items: %w", err)
	}

	// created_at назначает база: часы хранилища — единственный источник
	// времени продажи.
	err = r.db.QueryRowContext(queryCtx, `
		INSERT INTO orders (id, total_minor, items, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`, order.ID, order.TotalMinor, payload).Scan(&order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListByWindow(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(queryCtx, `
		SELECT id, total_minor, items, created_at
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC, id ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list orders by window: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			order domain.Order
			raw   []byte
		)
		if err := rows.Scan(&order.ID, &order.TotalMinor, &raw, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		// Повреждённый документ не валит выборку: заказ остаётся с пустыми
		// позициями и учитывается только в выручке и числе чеков.
		items, err := decodeItems(raw)
		if err != nil {
			r.logger.WithError(err).WithField("order_id", order.ID).Warn("skipping malformed order items")
		}
		order.Items = items

		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func encodeItems(items []domain.OrderItem) ([]byte, error) {
	docs := make([]orderItemDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, orderItemDoc{Name: item.Name, Qty: item.Qty})
	}
	return json.Marshal(docs)
}

// decodeItems разбирает JSONB-поле items на границе хранилища. Документ без
// ожидаемой формы даёт (nil, ErrMalformedRecord): внутренняя логика полей
// больше не перепроверяет.
func decodeItems(raw []byte) ([]domain.OrderItem, error) {
	if len(raw) == 0 {
		return nil, domain.ErrMalformedRecord
	}

	var docs []orderItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}

	items := make([]domain.OrderItem, 0, len(docs))
	for _, doc := range docs {
		if doc.Name == "" || doc.Qty <= 0 {
			return nil, domain.ErrMalformedRecord
		}
		items = append(items, domain.OrderItem{Name: doc.Name, Qty: doc.Qty})
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
