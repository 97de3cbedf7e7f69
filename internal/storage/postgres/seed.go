package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// SeedCatalog заливает витрину в Postgres. Повторный запуск обновляет
// существующие записи по id.
func (s *Store) SeedCatalog(ctx context.Context, categories []domain.Category, products []domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, sort_order)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order
		`, c.ID, c.Name, c.SortOrder)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.ID, err)
		}
	}

	for _, p := range products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, price_minor, category, image_url, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				price_minor = EXCLUDED.price_minor,
				category = EXCLUDED.category,
				image_url = EXCLUDED.image_url,
				sort_order = EXCLUDED.sort_order
		`, p.ID, p.Name, p.PriceMinor, p.Category, p.ImageURL, p.SortOrder)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
