package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// CatalogRepository — in-memory реализация domain.CatalogRepository
// для локальной разработки и тестов.
type CatalogRepository struct {
	mu         sync.RWMutex
	categories []domain.Category
	products   map[string]domain.Product
}

// NewCatalogRepository возвращает пустой in-memory каталог.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		products: make(map[string]domain.Product),
	}
}

// Seed наполняет каталог; существующие данные затираются.
func (r *CatalogRepository) Seed(categories []domain.Category, products []domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = append([]domain.Category(nil), categories...)
	r.products = make(map[string]domain.Product, len(products))
	for _, p := range products {
		r.products[p.ID] = p
	}
}

// ListCategories возвращает категории по возрастанию SortOrder.
func (r *CatalogRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := append([]domain.Category(nil), r.categories...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

// ListProducts возвращает товары по SortOrder, затем по имени.
func (r *CatalogRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// GetProduct возвращает товар или ErrProductNotFound.
func (r *CatalogRepository) GetProduct(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

var _ domain.CatalogRepository = (*CatalogRepository)(nil)
