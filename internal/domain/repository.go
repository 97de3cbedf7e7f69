package domain

import (
	"context"
	"time"
)

// CatalogRepository описывает чтение витрины. Каталог ведётся вне POS,
// поэтому интерфейс только читающий.
type CatalogRepository interface {
	// ListCategories возвращает категории, отсортированные по SortOrder.
	ListCategories(ctx context.Context) ([]Category, error)
	// ListProducts возвращает все товары, отсортированные по SortOrder и имени.
	ListProducts(ctx context.Context) ([]Product, error)
	// GetProduct возвращает товар по идентификатору или ErrProductNotFound.
	GetProduct(ctx context.Context, id string) (Product, error)
}

// OrderRepository описывает append-only хранилище продаж.
type OrderRepository interface {
	// Create записывает новый заказ одним атомарным документом и проставляет
	// CreatedAt временем хранилища.
	Create(ctx context.Context, order Order) (Order, error)
	// ListByWindow возвращает заказы с CreatedAt в [from, to), по возрастанию
	// времени создания.
	ListByWindow(ctx context.Context, from, to time.Time) ([]Order, error)
}
