package app

import "github.com/vladislavdragonenkov/pos/internal/domain"

// DemoCatalog — демонстрационная витрина: режим memory поднимается с ней
// сразу, а cmd/migrate заливает её в Postgres по флагу -seed.
func DemoCatalog() ([]domain.Category, []domain.Product) {
	categories := []domain.Category{
		{ID: "coffee", Name: "กาแฟ", SortOrder: 1},
		{ID: "tea", Name: "ชา", SortOrder: 2},
		{ID: "bakery", Name: "เบเกอรี่", SortOrder: 3},
	}
	products := []domain.Product{
		{ID: "espresso", Name: "Espresso", PriceMinor: 4500, Category: "coffee", SortOrder: 1},
		{ID: "americano", Name: "Americano", PriceMinor: 5000, Category: "coffee", SortOrder: 2},
		{ID: "latte", Name: "Latte", PriceMinor: 6000, Category: "coffee", SortOrder: 3},
		{ID: "thai-tea", Name: "ชาไทย", PriceMinor: 4500, Category: "tea", SortOrder: 1},
		{ID: "green-tea", Name: "ชาเขียว", PriceMinor: 5000, Category: "tea", SortOrder: 2},
		{ID: "croissant", Name: "Croissant", PriceMinor: 5500, Category: "bakery", SortOrder: 1},
		{ID: "banana-cake", Name: "เค้กกล้วยหอม", PriceMinor: 4000, Category: "bakery", SortOrder: 2},
	}
	return categories, products
}
