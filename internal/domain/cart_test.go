package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

func latte() domain.Product {
	return domain.Product{ID: "p-latte", Name: "Latte", PriceMinor: 5500, Category: "coffee"}
}

func tea() domain.Product {
	return domain.Product{ID: "p-tea", Name: "Tea", PriceMinor: 3000, Category: "tea"}
}

// sumLines пересчитывает итог вручную, чтобы сверить его с TotalMinor.
func sumLines(c *domain.Cart) int64 {
	var total int64
	for _, line := range c.Lines() {
		total += int64(line.Qty) * line.PriceMinor
	}
	return total
}

func TestCartAddProduct(t *testing.T) {
	cart := domain.NewCart()
	if !cart.IsEmpty() {
		t.Fatal("new cart must be empty")
	}

	cart.AddProduct(latte())
	cart.AddProduct(tea())
	cart.AddProduct(latte())

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// Повторное добавление увеличивает количество, а не создаёт строку.
	if lines[0].ProductID != "p-latte" || lines[0].Qty != 2 {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	// Порядок добавления сохраняется.
	if lines[1].ProductID != "p-tea" || lines[1].Qty != 1 {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
	if got, want := cart.TotalMinor(), int64(2*5500+3000); got != want {
		t.Fatalf("total = %d, want %d", got, want)
	}
}

func TestCartAdjustQuantity(t *testing.T) {
	cart := domain.NewCart()
	cart.AddProduct(latte())
	cart.AdjustQuantity("p-latte", 2)

	if lines := cart.Lines(); lines[0].Qty != 3 {
		t.Fatalf("qty = %d, want 3", lines[0].Qty)
	}

	// Падение количества до нуля удаляет строку целиком.
	cart.AdjustQuantity("p-latte", -3)
	if !cart.IsEmpty() {
		t.Fatal("cart must be empty after qty reached zero")
	}

	// Отсутствующая строка — no-op.
	cart.AdjustQuantity("p-unknown", 1)
	if !cart.IsEmpty() {
		t.Fatal("adjust on missing line must be a no-op")
	}
}

func TestCartAdjustQuantityBelowZero(t *testing.T) {
	cart := domain.NewCart()
	cart.AddProduct(tea())
	cart.AdjustQuantity("p-tea", -5)

	if !cart.IsEmpty() {
		t.Fatal("line must be removed, not kept with negative qty")
	}
	if cart.TotalMinor() != 0 {
		t.Fatalf("total = %d, want 0", cart.TotalMinor())
	}
}

func TestCartRemoveProductIdempotent(t *testing.T) {
	cart := domain.NewCart()
	cart.AddProduct(latte())
	cart.AddProduct(tea())

	cart.RemoveProduct("p-latte")
	cart.RemoveProduct("p-latte")

	lines := cart.Lines()
	if len(lines) != 1 || lines[0].ProductID != "p-tea" {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}
}

func TestCartClear(t *testing.T) {
	cart := domain.NewCart()
	cart.AddProduct(latte())
	cart.Clear()

	if !cart.IsEmpty() || cart.TotalMinor() != 0 {
		t.Fatal("clear must empty the cart")
	}
}

// Прогоняем случайную последовательность операций и проверяем, что инварианты
// корзины держатся после каждого шага.
func TestCartInvariantsUnderMutationSequence(t *testing.T) {
	cart := domain.NewCart()
	products := []domain.Product{latte(), tea(), {ID: "p-cocoa", Name: "Cocoa", PriceMinor: 4500}}

	ops := []func(){
		func() { cart.AddProduct(products[0]) },
		func() { cart.AddProduct(products[1]) },
		func() { cart.AdjustQuantity("p-latte", 3) },
		func() { cart.AdjustQuantity("p-tea", -1) },
		func() { cart.AddProduct(products[2]) },
		func() { cart.AdjustQuantity("p-cocoa", -10) },
		func() { cart.RemoveProduct("p-tea") },
		func() { cart.AddProduct(products[1]) },
		func() { cart.AdjustQuantity("p-latte", -2) },
		func() { cart.RemoveProduct("p-missing") },
	}

	for i, op := range ops {
		op()
		for _, line := range cart.Lines() {
			if line.Qty <= 0 {
				t.Fatalf("step %d: line %q has non-positive qty %d", i, line.ProductID, line.Qty)
			}
		}
		if got, want := cart.TotalMinor(), sumLines(cart); got != want {
			t.Fatalf("step %d: total = %d, want recomputed %d", i, got, want)
		}
		if cart.TotalMinor() < 0 {
			t.Fatalf("step %d: negative total", i)
		}
	}
}

func TestCartLinesReturnsCopy(t *testing.T) {
	cart := domain.NewCart()
	cart.AddProduct(latte())

	lines := cart.Lines()
	lines[0].Qty = 99

	if cart.Lines()[0].Qty != 1 {
		t.Fatal("mutating the returned slice must not touch the cart")
	}
}
