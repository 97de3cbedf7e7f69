package sales_test

import (
	"testing"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/service/sales"
)

func TestAggregateEmpty(t *testing.T) {
	res := sales.Aggregate(nil)

	if res.TotalMinor != 0 || res.OrderCount != 0 || len(res.Ranked) != 0 {
		t.Fatalf("empty input must yield zero result, got %+v", res)
	}
}

func TestAggregateSumsAndRanks(t *testing.T) {
	orders := []domain.Order{
		{TotalMinor: 100, Items: []domain.OrderItem{{Name: "Latte", Qty: 2}}},
		{TotalMinor: 50, Items: []domain.OrderItem{{Name: "Latte", Qty: 1}, {Name: "Tea", Qty: 3}}},
	}

	res := sales.Aggregate(orders)

	if res.TotalMinor != 150 {
		t.Fatalf("total = %d, want 150", res.TotalMinor)
	}
	if res.OrderCount != 2 {
		t.Fatalf("order count = %d, want 2", res.OrderCount)
	}
	// Latte и Tea сыграли вничью по 3; Latte встретился раньше и идёт первым.
	want := []sales.RankedProduct{{Name: "Latte", Qty: 3}, {Name: "Tea", Qty: 3}}
	if len(res.Ranked) != len(want) {
		t.Fatalf("ranked = %+v, want %+v", res.Ranked, want)
	}
	for i := range want {
		if res.Ranked[i] != want[i] {
			t.Fatalf("ranked[%d] = %+v, want %+v", i, res.Ranked[i], want[i])
		}
	}
}

func TestAggregateRanksByDescendingQty(t *testing.T) {
	orders := []domain.Order{
		{TotalMinor: 10, Items: []domain.OrderItem{{Name: "Cocoa", Qty: 1}}},
		{TotalMinor: 10, Items: []domain.OrderItem{{Name: "Tea", Qty: 5}}},
		{TotalMinor: 10, Items: []domain.OrderItem{{Name: "Latte", Qty: 3}}},
	}

	res := sales.Aggregate(orders)

	names := []string{res.Ranked[0].Name, res.Ranked[1].Name, res.Ranked[2].Name}
	if names[0] != "Tea" || names[1] != "Latte" || names[2] != "Cocoa" {
		t.Fatalf("unexpected ranking order: %v", names)
	}
}

func TestAggregateSkipsMalformedItemsButCountsRevenue(t *testing.T) {
	orders := []domain.Order{
		// Повреждённая историческая запись: позиций нет, выручка есть.
		{TotalMinor: 200, Items: nil},
		{TotalMinor: 100, Items: []domain.OrderItem{{Name: "Latte", Qty: 1}}},
	}

	res := sales.Aggregate(orders)

	if res.TotalMinor != 300 {
		t.Fatalf("total = %d, want 300", res.TotalMinor)
	}
	if res.OrderCount != 2 {
		t.Fatalf("order count = %d, want 2", res.OrderCount)
	}
	if len(res.Ranked) != 1 || res.Ranked[0].Name != "Latte" {
		t.Fatalf("ranked = %+v, want only Latte", res.Ranked)
	}
}

func TestTopN(t *testing.T) {
	ranked := []sales.RankedProduct{
		{Name: "a", Qty: 5}, {Name: "b", Qty: 4}, {Name: "c", Qty: 3},
	}

	if got := sales.TopN(ranked, 2); len(got) != 2 || got[1].Name != "b" {
		t.Fatalf("unexpected top-2: %+v", got)
	}
	if got := sales.TopN(ranked, 0); len(got) != 3 {
		t.Fatalf("n<=0 must return everything, got %+v", got)
	}
	if got := sales.TopN(ranked, 10); len(got) != 3 {
		t.Fatalf("n beyond length must return everything, got %+v", got)
	}
}
