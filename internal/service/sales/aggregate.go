// Package sales содержит чистую агрегацию продаж: одна и та же функция
// питает и ежедневный отчёт, и дашборд.
package sales

import (
	"sort"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// RankedProduct — строка рейтинга: имя товара и суммарно проданное количество.
type RankedProduct struct {
	Name string `json:"name"`
	Qty  int64  `json:"quantity"`
}

// Result — итог агрегации за окно. Никогда не сохраняется.
type Result struct {
	// TotalMinor — суммарная выручка в минимальных единицах.
	TotalMinor int64
	// OrderCount — количество чеков.
	OrderCount int
	// Ranked — товары по убыванию проданного количества; при равенстве
	// побеждает тот, чьё имя встретилось в заказах раньше.
	Ranked []RankedProduct
}

// Aggregate сводит набор заказов: выручка, число чеков и рейтинг товаров.
//
// Товары складываются по отображаемому имени, а не по идентификатору: так
// данные денормализованы при записи чека, и два товара с одинаковым именем
// сознательно сливаются в одну строку рейтинга. Заказы без позиций (в том
// числе повреждённые исторические записи) учитываются в выручке и количестве
// чеков, но пропускаются при построении рейтинга. Пустой вход — нулевой
// результат, не ошибка.
func Aggregate(orders []domain.Order) Result {
	res := Result{OrderCount: len(orders)}

	totals := make(map[string]int64)
	firstSeen := make(map[string]int)

	for _, order := range orders {
		res.TotalMinor += order.TotalMinor
		for _, item := range order.Items {
			if _, ok := totals[item.Name]; !ok {
				firstSeen[item.Name] = len(firstSeen)
			}
			totals[item.Name] += int64(item.Qty)
		}
	}

	if len(totals) == 0 {
		return res
	}

	res.Ranked = make([]RankedProduct, 0, len(totals))
	for name, qty := range totals {
		res.Ranked = append(res.Ranked, RankedProduct{Name: name, Qty: qty})
	}
	// Сначала порядок первого появления, затем стабильная сортировка по
	// количеству: ничьи сохраняют порядок появления имён.
	sort.Slice(res.Ranked, func(i, j int) bool {
		return firstSeen[res.Ranked[i].Name] < firstSeen[res.Ranked[j].Name]
	})
	sort.SliceStable(res.Ranked, func(i, j int) bool {
		return res.Ranked[i].Qty > res.Ranked[j].Qty
	})

	return res
}

// TopN возвращает первые n строк рейтинга (n <= 0 — весь рейтинг).
func TopN(ranked []RankedProduct, n int) []RankedProduct {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}
