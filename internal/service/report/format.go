// Package report строит и доставляет ежедневную сводку продаж.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vladislavdragonenkov/pos/internal/service/sales"
)

// thaiDigits печатает числа с тайской группировкой разрядов.
var thaiDigits = message.NewPrinter(language.Thai)

// FormatBaht печатает сумму в сатангах как баты: целые — без дробной части,
// иначе с двумя знаками.
func FormatBaht(amountMinor int64) string {
	whole := thaiDigits.Sprintf("%d", amountMinor/100)
	if satang := amountMinor % 100; satang != 0 {
		return fmt.Sprintf("%s.%02d", whole, satang)
	}
	return whole
}

// formatThaiDate — дата в тайском формате с годом буддийской эры.
func formatThaiDate(day time.Time) string {
	return fmt.Sprintf("%d/%d/%d", day.Day(), int(day.Month()), day.Year()+543)
}

// Format собирает текст сводки за день: дата, выручка, число чеков и рейтинг
// проданных позиций; при пустом окне — сообщение "продаж не было".
func Format(shopName string, day time.Time, result sales.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔔 สรุปยอดขาย%s\n", shopName)
	fmt.Fprintf(&b, "ประจำวันที่: %s\n\n", formatThaiDate(day))

	if result.OrderCount == 0 {
		b.WriteString("วันนี้ไม่มียอดขายครับ")
		return b.String()
	}

	fmt.Fprintf(&b, "💰 ยอดขายรวม: %s บาท\n", FormatBaht(result.TotalMinor))
	fmt.Fprintf(&b, "🧾 จำนวนบิล: %d บิล", result.OrderCount)

	if len(result.Ranked) > 0 {
		b.WriteString("\n\n🏆 เมนูขายดี:")
		for i, product := range result.Ranked {
			fmt.Fprintf(&b, "\n%d. %s x %d", i+1, product.Name, product.Qty)
		}
	}

	return b.String()
}
