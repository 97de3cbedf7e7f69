package domain

import "time"

// OrderItem — одна позиция проданного чека. В заказ попадают только имя и
// количество: цена позиции отдельно не хранится, итог фиксируется в TotalMinor.
type OrderItem struct {
	Name string
	Qty  int32
}

// Order — неизменяемая запись завершённой продажи. После записи в хранилище
// заказ никогда не обновляется и не удаляется этим сервисом.
type Order struct {
	ID string
	// TotalMinor — итог чека в минимальных денежных единицах; на момент
	// создания обязан равняться сумме qty*price по строкам корзины.
	TotalMinor int64
	// Items — снапшот строк корзины. Nil допустим для повреждённых
	// исторических записей: такие заказы учитываются в выручке,
	// но пропускаются при построении рейтинга товаров.
	Items []OrderItem
	// CreatedAt назначается хранилищем в момент записи.
	CreatedAt time.Time
}

// ValidateInvariants проверяет инварианты заказа перед записью.
// expectedTotalMinor — итог корзины, посчитанный на момент checkout.
func (o *Order) ValidateInvariants(expectedTotalMinor int64) []error {
	var errs []error

	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}
	for _, item := range o.Items {
		if item.Name == "" {
			errs = append(errs, ErrItemNameRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}
	if o.TotalMinor != expectedTotalMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
