package domain

import "errors"

var (
	// ErrCartEmpty возвращается при попытке checkout с пустой корзиной.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrItemsRequired — в заказе нет ни одной позиции.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// ErrAmountNegative — отрицательный итог чека.
	ErrAmountNegative = errors.New("total_minor must be non-negative")
	// ErrItemNameRequired — позиция без имени товара.
	ErrItemNameRequired = errors.New("item name is required")
	// ErrItemQtyInvalid — некорректное количество позиции (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// ErrAmountMismatch — итог чека не совпадает с суммой корзины.
	ErrAmountMismatch = errors.New("order total does not match cart sum")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrSessionNotFound — сессия корзины не существует или истекла.
	ErrSessionNotFound = errors.New("cart session not found")
	// ErrMalformedRecord — документ заказа без ожидаемых полей; такие записи
	// пропускаются в рейтинге, но не валят агрегацию целиком.
	ErrMalformedRecord = errors.New("malformed order record")
)
