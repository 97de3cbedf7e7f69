package domain

import "context"

// Notifier доставляет текстовое сообщение владельцу магазина.
// Доставка однократная: ретраи — ответственность вызывающего.
type Notifier interface {
	Push(ctx context.Context, text string) error
}

// EventPublisher публикует событие о созданном заказе во внешнюю шину.
// Публикация fire-and-forget: ошибка логируется и не влияет на продажу.
type EventPublisher interface {
	PublishOrderCreated(order Order) error
}
