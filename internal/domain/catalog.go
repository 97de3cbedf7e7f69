package domain

// Category — группа товаров на витрине. Создаётся и редактируется вне POS,
// сервис читает её только для отображения каталога.
type Category struct {
	ID string
	// Name — отображаемое имя; по нему товары привязываются к категории.
	Name string
	// SortOrder задаёт порядок вывода категорий (по возрастанию).
	SortOrder int
}

// Product — товар каталога. Со стороны POS неизменяем: цена и имя
// снимаются в корзину как снапшот на момент добавления.
type Product struct {
	ID   string
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (сатанги).
	PriceMinor int64
	// Category — имя категории, к которой относится товар.
	Category string
	// ImageURL — необязательная картинка для витрины.
	ImageURL string
	// SortOrder — необязательный порядок вывода внутри категории.
	SortOrder int
}
