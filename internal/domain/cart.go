package domain

// CartLine — одна строка корзины: снапшот товара плюс количество.
// Инвариант: Qty >= 1; строка с нулевым количеством удаляется, а не хранится.
type CartLine struct {
	// ProductID — идентификатор товара; в корзине не бывает двух строк
	// с одинаковым ProductID.
	ProductID string
	// Name и PriceMinor снимаются с товара в момент добавления и дальше
	// не следят за изменениями каталога.
	Name       string
	PriceMinor int64
	Qty        int32
}

// Cart — корзина одной активной сессии продажи. Порядок строк — порядок
// добавления. Корзина никогда не сохраняется в хранилище до checkout;
// с ней работает ровно один логический писатель (активная сессия).
type Cart struct {
	lines []CartLine
}

// NewCart возвращает пустую корзину.
func NewCart() *Cart {
	return &Cart{}
}

// AddProduct добавляет товар: существующая строка получает +1 к количеству,
// новая строка встаёт в конец с количеством 1.
func (c *Cart) AddProduct(p Product) {
	if idx := c.find(p.ID); idx >= 0 {
		c.lines[idx].Qty++
		return
	}
	c.lines = append(c.lines, CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceMinor: p.PriceMinor,
		Qty:        1,
	})
}

// AdjustQuantity меняет количество строки на delta. Если новое количество
// опускается до нуля или ниже, строка удаляется целиком. Отсутствующая
// строка — no-op, не ошибка.
func (c *Cart) AdjustQuantity(productID string, delta int32) {
	idx := c.find(productID)
	if idx < 0 {
		return
	}
	if c.lines[idx].Qty+delta <= 0 {
		c.remove(idx)
		return
	}
	c.lines[idx].Qty += delta
}

// RemoveProduct безусловно удаляет строку, если она есть. Повторный вызов
// по тому же идентификатору — no-op.
func (c *Cart) RemoveProduct(productID string) {
	if idx := c.find(productID); idx >= 0 {
		c.remove(idx)
	}
}

// Clear опустошает корзину.
func (c *Cart) Clear() {
	c.lines = nil
}

// TotalMinor пересчитывает итог по текущим строкам при каждом обращении;
// значение никогда не кэшируется.
func (c *Cart) TotalMinor() int64 {
	var total int64
	for _, line := range c.lines {
		total += int64(line.Qty) * line.PriceMinor
	}
	return total
}

// Lines возвращает копию строк в порядке добавления.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty сообщает, пуста ли корзина.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) find(productID string) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}
