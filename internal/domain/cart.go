package domain

import "github.com/shopspring/decimal"

// CartState holds product id -> quantity. Quantities are always > 0.
type CartState struct {
	Quantities map[string]int `json:"quantities"`
}

func NewCartState(q map[string]int) CartState {
	c := CartState{Quantities: make(map[string]int, len(q))}
	for id, n := range q {
		if n > 0 {
			c.Quantities[id] = n
		}
	}
	return c
}

// Update adds delta to the line, dropping it when the result is <= 0.
func (c *CartState) Update(productID string, delta int) {
	if c.Quantities == nil {
		c.Quantities = map[string]int{}
	}
	next := c.Quantities[productID] + delta
	if next <= 0 {
		delete(c.Quantities, productID)
		return
	}
	c.Quantities[productID] = next
}

func (c *CartState) Remove(productID string) { delete(c.Quantities, productID) }

func (c *CartState) Clear() { c.Quantities = map[string]int{} }

func (c CartState) Quantity(productID string) int { return c.Quantities[productID] }

func (c CartState) IsEmpty() bool { return len(c.Quantities) == 0 }

// Count is the number of units across all lines.
func (c CartState) Count() int {
	n := 0
	for _, q := range c.Quantities {
		n += q
	}
	return n
}

// Total sums price x quantity. Lines whose product is not in products are skipped.
func (c CartState) Total(products []Product) decimal.Decimal {
	idx := ProductIndex(products)
	sum := decimal.Zero
	for id, qty := range c.Quantities {
		p, ok := idx[id]
		if !ok {
			continue
		}
		sum = sum.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum
}
