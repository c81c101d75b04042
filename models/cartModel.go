package models

import (
	"github.com/shopspring/decimal"
)

const (
	CartMinQuantity = 1
	CartMaxQuantity = 10
)

// CartLine is one dish in the cart. The unit price is snapshotted when
// the dish is first added and is NOT refreshed if the catalog price
// changes afterwards; the order line inherits this snapshot.
type CartLine struct {
	DishName  string          `json:"dishName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Cart is the ephemeral pre-order selection of one table session. It is
// serialized to JSON and kept in redis under the session token, loaded
// and saved explicitly by the handlers.
type Cart struct {
	Lines map[uint]CartLine `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{Lines: map[uint]CartLine{}}
}

// Add puts a dish in the cart or adjusts its quantity. With replace the
// given quantity overwrites the current one, otherwise it accumulates.
// The resulting quantity is clamped to [1,10].
func (c *Cart) Add(dish *Dish, quantity int, replace bool) {
	line, ok := c.Lines[dish.ID]
	if !ok {
		line = CartLine{DishName: dish.Name, UnitPrice: dish.UnitPrice}
	}

	if replace {
		line.Quantity = quantity
	} else {
		line.Quantity += quantity
	}

	if line.Quantity < CartMinQuantity {
		line.Quantity = CartMinQuantity
	}
	if line.Quantity > CartMaxQuantity {
		line.Quantity = CartMaxQuantity
	}

	c.Lines[dish.ID] = line
}

func (c *Cart) Remove(dishID uint) {
	delete(c.Lines, dishID)
}

func (c *Cart) Clear() {
	c.Lines = map[uint]CartLine{}
}

// Total sums quantity times the snapshotted unit price over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ItemCount is the number of distinct dishes in the cart.
func (c *Cart) ItemCount() int {
	return len(c.Lines)
}

// LineCount is the total number of articles (sum of quantities).
func (c *Cart) LineCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
