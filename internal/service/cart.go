package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"littletreat/internal/model"
)

var ErrUnknownItem = errors.New("unknown menu item")

// Cart holds quantities for one browsing session. The catalog is fixed at
// construction; totals are always recomputed from it.
type Cart struct {
	catalog []model.MenuItem
	index   map[string]int
	qty     map[string]int
}

func NewCart(catalog []model.MenuItem) *Cart {
	c := &Cart{
		catalog: catalog,
		index:   make(map[string]int, len(catalog)),
		qty:     make(map[string]int, len(catalog)),
	}
	for i, item := range catalog {
		c.index[item.ID] = i
		c.qty[item.ID] = 0
	}
	return c
}

// SetQuantity overwrites the quantity of itemID, clamping negatives to 0.
// Unknown ids leave the cart untouched and return ErrUnknownItem.
func (c *Cart) SetQuantity(itemID string, qty int) error {
	if _, ok := c.index[itemID]; !ok {
		return ErrUnknownItem
	}
	c.qty[itemID] = max(qty, 0)
	return nil
}

// Adjust applies a +/- step. A step that would go below zero is ignored.
func (c *Cart) Adjust(itemID string, delta int) (int, error) {
	current, ok := c.qty[itemID]
	if !ok {
		return 0, ErrUnknownItem
	}
	if next := current + delta; next >= 0 {
		c.qty[itemID] = next
		return next, nil
	}
	return current, nil
}

func (c *Cart) Quantity(itemID string) int {
	return c.qty[itemID]
}

// LineItems returns entries with a positive quantity, in catalog order.
func (c *Cart) LineItems() []model.LineItem {
	lines := make([]model.LineItem, 0)
	for _, item := range c.catalog {
		if q := c.qty[item.ID]; q > 0 {
			lines = append(lines, model.LineItem{Item: item, Quantity: q})
		}
	}
	return lines
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.LineItems() {
		total = total.Add(line.LineTotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return c.Total().IsZero()
}

func (c *Cart) Clear() {
	for id := range c.qty {
		c.qty[id] = 0
	}
}
