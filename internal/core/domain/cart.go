package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidLineItem = errors.New("cart: invalid line item")

// LineItem is one product entry in the cart. Price is captured at add time
// and not re-fetched from the catalog.
type LineItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Validate rejects line items that cannot be priced: empty name, negative
// price or quantity below one.
func (li LineItem) Validate() error {
	if li.Name == "" || li.Price.IsNegative() || li.Quantity < 1 {
		return ErrInvalidLineItem
	}
	return nil
}

// Cart is an ordered collection of line items, at most one per product ID.
// Insertion order is preserved for display. A stored line item always has
// quantity >= 1; any mutation driving quantity to zero or below removes the
// line item entirely.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Add inserts a new line item with quantity 1, or increments the quantity
// of the existing line item for the same product ID.
func (c *Cart) Add(p Product) {
	if i := c.find(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
		Image:    p.Image,
	})
}

// Remove deletes the line item with the given product ID. Removing an
// absent ID is a no-op.
func (c *Cart) Remove(id int64) {
	if i := c.find(id); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity sets the line item's quantity to max(0, quantity) and removes
// the line item when the result is zero. Unknown IDs are a no-op.
func (c *Cart) SetQuantity(id int64, quantity int) {
	i := c.find(id)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
	c.Items[i].Quantity = quantity
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the sum of price times quantity over all line items, zero for an
// empty cart. It is computed on demand and never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Count is the number of units across all line items.
func (c *Cart) Count() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

func (c *Cart) find(id int64) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}
