package models

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type CartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Cart is a transient, client-owned collection of product/quantity pairs.
// Lines are merged by product and keep their insertion order. The cart never
// touches storage; prices are only attached at checkout, so Subtotal is a
// provisional figure for display.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add merges into an existing line for the same product.
func (c *Cart) Add(productID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity replaces the quantity for a product; zero removes the line.
func (c *Cart) SetQuantity(productID uint, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}
	if qty == 0 {
		c.Remove(productID)
		return nil
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: qty})
	return nil
}

func (c *Cart) Remove(productID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy so callers cannot bypass the merge rules.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal computes a display subtotal against the given unit prices.
// Products missing from the map count as zero.
func (c *Cart) Subtotal(priceCents map[uint]int64) int64 {
	var total int64
	for _, l := range c.lines {
		total += priceCents[l.ProductID] * int64(l.Quantity)
	}
	return total
}
