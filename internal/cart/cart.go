// Package cart keeps the concession order of a booking session.
package cart

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// ErrUnknownItem is returned for an item id that is not on the menu.
var ErrUnknownItem = errors.New("unknown menu item")

// Line is one menu item with its ordered quantity.
type Line struct {
	Item     model.FoodItem `json:"item"`
	Quantity int            `json:"quantity"`
	Subtotal int64          `json:"subtotal"`
}

// Cart holds item quantities against a fixed menu.  Lines keep the order in
// which items were first added.
type Cart struct {
	menu  map[int64]model.FoodItem
	qty   map[int64]int
	order []int64
}

// New returns an empty cart over menu.
func New(menu []model.FoodItem) *Cart {
	c := &Cart{
		menu: make(map[int64]model.FoodItem, len(menu)),
		qty:  make(map[int64]int),
	}
	for _, it := range menu {
		c.menu[it.ID] = it
	}
	return c
}

// Add increments the quantity of an item by one.
func (c *Cart) Add(itemID int64) error {
	if _, ok := c.menu[itemID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	if c.qty[itemID] == 0 {
		c.order = append(c.order, itemID)
	}
	c.qty[itemID]++
	return nil
}

// Remove decrements the quantity of an item by one.  Quantities never go
// below zero and a line is dropped when it reaches zero.
func (c *Cart) Remove(itemID int64) error {
	if _, ok := c.menu[itemID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	switch q := c.qty[itemID]; {
	case q <= 0:
		return nil
	case q == 1:
		delete(c.qty, itemID)
		c.drop(itemID)
	default:
		c.qty[itemID] = q - 1
	}
	return nil
}

func (c *Cart) drop(itemID int64) {
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Quantity returns how many of an item are in the cart.
func (c *Cart) Quantity(itemID int64) int { return c.qty[itemID] }

// Lines returns the non-empty lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		it := c.menu[id]
		q := c.qty[id]
		out = append(out, Line{Item: it, Quantity: q, Subtotal: it.Price * int64(q)})
	}
	return out
}

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, q := range c.qty {
		n += q
	}
	return n
}

// Total returns the order value in rupees.
func (c *Cart) Total() int64 {
	var total int64
	for id, q := range c.qty {
		total += c.menu[id].Price * int64(q)
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.qty = make(map[int64]int)
	c.order = nil
}

// Filter returns the menu items of a category.  CategoryAll returns the
// whole menu; an unknown category returns an empty list.
func Filter(menu []model.FoodItem, category string) []model.FoodItem {
	out := make([]model.FoodItem, 0, len(menu))
	for _, it := range menu {
		if category == model.CategoryAll || it.Category == category {
			out = append(out, it)
		}
	}
	return out
}
