package cart

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// Snapshot is the serialisable form of a cart.
type Snapshot struct {
	Menu  []model.FoodItem `json:"menu"`
	Items []Item           `json:"items"`
}

// Item is a stored line.
type Item struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// Snapshot captures the cart.
func (c *Cart) Snapshot() Snapshot {
	menu := make([]model.FoodItem, 0, len(c.menu))
	for _, it := range c.menu {
		menu = append(menu, it)
	}
	slices.SortFunc(menu, func(a, b model.FoodItem) int { return cmp.Compare(a.ID, b.ID) })
	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, Item{ID: id, Quantity: c.qty[id]})
	}
	return Snapshot{Menu: menu, Items: items}
}

// FromSnapshot rebuilds a cart, rejecting items missing from the menu and
// non-positive quantities.
func FromSnapshot(s Snapshot) (*Cart, error) {
	c := New(s.Menu)
	for _, it := range s.Items {
		if _, ok := c.menu[it.ID]; !ok {
			return nil, fmt.Errorf("restore cart: %w: %d", ErrUnknownItem, it.ID)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("restore cart: quantity %d for item %d", it.Quantity, it.ID)
		}
		if c.qty[it.ID] == 0 {
			c.order = append(c.order, it.ID)
		}
		c.qty[it.ID] += it.Quantity
	}
	return c, nil
}
