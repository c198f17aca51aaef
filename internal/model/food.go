package model

// FoodItem is an entry of the concession menu.  Price is expressed in whole
// rupees, the unit the dashboard displays.
type FoodItem struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Type        string `json:"type" db:"item_type"`
	Description string `json:"description" db:"description"`
	Price       int64  `json:"price" db:"price"`
	Category    string `json:"category" db:"category"`
}

// Menu categories.  CategoryAll is a filter value, never an item category.
const (
	CategoryAll     = "all"
	CategoryCombo   = "combo"
	CategoryPopcorn = "popcorn"
	CategoryDrinks  = "drinks"
)
