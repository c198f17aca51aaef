package catalog

import (
	"context"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// Static serves the fixed demo catalog.  It never fails.
type Static struct {
	theaters []model.Theater
	booked   []string
	menu     []model.FoodItem
}

// NewStatic returns a provider backed by the built-in demo data.
func NewStatic() *Static {
	return &Static{
		theaters: StaticTheaters(),
		booked:   []string{"A1", "A2", "B3", "C5", "D7", "E2", "F8", "G4", "H6"},
		menu:     StaticMenu(),
	}
}

// Theaters implements Provider.
func (s *Static) Theaters(ctx context.Context) ([]model.Theater, error) {
	out := make([]model.Theater, len(s.theaters))
	copy(out, s.theaters)
	return out, nil
}

// BookedSeats implements Provider.  Every screening shares the same booked
// set; seat maps drop the ids their layout does not contain.
func (s *Static) BookedSeats(ctx context.Context, theaterID int64, lang model.Language, format model.Format, showTime string) ([]string, error) {
	out := make([]string, len(s.booked))
	copy(out, s.booked)
	return out, nil
}

// Menu implements Provider.
func (s *Static) Menu(ctx context.Context) ([]model.FoodItem, error) {
	out := make([]model.FoodItem, len(s.menu))
	copy(out, s.menu)
	return out, nil
}

func slots(lang model.Language, format model.Format, times ...string) []model.Showtime {
	out := make([]model.Showtime, 0, len(times))
	for _, t := range times {
		out = append(out, model.Showtime{Language: lang, Format: format, Time: t})
	}
	return out
}

func join(groups ...[]model.Showtime) []model.Showtime {
	var out []model.Showtime
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// StaticTheaters returns the demo theater list.  A fresh slice is built on
// every call.
func StaticTheaters() []model.Theater {
	return []model.Theater{
		{
			ID:       1,
			Name:     "INOX Seawoods",
			Distance: "1.2 km",
			Showtimes: join(
				slots(model.Hindi, model.Format2D, "12:30 PM", "6:00 PM"),
				slots(model.Hindi, model.Format3D, "3:00 PM", "9:00 PM"),
				slots(model.English, model.Format2D, "11:00 AM", "4:30 PM"),
				slots(model.English, model.Format3D, "1:15 PM", "7:45 PM"),
			),
		},
		{
			ID:       2,
			Name:     "PVR Phoenix MarketCity",
			Distance: "2.8 km",
			Showtimes: join(
				slots(model.Hindi, model.Format2D, "10:00 AM", "1:45 PM", "7:15 PM"),
				slots(model.Hindi, model.Format3D, "5:30 PM"),
				slots(model.English, model.Format2D, "11:30 AM", "8:15 PM"),
				slots(model.English, model.Format3D, "2:00 PM", "10:45 PM"),
			),
		},
		{
			ID:       3,
			Name:     "Cinepolis Fun Republic",
			Distance: "3.5 km",
			Showtimes: join(
				slots(model.Hindi, model.Format2D, "9:30 AM", "3:30 PM"),
				slots(model.Hindi, model.Format3D, "6:00 PM"),
				slots(model.English, model.Format2D, "12:00 PM", "9:30 PM"),
				slots(model.English, model.Format3D, "4:00 PM"),
			),
		},
	}
}

// StaticMenu returns the demo concession menu.
func StaticMenu() []model.FoodItem {
	return []model.FoodItem{
		{ID: 1, Name: "Classic Popcorn & Cola", Type: "Combo", Description: "Medium popcorn with 500ml cola", Price: 250, Category: model.CategoryCombo},
		{ID: 2, Name: "Cheese Popcorn & Crisps", Type: "Combo", Description: "Cheese flavored popcorn with crisps", Price: 300, Category: model.CategoryCombo},
		{ID: 3, Name: "Large Butter Popcorn", Type: "Popcorn", Description: "Fresh butter popcorn - Large size", Price: 180, Category: model.CategoryPopcorn},
		{ID: 4, Name: "Caramel Popcorn", Type: "Popcorn", Description: "Sweet caramel flavored popcorn", Price: 200, Category: model.CategoryPopcorn},
		{ID: 5, Name: "Coca Cola", Type: "Drink", Description: "500ml Coca Cola", Price: 100, Category: model.CategoryDrinks},
		{ID: 6, Name: "Fresh Orange Juice", Type: "Drink", Description: "Freshly squeezed orange juice", Price: 120, Category: model.CategoryDrinks},
	}
}
