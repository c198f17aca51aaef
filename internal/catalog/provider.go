// Package catalog supplies the reference data of the dashboard: theaters
// with their showtimes, the seats already booked for a screening and the
// concession menu.  The data sits behind Provider so that the bundled mock
// data can be swapped for a database or a real booking backend without
// touching the seat map or wizard models.
package catalog

import (
	"context"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
)

// Provider is the read-only source of catalog data.
type Provider interface {
	// Theaters returns the theaters in catalog order.  Wizard indexes refer
	// to this order.
	Theaters(ctx context.Context) ([]model.Theater, error)
	// BookedSeats returns the seat ids already taken for one screening.
	BookedSeats(ctx context.Context, theaterID int64, lang model.Language, format model.Format, showTime string) ([]string, error)
	// Menu returns the concession menu.
	Menu(ctx context.Context) ([]model.FoodItem, error)
}

// Layout identifiers returned by LayoutFor.
const (
	LayoutStandard  = "standard-2d"
	LayoutImmersive = "immersive-3d"
)

// LayoutFor returns the hall layout used for a projection format: the
// standard hall has four rows of ten seats, the 3D hall eight rows of ten.
func LayoutFor(format model.Format) seatmap.Layout {
	if format == model.Format3D {
		return seatmap.GridLayout(LayoutImmersive, 8, 10)
	}
	return seatmap.GridLayout(LayoutStandard, 4, 10)
}

// Pricing holds the per-seat price for each format, in whole rupees.
type Pricing struct {
	Standard  int64 // 2D seat price
	Immersive int64 // 3D seat price
}

// DefaultPricing matches the prices shown by the dashboard.
var DefaultPricing = Pricing{Standard: 200, Immersive: 250}

// UnitPrice returns the seat price for a format.
func (p Pricing) UnitPrice(format model.Format) int64 {
	if format == model.Format3D {
		return p.Immersive
	}
	return p.Standard
}
