package handler

import (
	"time"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/cart"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/session"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/wizard"
)

// SessionView is the JSON form of a booking session.
type SessionView struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Principal *identity.Principal `json:"principal,omitempty"`
	Wizard    *WizardView         `json:"wizard,omitempty"`
	Showtime  *wizard.Selection   `json:"showtime,omitempty"`
	Seats     *SeatsView          `json:"seats,omitempty"`
	Cart      CartView            `json:"cart"`
}

// TheaterOption is one entry of the wizard's theater step.
type TheaterOption struct {
	Index    int    `json:"index"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Distance string `json:"distance,omitempty"`
}

// WizardView shows the open wizard with the options of every step.
type WizardView struct {
	State      wizard.State     `json:"state"`
	Theaters   []TheaterOption  `json:"theaters"`
	Languages  []model.Language `json:"languages"`
	Formats    []model.Format   `json:"formats"`
	Showtimes  []string         `json:"showtimes"`
	CanConfirm bool             `json:"canConfirm"`
}

// SeatsView shows the seat map of the confirmed showtime.
type SeatsView struct {
	LayoutID  string            `json:"layoutId"`
	Rows      []seatmap.Row     `json:"rows"`
	Seats     []seatmap.Seat    `json:"seats"`
	Stats     seatmap.Stats     `json:"stats"`
	Selection seatmap.Selection `json:"selection"`
	UnitPrice int64             `json:"unitPrice"`
}

// CartView shows the cart lines and totals.
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Count int         `json:"count"`
	Total int64       `json:"total"`
}

func sessionView(s *session.Session) SessionView {
	v := SessionView{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Principal: s.Principal,
		Showtime:  s.Showtime,
		Cart:      cartView(s.Cart),
	}
	if s.Wizard != nil && !s.Wizard.Closed() {
		w := wizardView(s.Wizard)
		v.Wizard = &w
	}
	if s.Seats != nil {
		sv := seatsView(s.Seats, s.UnitPrice)
		v.Seats = &sv
	}
	return v
}

func wizardView(w *wizard.Wizard) WizardView {
	theaters := w.Theaters()
	opts := make([]TheaterOption, 0, len(theaters))
	for i, t := range theaters {
		opts = append(opts, TheaterOption{Index: i, ID: t.ID, Name: t.Name, Distance: t.Distance})
	}
	return WizardView{
		State:      w.State(),
		Theaters:   opts,
		Languages:  model.Languages,
		Formats:    model.Formats,
		Showtimes:  w.Showtimes(),
		CanConfirm: w.CanConfirm(),
	}
}

func seatsView(m *seatmap.Map, unitPrice int64) SeatsView {
	l := m.Layout()
	return SeatsView{
		LayoutID:  l.ID,
		Rows:      l.Rows,
		Seats:     m.Seats(),
		Stats:     m.Stats(),
		Selection: m.Selection(unitPrice),
		UnitPrice: unitPrice,
	}
}

func cartView(c *cart.Cart) CartView {
	if c == nil {
		return CartView{Lines: []cart.Line{}}
	}
	return CartView{Lines: c.Lines(), Count: c.Count(), Total: c.Total()}
}
