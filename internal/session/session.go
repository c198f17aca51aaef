// Package session holds the per-tab booking state: an optional showtime
// wizard, the seat map of the confirmed showtime and the concession cart.
// Sessions are plain values loaded from and saved to a Store around every
// request.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/cart"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/wizard"
)

// ErrNotFound is returned by stores for an unknown or expired session id.
var ErrNotFound = errors.New("session not found")

// Session is the in-memory form of one booking session.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Principal *identity.Principal

	// Wizard is non-nil while the showtime flow is open.
	Wizard *wizard.Wizard
	// Showtime is the last confirmed wizard selection.
	Showtime *wizard.Selection
	// Seats is the seat map of Showtime; UnitPrice is its per-seat price.
	Seats     *seatmap.Map
	UnitPrice int64

	Cart *cart.Cart
}

// New starts an empty session with a random id and an empty cart over menu.
func New(principal *identity.Principal, menu []model.FoodItem) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Principal: principal,
		Cart:      cart.New(menu),
	}
}

// Record is the serialised form kept by stores.
type Record struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Principal *identity.Principal `json:"principal,omitempty"`
	Wizard    *wizard.Snapshot    `json:"wizard,omitempty"`
	Showtime  *wizard.Selection   `json:"showtime,omitempty"`
	Seats     *seatmap.Snapshot   `json:"seats,omitempty"`
	UnitPrice int64               `json:"unitPrice,omitempty"`
	Cart      cart.Snapshot       `json:"cart"`
}

// Record captures s.  A closed wizard is not stored.
func (s *Session) Record() Record {
	r := Record{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Principal: s.Principal,
		Showtime:  s.Showtime,
		UnitPrice: s.UnitPrice,
	}
	if s.Wizard != nil && !s.Wizard.Closed() {
		snap := s.Wizard.Snapshot()
		r.Wizard = &snap
	}
	if s.Seats != nil {
		snap := s.Seats.Snapshot()
		r.Seats = &snap
	}
	if s.Cart != nil {
		r.Cart = s.Cart.Snapshot()
	} else {
		r.Cart = cart.New(nil).Snapshot()
	}
	return r
}

// FromRecord rebuilds a session, re-validating every nested model.
func FromRecord(r Record) (*Session, error) {
	if r.ID == "" {
		return nil, errors.New("session record without id")
	}
	s := &Session{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Principal: r.Principal,
		Showtime:  r.Showtime,
		UnitPrice: r.UnitPrice,
	}
	var err error
	if r.Wizard != nil {
		if s.Wizard, err = wizard.FromSnapshot(*r.Wizard); err != nil {
			return nil, fmt.Errorf("session %s: %w", r.ID, err)
		}
	}
	if r.Seats != nil {
		if s.Seats, err = seatmap.FromSnapshot(*r.Seats); err != nil {
			return nil, fmt.Errorf("session %s: %w", r.ID, err)
		}
	}
	if s.Cart, err = cart.FromSnapshot(r.Cart); err != nil {
		return nil, fmt.Errorf("session %s: %w", r.ID, err)
	}
	return s, nil
}
