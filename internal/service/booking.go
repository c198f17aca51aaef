// Package service implements the booking session flow on top of the
// session store, the catalog provider and the booking hand-off queue.
// Every operation loads the session, applies one change and saves it back.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/catalog"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/queue"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/session"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/wizard"
)

var (
	// ErrWizardNotOpen is returned for showtime steps while no wizard is
	// open in the session.
	ErrWizardNotOpen = errors.New("showtime selection is not open")
	// ErrNoShowtime is returned for seat operations before a showtime has
	// been confirmed.
	ErrNoShowtime = errors.New("no showtime confirmed")
	// ErrEmptySelection is returned when confirming without any seat.
	ErrEmptySelection = errors.New("no seats selected")
)

// Confirmation is the result of handing a seat selection to the booking
// collaborator.  Queued is false when the hand-off could not be published;
// the confirmation itself still stands.
type Confirmation struct {
	seatmap.Selection
	Showtime    wizard.Selection `json:"showtime"`
	ConfirmedAt time.Time        `json:"confirmedAt"`
	Queued      bool             `json:"queued"`
}

// BookingService drives booking sessions.
type BookingService struct {
	store     session.Store
	catalog   catalog.Provider
	pricing   catalog.Pricing
	publisher queue.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewBookingService wires the service.  A nil publisher drops hand-offs.
func NewBookingService(store session.Store, provider catalog.Provider, pricing catalog.Pricing, publisher queue.Publisher, logger *slog.Logger) *BookingService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		store:     store,
		catalog:   provider,
		pricing:   pricing,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create starts a session for principal, which may be nil when signed out.
func (b *BookingService) Create(ctx context.Context, principal *identity.Principal) (*session.Session, error) {
	menu, err := b.catalog.Menu(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	s := session.New(principal, menu)
	if err := b.store.Save(ctx, s); err != nil {
		return nil, err
	}
	b.logger.Info("session created", "session", s.ID, "signed_in", principal != nil)
	return s, nil
}

// Get loads a session.
func (b *BookingService) Get(ctx context.Context, id string) (*session.Session, error) {
	return b.store.Get(ctx, id)
}

// Delete ends a session.
func (b *BookingService) Delete(ctx context.Context, id string) error {
	return b.store.Delete(ctx, id)
}

// update loads id, runs fn and saves the session when fn succeeds.  When
// fn returns a non-fatal model error the session is returned with it and
// nothing is saved, since failed commands leave the models untouched.
func (b *BookingService) update(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error) {
	s, err := b.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return s, err
	}
	s.UpdatedAt = b.now()
	if err := b.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenShowtime opens a fresh wizard with default steps, replacing any
// wizard already open.
func (b *BookingService) OpenShowtime(ctx context.Context, id string) (*session.Session, error) {
	theaters, err := b.catalog.Theaters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load theaters: %w", err)
	}
	return b.update(ctx, id, func(s *session.Session) error {
		w, err := wizard.Open(theaters)
		if err != nil {
			return err
		}
		s.Wizard = w
		return nil
	})
}

// ApplyShowtime runs one wizard step.
func (b *BookingService) ApplyShowtime(ctx context.Context, id string, cmd wizard.Command) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error {
		if s.Wizard == nil {
			return ErrWizardNotOpen
		}
		return s.Wizard.Apply(cmd)
	})
}

// CancelShowtime closes the wizard and discards its state.
func (b *BookingService) CancelShowtime(ctx context.Context, id string) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error {
		if s.Wizard == nil {
			return ErrWizardNotOpen
		}
		s.Wizard.Cancel()
		s.Wizard = nil
		return nil
	})
}

// ConfirmShowtime finalises the wizard and opens the seat map of the chosen
// screening with the seats the provider reports as booked.  Any previous
// seat selection is discarded.
func (b *BookingService) ConfirmShowtime(ctx context.Context, id string) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error {
		if s.Wizard == nil {
			return ErrWizardNotOpen
		}
		if !s.Wizard.CanConfirm() {
			return wizard.ErrIncompleteSelection
		}
		pending := s.Wizard.State()
		theater := s.Wizard.Theater()
		booked, err := b.catalog.BookedSeats(ctx, theater.ID, pending.Language, pending.Format, pending.Time)
		if err != nil {
			return fmt.Errorf("load booked seats: %w", err)
		}
		m, err := seatmap.New(catalog.LayoutFor(pending.Format), booked)
		if err != nil {
			return err
		}
		sel, err := s.Wizard.Confirm()
		if err != nil {
			return err
		}
		s.Wizard = nil
		s.Showtime = &sel
		s.Seats = m
		s.UnitPrice = b.pricing.UnitPrice(sel.Format)
		b.logger.Info("showtime confirmed", "session", s.ID, "theater", sel.TheaterName, "format", sel.Format, "time", sel.Time)
		return nil
	})
}

// ApplySeats runs one seat map command.
func (b *BookingService) ApplySeats(ctx context.Context, id string, cmd seatmap.Command) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error {
		if s.Seats == nil {
			return ErrNoShowtime
		}
		return s.Seats.Apply(cmd)
	})
}

// ConfirmSeats hands the current selection to the booking collaborator.
// The seat map is left as it is.
func (b *BookingService) ConfirmSeats(ctx context.Context, id string) (Confirmation, error) {
	s, err := b.store.Get(ctx, id)
	if err != nil {
		return Confirmation{}, err
	}
	if s.Seats == nil || s.Showtime == nil {
		return Confirmation{}, ErrNoShowtime
	}
	sel := s.Seats.Selection(s.UnitPrice)
	if len(sel.SeatIDs) == 0 {
		return Confirmation{}, ErrEmptySelection
	}
	c := Confirmation{Selection: sel, Showtime: *s.Showtime, ConfirmedAt: b.now()}

	ev := queue.SeatsConfirmedEvent{
		SessionID:   s.ID,
		TheaterID:   c.Showtime.TheaterID,
		TheaterName: c.Showtime.TheaterName,
		Language:    string(c.Showtime.Language),
		Format:      string(c.Showtime.Format),
		Time:        c.Showtime.Time,
		Seats:       sel.SeatIDs,
		UnitPrice:   s.UnitPrice,
		TotalPrice:  sel.TotalPrice,
		ConfirmedAt: c.ConfirmedAt.Format(time.RFC3339),
	}
	if s.Principal != nil {
		ev.UserID = s.Principal.Subject
		ev.UserName = s.Principal.Name
	}
	if err := b.publisher.PublishSeatsConfirmed(ctx, ev); err != nil {
		b.logger.Warn("booking hand-off not queued", "session", s.ID, "err", err)
	} else {
		c.Queued = true
	}
	return c, nil
}

// AddToCart adds one unit of a menu item.
func (b *BookingService) AddToCart(ctx context.Context, id string, itemID int64) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error { return s.Cart.Add(itemID) })
}

// RemoveFromCart removes one unit of a menu item.
func (b *BookingService) RemoveFromCart(ctx context.Context, id string, itemID int64) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error { return s.Cart.Remove(itemID) })
}

// ClearCart empties the cart.
func (b *BookingService) ClearCart(ctx context.Context, id string) (*session.Session, error) {
	return b.update(ctx, id, func(s *session.Session) error {
		s.Cart.Clear()
		return nil
	})
}
