package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/catalog"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/queue"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/service"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/session"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/wizard"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishSeatsConfirmed(ctx context.Context, ev queue.SeatsConfirmedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func newService(t *testing.T, pub queue.Publisher) (*service.BookingService, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	return service.NewBookingService(store, catalog.NewStatic(), catalog.DefaultPricing, pub, nil), store
}

// confirmedSession walks a session through the wizard up to the seat map.
func confirmedSession(t *testing.T, svc *service.BookingService, format model.Format, showTime string) string {
	t.Helper()
	ctx := context.Background()
	s, err := svc.Create(ctx, &identity.Principal{Subject: "u1", Name: "Asha"})
	require.NoError(t, err)
	_, err = svc.OpenShowtime(ctx, s.ID)
	require.NoError(t, err)
	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectFormat{Format: format})
	require.NoError(t, err)
	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectTime{Time: showTime})
	require.NoError(t, err)
	_, err = svc.ConfirmShowtime(ctx, s.ID)
	require.NoError(t, err)
	return s.ID
}

func TestShowtimeFlowOpensSeatMap(t *testing.T) {
	svc, _ := newService(t, nil)
	id := confirmedSession(t, svc, model.Format3D, "3:00 PM")

	s, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, s.Wizard)
	require.NotNil(t, s.Showtime)
	assert.Equal(t, "INOX Seawoods", s.Showtime.TheaterName)
	assert.Equal(t, int64(250), s.UnitPrice)
	assert.Equal(t, 80, s.Seats.Stats().Total)
	assert.Equal(t, 9, s.Seats.Stats().Booked)
}

func TestStandardHallIgnoresBookedSeatsOutsideLayout(t *testing.T) {
	svc, _ := newService(t, nil)
	id := confirmedSession(t, svc, model.Format2D, "6:00 PM")

	s, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(200), s.UnitPrice)
	assert.Equal(t, seatmap.Stats{Available: 35, Booked: 5, Total: 40}, s.Seats.Stats())
}

// recordingCatalog serves the static catalog and records booked-seat
// lookups.
type recordingCatalog struct {
	*catalog.Static
	lookups []wizard.Selection
}

func (r *recordingCatalog) BookedSeats(ctx context.Context, theaterID int64, lang model.Language, format model.Format, showTime string) ([]string, error) {
	r.lookups = append(r.lookups, wizard.Selection{TheaterID: theaterID, Language: lang, Format: format, Time: showTime})
	return r.Static.BookedSeats(ctx, theaterID, lang, format, showTime)
}

func TestConfirmShowtimeLooksUpBookedSeatsByLanguage(t *testing.T) {
	provider := &recordingCatalog{Static: catalog.NewStatic()}
	svc := service.NewBookingService(session.NewMemoryStore(), provider, catalog.DefaultPricing, nil, nil)
	ctx := context.Background()

	s, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.OpenShowtime(ctx, s.ID)
	require.NoError(t, err)
	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectLanguage{Language: model.English})
	require.NoError(t, err)
	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectTime{Time: "4:30 PM"})
	require.NoError(t, err)
	_, err = svc.ConfirmShowtime(ctx, s.ID)
	require.NoError(t, err)

	require.Len(t, provider.lookups, 1)
	assert.Equal(t, wizard.Selection{TheaterID: 1, Language: model.English, Format: model.Format2D, Time: "4:30 PM"}, provider.lookups[0])
}

func TestShowtimeStepsNeedOpenWizard(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	s, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectTheater{Index: 1})
	assert.ErrorIs(t, err, service.ErrWizardNotOpen)
	_, err = svc.ConfirmShowtime(ctx, s.ID)
	assert.ErrorIs(t, err, service.ErrWizardNotOpen)

	_, err = svc.OpenShowtime(ctx, s.ID)
	require.NoError(t, err)
	_, err = svc.ConfirmShowtime(ctx, s.ID)
	assert.ErrorIs(t, err, wizard.ErrIncompleteSelection)

	_, err = svc.CancelShowtime(ctx, s.ID)
	require.NoError(t, err)
	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Wizard)
}

func TestRejectedStepIsNotSaved(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	s, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.OpenShowtime(ctx, s.ID)
	require.NoError(t, err)
	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectTime{Time: "12:30 PM"})
	require.NoError(t, err)

	_, err = svc.ApplyShowtime(ctx, s.ID, wizard.SelectTime{Time: "11:00 AM"})
	assert.ErrorIs(t, err, wizard.ErrInvalidSelection)

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "12:30 PM", got.Wizard.State().Time)
}

func TestSeatsNeedShowtime(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	s, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.ApplySeats(ctx, s.ID, seatmap.Toggle{SeatID: "A3"})
	assert.ErrorIs(t, err, service.ErrNoShowtime)
	_, err = svc.ConfirmSeats(ctx, s.ID)
	assert.ErrorIs(t, err, service.ErrNoShowtime)
}

func TestToggleBookedSeat(t *testing.T) {
	svc, _ := newService(t, nil)
	id := confirmedSession(t, svc, model.Format3D, "9:00 PM")

	s, err := svc.ApplySeats(context.Background(), id, seatmap.Toggle{SeatID: "A1"})
	assert.ErrorIs(t, err, seatmap.ErrSeatUnavailable)
	require.NotNil(t, s)
	assert.Empty(t, s.Seats.SelectedIDs())
}

func TestConfirmSeatsPublishes(t *testing.T) {
	pub := new(mockPublisher)
	svc, _ := newService(t, pub)
	ctx := context.Background()
	id := confirmedSession(t, svc, model.Format2D, "6:00 PM")

	for _, seat := range []string{"B4", "B5"} {
		_, err := svc.ApplySeats(ctx, id, seatmap.Toggle{SeatID: seat})
		require.NoError(t, err)
	}

	pub.On("PublishSeatsConfirmed", mock.Anything, mock.MatchedBy(func(ev queue.SeatsConfirmedEvent) bool {
		return ev.SessionID == id && ev.UserID == "u1" && ev.TotalPrice == 400 &&
			len(ev.Seats) == 2 && ev.TheaterName == "INOX Seawoods" && ev.Time == "6:00 PM"
	})).Return(nil).Once()

	c, err := svc.ConfirmSeats(ctx, id)
	require.NoError(t, err)
	assert.True(t, c.Queued)
	assert.Equal(t, []string{"B4", "B5"}, c.SeatIDs)
	assert.Equal(t, int64(400), c.TotalPrice)
	assert.WithinDuration(t, time.Now(), c.ConfirmedAt, time.Minute)
	pub.AssertExpectations(t)
}

func TestConfirmSeatsSurvivesPublishFailure(t *testing.T) {
	pub := new(mockPublisher)
	svc, _ := newService(t, pub)
	ctx := context.Background()
	id := confirmedSession(t, svc, model.Format2D, "6:00 PM")

	_, err := svc.ConfirmSeats(ctx, id)
	assert.ErrorIs(t, err, service.ErrEmptySelection)

	_, err = svc.ApplySeats(ctx, id, seatmap.Toggle{SeatID: "C2"})
	require.NoError(t, err)
	pub.On("PublishSeatsConfirmed", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	c, err := svc.ConfirmSeats(ctx, id)
	require.NoError(t, err)
	assert.False(t, c.Queued)
	assert.Equal(t, int64(200), c.TotalPrice)
	pub.AssertExpectations(t)
}

func TestCart(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	s, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, s.ID, 1)
	require.NoError(t, err)
	s, err = svc.AddToCart(ctx, s.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(350), s.Cart.Total())

	_, err = svc.AddToCart(ctx, s.ID, 77)
	assert.Error(t, err)

	s, err = svc.RemoveFromCart(ctx, s.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.Cart.Total())

	s, err = svc.ClearCart(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, s.Cart.Count())
}

func TestUnknownSession(t *testing.T) {
	svc, _ := newService(t, nil)
	_, err := svc.OpenShowtime(context.Background(), "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), session.ErrNotFound)
}
