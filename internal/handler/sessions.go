package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/service"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/session"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/wizard"
)

// SessionHandler exposes the booking session flow: lifecycle, showtime
// wizard, seat map and cart.
type SessionHandler struct {
	Bookings *service.BookingService
	Logger   *slog.Logger
}

// NewSessionHandler constructs a SessionHandler and panics on a nil
// service.
func NewSessionHandler(bookings *service.BookingService, logger *slog.Logger) *SessionHandler {
	if bookings == nil {
		panic("nil booking service passed to NewSessionHandler")
	}
	return &SessionHandler{Bookings: bookings, Logger: orDefault(logger)}
}

// Me handles GET /v1/me.
func Me(c echo.Context) error {
	p := middleware.Principal(c)
	if p == nil {
		return c.JSON(http.StatusOK, echo.Map{"signedIn": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"signedIn": true, "principal": p})
}

// respond writes the session view, or the error when the session could not
// be loaded.  A non-fatal model error is reported with the session state
// so the client can redraw.
func (h *SessionHandler) respond(c echo.Context, status int, s *session.Session, err error) error {
	if err == nil {
		return c.JSON(status, sessionView(s))
	}
	if s == nil {
		return writeError(c, h.Logger, err)
	}
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return writeError(c, h.Logger, err)
	}
	return c.JSON(code, echo.Map{"error": err.Error(), "session": sessionView(s)})
}

// Create handles POST /v1/sessions.
func (h *SessionHandler) Create(c echo.Context) error {
	s, err := h.Bookings.Create(c.Request().Context(), middleware.Principal(c))
	return h.respond(c, http.StatusCreated, s, err)
}

// Get handles GET /v1/sessions/:id.
func (h *SessionHandler) Get(c echo.Context) error {
	s, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	return h.respond(c, http.StatusOK, s, err)
}

// Delete handles DELETE /v1/sessions/:id.
func (h *SessionHandler) Delete(c echo.Context) error {
	if err := h.Bookings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, h.Logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OpenShowtime handles POST /v1/sessions/:id/showtime.
func (h *SessionHandler) OpenShowtime(c echo.Context) error {
	s, err := h.Bookings.OpenShowtime(c.Request().Context(), c.Param("id"))
	return h.respond(c, http.StatusCreated, s, err)
}

// GetShowtime handles GET /v1/sessions/:id/showtime.
func (h *SessionHandler) GetShowtime(c echo.Context) error {
	s, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	if s.Wizard == nil {
		return writeError(c, h.Logger, service.ErrWizardNotOpen)
	}
	return c.JSON(http.StatusOK, wizardView(s.Wizard))
}

// CancelShowtime handles DELETE /v1/sessions/:id/showtime.
func (h *SessionHandler) CancelShowtime(c echo.Context) error {
	s, err := h.Bookings.CancelShowtime(c.Request().Context(), c.Param("id"))
	return h.respond(c, http.StatusOK, s, err)
}

type stepBody struct {
	Index    *int   `json:"index"`
	Language string `json:"language"`
	Format   string `json:"format"`
	Time     string `json:"time"`
}

// SelectStep handles PUT /v1/sessions/:id/showtime/:step for the theater,
// language, format and time steps.
func (h *SessionHandler) SelectStep(c echo.Context) error {
	var body stepBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var cmd wizard.Command
	switch c.Param("step") {
	case "theater":
		if body.Index == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "index is required"})
		}
		cmd = wizard.SelectTheater{Index: *body.Index}
	case "language":
		cmd = wizard.SelectLanguage{Language: model.ParseLanguage(body.Language)}
	case "format":
		cmd = wizard.SelectFormat{Format: model.ParseFormat(body.Format)}
	case "time":
		cmd = wizard.SelectTime{Time: body.Time}
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown step"})
	}
	s, err := h.Bookings.ApplyShowtime(c.Request().Context(), c.Param("id"), cmd)
	return h.respond(c, http.StatusOK, s, err)
}

// ConfirmShowtime handles POST /v1/sessions/:id/showtime/confirm.
func (h *SessionHandler) ConfirmShowtime(c echo.Context) error {
	s, err := h.Bookings.ConfirmShowtime(c.Request().Context(), c.Param("id"))
	return h.respond(c, http.StatusOK, s, err)
}

// GetSeats handles GET /v1/sessions/:id/seats.
func (h *SessionHandler) GetSeats(c echo.Context) error {
	s, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	if s.Seats == nil {
		return writeError(c, h.Logger, service.ErrNoShowtime)
	}
	return c.JSON(http.StatusOK, seatsView(s.Seats, s.UnitPrice))
}

// Placements handles GET /v1/sessions/:id/seats/placements.
func (h *SessionHandler) Placements(c echo.Context) error {
	s, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	if s.Seats == nil {
		return writeError(c, h.Logger, service.ErrNoShowtime)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seatmap.Placements(s.Seats.Layout())})
}

// ToggleSeat handles POST /v1/sessions/:id/seats/:seat/toggle.  A booked
// seat answers 409 with the unchanged seat map.
func (h *SessionHandler) ToggleSeat(c echo.Context) error {
	s, err := h.Bookings.ApplySeats(c.Request().Context(), c.Param("id"), seatmap.Toggle{SeatID: c.Param("seat")})
	if err != nil && s != nil && s.Seats != nil && errors.Is(err, seatmap.ErrSeatUnavailable) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": err.Error(),
			"seat":  seatmap.NormalizeSeatID(c.Param("seat")),
			"seats": seatsView(s.Seats, s.UnitPrice),
		})
	}
	if err != nil {
		return h.respond(c, http.StatusOK, s, err)
	}
	return c.JSON(http.StatusOK, seatsView(s.Seats, s.UnitPrice))
}

// ClearSeats handles DELETE /v1/sessions/:id/seats/selection.
func (h *SessionHandler) ClearSeats(c echo.Context) error {
	s, err := h.Bookings.ApplySeats(c.Request().Context(), c.Param("id"), seatmap.Clear{})
	if err != nil {
		return h.respond(c, http.StatusOK, s, err)
	}
	return c.JSON(http.StatusOK, seatsView(s.Seats, s.UnitPrice))
}

// ConfirmSeats handles POST /v1/sessions/:id/seats/confirm.
func (h *SessionHandler) ConfirmSeats(c echo.Context) error {
	conf, err := h.Bookings.ConfirmSeats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, conf)
}

// GetCart handles GET /v1/sessions/:id/cart.
func (h *SessionHandler) GetCart(c echo.Context) error {
	s, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, cartView(s.Cart))
}

// ClearCart handles DELETE /v1/sessions/:id/cart.
func (h *SessionHandler) ClearCart(c echo.Context) error {
	s, err := h.Bookings.ClearCart(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, cartView(s.Cart))
}

// AddItem handles POST /v1/sessions/:id/cart/items/:item.
func (h *SessionHandler) AddItem(c echo.Context) error {
	return h.cartItem(c, h.Bookings.AddToCart)
}

// RemoveItem handles DELETE /v1/sessions/:id/cart/items/:item.
func (h *SessionHandler) RemoveItem(c echo.Context) error {
	return h.cartItem(c, h.Bookings.RemoveFromCart)
}

func (h *SessionHandler) cartItem(c echo.Context, op func(ctx context.Context, id string, itemID int64) (*session.Session, error)) error {
	itemID, err := strconv.ParseInt(c.Param("item"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	s, err := op(c.Request().Context(), c.Param("id"), itemID)
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, cartView(s.Cart))
}
