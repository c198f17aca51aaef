// Package handler exposes the HTTP handlers of the dashboard API.  Handlers
// answer with JSON; errors use the {"error": "..."} shape.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/cart"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/seatmap"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/service"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/session"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/wizard"
)

// statusFor maps domain errors to HTTP statuses.  Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, seatmap.ErrUnknownSeat),
		errors.Is(err, cart.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrInvalidSelection):
		return http.StatusUnprocessableEntity
	case errors.Is(err, seatmap.ErrSeatUnavailable),
		errors.Is(err, wizard.ErrIncompleteSelection),
		errors.Is(err, wizard.ErrClosed),
		errors.Is(err, service.ErrWizardNotOpen),
		errors.Is(err, service.ErrNoShowtime),
		errors.Is(err, service.ErrEmptySelection):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status of err.  Internal errors are logged
// and hidden from the client.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
