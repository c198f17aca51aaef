package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/cart"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/catalog"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// CatalogHandler serves the theater list and the concession menu.
type CatalogHandler struct {
	Catalog catalog.Provider
	Pricing catalog.Pricing
	Logger  *slog.Logger
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(p catalog.Provider, pricing catalog.Pricing, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: p, Pricing: pricing, Logger: orDefault(logger)}
}

// Theaters handles GET /v1/theaters.
func (h *CatalogHandler) Theaters(c echo.Context) error {
	theaters, err := h.Catalog.Theaters(c.Request().Context())
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": theaters,
		"prices": echo.Map{
			string(model.Format2D): h.Pricing.UnitPrice(model.Format2D),
			string(model.Format3D): h.Pricing.UnitPrice(model.Format3D),
		},
	})
}

// Menu handles GET /v1/menu?category=, defaulting to all items.
func (h *CatalogHandler) Menu(c echo.Context) error {
	menu, err := h.Catalog.Menu(c.Request().Context())
	if err != nil {
		return writeError(c, h.Logger, err)
	}
	category := c.QueryParam("category")
	if category == "" {
		category = model.CategoryAll
	}
	return c.JSON(http.StatusOK, echo.Map{"category": category, "items": cart.Filter(menu, category)})
}
