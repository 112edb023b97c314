package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"undulcito/internal/domain/service"
)

type RateHandler struct {
	rates service.RateSource
}

func NewRateHandler(rates service.RateSource) *RateHandler {
	return &RateHandler{
		rates: rates,
	}
}

// GetRate keeps the storefront's original contract: a bare quote, or 503
// with a Spanish error message. It does not use the response envelope.
func (h *RateHandler) GetRate(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	result := h.rates.Fetch(c.Request().Context())
	if !result.OK {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "Servicios no disponibles",
		})
	}
	return c.JSON(http.StatusOK, result.Quote)
}
