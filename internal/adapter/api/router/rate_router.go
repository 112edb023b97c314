package router

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/handler"
)

// SetupRateRouter keeps the storefront's legacy path.
func SetupRateRouter(e *echo.Echo, rateHandler *handler.RateHandler) {
	e.GET("/api/bcv", rateHandler.GetRate)
}
