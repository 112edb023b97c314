package router

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/handler"
	"undulcito/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, cartHandler *handler.CartHandler, cartSession *middleware.CartSessionMiddleware) {
	cart := e.Group("/v1/cart")
	cart.Use(cartSession.Attach)

	cart.GET("", cartHandler.GetCart)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)
	cart.POST("/open", cartHandler.Open)
	cart.POST("/close", cartHandler.Close)
	cart.POST("/checkout", cartHandler.Checkout)
}
