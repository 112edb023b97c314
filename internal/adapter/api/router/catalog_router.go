package router

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/handler"
)

func SetupCatalogRouter(e *echo.Echo, catalogHandler *handler.CatalogHandler, wsHandler *handler.WebSocketHandler) {
	catalog := e.Group("/v1/catalog")
	catalog.GET("/products", catalogHandler.ListProducts)
	catalog.GET("/products/:id", catalogHandler.GetProduct)
	catalog.GET("/categories", catalogHandler.ListCategories)
	catalog.GET("/best-sellers", catalogHandler.BestSellers)

	if wsHandler != nil {
		catalog.GET("/stream", wsHandler.HandleCatalogStream)
	}
}
