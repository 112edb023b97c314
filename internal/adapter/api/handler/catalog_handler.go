package handler

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/usecase"
	"undulcito/pkg/errors"
	"undulcito/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

// loading is returned until both catalog subscriptions have delivered, so an
// empty grid always means an empty catalog.
func (h *CatalogHandler) loading() error {
	if h.catalogUseCase.Ready() {
		return nil
	}
	return errors.ServiceUnavailable("Catalog is still loading", nil)
}

// ListProducts serves the storefront grid: ?category= and ?q= combine.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	if err := h.loading(); err != nil {
		return response.Error(c, err)
	}
	products := h.catalogUseCase.Products(c.QueryParam("category"), c.QueryParam("q"))
	return response.Success(c, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUseCase.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	if err := h.loading(); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.catalogUseCase.Categories())
}

func (h *CatalogHandler) BestSellers(c echo.Context) error {
	if err := h.loading(); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.catalogUseCase.BestSellers())
}
