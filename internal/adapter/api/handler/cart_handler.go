package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/middleware"
	"undulcito/internal/domain/cart"
	"undulcito/internal/usecase"
	"undulcito/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type cartItemResponse struct {
	cart.Item
	Subtotal string `json:"subtotal"`
	AtLimit  bool   `json:"at_limit"`
}

type rateResponse struct {
	Source      string    `json:"source"`
	Rate        float64   `json:"rate"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type cartResponse struct {
	Items   []cartItemResponse `json:"items"`
	Count   int                `json:"count"`
	Total   string             `json:"total"`
	Open    bool               `json:"open"`
	Rate    *rateResponse      `json:"rate,omitempty"`
	TotalBs string             `json:"total_bs,omitempty"`
}

func toCartResponse(view usecase.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, cartItemResponse{
			Item:     item,
			Subtotal: item.Subtotal().StringFixed(2),
			AtLimit:  item.AtLimit(),
		})
	}

	resp := cartResponse{
		Items: items,
		Count: view.Count,
		Total: view.Total.StringFixed(2),
		Open:  view.Open,
	}
	if view.Converted() {
		q := view.Rate.Quote
		resp.Rate = &rateResponse{Source: q.Source, Rate: q.Rate, LastUpdated: q.LastUpdated}
		resp.TotalBs = view.TotalBs.StringFixed(2)
	}
	return resp
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type addItemResponse struct {
	Cart         cartResponse `json:"cart"`
	Added        bool         `json:"added"`
	LimitReached bool         `json:"limit_reached"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	view, err := h.cartUseCase.View(middleware.CartSession(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toCartResponse(view))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.cartUseCase.Add(c.Request().Context(), middleware.CartSession(c), req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, addItemResponse{
		Cart:         toCartResponse(result.View),
		Added:        result.Added,
		LimitReached: result.LimitReached,
	})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	view, err := h.cartUseCase.Remove(middleware.CartSession(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toCartResponse(view))
}

func (h *CartHandler) Clear(c echo.Context) error {
	view, err := h.cartUseCase.Clear(middleware.CartSession(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toCartResponse(view))
}

func (h *CartHandler) Open(c echo.Context) error {
	view, err := h.cartUseCase.Open(c.Request().Context(), middleware.CartSession(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toCartResponse(view))
}

func (h *CartHandler) Close(c echo.Context) error {
	view, err := h.cartUseCase.Close(middleware.CartSession(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toCartResponse(view))
}

func (h *CartHandler) Checkout(c echo.Context) error {
	result, err := h.cartUseCase.Checkout(middleware.CartSession(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
