package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"undulcito/internal/usecase"
)

const (
	CartCookieName    = "dulcito_cart"
	CartSessionHeader = "X-Cart-Session"
	ContextCart       = "cart_session"
)

// CartSessionMiddleware attaches a cart session to every cart request,
// issuing a new one when the visitor has none or theirs expired.
type CartSessionMiddleware struct {
	cartUseCase *usecase.CartUseCase
	maxAge      time.Duration
	secure      bool
}

func NewCartSessionMiddleware(cartUseCase *usecase.CartUseCase, maxAge time.Duration, secure bool) *CartSessionMiddleware {
	return &CartSessionMiddleware{
		cartUseCase: cartUseCase,
		maxAge:      maxAge,
		secure:      secure,
	}
}

func (m *CartSessionMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requested := c.Request().Header.Get(CartSessionHeader)
		if requested == "" {
			if cookie, err := c.Cookie(CartCookieName); err == nil {
				requested = cookie.Value
			}
		}

		id := m.cartUseCase.Resolve(requested)
		if id != requested {
			c.SetCookie(&http.Cookie{
				Name:     CartCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(m.maxAge.Seconds()),
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Response().Header().Set(CartSessionHeader, id)
		c.Set(ContextCart, id)

		return next(c)
	}
}

func CartSession(c echo.Context) string {
	id, _ := c.Get(ContextCart).(string)
	return id
}
