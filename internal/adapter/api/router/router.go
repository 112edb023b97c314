package router

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/handler"
	"undulcito/internal/adapter/api/middleware"
)

// Handlers is every HTTP handler the server mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	Review    *handler.ReviewHandler
	Rate      *handler.RateHandler
	Auth      *handler.AuthHandler
	Admin     *handler.AdminHandler
	WebSocket *handler.WebSocketHandler
}

type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	Admin       *middleware.AdminMiddleware
	RateLimit   *middleware.RateLimitMiddleware
	CartSession *middleware.CartSessionMiddleware
}

func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupCatalogRouter(e, h.Catalog, h.WebSocket)
	SetupCartRouter(e, h.Cart, m.CartSession)
	SetupReviewRouter(e, h.Review, m.RateLimit)
	SetupRateRouter(e, h.Rate)
	SetupAuthRouter(e, h.Auth, m.RateLimit)
	SetupAdminRouter(e, h.Admin, m.Auth, m.Admin)
}

func limit(m *middleware.RateLimitMiddleware, action string) []echo.MiddlewareFunc {
	if m == nil {
		return nil
	}
	return []echo.MiddlewareFunc{m.Limit(action)}
}
