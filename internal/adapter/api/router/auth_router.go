package router

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/handler"
	"undulcito/internal/adapter/api/middleware"
	"undulcito/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, rateLimit *middleware.RateLimitMiddleware) {
	auth := e.Group("/v1/auth")
	auth.POST("/login", authHandler.Login, limit(rateLimit, ratelimit.ActionLogin)...)
	auth.POST("/refresh", authHandler.RefreshToken)
}
