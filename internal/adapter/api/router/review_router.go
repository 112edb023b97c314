package router

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/adapter/api/handler"
	"undulcito/internal/adapter/api/middleware"
	"undulcito/internal/infrastructure/ratelimit"
)

func SetupReviewRouter(e *echo.Echo, reviewHandler *handler.ReviewHandler, rateLimit *middleware.RateLimitMiddleware) {
	reviews := e.Group("/v1/reviews")
	reviews.GET("", reviewHandler.GetReviews)
	reviews.POST("", reviewHandler.CreateReview, limit(rateLimit, ratelimit.ActionSubmitReview)...)
}
