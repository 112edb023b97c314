package middleware

import (
	"github.com/labstack/echo/v4"

	"undulcito/internal/domain/entity"
	"undulcito/internal/usecase"
	"undulcito/pkg/errors"
	"undulcito/pkg/response"
)

// AdminMiddleware runs after Authenticate and enforces ADMIN_EMAILS.
type AdminMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAdminMiddleware(authUseCase *usecase.AuthUseCase) *AdminMiddleware {
	return &AdminMiddleware{
		authUseCase: authUseCase,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get(ContextUID).(string)
		if !ok || uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		email, _ := c.Get(ContextEmail).(string)

		if !m.authUseCase.IsAdmin(&entity.Identity{UID: uid, Email: email}) {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
