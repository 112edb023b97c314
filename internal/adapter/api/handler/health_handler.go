package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AuthChecker checks the Firebase Auth connection.
type AuthChecker interface {
	TestConnection(ctx context.Context) error
}

type HealthHandler struct {
	authChecker  AuthChecker
	catalogReady func() bool
}

func NewHealthHandler(authChecker AuthChecker, catalogReady func() bool) *HealthHandler {
	return &HealthHandler{
		authChecker:  authChecker,
		catalogReady: catalogReady,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "Server is running",
		"time":          time.Now().Format(time.RFC3339),
		"catalog_ready": h.catalogReady(),
	})
}

func (h *HealthHandler) CheckFirebaseHealth(c echo.Context) error {
	if err := h.authChecker.TestConnection(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Firebase Auth connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Firebase Auth connected successfully",
	})
}
