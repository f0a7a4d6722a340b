package handler

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/middleware"
)

// userIDFromContext extracts the authenticated user's id set by the JWT
// middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middleware.ContextKeyUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing user id in context")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid user id in context")
	}
	return id, nil
}
