package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/service"
)

// PreferencesHandler exposes the table display settings endpoints.
type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

// NewPreferencesHandler constructs a PreferencesHandler.
func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// Get handles GET /preferences requests.
func (h *PreferencesHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	prefs, err := h.preferencesService.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to fetch preferences")
	}
	return Success(c, http.StatusOK, "preferences retrieved", prefs)
}

// Update handles PUT /preferences requests.
func (h *PreferencesHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	prefs, err := h.preferencesService.UpdatePreferences(c.Request().Context(), userID, req)
	if err != nil {
		var validationErr service.PreferenceValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to update preferences")
	}
	return Success(c, http.StatusOK, "preferences updated", prefs)
}
