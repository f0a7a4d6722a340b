package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/auth"
	"github.com/rolodexhq/rolodex/api/internal/middleware"
	"github.com/rolodexhq/rolodex/api/internal/service"
)

// GoogleHandler exposes the Google account connection endpoints.
type GoogleHandler struct {
	googleService *service.GoogleService
	jwtManager    *auth.JWTManager
}

// NewGoogleHandler constructs a GoogleHandler.
func NewGoogleHandler(googleService *service.GoogleService, jwtManager *auth.JWTManager) *GoogleHandler {
	return &GoogleHandler{googleService: googleService, jwtManager: jwtManager}
}

// AuthURL handles GET /google/auth requests. The returned consent URL
// carries a signed token as OAuth state so the callback can identify the
// user without a session.
func (h *GoogleHandler) AuthURL(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	email, _ := c.Get(middleware.ContextKeyUserEmail).(string)

	state, err := h.jwtManager.GenerateToken(userID.String(), email)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to build consent url")
	}

	return Success(c, http.StatusOK, "consent url generated", map[string]string{
		"url": h.googleService.AuthURL(state),
	})
}

// Callback handles GET /google/callback requests from the consent page.
func (h *GoogleHandler) Callback(c echo.Context) error {
	claims, err := h.jwtManager.ParseToken(c.QueryParam("state"))
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid state")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid state")
	}

	code := c.QueryParam("code")
	if code == "" {
		return Error(c, http.StatusBadRequest, "authorization code is missing")
	}

	token, err := h.googleService.HandleCallback(c.Request().Context(), userID, code)
	if err != nil {
		return Error(c, http.StatusBadGateway, "unable to complete google connection")
	}
	return Success(c, http.StatusOK, "google account connected", map[string]string{
		"account_email": token.AccountEmail,
	})
}

// Status handles GET /google requests.
func (h *GoogleHandler) Status(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	token, err := h.googleService.Status(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrGoogleNotConnected) {
			return Success(c, http.StatusOK, "google account status", map[string]any{
				"connected": false,
			})
		}
		return Error(c, http.StatusInternalServerError, "unable to fetch connection status")
	}
	return Success(c, http.StatusOK, "google account status", map[string]any{
		"connected":     true,
		"account_email": token.AccountEmail,
	})
}

// Disconnect handles DELETE /google requests.
func (h *GoogleHandler) Disconnect(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.googleService.Disconnect(c.Request().Context(), userID); err != nil {
		if errors.Is(err, service.ErrGoogleNotConnected) {
			return Error(c, http.StatusNotFound, "google account not connected")
		}
		return Error(c, http.StatusInternalServerError, "unable to disconnect google account")
	}
	return Success(c, http.StatusOK, "google account disconnected", nil)
}
