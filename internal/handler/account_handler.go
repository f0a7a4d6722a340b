package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service"
)

// AccountHandler exposes account lifecycle endpoints.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Delete handles DELETE /account requests. All of the user's data goes with
// the account.
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Error(c, http.StatusNotFound, "account not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to delete account")
	}
	return Success(c, http.StatusOK, "account deleted", nil)
}
