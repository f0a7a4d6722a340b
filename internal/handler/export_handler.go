package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/service"
)

// ExportHandler streams the address book as a CSV download.
type ExportHandler struct {
	contactsService *service.ContactsService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(contactsService *service.ContactsService) *ExportHandler {
	return &ExportHandler{contactsService: contactsService}
}

// ExportCSV handles GET /export/csv requests.
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", service.ExportFilename(time.Now())))
	res.WriteHeader(http.StatusOK)

	return h.contactsService.ExportCSV(c.Request().Context(), userID, res)
}
