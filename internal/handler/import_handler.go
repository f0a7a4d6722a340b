package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/service"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

// maxUploadBytes caps LinkedIn export uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// ImportHandler exposes the two contact import endpoints.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler constructs an ImportHandler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportGoogle handles POST /import/google requests.
func (h *ImportHandler) ImportGoogle(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	summary, err := h.importService.ImportGoogle(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrGoogleNotConnected) {
			return Error(c, http.StatusBadRequest, "google account not connected")
		}
		return Error(c, http.StatusBadGateway, "unable to fetch google contacts")
	}
	return Success(c, http.StatusOK, "import complete", summary)
}

// ImportLinkedIn handles POST /import/linkedin requests. The export file is
// expected in the multipart field "file".
func (h *ImportHandler) ImportLinkedIn(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return Error(c, http.StatusRequestEntityTooLarge, "file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to read file")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to read file")
	}

	summary, err := h.importService.ImportLinkedInCSV(c.Request().Context(), userID, string(content))
	if err != nil {
		var malformedErr importer.MalformedExportError
		switch {
		case errors.As(err, &malformedErr):
			return Error(c, http.StatusBadRequest, malformedErr.Error())
		case errors.Is(err, service.ErrNoValidContacts):
			return Error(c, http.StatusBadRequest, "no valid contacts found in file")
		default:
			return Error(c, http.StatusInternalServerError, "unable to import contacts")
		}
	}
	return Success(c, http.StatusOK, "import complete", summary)
}
