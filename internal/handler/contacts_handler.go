package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service"
)

// ContactsHandler exposes the address book CRUD endpoints.
type ContactsHandler struct {
	contactsService *service.ContactsService
}

// NewContactsHandler constructs a ContactsHandler.
func NewContactsHandler(contactsService *service.ContactsService) *ContactsHandler {
	return &ContactsHandler{contactsService: contactsService}
}

// List handles GET /contacts requests.
func (h *ContactsHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	filter := dto.ContactFilter{
		Q:             c.QueryParam("q"),
		Tag:           c.QueryParam("tag"),
		Source:        c.QueryParam("source"),
		SortColumn:    c.QueryParam("sort"),
		SortDirection: c.QueryParam("direction"),
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Error(c, http.StatusBadRequest, "invalid page")
		}
		filter.Page = page
	}
	if raw := c.QueryParam("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid per_page")
		}
		filter.PerPage = perPage
	}

	contacts, err := h.contactsService.ListContacts(c.Request().Context(), userID, filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list contacts")
	}
	return Success(c, http.StatusOK, "contacts retrieved", contacts)
}

// Get handles GET /contacts/:id requests.
func (h *ContactsHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	contact, err := h.contactsService.GetContact(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to fetch contact")
	}
	return Success(c, http.StatusOK, "contact retrieved", contact)
}

// Create handles POST /contacts requests.
func (h *ContactsHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contactsService.CreateContact(c.Request().Context(), userID, req)
	if err != nil {
		var validationErr service.ContactValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to create contact")
	}
	return Success(c, http.StatusCreated, "contact created", contact)
}

// Update handles PUT /contacts/:id requests.
func (h *ContactsHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	var req dto.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contactsService.UpdateContact(c.Request().Context(), userID, id, req)
	if err != nil {
		var validationErr service.ContactValidationError
		switch {
		case errors.Is(err, repository.ErrContactNotFound):
			return Error(c, http.StatusNotFound, "contact not found")
		case errors.As(err, &validationErr):
			return Error(c, http.StatusBadRequest, validationErr.Message)
		default:
			return Error(c, http.StatusInternalServerError, "unable to update contact")
		}
	}
	return Success(c, http.StatusOK, "contact updated", contact)
}

// Delete handles DELETE /contacts/:id requests.
func (h *ContactsHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	if err := h.contactsService.DeleteContact(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to delete contact")
	}
	return Success(c, http.StatusOK, "contact deleted", nil)
}

// BulkDelete handles POST /contacts/bulk-delete requests.
func (h *ContactsHandler) BulkDelete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	deleted, err := h.contactsService.BulkDeleteContacts(c.Request().Context(), userID, req.IDs)
	if err != nil {
		var validationErr service.ContactValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to delete contacts")
	}
	return Success(c, http.StatusOK, "contacts deleted", dto.BulkDeleteResponse{Deleted: deleted})
}
