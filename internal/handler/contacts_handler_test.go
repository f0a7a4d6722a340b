package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/middleware"
	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

type stubContactsRepo struct {
	list             func(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error)
	findByID         func(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error)
	create           func(ctx context.Context, contact *entity.Contact) error
	deleteMany       func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
	listIdentityKeys func(ctx context.Context, userID uuid.UUID) (importer.IdentityKeys, error)
	insertBatch      func(ctx context.Context, userID uuid.UUID, batch []importer.Candidate) error
}

func (s *stubContactsRepo) List(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error) {
	if s.list != nil {
		return s.list(ctx, userID, filter)
	}
	return nil, errors.New("not implemented")
}

func (s *stubContactsRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error) {
	if s.findByID != nil {
		return s.findByID(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubContactsRepo) Create(ctx context.Context, contact *entity.Contact) error {
	if s.create != nil {
		return s.create(ctx, contact)
	}
	return errors.New("not implemented")
}

func (s *stubContactsRepo) Update(ctx context.Context, contact *entity.Contact) error {
	return errors.New("not implemented")
}

func (s *stubContactsRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (s *stubContactsRepo) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if s.deleteMany != nil {
		return s.deleteMany(ctx, userID, ids)
	}
	return 0, errors.New("not implemented")
}

func (s *stubContactsRepo) ListIdentityKeys(ctx context.Context, userID uuid.UUID) (importer.IdentityKeys, error) {
	if s.listIdentityKeys != nil {
		return s.listIdentityKeys(ctx, userID)
	}
	return importer.IdentityKeys{}, errors.New("not implemented")
}

func (s *stubContactsRepo) InsertBatch(ctx context.Context, userID uuid.UUID, batch []importer.Candidate) error {
	if s.insertBatch != nil {
		return s.insertBatch(ctx, userID, batch)
	}
	return errors.New("not implemented")
}

type stubPrefsRepo struct {
	get    func(ctx context.Context, userID uuid.UUID) (*entity.Preferences, error)
	upsert func(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error)
}

func (s *stubPrefsRepo) Get(ctx context.Context, userID uuid.UUID) (*entity.Preferences, error) {
	if s.get != nil {
		return s.get(ctx, userID)
	}
	return nil, repository.ErrPreferencesNotFound
}

func (s *stubPrefsRepo) Upsert(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error) {
	if s.upsert != nil {
		return s.upsert(ctx, prefs)
	}
	return nil, errors.New("not implemented")
}

func newContactsHandler(repo repository.ContactsRepository) *ContactsHandler {
	return NewContactsHandler(service.NewContactsService(repo, &stubPrefsRepo{}, "US"))
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID.String())
	return c
}

func TestContactsHandler_List(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("missing auth context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := newContactsHandler(&stubContactsRepo{})
		_ = handler.List(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/contacts?page=zero", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newContactsHandler(&stubContactsRepo{})
		_ = handler.List(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success with filters", func(t *testing.T) {
		var seen dto.ContactFilter
		repo := &stubContactsRepo{
			list: func(ctx context.Context, id uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error) {
				seen = filter
				return []entity.Contact{{ID: uuid.New(), UserID: id, FullName: "Ada Lovelace"}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/contacts?q=ada&tag=Founder&sort=full_name&direction=asc&page=2&per_page=100", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newContactsHandler(repo)
		_ = handler.List(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if seen.Q != "ada" || seen.Tag != "Founder" || seen.Page != 2 || seen.PerPage != 100 {
			t.Fatalf("unexpected filter: %+v", seen)
		}
	})
}

func TestContactsHandler_Get(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/contacts/abc", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues("abc")

		handler := newContactsHandler(&stubContactsRepo{})
		_ = handler.Get(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/contacts/"+id.String(), nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		handler := newContactsHandler(&stubContactsRepo{
			findByID: func(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error) {
				return nil, repository.ErrContactNotFound
			},
		})
		_ = handler.Get(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestContactsHandler_Create(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("validation error", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"full_name": "  "})
		req := httptest.NewRequest(http.MethodPost, "/contacts", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newContactsHandler(&stubContactsRepo{})
		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"full_name": "Ada Lovelace",
			"email":     "Ada@Example.com",
			"tags":      []string{"Founder"},
		})
		req := httptest.NewRequest(http.MethodPost, "/contacts", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		var created *entity.Contact
		handler := newContactsHandler(&stubContactsRepo{
			create: func(ctx context.Context, contact *entity.Contact) error {
				contact.ID = uuid.New()
				created = contact
				return nil
			},
		})
		_ = handler.Create(c)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if created == nil || created.Email == nil || *created.Email != "ada@example.com" {
			t.Fatalf("expected normalized email persisted, got %+v", created)
		}
	})
}

func TestContactsHandler_BulkDelete(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("invalid id in list", func(t *testing.T) {
		body, _ := json.Marshal(dto.BulkDeleteRequest{IDs: []string{"nope"}})
		req := httptest.NewRequest(http.MethodPost, "/contacts/bulk-delete", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newContactsHandler(&stubContactsRepo{})
		_ = handler.BulkDelete(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(dto.BulkDeleteRequest{IDs: []string{uuid.New().String(), uuid.New().String()}})
		req := httptest.NewRequest(http.MethodPost, "/contacts/bulk-delete", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newContactsHandler(&stubContactsRepo{
			deleteMany: func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
				return len(ids), nil
			},
		})
		_ = handler.BulkDelete(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp APIResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		data, ok := resp.Data.(map[string]any)
		if !ok || data["deleted"] != float64(2) {
			t.Fatalf("unexpected response data: %+v", resp.Data)
		}
	})
}
