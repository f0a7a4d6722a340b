package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/service"
)

func TestPreferencesHandler_Get(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, userID)

	handler := NewPreferencesHandler(service.NewPreferencesService(&stubPrefsRepo{}))
	_ = handler.Get(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["sort_column"] != "tags" || data["rows_per_page"] != float64(50) {
		t.Fatalf("expected defaults, got %+v", resp.Data)
	}
}

func TestPreferencesHandler_Update(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("invalid payload", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"rows_per_page": 42})
		req := httptest.NewRequest(http.MethodPut, "/preferences", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := NewPreferencesHandler(service.NewPreferencesService(&stubPrefsRepo{}))
		_ = handler.Update(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"sort_column": "company", "rows_per_page": 100})
		req := httptest.NewRequest(http.MethodPut, "/preferences", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		repo := &stubPrefsRepo{
			upsert: func(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error) {
				return prefs, nil
			},
		}
		handler := NewPreferencesHandler(service.NewPreferencesService(repo))
		_ = handler.Update(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestExportHandler_ExportCSV(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	repo := &stubContactsRepo{
		list: func(ctx context.Context, id uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error) {
			return []entity.Contact{{
				FullName:  "Ada Lovelace",
				Source:    entity.SourceManual,
				Tags:      []string{"Founder"},
				CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
			}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/export/csv", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, userID)

	handler := NewExportHandler(service.NewContactsService(repo, &stubPrefsRepo{}, "US"))
	if err := handler.ExportCSV(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "attachment; filename=") {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Ada Lovelace") {
		t.Fatalf("expected contact row, got %q", rec.Body.String())
	}
}
