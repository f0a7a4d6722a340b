package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

type stubTokensRepo struct {
	get func(ctx context.Context, userID uuid.UUID) (*entity.GoogleToken, error)
}

func (s *stubTokensRepo) Get(ctx context.Context, userID uuid.UUID) (*entity.GoogleToken, error) {
	if s.get != nil {
		return s.get(ctx, userID)
	}
	return nil, repository.ErrTokenNotFound
}

func (s *stubTokensRepo) Upsert(ctx context.Context, token *entity.GoogleToken) error {
	return errors.New("not implemented")
}

func (s *stubTokensRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	return errors.New("not implemented")
}

type stubFetcher struct {
	fetch func(ctx context.Context, token *entity.GoogleToken) ([]importer.Candidate, error)
}

func (s *stubFetcher) FetchContacts(ctx context.Context, token *entity.GoogleToken) ([]importer.Candidate, error) {
	if s.fetch != nil {
		return s.fetch(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestImportHandler_ImportGoogle(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("not connected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/import/google", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := NewImportHandler(service.NewImportService(&stubContactsRepo{}, &stubTokensRepo{}, &stubFetcher{}))
		_ = handler.ImportGoogle(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/import/google", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		tokens := &stubTokensRepo{
			get: func(ctx context.Context, id uuid.UUID) (*entity.GoogleToken, error) {
				return &entity.GoogleToken{UserID: id}, nil
			},
		}
		fetcher := &stubFetcher{
			fetch: func(ctx context.Context, token *entity.GoogleToken) ([]importer.Candidate, error) {
				return nil, errors.New("people api down")
			},
		}

		handler := NewImportHandler(service.NewImportService(&stubContactsRepo{}, tokens, fetcher))
		_ = handler.ImportGoogle(c)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/import/google", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		tokens := &stubTokensRepo{
			get: func(ctx context.Context, id uuid.UUID) (*entity.GoogleToken, error) {
				return &entity.GoogleToken{UserID: id}, nil
			},
		}
		fetcher := &stubFetcher{
			fetch: func(ctx context.Context, token *entity.GoogleToken) ([]importer.Candidate, error) {
				return []importer.Candidate{{FullName: "Grace Hopper", Source: entity.SourceGoogle}}, nil
			},
		}
		repo := &stubContactsRepo{
			listIdentityKeys: func(ctx context.Context, id uuid.UUID) (importer.IdentityKeys, error) {
				return importer.NewIdentityKeys(), nil
			},
			insertBatch: func(ctx context.Context, id uuid.UUID, batch []importer.Candidate) error {
				return nil
			},
		}

		handler := NewImportHandler(service.NewImportService(repo, tokens, fetcher))
		_ = handler.ImportGoogle(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp APIResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		data, ok := resp.Data.(map[string]any)
		if !ok || data["imported"] != float64(1) || data["total"] != float64(1) {
			t.Fatalf("unexpected summary: %+v", resp.Data)
		}
	})
}

func TestImportHandler_ImportLinkedIn(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	newHandler := func(repo *stubContactsRepo) *ImportHandler {
		return NewImportHandler(service.NewImportService(repo, &stubTokensRepo{}, &stubFetcher{}))
	}

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/import/linkedin", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newHandler(&stubContactsRepo{})
		_ = handler.ImportLinkedIn(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty export", func(t *testing.T) {
		content := "First Name,Last Name,URL,Email Address,Company,Position,Connected On\n"
		body, contentType := multipartUpload(t, "file", "Connections.csv", content)
		req := httptest.NewRequest(http.MethodPost, "/import/linkedin", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := newHandler(&stubContactsRepo{})
		_ = handler.ImportLinkedIn(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		content := "Notes:\n\nFirst Name,Last Name,URL,Email Address,Company,Position,Connected On\n" +
			"Ada,Lovelace,https://www.linkedin.com/in/ada-lovelace,ada@example.com,Analytical Engines,Founder & CEO,01 Jan 2025\n"
		body, contentType := multipartUpload(t, "file", "Connections.csv", content)
		req := httptest.NewRequest(http.MethodPost, "/import/linkedin", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		var inserted []importer.Candidate
		repo := &stubContactsRepo{
			listIdentityKeys: func(ctx context.Context, id uuid.UUID) (importer.IdentityKeys, error) {
				return importer.NewIdentityKeys(), nil
			},
			insertBatch: func(ctx context.Context, id uuid.UUID, batch []importer.Candidate) error {
				inserted = append(inserted, batch...)
				return nil
			},
		}

		handler := newHandler(repo)
		_ = handler.ImportLinkedIn(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(inserted) != 1 || inserted[0].FullName != "Ada Lovelace" {
			t.Fatalf("unexpected inserts: %+v", inserted)
		}
	})
}
