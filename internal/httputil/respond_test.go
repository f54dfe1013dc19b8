package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"craftfolio/internal/models"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}
}

// TestRespondJSONEncodingFailure verifies that unmarshalable data becomes a
// clean 500 rather than a half-written response.
func TestRespondJSONEncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"bad": func() {}})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "portfolio not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "portfolio not found" {
		t.Errorf(`body["error"] = %q, want %q`, body["error"], "portfolio not found")
	}
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: models.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("%w: bad theme", models.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "email taken", err: models.ErrEmailTaken, wantStatus: http.StatusBadRequest},
		{name: "not found", err: models.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "slug taken", err: models.ErrSlugTaken, wantStatus: http.StatusConflict},
		{name: "unauthorized", err: models.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: models.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "unknown collapses to 500", err: errors.New("pq: connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

// TestRespondDomainErrorOpaque verifies internal details never leak into
// 500 bodies.
func TestRespondDomainErrorOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("500 body leaks internals: %s", rec.Body.String())
	}
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"My Work"}`))
		var dest payload
		if err := ParseJSON(httptest.NewRecorder(), req, &dest); err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if dest.Title != "My Work" {
			t.Errorf("Title = %q, want %q", dest.Title, "My Work")
		}
	})

	t.Run("unknown fields tolerated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","custom":123}`))
		var dest payload
		if err := ParseJSON(httptest.NewRecorder(), req, &dest); err != nil {
			t.Errorf("ParseJSON() error = %v, want nil", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		var dest payload
		err := ParseJSON(httptest.NewRecorder(), req, &dest)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("ParseJSON() error = %v, want ErrValidation", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var dest payload
		err := ParseJSON(httptest.NewRecorder(), req, &dest)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("ParseJSON() error = %v, want ErrValidation", err)
		}
	})
}
