package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"craftfolio/internal/auth"
	"craftfolio/internal/models"
	"craftfolio/internal/store"
)

// TestAuthenticateRejectsBeforeLookup covers the paths that fail before any
// database access: missing, malformed, and unverifiable tokens. The store is
// never reached, so a nil-backed one is safe here.
func TestAuthenticateRejectsBeforeLookup(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	mw := Authenticate(tokens, store.NewUserStore(nil))

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "lowercase scheme", header: "bearer sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/api/portfolios", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if called {
				t.Error("next handler called for rejected request")
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{name: "admin passes", user: &models.User{IsAdmin: true}, wantStatus: http.StatusOK},
		{name: "regular user forbidden", user: &models.User{IsAdmin: false}, wantStatus: http.StatusForbidden},
		{name: "no user forbidden", user: nil, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), UserKey, tt.user))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestUserFromCtx(t *testing.T) {
	if got := UserFromCtx(context.Background()); got != nil {
		t.Errorf("UserFromCtx(empty) = %v, want nil", got)
	}

	user := &models.User{Name: "Jane"}
	ctx := context.WithValue(context.Background(), UserKey, user)
	if got := UserFromCtx(ctx); got != user {
		t.Errorf("UserFromCtx() = %v, want %v", got, user)
	}
}
