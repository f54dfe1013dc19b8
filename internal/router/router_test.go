// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint. Protected routes are exercised without
// credentials; the full authenticated paths live in the handlers tests.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"craftfolio/internal/auth"
	"craftfolio/internal/handlers"
	"craftfolio/internal/mailer"
	"craftfolio/internal/publish"
	"craftfolio/internal/store"
)

// testRouter wires the router with nil-backed stores. Only routes that fail
// before any database access may be exercised against it.
func testRouter() http.Handler {
	users := store.NewUserStore(nil)
	portfolios := store.NewPortfolioStore(nil)
	resolver := publish.NewResolver(portfolios, nil)
	tokens := auth.NewTokens("router-test-secret")

	return New(Deps{
		Users:       users,
		Tokens:      tokens,
		Auth:        handlers.NewAuth(users, portfolios, tokens, mailer.LogMailer{}, "http://localhost:5173"),
		Portfolios:  handlers.NewPortfolios(portfolios, resolver),
		Public:      handlers.NewPublic(portfolios, nil),
		Admin:       handlers.NewAdmin(users, portfolios),
		CORSOrigins: "http://localhost:5173, https://app.example.com",
	})
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter()

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/users/profile"},
		{"POST", "/api/portfolios/"},
		{"GET", "/api/portfolios/"},
		{"GET", "/api/portfolios/11111111-1111-1111-1111-111111111111"},
		{"PATCH", "/api/portfolios/11111111-1111-1111-1111-111111111111"},
		{"DELETE", "/api/portfolios/11111111-1111-1111-1111-111111111111"},
		{"POST", "/api/portfolios/11111111-1111-1111-1111-111111111111/publish"},
		{"GET", "/api/admin/users"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(rt.method, rt.path, nil)
			router.ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", w.Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("OPTIONS", "/api/users/login", nil)
	r.Header.Set("Origin", "https://app.example.com")
	r.Header.Set("Access-Control-Request-Method", "POST")
	r.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	router.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the requesting origin", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("OPTIONS", "/api/users/login", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	r.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unknown origin, want empty", got)
	}
}
