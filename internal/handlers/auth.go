// Package handlers implements the HTTP handler groups for the Craftfolio
// API: authentication, portfolio CRUD, the public read path, and the admin
// aggregation view.
package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"craftfolio/internal/auth"
	"craftfolio/internal/httputil"
	"craftfolio/internal/mailer"
	"craftfolio/internal/middleware"
	"craftfolio/internal/models"
	"craftfolio/internal/store"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = time.Hour

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	users       *store.UserStore
	portfolios  *store.PortfolioStore
	tokens      *auth.Tokens
	mail        mailer.Mailer
	frontendURL string
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, portfolios *store.PortfolioStore, tokens *auth.Tokens, mail mailer.Mailer, frontendURL string) *Auth {
	return &Auth{
		users:       users,
		portfolios:  portfolios,
		tokens:      tokens,
		mail:        mail,
		frontendURL: frontendURL,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// authResponse is the body returned by signup and login.
type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup registers a new account and returns the user plus a bearer token.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.Create(req.Name, req.Email, req.Password)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login verifies credentials and returns the user plus a bearer token.
// Unknown email and wrong password are indistinguishable in the response.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		httputil.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// profileResponse is the authenticated user together with their portfolio
// documents resolved from the ownership reference.
type profileResponse struct {
	*models.User
	Portfolios []models.Portfolio `json:"portfolios"`
}

// Profile returns the caller's account and their portfolios.
func (a *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	portfolios, err := a.portfolios.ListByOwner(user.ID)
	if err != nil {
		slog.Error("profile portfolios lookup failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profileResponse{User: user, Portfolios: portfolios})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r forgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ForgotPassword stores a one-hour reset token and mails the reset link.
// Mail delivery is best-effort: a relay failure is logged, never surfaced —
// the request already succeeded once the token is stored.
func (a *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("forgot password lookup failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		httputil.RespondError(w, http.StatusNotFound, "user not found")
		return
	}

	token, err := resetToken()
	if err != nil {
		slog.Error("reset token generation failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := a.users.SetResetToken(user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		slog.Error("reset token store failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", a.frontendURL, token)
	go func(email, url string) {
		if err := a.mail.SendPasswordReset(email, url); err != nil {
			slog.Error("password reset mail failed", "to", email, "error", err)
		}
	}(user.Email, resetURL)

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password reset email sent"})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r resetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// ResetPassword exchanges a valid reset token for a new password. The token
// is cleared in the same statement that stores the new hash.
func (a *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.FindByResetToken(req.Token)
	if err != nil {
		slog.Error("reset token lookup failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		httputil.RespondError(w, http.StatusBadRequest, "password reset token is invalid or has expired")
		return
	}

	if err := a.users.UpdatePassword(user.ID, req.Password); err != nil {
		slog.Error("password update failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	go func(email string) {
		if err := a.mail.SendPasswordChanged(email); err != nil {
			slog.Error("password changed mail failed", "to", email, "error", err)
		}
	}(user.Email)

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
}

// resetToken returns 20 random bytes hex-encoded.
func resetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
