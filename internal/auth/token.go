// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth issues and verifies the bearer tokens that identify API
// callers. Tokens are HS256 JWTs carrying the user id as subject.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"craftfolio/internal/models"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

// Tokens signs and verifies bearer tokens with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token signer/verifier with the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: DefaultTTL}
}

// Issue returns a signed token identifying the user.
func (t *Tokens) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id it carries.
// Any parse, signature, or expiry failure comes back as ErrUnauthorized —
// callers get no detail about why a token was rejected.
func (t *Tokens) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (any, error) {
		// Pin the algorithm so a crafted token cannot downgrade it.
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, models.ErrUnauthorized
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return userID, nil
}
