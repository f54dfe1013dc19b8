// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// Sentinel domain errors. Stores and services return these (usually wrapped)
// and handlers map them to HTTP status codes with errors.Is.
var (
	// ErrNotFound covers both missing documents and documents owned by
	// someone else — owner-scoped reads must not reveal existence.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input: a disallowed update field, a blank
	// slug on publish, an unknown block type or theme.
	ErrValidation = errors.New("validation failed")

	// ErrSlugTaken is returned when a slug collides with another document's.
	// The caller must pick a different slug; retrying verbatim cannot succeed.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrEmailTaken is returned on signup with an already-registered email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an admin-only operation attempted by a non-admin.
	// Unlike owner-scoped reads, admin endpoints do reveal their existence.
	ErrForbidden = errors.New("forbidden")
)
