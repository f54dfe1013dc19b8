// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// whitespaceRuns matches runs of whitespace for Normalize.
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// suffixAlphabet is base36: the character set of the random suffix.
const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SuffixLength is the length of the random token appended by WithSuffix.
const SuffixLength = 6

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// WithSuffix returns Generate(s) followed by a random 6-character base36
// token, e.g. "my-work-k3x9f2". The suffix lowers the chance of collisions
// but does not guarantee uniqueness — the database unique index does.
func WithSuffix(s string) string {
	base := Generate(s)
	token := randomToken(SuffixLength)
	if base == "" {
		return token
	}
	return base + "-" + token
}

// Normalize prepares a caller-supplied slug for publishing: lowercased, with
// whitespace runs replaced by single hyphens. It does not strip other
// characters — an explicit slug is the owner's choice.
func Normalize(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	return whitespaceRuns.ReplaceAllString(result, "-")
}

// randomToken returns n random characters from the base36 alphabet.
func randomToken(n int) string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken; a fixed
			// character keeps slug generation total.
			b[i] = 'x'
			continue
		}
		b[i] = suffixAlphabet[idx.Int64()]
	}
	return string(b)
}
