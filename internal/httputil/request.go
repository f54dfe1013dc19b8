package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"craftfolio/internal/models"
)

// maxBodySize caps request bodies at 1 MB. Portfolio documents are small;
// anything larger is abuse.
const maxBodySize = 1 << 20

// ParseJSON decodes the request body into dest. Unknown fields are allowed —
// block content is deliberately schema-free — and malformed JSON comes back
// as a validation error.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", models.ErrValidation, err)
	}
	return nil
}
