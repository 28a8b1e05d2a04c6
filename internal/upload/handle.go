package upload

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewHandle returns a fresh opaque handle: 32 lowercase hex characters of a
// random UUID. Handles are valid staging names.
func NewHandle() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
