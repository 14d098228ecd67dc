package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

// FileUpload is an in-memory multipart file handed down from a handler.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
	Duration    float64 // client-supplied probe value for videos, 0 if unknown
}

// hashToken stores refresh tokens one-way; only the hash ever hits the DB.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// storeErr maps repository and context failures onto API error kinds.
func storeErr(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return utils.BadRequest("invalid identifier")
	case errors.Is(err, repository.ErrInvalidSortField):
		return utils.BadRequest("invalid sort field")
	case errors.Is(err, repository.ErrNotFound):
		return utils.NotFound(notFoundMsg)
	case errors.Is(err, context.DeadlineExceeded):
		return utils.Timeout("store operation timed out")
	default:
		return utils.Internal("internal server error")
	}
}
