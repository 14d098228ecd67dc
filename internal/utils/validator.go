package utils

import (
	"errors"
	"mime/multipart"
	"net/mail"
	"unicode"
)

const maxUploadSize = 100 * 1024 * 1024

var allowedUploadTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
}

func ValidateFileHeader(h *multipart.FileHeader) error {
	if h.Size == 0 || h.Size > maxUploadSize {
		return errors.New("file size not allowed")
	}
	if !allowedUploadTypes[h.Header.Get("Content-Type")] {
		return errors.New("invalid content type")
	}
	return nil
}

// ValidEmail accepts a bare RFC 5322 address, no display name.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ValidPassword requires 8+ characters with at least one upper, one lower,
// one digit and one special character.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
