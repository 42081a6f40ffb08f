package middleware

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateQuery validates a free-text travel query.
func ValidateQuery(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("message cannot be empty")
	}
	if len(text) > 8192 {
		return errors.New("message exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("message must be valid UTF-8")
	}
	return nil
}

// ValidateSessionID validates a gateway session identifier.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}
