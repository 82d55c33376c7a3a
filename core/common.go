package core

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// Clock returns the current time. Entities use it for their timestamps and events.
type Clock func() time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ParseIdentifier parses a textual unique identifier for the given field.
// It returns a *ValidationError if raw is not a well-formed, non-nil UUID.
func ParseIdentifier(field string, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, NewValidationError(field, "must be a valid UUID")
	}

	if id == uuid.Nil {
		return uuid.Nil, NewValidationError(field, "is required")
	}

	return id, nil
}

func validateIdentifier(field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return NewValidationError(field, "must be a valid UUID")
	}

	return nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidateText returns a *ValidationError if value is blank or not valid UTF-8.
func ValidateText(field string, value string) error {
	if !utf8.ValidString(value) {
		return NewValidationError(field, "must be valid UTF-8")
	}

	if isBlank(value) {
		return NewValidationError(field, "must not be empty")
	}

	return nil
}
