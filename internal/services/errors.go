package services

import (
	"errors"
	"strings"
)

// Define common service errors. Each kind maps to a distinct status at the
// transport boundary, so kinds must stay distinguishable via errors.Is.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrSchemaValidation      = errors.New("schema validation failed")      // malformed shape/type/length/URL
	ErrDomainValidation      = errors.New("domain validation failed")      // well-formed but violates a business rule
	ErrInvalidQueryParameter = errors.New("invalid query parameter")       // bad filter/sort/page input
)

// Reason strips the sentinel prefix from a wrapped validation error, leaving
// the human-readable reason for the response body.
func Reason(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrSchemaValidation, ErrDomainValidation, ErrInvalidQueryParameter} {
		if prefix := sentinel.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}
