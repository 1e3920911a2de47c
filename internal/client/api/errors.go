package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized covers 401/403, including expired sessions.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is the uniform failure surfaced to callers for any non-2xx response:
// the HTTP status plus the server-supplied message. Match the coarse class
// with errors.Is against the sentinels above.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401 || e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	case ErrUnavailable:
		return e.Status >= 500
	}
	return false
}
