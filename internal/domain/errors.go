package domain

import "errors"

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrRateLimited is returned when the advisory rate limit rejects a
// request. The limiter itself fails open; only an explicit rejection
// produces this error.
var ErrRateLimited = errors.New("rate limit exceeded")

// ValidationError marks malformed client input. It is surfaced before
// any provider call or persistence side effect.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a client-input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
