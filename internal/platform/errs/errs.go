package errs

import "errors"

var (
	// ErrInvalidInput marks structurally invalid input: malformed names,
	// unparseable dates, out-of-range coordinates, empty required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedRange marks timestamps outside the ephemeris validity window.
	ErrUnsupportedRange = errors.New("timestamp outside supported ephemeris range")

	// ErrPersonalizationConflict marks a concurrent-write version mismatch on
	// personalization state. Callers reload and retry; the core never does.
	ErrPersonalizationConflict = errors.New("personalization version conflict")

	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
)
