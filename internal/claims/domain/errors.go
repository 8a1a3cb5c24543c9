package domain

import "errors"

// ErrNotInitialized is reported when no startup state was provided.
var ErrNotInitialized = errors.New("claims pipeline not initialized")

// FormatError reports a claim query that does not follow
// "<age> <gender>, <procedure>, <location>, <policy duration>".
type FormatError struct {
	Cause string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return e.Cause + ": " + e.Err.Error()
	}
	return e.Cause
}

func (e *FormatError) Unwrap() error { return e.Err }
