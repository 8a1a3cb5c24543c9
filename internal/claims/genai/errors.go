package genai

import (
	"errors"
	"fmt"
)

// Kind separates failures worth retrying from malformed replies.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// CallError describes a failed generateContent call.
type CallError struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("genai %s error (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("genai %s error: %v", e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a network failure or a non-2xx status.
func IsTransient(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindTransport
}

// IsFormat reports whether err is an unexpected response envelope.
func IsFormat(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindFormat
}
