package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can pick the right propagation
// policy: configuration and transport errors are fatal to the invocation,
// parse errors end the current turn only, persistence errors are warnings.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConfiguration covers a missing or invalid API key and other
	// unusable configuration.
	KindConfiguration
	// KindTransport covers network failures, timeouts and non-2xx statuses.
	KindTransport
	// KindParse covers a response body that cannot be decoded into the
	// expected completion shape.
	KindParse
	// KindPersistence covers an unwritable or unreadable history file.
	KindPersistence
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error attaches an ErrorKind and operation name to an underlying cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation name.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the classification from an error chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
