// Package errors provides structured error types for codechat.
// These errors record which operation failed and what kind of failure it was,
// so the UI can decide how to surface it.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.Function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork      // request could not be sent or the response could not be read
	KindServer       // backend answered with a non-success status or a malformed body
	KindValidation   // client-side input check failed; no request was issued
	KindLoad         // a conversation could not be loaded for display
	KindBusy         // a submission is already in flight
	KindConfig
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindServer:
		return "server error"
	case KindValidation:
		return "validation error"
	case KindLoad:
		return "load error"
	case KindBusy:
		return "busy"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for codechat.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == kind {
			return true
		}
		// An outer error without a kind defers to the wrapped one.
		if e.Kind == KindUnknown {
			return Is(e.Err, kind)
		}
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindUnknown {
			return GetKind(e.Err)
		}
		return e.Kind
	}
	return KindUnknown
}

// Message returns the innermost human-readable message of err, without the
// chain of operation prefixes. Used for error-role chat messages.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Context != "" {
			return e.Context
		}
		return Message(e.Err)
	}
	return err.Error()
}

// NetworkError reports that a request to path could not complete.
func NetworkError(op Op, path string, err error) error {
	return E(op, KindNetwork, fmt.Sprintf("request to %s failed", path), err)
}

// ServerError reports a non-success status from the backend.
func ServerError(op Op, status int, msg string) error {
	if msg == "" {
		msg = fmt.Sprintf("server returned status %d", status)
	}
	return E(op, KindServer, msg)
}

// ValidationError reports a client-side input problem.
func ValidationError(op Op, reason string) error {
	return E(op, KindValidation, reason)
}

// LoadError wraps a failure to load a conversation for display.
func LoadError(id string, err error) error {
	return E(Op("session.Load"), KindLoad, "Failed to load conversation "+id, err)
}

// Busy reports that a submission is already running.
func Busy(op Op) error {
	return E(op, KindBusy, "a request is already in progress")
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}
