package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failure modes defined by the storage engine.
type ErrorKind int

const (
	// PreconditionViolated marks a caller error: bad mode string, out of
	// range dimensionality, incompatible similar-to overrides, writes to a
	// read-only dataset, an unknown sample format, and so on.
	PreconditionViolated ErrorKind = iota + 1
	// MalformedMetadata marks a missing or unparseable sidecar element, or
	// an inconsistent extent set.
	MalformedMetadata
	// IOFailed wraps any underlying filesystem error.
	IOFailed
	// NotFound marks a lookup miss: a property by label, a data property
	// by label, or a frame index with no live traces.
	NotFound
	// EnvironmentMisconfigured marks a data-home prefix inconsistent with
	// the dataset path.
	EnvironmentMisconfigured
)

func (k ErrorKind) String() string {
	switch k {
	case PreconditionViolated:
		return "precondition violated"
	case MalformedMetadata:
		return "malformed metadata"
	case IOFailed:
		return "io failed"
	case NotFound:
		return "not found"
	case EnvironmentMisconfigured:
		return "environment misconfigured"
	default:
		return "unknown error kind"
	}
}

// Error is the error type returned across the storage engine's API
// boundary. Op names the failing operation (e.g. "dataset.Open",
// "frame.Write"); Kind classifies it per spec.md §7.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, types.NotFound) style checks via the sentinel
// wrappers below.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// NewError builds an *Error for op, wrapping err (which may be nil).
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Sentinels for errors.Is(err, types.ErrNotFound) style matching against a
// bare kind, independent of Op/Err.
var (
	ErrPreconditionViolated    = &Error{Kind: PreconditionViolated}
	ErrMalformedMetadata       = &Error{Kind: MalformedMetadata}
	ErrIOFailed                = &Error{Kind: IOFailed}
	ErrNotFound                = &Error{Kind: NotFound}
	ErrEnvironmentMisconfigured = &Error{Kind: EnvironmentMisconfigured}
)

// Precondition builds a PreconditionViolated error.
func Precondition(op string, err error) *Error { return NewError(PreconditionViolated, op, err) }

// Malformed builds a MalformedMetadata error.
func Malformed(op string, err error) *Error { return NewError(MalformedMetadata, op, err) }

// IOFail builds an IOFailed error.
func IOFail(op string, err error) *Error { return NewError(IOFailed, op, err) }

// NotFoundf builds a NotFound error from a formatted message.
func NotFoundf(op, format string, args ...interface{}) *Error {
	return NewError(NotFound, op, fmt.Errorf(format, args...))
}

// EnvMisconfigured builds an EnvironmentMisconfigured error.
func EnvMisconfigured(op string, err error) *Error {
	return NewError(EnvironmentMisconfigured, op, err)
}
