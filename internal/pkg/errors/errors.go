// Package errors defines the error taxonomy shared by the AI core and the services around it.
// Callers import it as apperrors.
package errors

import (
	"errors"
	"strings"
)

// Kind classifies a failure independently of where it happened.
type Kind string

const (
	KindUnknown                Kind = ""
	KindProviderUnavailable    Kind = "provider_unavailable"
	KindGenerationUnavailable  Kind = "generation_unavailable"
	KindInvalidGenerationShape Kind = "invalid_generation_shape"
	KindNotFound               Kind = "not_found"
	KindEmptyInput             Kind = "empty_input"
	KindInvalidArgument        Kind = "invalid_argument"
	KindUnauthorized           Kind = "unauthorized"
	KindConflict               Kind = "conflict"
)

var (
	ErrProviderUnavailable    = &Error{Kind: KindProviderUnavailable}
	ErrGenerationUnavailable  = &Error{Kind: KindGenerationUnavailable}
	ErrInvalidGenerationShape = &Error{Kind: KindInvalidGenerationShape}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrEmptyInput             = &Error{Kind: KindEmptyInput}
	ErrInvalidArgument        = &Error{Kind: KindInvalidArgument}
	ErrUnauthorized           = &Error{Kind: KindUnauthorized}
	ErrConflict               = &Error{Kind: KindConflict}
)

// Kinded is implemented by any error that knows its Kind.
type Kinded interface {
	error
	ErrorKind() Kind
}

// Error is a classified failure. Op names the operation ("quiz.Generate"), Msg is safe to
// show to a caller, Err is the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	} else if e.Kind != KindUnknown {
		parts = append(parts, strings.ReplaceAll(string(e.Kind), "_", " "))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) ErrorKind() Kind { return e.Kind }

// Is matches the package sentinels by kind, so errors.Is(err, ErrNotFound) holds for any
// not-found error regardless of Op or Msg.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if t.Op == "" && t.Msg == "" && t.Err == nil {
		return e.Kind == t.Kind
	}
	return e == t
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func NotFound(op, what string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msg: what + " not found"}
}

func EmptyInput(op, msg string) *Error {
	return &Error{Kind: KindEmptyInput, Op: op, Msg: msg}
}

func InvalidShape(op, msg string) *Error {
	return &Error{Kind: KindInvalidGenerationShape, Op: op, Msg: msg}
}

// KindOf walks the error chain and returns the first Kind found.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k Kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindUnknown
}

// Message returns the caller-safe message of the outermost classified error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
