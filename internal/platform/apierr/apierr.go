package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

const pgUniqueViolation = "23505"

// Error is the boundary representation of a failure: an HTTP status, a stable code and a
// message that is safe to return to the client.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{Status: status, Code: code, Message: msg, Err: err}
}

// From translates any error into the boundary taxonomy. Internal error types never cross
// this line; only Status, Code and Message are rendered.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &Error{Status: http.StatusConflict, Code: "duplicate_entry", Message: "duplicate entry", Err: err}
	}

	kind := apperrors.KindOf(err)
	status, code := statusFor(kind)
	msg := apperrors.Message(err)
	switch kind {
	case apperrors.KindUnknown:
		msg = "something went wrong"
	case apperrors.KindGenerationUnavailable:
		msg = "AI generation is currently unavailable, please try again later"
	case apperrors.KindProviderUnavailable:
		msg = "AI provider is currently unavailable"
	case apperrors.KindInvalidGenerationShape:
		msg = "AI returned an unusable response"
	}
	return &Error{Status: status, Code: code, Message: msg, Err: err}
}

func statusFor(kind apperrors.Kind) (int, string) {
	switch kind {
	case apperrors.KindEmptyInput:
		return http.StatusBadRequest, "empty_input"
	case apperrors.KindInvalidArgument:
		return http.StatusBadRequest, "invalid_argument"
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized, "unauthorized"
	case apperrors.KindNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.KindConflict:
		return http.StatusConflict, "conflict"
	case apperrors.KindInvalidGenerationShape:
		return http.StatusBadGateway, "invalid_generation_shape"
	case apperrors.KindProviderUnavailable:
		return http.StatusBadGateway, "provider_unavailable"
	case apperrors.KindGenerationUnavailable:
		return http.StatusServiceUnavailable, "generation_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
