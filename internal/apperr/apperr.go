package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is the closed set of error categories the services produce.
// Controllers translate a Kind to an HTTP status through Status().
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDependency
)

// Error carries a Kind through the call stack together with a
// user-facing message and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Dependency marks a downstream service failure (unreachable or non-success).
func Dependency(msg string, cause error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: cause}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf classifies any error. Database errors are folded into the
// taxonomy here so callers never have to string-match messages.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindConflict
	}
	// The gorm postgres driver speaks pgx, so unique violations
	// surface as *pgconn.PgError with SQLSTATE 23505.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return KindConflict
	}
	return KindInternal
}

// Status maps an error to the HTTP status code the API contract promises:
// 400 validation, 404 not found, 409 conflict, 502 dependency, 500 otherwise.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether err classifies as a missing-record condition.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err classifies as a duplicate or blocked delete.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
