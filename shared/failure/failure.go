package failure

import (
	"errors"
	"net/http"

	"hotel/shared/constant"

	"github.com/lib/pq"
)

// Failure is an error that carries the HTTP status it should be answered with.
// Anything else that reaches a handler is answered with 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidPageParam        = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam       = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

// New returns a Failure with an arbitrary status.
func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// fromError keeps a nil error nil so callers can wrap unconditionally.
func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "room not found".
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// Unimplemented marks a feature whose backing integration is not configured.
func Unimplemented(msg string) error {
	return New(http.StatusNotImplemented, msg)
}

// GetCode returns the status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation, such as a second active reservation on one room.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

// ConflictOnDuplicate turns a unique violation into a 409 with msg and leaves
// other errors unchanged.
func ConflictOnDuplicate(err error, msg string) error {
	if IsUniqueViolation(err) {
		return Conflict(msg)
	}

	return err
}
