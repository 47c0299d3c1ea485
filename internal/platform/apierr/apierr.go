package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError classifies a service error. fallbackCode is used for errors
// outside the known taxonomy.
func FromError(err error, fallbackCode string) *Error {
	var ae *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, enrollment.ErrInvalidState):
		return New(http.StatusInternalServerError, "invalid_state", err)
	case errors.Is(err, enrollment.ErrUnsupportedState):
		return New(http.StatusInternalServerError, "unsupported_state", err)
	case errors.Is(err, enrollment.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return New(http.StatusGatewayTimeout, "request_cancelled", err)
	default:
		return New(http.StatusInternalServerError, fallbackCode, err)
	}
}
