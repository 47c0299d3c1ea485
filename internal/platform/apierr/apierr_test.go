package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
)

func TestFromError(t *testing.T) {
	explicit := New(http.StatusTeapot, "teapot", errors.New("short and stout"))

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid state", err: enrollment.InvalidStateError("no view"), status: http.StatusInternalServerError, code: "invalid_state"},
		{name: "unsupported", err: enrollment.UnsupportedStateError("type 9"), status: http.StatusInternalServerError, code: "unsupported_state"},
		{name: "argument", err: enrollment.InvalidArgumentError("bad filter"), status: http.StatusBadRequest, code: "invalid_request"},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), status: http.StatusGatewayTimeout, code: "request_cancelled"},
		{name: "deadline", err: context.DeadlineExceeded, status: http.StatusGatewayTimeout, code: "request_cancelled"},
		{name: "wrapped api error", err: fmt.Errorf("outer: %w", explicit), status: http.StatusTeapot, code: "teapot"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "load_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromError(tc.err, "load_failed")
			if got == nil {
				t.Fatalf("expected error")
			}
			if got.Status != tc.status || got.Code != tc.code {
				t.Fatalf("got %d/%s want %d/%s", got.Status, got.Code, tc.status, tc.code)
			}
		})
	}

	if FromError(nil, "x") != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{err: nil, want: ""},
		{err: New(500, "code", errors.New("inner")), want: "inner"},
		{err: New(500, "code", nil), want: "code"},
		{err: New(418, "", nil), want: "api error (418)"},
		{err: &Error{}, want: "api error"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error()=%q want %q", got, tc.want)
		}
	}
}
