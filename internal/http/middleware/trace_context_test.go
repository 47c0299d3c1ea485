package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/enrollment-eligibility/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		headers     map[string]string
		wantTrace   string
		wantRequest string
	}{
		{
			name:        "propagates caller ids",
			headers:     map[string]string{headerTraceID: "trace-1", headerRequestID: "req-1"},
			wantTrace:   "trace-1",
			wantRequest: "req-1",
		},
		{
			name: "generates missing ids",
		},
		{
			name:    "ignores oversized ids",
			headers: map[string]string{headerRequestID: strings.Repeat("x", maxIDLength+1)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen *ctxutil.TraceData
			r := gin.New()
			r.Use(AttachTraceContext())
			r.GET("/x", func(c *gin.Context) {
				seen = ctxutil.GetTraceData(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if seen == nil {
				t.Fatalf("trace data not attached")
			}
			if seen.TraceID == "" || seen.RequestID == "" {
				t.Fatalf("empty ids: %+v", seen)
			}
			if tc.wantTrace != "" && seen.TraceID != tc.wantTrace {
				t.Fatalf("trace id: got %q want %q", seen.TraceID, tc.wantTrace)
			}
			if tc.wantRequest != "" && seen.RequestID != tc.wantRequest {
				t.Fatalf("request id: got %q want %q", seen.RequestID, tc.wantRequest)
			}
			if len(seen.RequestID) > maxIDLength {
				t.Fatalf("oversized request id accepted")
			}
			if got := rec.Header().Get(headerRequestID); got != seen.RequestID {
				t.Fatalf("response header: got %q want %q", got, seen.RequestID)
			}
		})
	}
}
