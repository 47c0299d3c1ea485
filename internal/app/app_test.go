package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/enrollment-eligibility/internal/config"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:  "test",
		Log:  config.LogConfig{Level: "warn"},
		HTTP: config.HTTPConfig{Addr: "127.0.0.1:0"},
		DB: config.DBConfig{
			Driver:      "sqlite",
			SQLitePath:  "file:app_wiring_test?mode=memory&cache=shared",
			AutoMigrate: true,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func TestNewWithConfigServesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := NewWithConfig(context.Background(), testConfig(), logger.Nop())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(a.Close)

	if a.Clients.Cache != nil {
		t.Fatalf("expected no cache without redis addr")
	}

	cases := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/healthcheck", status: http.StatusOK, contains: "ok"},
		{path: "/api/users/7/assignments", status: http.StatusOK, contains: "training_plans"},
		{path: "/api/users/7/open-items?filter=9", status: http.StatusBadRequest, contains: "invalid_request"},
		{path: "/metrics", status: http.StatusOK, contains: "eligibility_api_requests_total"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		a.Server.Engine.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("%s: status=%d want %d body=%s", tc.path, w.Code, tc.status, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), tc.contains) {
			t.Fatalf("%s: body %q missing %q", tc.path, w.Body.String(), tc.contains)
		}
	}
}

func TestNewWithConfigRejectsNil(t *testing.T) {
	if _, err := NewWithConfig(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
