package http

import (
	"context"
	"encoding/json"
	"net"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	httpH "github.com/yungbote/enrollment-eligibility/internal/http/handlers"
	"github.com/yungbote/enrollment-eligibility/internal/observability"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
	"github.com/yungbote/enrollment-eligibility/internal/services"
)

type stubService struct{}

func (stubService) GetTrainingPlanPathItems(ctx context.Context, userID int64, id int64) ([]*types.ItemResult, error) {
	return []*types.ItemResult{}, nil
}
func (stubService) GetOpenItems(ctx context.Context, userID int64, filter types.CourseEnrollmentFilter) ([]*types.ItemResult, error) {
	return []*types.ItemResult{{CourseEnrollmentID: 5, Available: true, CourseFormat: types.CourseFormatAudio}}, nil
}
func (stubService) GetRequiredCurricula(ctx context.Context, userID int64) ([]*types.Suite, error) {
	return []*types.Suite{}, nil
}
func (stubService) GetRequiredTrainingPlans(ctx context.Context, userID int64) ([]*types.Suite, error) {
	return []*types.Suite{}, nil
}
func (stubService) GetAssignmentOverview(ctx context.Context, userID int64, filter types.CourseEnrollmentFilter) (*services.AssignmentOverview, error) {
	return &services.AssignmentOverview{}, nil
}

func testRouterConfig(m *observability.Metrics) RouterConfig {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	return RouterConfig{
		Log:               log,
		ServiceName:       "enrollment-eligibility-test",
		AllowedOrigins:    []string{"http://localhost:5173"},
		Metrics:           m,
		HealthHandler:     httpH.NewHealthHandler(nil),
		EnrollmentHandler: httpH.NewEnrollmentHandler(log, stubService{}),
	}
}

func TestRouter(t *testing.T) {
	metrics := observability.NewMetrics()
	r := NewRouter(testRouterConfig(metrics))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/healthcheck", nil))
	if rec.Code != nethttp.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" || rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("missing trace headers: %v", rec.Header())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/users/7/open-items", nil))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("open items: %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0]["course_format"] != "Audio" || body.Items[0]["available"] != true {
		t.Fatalf("items: %+v", body.Items)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/nope", nil))
	if rec.Code != nethttp.StatusNotFound || !strings.Contains(rec.Body.String(), `"not_found"`) {
		t.Fatalf("no route: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `route="/api/users/:user_id/open-items",status="200"} 1`) {
		t.Fatalf("metrics did not record request:\n%s", rec.Body.String())
	}
}

func TestRouterWithoutMetrics(t *testing.T) {
	r := NewRouter(testRouterConfig(nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("metrics route should be absent, got %d", rec.Code)
	}
}

func TestServerServeAndShutdown(t *testing.T) {
	srv := NewServer(testRouterConfig(nil), "127.0.0.1:0")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := nethttp.Get("http://" + ln.Addr().String() + "/healthcheck")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("serve returned %v", err)
	}
}
