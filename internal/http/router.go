package http

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/enrollment-eligibility/internal/http/handlers"
	httpMW "github.com/yungbote/enrollment-eligibility/internal/http/middleware"
	"github.com/yungbote/enrollment-eligibility/internal/http/response"
	"github.com/yungbote/enrollment-eligibility/internal/observability"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	HealthHandler     *httpH.HealthHandler
	EnrollmentHandler *httpH.EnrollmentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.AllowedOrigins))
	}

	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, nethttp.StatusNotFound, "not_found", errors.New("route not found"))
	})

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	users := api.Group("/users/:user_id")
	{
		if cfg.EnrollmentHandler != nil {
			users.GET("/training-plan-enrollments/:enrollment_id/items", cfg.EnrollmentHandler.ListTrainingPlanItems)
			users.GET("/open-items", cfg.EnrollmentHandler.ListOpenItems)
			users.GET("/curricula", cfg.EnrollmentHandler.ListCurricula)
			users.GET("/training-plans", cfg.EnrollmentHandler.ListTrainingPlans)
			users.GET("/assignments", cfg.EnrollmentHandler.GetAssignments)
		}
	}

	return r
}
