package app

import (
	"github.com/yungbote/enrollment-eligibility/internal/observability"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
	"github.com/yungbote/enrollment-eligibility/internal/services"
)

type Services struct {
	Enrollment services.EnrollmentService
}

func wireServices(log *logger.Logger, reposet Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		Enrollment: services.NewEnrollmentService(log, reposet.EnrollmentQuery, metrics),
	}
}
