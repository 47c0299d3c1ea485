package app

import (
	"context"

	"gorm.io/gorm"

	httpH "github.com/yungbote/enrollment-eligibility/internal/http/handlers"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Enrollment *httpH.EnrollmentHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(pingDB(db)),
		Enrollment: httpH.NewEnrollmentHandler(log, serviceset.Enrollment),
	}
}

func pingDB(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
