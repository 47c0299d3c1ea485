package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/enrollment-eligibility/internal/data/repos/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type EnrollmentQueryRepo = enrollment.QueryRepo

func NewEnrollmentQueryRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentQueryRepo {
	return enrollment.NewQueryRepo(db, baseLog)
}
