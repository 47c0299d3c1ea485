package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/enrollment-eligibility/internal/clients/redis"
	"github.com/yungbote/enrollment-eligibility/internal/data/repos"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type Repos struct {
	EnrollmentQuery repos.EnrollmentQueryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger, clients Clients) Repos {
	log.Info("Wiring repos...")
	query := repos.NewEnrollmentQueryRepo(db, log)
	if clients.Cache != nil {
		query = redis.NewCachedQueryRepo(query, clients.Cache, log)
	}
	return Repos{EnrollmentQuery: query}
}
