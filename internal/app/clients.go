package app

import (
	"github.com/yungbote/enrollment-eligibility/internal/clients/redis"
	"github.com/yungbote/enrollment-eligibility/internal/config"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type Clients struct {
	Cache redis.RowCache
}

// wireClients connects optional backing services. A cache that cannot be
// reached is logged and skipped; queries then go straight to the database.
func wireClients(log *logger.Logger, cfg *config.Config) Clients {
	log.Info("Wiring clients...")

	var out Clients
	if cfg.Cache.RedisAddr != "" {
		cache, err := redis.NewRowCache(log, cfg.Cache)
		if err != nil {
			log.Warn("Row cache disabled", "addr", cfg.Cache.RedisAddr, "error", err)
		} else {
			out.Cache = cache
		}
	}
	return out
}
