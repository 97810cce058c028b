package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/config"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	cacherepo "github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/cache"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/resilience"
)

// NewSnapshotCache fronts next with the Redis roster snapshot. The caller
// owns the returned client and must close it.
func NewSnapshotCache(cfg config.Config, next player.Repository, logger *logging.Logger) (*cacherepo.PlayerRepository, *redis.Client) {
	client := newRedisClient(cfg)
	return cacherepo.NewPlayerRepository(next, client, cfg.RedisSnapshotTTL, newSnapshotBreaker(cfg, logger), logger), client
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func newSnapshotBreaker(cfg config.Config, logger *logging.Logger) *resilience.CircuitBreaker {
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: cfg.RedisCircuitFailureCount,
		OpenTimeout:      cfg.RedisCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.RedisCircuitHalfOpenMaxReq,
	})
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("redis snapshot circuit changed", "from", string(from), "to", string(to))
	})
	return breaker
}
