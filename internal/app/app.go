package app

import (
	"os"

	"go-salescrm/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers every module's routes onto the
// router. Redis is optional: without it the option caches and idempotency
// middleware are simply skipped.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		zap.L().Info("redis connection established")
		redisClient = rdb
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}
