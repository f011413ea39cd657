package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hr-portal/internal/config"
	"hr-portal/internal/middleware"
	"hr-portal/internal/seed"
	"hr-portal/internal/shared/connection"
	"hr-portal/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure and registers every route on router.
// The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	db, err := connection.ConnectGORMWithRetry(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	if cfg.Redis.Addr == "" {
		return nil, errors.New("redis addr is required")
	}
	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		return nil, err
	}
	log.Info("redis connection established")

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if cfg.Fixtures.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := seed.New(db, counter.NewRepository(db), cfg.Fixtures.Delay, logger).Run(ctx)
		cancel()
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, db, rdb, logger); err != nil {
		cleanup()
		return nil, err
	}
	router.GET("/healthz", middleware.RateLimitByIP(5, 10), healthz(db, rdb))

	return cleanup, nil
}

func healthz(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok", "redis": "ok"}
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
