package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/config"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/database"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper/service"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/server"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/logger"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/metrics"
)

func main() {
	// LOG_LEVEL is honoured before config so config errors are visible
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = database.ConnectRedis(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.ConnectAttempts, time.Second)
		if err != nil {
			logger.Warnf("could not connect to Redis, rate limiting falls back to memory: %v", err)
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
			logger.Infof("connected to Redis at %s", cfg.Redis.Addr())
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	svc := service.NewMemoryService()
	r := server.NewRouter(cfg, svc, rdb)

	logger.Infof("config summary: env=%s redis=%v rate_limit=%v cors=%v",
		cfg.Server.Environment, rdb != nil, cfg.RateLimit.Enabled, cfg.CORS.AllowOrigins)
	if err := server.Run(ctx, cfg.Server, r); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
	logger.Infof("paper service stopped")
}
