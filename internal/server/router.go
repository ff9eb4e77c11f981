package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/scholarassist/scholarassist/backend/go-services/handlers"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/config"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper/handler"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper/service"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/apierrors"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/logger"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

// NewRouter assembles the HTTP surface: middleware chain, system endpoints and
// the paper API. rdb may be nil when Redis is not configured or unreachable.
func NewRouter(cfg *config.Config, svc service.Service, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		logger.Middleware(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowOrigins),
		middleware.Metrics(),
	)
	r.NoRoute(func(c *gin.Context) {
		apierrors.HandleError(c, apierrors.NewNotFound("Not Found"))
	})
	r.NoMethod(func(c *gin.Context) {
		apierrors.HandleError(c, apierrors.NewMethodNotAllowed())
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend server is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(cfg, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterSwagger(r)

	// probes and metrics stay outside the limiter
	api := r.Group("/")
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	handler.RegisterPaperRoutes(api, svc)
	return r
}

// readyHandler returns 200 only when critical dependencies are available.
// The paper store lives in process and is always ready; Redis is critical
// only when the installed rate limiter is the Redis one. Without a client the
// router falls back to the in-memory limiter and Redis is merely reported.
func readyHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	redisRequired := rdb != nil && cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis
	return func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"papers": true}

		if cfg.Redis.Enabled() {
			ok := false
			if rdb != nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				ok = rdb.Ping(ctx).Err() == nil
				cancel()
			}
			deps["redis"] = ok
			if redisRequired && !ok {
				ready = false
			}
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}
