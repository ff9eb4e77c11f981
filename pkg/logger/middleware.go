package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestIDHeader is read from the response headers to tag request logs.
const RequestIDHeader = "X-Request-ID"

// Middleware attaches a request-scoped logger to the request context, so
// handlers can use zerolog.Ctx(c.Request.Context()), and writes one line per
// completed request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		lg := Logger().With().
			Str("request_id", c.Writer.Header().Get(RequestIDHeader)).
			Logger()
		c.Request = c.Request.WithContext(lg.WithContext(c.Request.Context()))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = lg.Error()
		case status >= 400:
			ev = lg.Info()
		default:
			ev = lg.Debug()
		}
		ev.Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
