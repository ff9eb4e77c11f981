package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/scholarassist/scholarassist/backend/go-services/internal/config"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/logger"
)

// Run listens on cfg.Addr() and serves h until ctx is cancelled.
func Run(ctx context.Context, cfg config.ServerConfig, h http.Handler) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	return Serve(ctx, ln, cfg, h)
}

// Serve serves h on ln until ctx is cancelled, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Infof("paper service listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("shutting down (timeout %s)", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
