// File: cmd/api-gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
	"github.com/lafoken/withfy-backend-open/internal/gateway"
	"github.com/lafoken/withfy-backend-open/internal/handler/http/middleware"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
	"github.com/lafoken/withfy-backend-open/internal/utils/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api-gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig("GATEWAY")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Environment)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	log = logger.WithService(log, "api-gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The gateway only verifies tokens, so the refresh TTL is irrelevant here.
	jwtService, err := security.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, log)
	if err != nil {
		return err
	}

	proxy, err := gateway.NewProxy(cfg.Gateway.Routes, log)
	if err != nil {
		return fmt.Errorf("failed to build route table: %w", err)
	}
	filter := gateway.NewAuthFilter(gateway.DefaultPolicy(), jwtService, log)

	if cfg.Logging.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.Metrics(),
		middleware.CORS(nil),
		filter.Handler(),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.NoRoute(proxy.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("API gateway listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down api gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
