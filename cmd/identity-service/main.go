// File: cmd/identity-service/main.go
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
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
	repoPostgres "github.com/lafoken/withfy-backend-open/internal/domain/repository/postgres"
	"github.com/lafoken/withfy-backend-open/internal/events/kafka"
	httpHandler "github.com/lafoken/withfy-backend-open/internal/handler/http"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/database/postgres"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/email"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
	"github.com/lafoken/withfy-backend-open/internal/service"
	"github.com/lafoken/withfy-backend-open/internal/utils/logger"
	"github.com/lafoken/withfy-backend-open/internal/utils/rate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "identity-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig("AUTH")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Environment)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	log = logger.WithService(log, "identity-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database, "migrations", log); err != nil {
			return err
		}
	}

	pool, err := postgres.NewDBPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis is unreachable, rate limiting degrades to allow-all", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.UserEventsTopic, log)
	if err != nil {
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}
	defer producer.Close()

	jwtService, err := security.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, log)
	if err != nil {
		return err
	}
	passwordService := security.NewBcryptPasswordService(0)
	emailClient := email.NewClient(cfg.Email, log)

	userRepo := repoPostgres.NewUserRepositoryPostgres(pool)
	refreshRepo := repoPostgres.NewRefreshTokenRepositoryPostgres(pool)
	resetRepo := repoPostgres.NewPasswordResetTokenRepositoryPostgres(pool)

	tokenService := service.NewTokenService(refreshRepo, userRepo, jwtService, cfg.JWT.RefreshTokenTTL, log)
	authService := service.NewAuthService(userRepo, passwordService, tokenService, producer, log)
	resetService := service.NewPasswordResetService(userRepo, resetRepo, passwordService, emailClient, cfg.JWT.PasswordResetTokenTTL, log)
	oauthService := service.NewOAuthService(cfg.OAuth, userRepo, tokenService, producer, log)
	adminService := service.NewAdminService(userRepo, tokenService, passwordService, producer, log)

	limiter := rate.NewLimiter(redisClient, log, cfg.Security.RateLimiting)

	if cfg.Logging.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpHandler.NewRouter(httpHandler.RouterDeps{
		AuthHandler:  httpHandler.NewAuthHandler(authService, resetService, oauthService, log),
		AdminHandler: httpHandler.NewAdminHandler(adminService, cfg.Admin, log),
		Limiter:      limiter,
		Security:     cfg.Security,
		Logger:       log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Identity service listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down identity service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
