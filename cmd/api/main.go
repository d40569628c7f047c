// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/hours-tracker/internal/admin"
	"github.com/carterperez-dev/hours-tracker/internal/auth"
	"github.com/carterperez-dev/hours-tracker/internal/config"
	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/health"
	"github.com/carterperez-dev/hours-tracker/internal/metrics"
	"github.com/carterperez-dev/hours-tracker/internal/middleware"
	"github.com/carterperez-dev/hours-tracker/internal/migrations"
	"github.com/carterperez-dev/hours-tracker/internal/report"
	"github.com/carterperez-dev/hours-tracker/internal/server"
	"github.com/carterperez-dev/hours-tracker/internal/timeentry"
	"github.com/carterperez-dev/hours-tracker/internal/user"
)

const (
	drainDelay = 5 * time.Second

	loginRequests = 10
	loginWindow   = time.Minute
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, migrations.FS); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	m := metrics.New(prometheus.DefaultRegisterer)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "HS256",
		"expires_in", jwtManager.ExpiresIn(),
	)

	entrySvc := timeentry.NewService(timeentry.NewRepository(db.DB), nil, m)
	userSvc := user.NewService(user.NewRepository(db.DB), entrySvc, m, logger)
	entrySvc.SetOwnerChecker(userSvc)

	authSvc := auth.NewService(
		jwtManager,
		userSvc,
		auth.NewRedisBlacklist(redis.Client),
		m,
		logger,
	)
	reportSvc := report.NewService(userSvc, entrySvc, m)

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	entryHandler := timeentry.NewHandler(entrySvc)
	reportHandler := report.NewHandler(reportSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)
	healthHandler.SetReady(false)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Users:      userSvc,
		Entries:    entrySvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(
		middleware.NewRateLimiter(ctx, redis.Client, middleware.RateLimitConfig{
			Limit: middleware.Limit(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
			Prefix:   "ratelimit:global",
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	loginLimiter := middleware.NewRateLimiter(ctx, redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.Limit(loginRequests, loginRequests, loginWindow),
		FailOpen: true,
		Prefix:   "ratelimit:login",
	}).Handler

	userLimiter := middleware.NewRateLimiter(ctx, redis.Client, middleware.RateLimitConfig{
		Limit: middleware.Limit(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByUser,
		FailOpen: true,
		Prefix:   "ratelimit:user",
	}).Handler

	authn := middleware.Authenticator(authSvc, authSvc)
	authenticator := func(next http.Handler) http.Handler {
		return authn(userLimiter(next))
	}
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
		userHandler.RegisterRoutes(r, authenticator)
		entryHandler.RegisterRoutes(r, authenticator)
		reportHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	if err := userSvc.EnsureDefaultAdmin(ctx, cfg.Bootstrap); err != nil {
		abortCtx, abort := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer abort()
		if shutdownErr := srv.Shutdown(abortCtx, 0); shutdownErr != nil {
			logger.Error("server shutdown error", "error", shutdownErr)
		}
		return err
	}
	healthHandler.SetReady(true)
	logger.Info("application ready")

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
