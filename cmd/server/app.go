package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/tasklog-api/internal/api/middleware"
	"github.com/phrazzld/tasklog-api/internal/config"
	"github.com/phrazzld/tasklog-api/internal/job"
	"github.com/phrazzld/tasklog-api/internal/platform/postgres"
	"github.com/phrazzld/tasklog-api/internal/service"
	"github.com/phrazzld/tasklog-api/internal/service/auth"
	"github.com/phrazzld/tasklog-api/internal/store"
)

// redisPingTimeout bounds the startup check of the report sink.
const redisPingTimeout = 3 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	// Stores
	userStore store.UserStore
	taskStore store.TaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	tokenIssuer      *auth.TokenIssuer
	taskService      service.TaskService

	// Observability
	registry    *prometheus.Registry
	httpMetrics *middleware.HTTPMetrics

	// Scheduled reporting; nil when the report is disabled
	scheduler *job.Scheduler
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger),
		taskStore: postgres.NewPostgresTaskStore(db, logger),
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}
	if err := app.initReporter(ctx); err != nil {
		app.closeRedis()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// initServices builds the services, the token issuer and the metrics
// registry on top of the configured stores.
func (app *application) initServices() error {
	var err error

	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.tokenIssuer, err = auth.NewTokenIssuer(app.userStore, app.passwordVerifier, app.jwtService, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.httpMetrics, err = middleware.NewHTTPMetrics(app.registry)
	if err != nil {
		return fmt.Errorf("failed to register HTTP metrics: %w", err)
	}

	return nil
}

// initReporter registers the task report job with a new scheduler. The
// scheduler is not started here; Run starts it.
func (app *application) initReporter(ctx context.Context) error {
	cfg := app.config.Report
	if !cfg.Enabled {
		app.logger.Info("Scheduled task report disabled")
		return nil
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("failed to load report time zone %q: %w", cfg.TimeZone, err)
	}

	jobMetrics, err := job.NewMetrics(app.registry)
	if err != nil {
		return fmt.Errorf("failed to register job metrics: %w", err)
	}

	sinks := []job.ReportSink{job.NewLogSink(app.logger)}
	if cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := app.redis.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis report sink: %w", err)
		}
		sinks = append(sinks, job.NewRedisSink(app.redis, cfg.RedisKey, cfg.RedisMaxEntries))
		app.logger.Info("Redis report sink enabled", "key", cfg.RedisKey)
	}

	reportJob, err := job.NewTaskReportJob(job.TaskReportConfig{
		Name:     cfg.JobName,
		Schedule: cfg.Schedule,
		UserID:   cfg.UserID,
		Location: loc,
	}, app.taskService, sinks...)
	if err != nil {
		return fmt.Errorf("failed to create task report job: %w", err)
	}

	app.scheduler = job.NewScheduler(app.logger, jobMetrics, loc)
	if err := app.scheduler.Register(reportJob); err != nil {
		return fmt.Errorf("failed to register task report job: %w", err)
	}
	return nil
}

// Run starts the scheduler and the HTTP server, blocking until ctx is
// cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if app.scheduler != nil {
		app.scheduler.Start()
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// shutdownTimeout is the budget shared by the HTTP server and the scheduler.
func (app *application) shutdownTimeout() time.Duration {
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}

// stopScheduler waits for a running report job until ctx expires.
func (app *application) stopScheduler(ctx context.Context) {
	if app.scheduler == nil {
		return
	}
	if err := app.scheduler.Stop(ctx); err != nil {
		app.logger.Warn("Scheduler did not stop cleanly", "error", err)
	}
}

// cleanup releases external connections.
func (app *application) cleanup() {
	app.closeRedis()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

func (app *application) closeRedis() {
	if app.redis == nil {
		return
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error("Error closing redis connection", "error", err)
	}
	app.redis = nil
}
