// Package server composes the application's shared dependencies and owns
// the HTTP server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/pitchfund/internal/config"
	"github.com/deppfellow/pitchfund/internal/database"
	"github.com/deppfellow/pitchfund/internal/lib/health"
	"github.com/deppfellow/pitchfund/internal/lib/job"
	loggerPkg "github.com/deppfellow/pitchfund/internal/logger"
)

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService
	Health        *health.Checker
	httpServer    *http.Server
}

// New connects to PostgreSQL and Redis and builds the job service and health
// checker. Workers and scheduled checks are started by the caller.
// Redis being down does not stop startup; idempotency fails open without it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           job.NewJobService(logger, cfg),
	}
	s.Health = health.NewChecker(logger, loggerService.GetApplication(), cfg.Observability.HealthChecks.Timeout, s.healthChecks()...)

	return s, nil
}

func (s *Server) healthChecks() []health.Check {
	var checks []health.Check
	for _, name := range s.Config.Observability.HealthChecks.Checks {
		switch name {
		case "database":
			checks = append(checks, health.Check{Name: name, Fn: s.DB.Ping, Required: true})
		case "redis":
			checks = append(checks, health.Check{Name: name, Fn: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			}})
		default:
			s.Logger.Warn().Str("check", name).Msg("unknown health check ignored")
		}
	}
	return checks
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains HTTP traffic, then stops workers and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Health != nil {
		s.Health.Stop()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}
