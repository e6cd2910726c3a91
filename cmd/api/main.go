// @title                       Big Bear Lessons API
// @version                     1.0
// @description                 Account signup, login and lesson progress tracking for teachers.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bigbear/lessons-api/internal/api"
	"github.com/bigbear/lessons-api/internal/api/handler"
	"github.com/bigbear/lessons-api/internal/core/service"
	"github.com/bigbear/lessons-api/internal/infrastructure/auth"
	"github.com/bigbear/lessons-api/internal/infrastructure/config"
	mongodb "github.com/bigbear/lessons-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bigbear/lessons-api/internal/infrastructure/db/redis"
	"github.com/bigbear/lessons-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "lessons-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	users := mongodb.NewUserRepository(db)
	lessons := mongodb.NewLessonRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := lessons.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		return err
	}
	hasher := auth.NewBcryptHasher(auth.DefaultCost)
	locker := redisdb.NewProgressLocker(rdb, cfg.Redis.LockTTL, logger.Component("progress-lock"))

	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(users, hasher, tokens, logger.Component("auth")),
		Users:    service.NewUserService(users),
		Progress: service.NewProgressService(users, locker, logger.Component("progress")),
		Lessons:  service.NewLessonService(lessons),
		Tokens:   tokens,
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
