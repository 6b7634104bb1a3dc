// @title                       Wavegame API
// @version                     1.0
// @description                 Player accounts, validated game sessions and leaderboards for the wave game client.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
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

	"github.com/sirpyerre/wavegame-api/internal/api"
	"github.com/sirpyerre/wavegame-api/internal/api/handler"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
	"github.com/sirpyerre/wavegame-api/internal/core/service"
	"github.com/sirpyerre/wavegame-api/internal/infrastructure/db/memory"
	mongodb "github.com/sirpyerre/wavegame-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sirpyerre/wavegame-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/wavegame-api/internal/infrastructure/security"
	"github.com/sirpyerre/wavegame-api/internal/pkg/config"
	"github.com/sirpyerre/wavegame-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "wavegame-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := make(map[string]handler.DependencyCheck)

	// --- Storage ---
	var (
		users    ports.UserRepository
		sessions ports.SessionRepository
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		repo := memory.NewRepository()
		users, sessions = repo, repo
		log.Warn().Msg("using in-memory storage, data is lost on restart")
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		users = mongodb.NewUserRepository(db)
		sessions = mongodb.NewSessionRepository(db)
		checks["mongodb"] = handler.MongoCheck(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	// --- Leaderboard cache ---
	var cache ports.LeaderboardCache
	if cfg.Redis.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redisdb.NewLeaderboardCache(rdb, cfg.Redis.CacheTTL)
		checks["redis"] = handler.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Services ---
	tokens := security.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(users, security.NewBcryptHasher(cfg.BcryptCost), tokens, log)
	gameService := service.NewGameService(users, sessions, cache, log)

	e := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Games:  gameService,
		Tokens: tokens,
		Log:    log,
		Checks: checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
