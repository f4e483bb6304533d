// Command api serves the accounts REST API.
//
// @title                      Accounts API
// @version                    1.0
// @description                User registration, authentication, listing and soft deletion.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/usersapp/accounts-api/internal/api"
	"github.com/usersapp/accounts-api/internal/api/handler"
	"github.com/usersapp/accounts-api/internal/core/ports"
	"github.com/usersapp/accounts-api/internal/core/service"
	"github.com/usersapp/accounts-api/internal/core/usecase"
	"github.com/usersapp/accounts-api/internal/infrastructure/db/memory"
	mongostore "github.com/usersapp/accounts-api/internal/infrastructure/db/mongo"
	"github.com/usersapp/accounts-api/internal/infrastructure/db/postgres"
	redisstore "github.com/usersapp/accounts-api/internal/infrastructure/db/redis"
	"github.com/usersapp/accounts-api/internal/infrastructure/security"
	"github.com/usersapp/accounts-api/internal/pkg/config"
	"github.com/usersapp/accounts-api/pkg/logger"
)

const serviceName = "accounts-api"

// store is a UserRepository that can also report readiness.
type store interface {
	ports.UserRepository
	handler.Pinger
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	users, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open user store")
	}
	defer closeStore()

	checks := map[string]handler.Pinger{cfg.StoreDriver: users}

	tokens := security.NewJWTIssuer(security.JWTConfig{
		Secret:    cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		TTL:       cfg.JWT.TTL,
		ClockSkew: cfg.JWT.ClockSkew,
	})

	deps := api.Dependencies{
		Handlers: usecase.NewHandlers(usecase.Dependencies{
			Users:  service.NewUserService(users, log),
			Hasher: security.NewBcryptHasher(cfg.BcryptCost),
			Tokens: tokens,
			Logger: log,
		}),
		Tokens:      tokens,
		LoginLimit:  cfg.Login.RateLimit,
		LoginWindow: cfg.Login.RateWindow,
		Checks:      checks,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Logger:      log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		limiter := redisstore.NewLoginLimiter(rdb)
		deps.LoginLimiter = limiter
		checks["redis"] = limiter
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login rate limiting disabled")
	}

	e := api.NewRouter(deps)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("store", cfg.StoreDriver).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server stopped")
}

// openStore builds the repository selected by STORE_DRIVER and prepares its
// schema. The returned func releases the underlying connections.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(cfg.Postgres.URL, log); err != nil {
				return nil, nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:         cfg.Postgres.URL,
			MaxConns:    cfg.Postgres.MaxConns,
			MinConns:    cfg.Postgres.MinConns,
			MaxConnLife: cfg.Postgres.MaxConnLife,
		})
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(pool), pool.Close, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return repo, closeFn, nil

	default:
		log.Warn().Msg("using in-memory user store, data is lost on restart")
		return memory.NewUserRepository(), func() {}, nil
	}
}
