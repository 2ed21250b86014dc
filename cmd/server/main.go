package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"recipebox/internal/app/di"
	"recipebox/internal/app/router"
	"recipebox/internal/platform/config"
	platformhandler "recipebox/internal/platform/http/handler"
	jwtmw "recipebox/internal/platform/jwt"
	"recipebox/internal/platform/logging"
	"recipebox/internal/platform/metrics"
	infraredis "recipebox/internal/platform/redis"
	"recipebox/internal/shared/ratelimiter"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	storage, err := di.OpenStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()
	slog.Info("storage ready", "driver", cfg.StorageDriver)

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("Failed to close Redis client", "error", err)
				}
			}()
		}
	}

	secret, err := di.JWTSecret(cfg.JWTSecret)
	if err != nil {
		return err
	}

	checks := map[string]platformhandler.Check{"storage": storage.Ping}
	if rdb != nil {
		checks["cache"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	engine := router.NewRouter(router.Deps{
		Logger:      logger,
		Handlers:    di.NewHandlers(storage.Backends, rdb, cfg.CacheTTL, jwtmw.NewGenerator(secret, cfg.JWTTTL)),
		Health:      platformhandler.NewHealthHandler(checks),
		Metrics:     metrics.New(),
		AuthLimiter: ratelimiter.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
		JWTSecret:   secret,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
