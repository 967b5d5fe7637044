package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/adapter/postgres/action"
	"github.com/osfio/collections-moderation/internal/adapter/postgres/artifact"
	"github.com/osfio/collections-moderation/internal/adapter/postgres/collection"
	"github.com/osfio/collections-moderation/internal/adapter/postgres/outbox"
	submissionrepo "github.com/osfio/collections-moderation/internal/adapter/postgres/submission"
	"github.com/osfio/collections-moderation/internal/auth"
	"github.com/osfio/collections-moderation/internal/config"
	"github.com/osfio/collections-moderation/internal/service/notify"
	"github.com/osfio/collections-moderation/internal/service/submission"
	"github.com/osfio/collections-moderation/internal/transport/middleware"
	"github.com/osfio/collections-moderation/internal/transport/rest"
)

// Run is the API server entry point. It loads configuration, connects to
// the database, serves HTTP until ctx is cancelled and then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, logger, pool, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// NewHandler wires repositories, services and middleware over pool and
// returns the root HTTP handler.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, limiter *middleware.RateLimiter) http.Handler {
	collections := collection.New(pool)
	artifacts := artifact.New(pool)

	dispatcher := notify.NewDispatcher(logger, collections, artifacts, outbox.New(pool))

	svc := submission.NewService(
		logger,
		submissionrepo.New(pool),
		action.New(pool),
		collections,
		artifacts,
		dispatcher,
		postgres.NewTxManager(pool),
	)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	router := rest.NewRouter(
		rest.NewSubmissionHandler(svc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	return middleware.Chain(
		middleware.RequestID,
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		limiter.LimitWrites(cfg.Server.WriteLimitPerMinute),
	)(router)
}
