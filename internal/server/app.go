// Package server initializes and runs the identity service: it opens the
// database, applies migrations, wires services onto the HTTP router, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/upttmbi/campus-auth/internal/logging"
	"github.com/upttmbi/campus-auth/internal/server/auth"
	"github.com/upttmbi/campus-auth/internal/server/config"
	"github.com/upttmbi/campus-auth/internal/server/httpapi"
	"github.com/upttmbi/campus-auth/internal/server/metrics"
	"github.com/upttmbi/campus-auth/internal/server/repositories/repomanager"
	"github.com/upttmbi/campus-auth/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp wires the application. The database must be reachable: the ping is
// retried with backoff to ride out container start ordering, and migrations
// run before any request is served.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	}); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	registration := services.NewRegistrationService(db, repos, hasher, logger)
	authentication := services.NewAuthenticationService(db, repos, hasher, cfg, logger)

	m := metrics.New()
	handler := httpapi.NewRouter(httpapi.NewHandler(registration, authentication, m, logger))

	return &App{config: cfg, logger: logger, db: db, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or the
// server fails. Shutdown waits up to 10s for in-flight requests.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting HTTP server", "address", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return app.db.Close()
}
