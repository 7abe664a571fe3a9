// Package server initializes and runs the PulseTempo backend: it opens the
// database, applies migrations, builds the authentication services, and
// starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zavier/pulsetempo/internal/logging"
	"github.com/zavier/pulsetempo/internal/server/apple"
	"github.com/zavier/pulsetempo/internal/server/auth"
	"github.com/zavier/pulsetempo/internal/server/config"
	"github.com/zavier/pulsetempo/internal/server/httpapi"
	"github.com/zavier/pulsetempo/internal/server/repositories/repomanager"
	"github.com/zavier/pulsetempo/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// fails fast when the identity provider's key endpoint is unreachable
	verifier, err := apple.NewVerifier(ctx, cfg.AppleJWKSURL, cfg.AppleIssuer, cfg.AppleBundleID)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewService(cfg.SecretKey, cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	authService := services.NewAuthService(rm.Users(db), verifier, tokens)
	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, authService, tokens)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
}
