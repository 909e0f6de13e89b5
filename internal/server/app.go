// Package server initializes and runs the authentication server. It opens the
// database, runs migrations, seeds the admin account, and starts the HTTP
// server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authd/internal/logging"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/config"
	"github.com/dmitrijs2005/authd/internal/server/httpapi"
	"github.com/dmitrijs2005/authd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authd/internal/server/services"
	"github.com/sethvargo/go-retry"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	repos        repomanager.RepositoryManager
	userService  *services.UserService
	adminService *services.AdminService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	hasher := auth.NewArgon2idHasher()

	tokens, err := auth.NewTokenService(c.SecretKey, c.SigningAlgorithm, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	us := services.NewUserService(db, rm, hasher, tokens)
	as := services.NewAdminService(db, rm, us, hasher, c.AdminUsername, c.AdminPassword)

	return &App{config: c, logger: logger, db: db, repos: rm, userService: us, adminService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// waitForDB pings the database with a fibonacci backoff so the server survives
// a database that comes up slightly later than it does.
func (app *App) waitForDB(ctx context.Context) error {
	backoff := retry.WithMaxRetries(10, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn(ctx, "Database not ready, retrying...", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) initStorage(ctx context.Context) error {
	if err := app.waitForDB(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (app *App) bootstrapAdmin(ctx context.Context) error {
	created, err := app.adminService.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("admin bootstrap error: %w", err)
	}

	if created {
		app.logger.Info(ctx, "Admin user created", "username", app.config.AdminUsername)
	} else {
		app.logger.Info(ctx, "Admin user already exists", "username", app.config.AdminUsername)
	}

	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.Address, app.config.Environment, app.logger, app.userService, app.adminService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	if err := app.initStorage(ctx); err != nil {
		return err
	}

	if err := app.bootstrapAdmin(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	return nil
}
