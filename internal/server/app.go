// Package server wires the configured store, the authentication core and the
// HTTP and gRPC boundaries into one process, and runs them until a shutdown
// signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/gate"
	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/rest"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

const closeTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	gate        *gate.Gate
}

// NewApp opens the store, applies its migrations and builds the services.
// It fails when the signing key or hash algorithm is unusable.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := cryptox.NewPasswordHasher(c.HashAlgorithm, c.BcryptCost)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager([]byte(c.SecretKey), auth.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	repos, err := repomanager.New(ctx, repomanager.Options{
		Driver:        c.StorageDriver,
		DatabaseDSN:   c.DatabaseDSN,
		MongoURL:      c.MongoURL,
		MongoDatabase: c.MongoDatabase,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, err
	}

	us := services.NewUserService(repos.Users(), hasher, tokens, logger)
	g := gate.New(tokens, repos.Users(), logger)

	return &App{config: c, logger: logger, repos: repos, userService: us, gate: g}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Shutdown signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

// Run serves until ctx is cancelled, a shutdown signal arrives or one of the
// listeners fails, then closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)
	app.initSignalHandler(ctx, cancelFunc)

	var servers []runner
	if app.config.HTTPAddr != "" {
		servers = append(servers, rest.NewHTTPServer(app.config.HTTPAddr, app.logger, app.userService, app.gate))
	}
	if app.config.GRPCAddr != "" {
		servers = append(servers, gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService, app.gate))
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, s := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Run(ctx); err != nil {
				app.logger.Error(ctx, "server stopped", "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancelFunc()
			}
		}()
	}
	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(closeCtx, "closing store", "error", err)
	}

	app.logger.Info(closeCtx, "App stopped")
	return firstErr
}
