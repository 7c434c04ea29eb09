// Package repomanager opens the configured user store and hands its
// repositories to the services. It owns the store connection, schema setup
// (goose migrations for Postgres, indexes for MongoDB) and shutdown.
package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type RepositoryManager interface {
	Users() users.Repository
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options selects and locates the store.
type Options struct {
	Driver        string
	DatabaseDSN   string
	MongoURL      string
	MongoDatabase string

	// Connection retries, used by the MongoDB manager only.
	RetryAttempts int
	RetryInterval time.Duration
}

// New opens the store named by opts.Driver. Migrations are not run; call
// RunMigrations once the manager is open.
func New(ctx context.Context, opts Options) (RepositoryManager, error) {
	switch opts.Driver {
	case DriverPostgres:
		return NewPostgresRepositoryManager(opts.DatabaseDSN)
	case DriverMongo:
		return NewMongoRepositoryManager(ctx, opts)
	case DriverMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
