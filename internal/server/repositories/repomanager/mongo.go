package repomanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")

const (
	defaultRetryAttempts  = 3
	defaultRetryInterval  = 2 * time.Second
	defaultConnectTimeout = 10 * time.Second
)

type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
	users  users.Repository
}

// NewMongoRepositoryManager connects to opts.MongoURL, retrying up to
// opts.RetryAttempts times until the server answers a ping.
func NewMongoRepositoryManager(ctx context.Context, opts Options) (*MongoRepositoryManager, error) {
	if opts.MongoDatabase == "" {
		return nil, errors.New("mongo database name is empty")
	}

	attempts := opts.RetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	var lastErr error
	for i := range attempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(opts.MongoURL).
				SetConnectTimeout(defaultConnectTimeout).
				SetRetryWrites(true).
				SetRetryReads(true),
		)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				db := client.Database(opts.MongoDatabase)
				return &MongoRepositoryManager{
					client: client,
					db:     db,
					users:  users.NewMongoRepository(db),
				}, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnectToMongo, ctx.Err())
		case <-time.After(interval):
		}
	}

	return nil, errors.Join(ErrFailedToConnectToMongo, lastErr)
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

// RunMigrations creates the indexes the users collection relies on.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := users.EnsureMongoIndexes(ctx, m.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
