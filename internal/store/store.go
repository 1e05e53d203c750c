// Package store selects and opens the book repository named by STORAGE_DRIVER.
package store

import (
	"context"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/mongodb"
	"bookcatalog/internal/platform/postgres"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store is an open repository plus the hooks the process needs around it.
type Store struct {
	Repo book.Repository
	// Pinger is nil for backends without a remote dependency.
	Pinger book.Pinger
	close  func()
}

// Close releases the backend connection. Safe to call more than once.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return &Store{Repo: book.NewMemoryRepo()}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.StorageTimeout)
		if err != nil {
			return nil, err
		}
		repo := book.NewMongoRepo(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection), cfg.StorageTimeout)
		log.Info("connected to mongo",
			zap.String("database", cfg.MongoDatabase),
			zap.String("collection", cfg.MongoCollection),
		)
		return &Store{
			Repo:   repo,
			Pinger: repo,
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("mongo disconnect failed", zap.Error(err))
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.DatabaseDSN, cfg.StorageTimeout)
		if err != nil {
			return nil, err
		}
		repo := book.NewPostgresRepo(pool, cfg.StorageTimeout)
		log.Info("connected to postgres", zap.String("dsn", postgres.RedactDSN(cfg.DatabaseDSN)))
		return &Store{Repo: repo, Pinger: repo, close: pool.Close}, nil
	}

	return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
