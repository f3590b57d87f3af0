package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookshelf/internal/config"
)

// Open connects to the configured backend and checks it is reachable. The
// returned function releases the connection.
func Open(ctx context.Context, cfg config.Catalog) (Repository, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("create db pool: %w", err)
		}
		repo := NewPostgresRepo(pool, cfg.Timeout)
		if err := ping(ctx, repo); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database (%s): %w", RedactDSN(cfg.DSN), err)
		}
		return repo, pool.Close, nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		repo := NewMongoRepo(client.Database(cfg.MongoDatabase), cfg.Timeout)
		if err := ping(ctx, repo); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("ping mongo (%s): %w", RedactDSN(cfg.MongoURI), err)
		}
		return repo, closeFn, nil

	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, nil, fmt.Errorf("create firestore client: %w", err)
		}
		closeFn := func() { _ = client.Close() }
		repo := NewFirestoreRepo(client, cfg.Timeout)
		if err := ping(ctx, repo); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("ping firestore (%s): %w", cfg.FirestoreProject, err)
		}
		return repo, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
	}
}

func ping(ctx context.Context, s Store) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Ping(pingCtx)
}

// RedactDSN hides the credentials of a connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
