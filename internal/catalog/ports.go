package catalog

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_store.go -package=catalog

// Store reads whole collections from the document database.
type Store interface {
	ListAll(ctx context.Context, collection string) ([]Document, error)
	Ping(ctx context.Context) error
}

// Writer stores documents; only the seeding tools use it.
type Writer interface {
	Upsert(ctx context.Context, collection string, doc Document) error
}

// Repository is a catalog backend that can be read and seeded.
type Repository interface {
	Store
	Writer
}
