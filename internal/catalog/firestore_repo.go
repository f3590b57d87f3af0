package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreRepo reads documents from Cloud Firestore collections.
type FirestoreRepo struct {
	client  *firestore.Client
	timeout time.Duration
}

func NewFirestoreRepo(client *firestore.Client, timeout time.Duration) *FirestoreRepo {
	return &FirestoreRepo{client: client, timeout: timeout}
}

func (r *FirestoreRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *FirestoreRepo) ListAll(ctx context.Context, collection string) ([]Document, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	snaps, err := r.client.Collection(collection).Documents(timeoutCtx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make([]Document, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, Document{ID: s.Ref.ID, Fields: s.Data()})
	}
	return out, nil
}

func (r *FirestoreRepo) Upsert(ctx context.Context, collection string, doc Document) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.client.Collection(collection).Doc(doc.ID).Set(timeoutCtx, doc.Fields); err != nil {
		return fmt.Errorf("upsert document %s: %w", doc.ID, err)
	}
	return nil
}

// Ping reads one collection id, which needs a working connection and
// credentials.
func (r *FirestoreRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.client.Collections(timeoutCtx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
