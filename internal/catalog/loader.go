package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader keeps the last catalog fetched from the store. Every refresh reads
// the whole collection; concurrent refreshes share one fetch. A failed fetch
// is logged and leaves the previous snapshot in place.
type Loader struct {
	store      Store
	collection string
	logger     *zap.Logger
	group      singleflight.Group

	mu        sync.RWMutex
	snapshot  []Book
	fetchedAt time.Time
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLoader(store Store, collection string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		store:      store,
		collection: collection,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Books returns a copy of the current snapshot.
func (l *Loader) Books() []Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Book, len(l.snapshot))
	copy(out, l.snapshot)
	return out
}

// FetchedAt returns when the snapshot was last replaced; zero before the first
// successful fetch.
func (l *Loader) FetchedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetchedAt
}

// Find looks a book up in the snapshot.
func (l *Loader) Find(id string) (Book, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.snapshot {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// Refresh fetches the whole collection and replaces the snapshot. Errors wrap
// ErrFetchFailure.
func (l *Loader) Refresh(ctx context.Context) ([]Book, error) {
	v, err, _ := l.group.Do("refresh", func() (any, error) {
		return l.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	books := v.([]Book)
	out := make([]Book, len(books))
	copy(out, books)
	return out, nil
}

// RefreshAsync starts a refresh in the background. The refresh is cancelled by
// Close.
func (l *Loader) RefreshAsync() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		_, _ = l.Refresh(l.ctx)
	}()
}

// Close cancels background refreshes and waits for them. The snapshot is not
// replaced after Close returns.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
	l.wg.Wait()
}

func (l *Loader) fetch(ctx context.Context) ([]Book, error) {
	start := time.Now()
	docs, err := l.store.ListAll(ctx, l.collection)
	if err != nil {
		l.logger.Error("error fetching books",
			zap.String("collection", l.collection),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}

	books := make([]Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, BookFromDocument(d))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return books, nil
	}
	l.snapshot = books
	l.fetchedAt = time.Now()
	l.logger.Debug("catalog refreshed",
		zap.String("collection", l.collection),
		zap.Int("books", len(books)),
		zap.Duration("took", time.Since(start)),
	)
	return books, nil
}
