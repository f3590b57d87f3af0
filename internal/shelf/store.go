package shelf

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"bookshelf/internal/catalog"
)

// Store owns the process-wide shelf. All mutations go through Borrow and
// Return; every successful mutation installs a new Shelf value and hands it to
// the subscribers. Subscribers see the values in installation order.
type Store struct {
	// notifyMu is held from installing a value until its subscribers have
	// run. Lock order is notifyMu then mu.
	notifyMu    sync.Mutex
	mu          sync.Mutex
	current     Shelf
	loanPeriod  time.Duration
	now         func() time.Time
	subscribers []func(Shelf)
	logger      *zap.Logger
}

type Option func(*Store)

// WithClock replaces time.Now as the source of borrow dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLoanPeriod overrides DefaultLoanPeriod.
func WithLoanPeriod(d time.Duration) Option {
	return func(s *Store) { s.loanPeriod = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		loanPeriod: DefaultLoanPeriod,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current shelf value.
func (s *Store) Snapshot() Shelf {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// IsBorrowed reports whether the book with the given id is on the shelf.
func (s *Store) IsBorrowed(id string) bool {
	return s.Snapshot().Contains(id)
}

// CanBorrow reports whether the shelf has room for another book.
func (s *Store) CanBorrow() bool {
	return !s.Snapshot().Full()
}

// Subscribe registers fn to receive every new shelf value. fn may read the
// store but must not call Borrow or Return.
func (s *Store) Subscribe(fn func(Shelf)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Borrow adds book to the shelf. It returns ErrAlreadyBorrowed or
// ErrCapacityExceeded, leaving the shelf untouched, when the book cannot be
// borrowed.
func (s *Store) Borrow(book catalog.Book) (Record, error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, rec, err := s.current.Borrow(book, s.now(), s.loanPeriod)
	if err != nil {
		s.mu.Unlock()
		s.logger.Info("borrow rejected", zap.String("book_id", book.ID), zap.Error(err))
		return Record{}, err
	}
	s.current = next
	subs := s.subscribers
	s.mu.Unlock()

	s.logger.Info("book borrowed",
		zap.String("book_id", book.ID),
		zap.Time("due_at", rec.DueAt),
		zap.Int("borrowed", next.Len()),
	)
	notify(subs, next)
	return rec, nil
}

// Return removes the book with the given id from the shelf. It returns
// ErrNotBorrowed when the id is not on the shelf.
func (s *Store) Return(id string) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, ok := s.current.Return(id)
	if !ok {
		s.mu.Unlock()
		return ErrNotBorrowed
	}
	s.current = next
	subs := s.subscribers
	s.mu.Unlock()

	s.logger.Info("book returned", zap.String("book_id", id), zap.Int("borrowed", next.Len()))
	notify(subs, next)
	return nil
}

func notify(subs []func(Shelf), sh Shelf) {
	for _, fn := range subs {
		fn(sh)
	}
}
