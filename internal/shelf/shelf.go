package shelf

import (
	"errors"
	"time"

	"bookshelf/internal/catalog"
)

// Capacity is the maximum number of books a shelf can hold at once.
const Capacity = 3

// DefaultLoanPeriod is the time between borrowing a book and its due date.
const DefaultLoanPeriod = 14 * 24 * time.Hour

var (
	ErrAlreadyBorrowed  = errors.New("book already borrowed")
	ErrCapacityExceeded = errors.New("borrowing limit reached")
	ErrNotBorrowed      = errors.New("book not borrowed")
)

// Record is a catalog book together with its loan dates.
type Record struct {
	catalog.Book
	BorrowedAt time.Time `json:"borrowed_at"`
	DueAt      time.Time `json:"due_at"`
}

// Shelf is the ordered set of borrowed records. A Shelf is a value: Borrow and
// Return hand back a new Shelf and never touch the receiver's records.
type Shelf struct {
	records []Record
}

// Len returns the number of borrowed records.
func (s Shelf) Len() int {
	return len(s.records)
}

// Full reports whether the shelf is at capacity.
func (s Shelf) Full() bool {
	return len(s.records) >= Capacity
}

// Contains reports whether a record with the given book id is on the shelf.
func (s Shelf) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// Records returns a copy of the records in borrow order.
func (s Shelf) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s Shelf) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Borrow appends book to the shelf. The duplicate check runs before the
// capacity check, so borrowing a book that is already on a full shelf reports
// ErrAlreadyBorrowed. On error the receiver is returned unchanged.
func (s Shelf) Borrow(book catalog.Book, now time.Time, loanPeriod time.Duration) (Shelf, Record, error) {
	if s.Contains(book.ID) {
		return s, Record{}, ErrAlreadyBorrowed
	}
	if s.Full() {
		return s, Record{}, ErrCapacityExceeded
	}

	rec := Record{
		Book:       book,
		BorrowedAt: now,
		DueAt:      now.Add(loanPeriod),
	}
	next := make([]Record, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, rec)
	return Shelf{records: next}, rec, nil
}

// Return removes the record with the given id, keeping the order of the rest.
// The boolean is false, and the receiver is returned as is, when no record
// matches.
func (s Shelf) Return(id string) (Shelf, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false
	}
	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	return Shelf{records: next}, true
}
