package shelf

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/catalog"
)

var (
	bookA = catalog.Book{ID: "a", Title: "Dune", Author: "Frank Herbert"}
	bookB = catalog.Book{ID: "b", Title: "Emma", Author: "Jane Austen"}
	bookC = catalog.Book{ID: "c", Title: "Ubik", Author: "Philip K. Dick"}
	bookD = catalog.Book{ID: "d", Title: "Hyperion", Author: "Dan Simmons"}
)

var t0 = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func ids(s Shelf) []string {
	out := make([]string, 0, s.Len())
	for _, r := range s.Records() {
		out = append(out, r.ID)
	}
	return out
}

func mustBorrow(t *testing.T, s Shelf, books ...catalog.Book) Shelf {
	t.Helper()
	for _, b := range books {
		var err error
		s, _, err = s.Borrow(b, t0, DefaultLoanPeriod)
		require.NoError(t, err)
	}
	return s
}

func TestShelf_Borrow(t *testing.T) {
	t.Run("empty shelf", func(t *testing.T) {
		var empty Shelf
		next, rec, err := empty.Borrow(bookA, t0, DefaultLoanPeriod)
		require.NoError(t, err)

		assert.Equal(t, 1, next.Len())
		assert.Equal(t, 0, empty.Len(), "receiver must not change")
		assert.Equal(t, t0, rec.BorrowedAt)
		assert.Equal(t, t0.Add(14*24*time.Hour), rec.DueAt)
		assert.Equal(t, bookA, rec.Book)
	})

	t.Run("appends in borrow order", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookB, bookA, bookC)
		if diff := cmp.Diff([]string{"b", "a", "c"}, ids(s)); diff != "" {
			t.Fatalf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("already borrowed", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookA)
		next, _, err := s.Borrow(bookA, t0, DefaultLoanPeriod)
		assert.ErrorIs(t, err, ErrAlreadyBorrowed)
		assert.Equal(t, []string{"a"}, ids(next))
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookA, bookB, bookC)
		require.True(t, s.Full())

		next, _, err := s.Borrow(bookD, t0, DefaultLoanPeriod)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 3, next.Len())
		assert.False(t, next.Contains("d"))
	})

	t.Run("duplicate check wins on a full shelf", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookA, bookB, bookC)
		_, _, err := s.Borrow(bookB, t0, DefaultLoanPeriod)
		assert.ErrorIs(t, err, ErrAlreadyBorrowed)
	})

	t.Run("custom loan period", func(t *testing.T) {
		_, rec, err := Shelf{}.Borrow(bookA, t0, 7*24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, t0.AddDate(0, 0, 7), rec.DueAt)
	})
}

func TestShelf_Return(t *testing.T) {
	t.Run("keeps the order of the rest", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookA, bookB, bookC)
		next, ok := s.Return("b")
		require.True(t, ok)

		if diff := cmp.Diff([]string{"a", "c"}, ids(next)); diff != "" {
			t.Fatalf("order mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{"a", "b", "c"}, ids(s), "receiver must not change")
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookA)
		next, ok := s.Return("zzz")
		assert.False(t, ok)
		assert.Equal(t, ids(s), ids(next))
	})

	t.Run("frees a slot", func(t *testing.T) {
		s := mustBorrow(t, Shelf{}, bookA, bookB, bookC)
		next, _ := s.Return("a")
		assert.False(t, next.Full())

		next, _, err := next.Borrow(bookD, t0, DefaultLoanPeriod)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "d"}, ids(next))
	})
}

func TestShelf_BorrowReturnRoundTrip(t *testing.T) {
	start := mustBorrow(t, Shelf{}, bookA, bookB)

	borrowed, _, err := start.Borrow(bookC, t0, DefaultLoanPeriod)
	require.NoError(t, err)
	back, ok := borrowed.Return("c")
	require.True(t, ok)

	if diff := cmp.Diff(start.Records(), back.Records()); diff != "" {
		t.Fatalf("round trip changed the shelf (-want +got):\n%s", diff)
	}
}

func TestShelf_NeverExceedsCapacity(t *testing.T) {
	books := []catalog.Book{bookA, bookB, bookC, bookD, bookA, bookC}
	var s Shelf
	for i := 0; i < 50; i++ {
		b := books[i%len(books)]
		if i%4 == 3 {
			s, _ = s.Return(b.ID)
		} else {
			s, _, _ = s.Borrow(b, t0, DefaultLoanPeriod)
		}
		assert.LessOrEqual(t, s.Len(), Capacity)

		seen := map[string]bool{}
		for _, id := range ids(s) {
			assert.False(t, seen[id], "duplicate id %q", id)
			seen[id] = true
		}
	}
}

func TestShelf_RecordsIsACopy(t *testing.T) {
	s := mustBorrow(t, Shelf{}, bookA)
	recs := s.Records()
	recs[0].ID = "mutated"
	assert.True(t, s.Contains("a"))
}
