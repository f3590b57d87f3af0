package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func titles(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestFilter(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "2", Title: "Emma", Author: "Jane Austen"},
		{ID: "3", Title: "Dune Messiah", Author: "Frank Herbert"},
		{ID: "4", Title: "Persuasion", Author: "Jane Austen"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match ignores case", "dune", []string{"Dune", "Dune Messiah"}},
		{"author match", "AUSTEN", []string{"Emma", "Persuasion"}},
		{"substring in the middle", "rbe", []string{"Dune", "Dune Messiah"}},
		{"no match", "xyz", []string{}},
		{"empty query keeps everything", "", []string{"Dune", "Emma", "Dune Messiah", "Persuasion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(books, tt.query)
			if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
				t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	books := []Book{{ID: "1", Title: "Dune"}, {ID: "2", Title: "Emma"}}
	before := append([]Book(nil), books...)

	got := Filter(books, "")
	got[0].Title = "changed"

	assert.Equal(t, before, books)
}

func TestFilter_Idempotent(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "2", Title: "Emma", Author: "Jane Austen"},
	}
	once := Filter(books, "an")
	twice := Filter(once, "an")
	assert.Equal(t, once, twice)
}

func TestFilter_NilInput(t *testing.T) {
	got := Filter(nil, "dune")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
