package catalog

import (
	"errors"
)

var (
	// ErrNotFound is returned when a book is not in the catalog.
	ErrNotFound = errors.New("book not found")
	// ErrFetchFailure wraps any error from the catalog store while listing documents.
	ErrFetchFailure = errors.New("catalog fetch failed")
)

// DefaultRating is shown on list cards for books without a rating.
const DefaultRating = 4.8

// Book is a catalog item. Books are read-only copies of store documents.
type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre,omitempty"`
	Rating        float64 `json:"rating"`
	Pages         int     `json:"pages"`
	CoverImage    string  `json:"cover_image,omitempty"`
	Description   string  `json:"description,omitempty"`
	PublishedYear int     `json:"published_year,omitempty"`
	Language      string  `json:"language,omitempty"`
	ISBN          string  `json:"isbn,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
}

// DisplayRating returns the rating, or DefaultRating when the book has none.
func (b Book) DisplayRating() float64 {
	if b.Rating == 0 {
		return DefaultRating
	}
	return b.Rating
}

// Document is one entry of a store collection: an opaque id plus its fields.
type Document struct {
	ID     string
	Fields map[string]any
}
