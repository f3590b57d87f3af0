package catalog

import (
	"errors"
	"net/http"

	"bookshelf/internal/httpx"
)

// BorrowState reports the shelf state shown on the detail view.
type BorrowState interface {
	IsBorrowed(id string) bool
	CanBorrow() bool
}

type HTTPHandler struct {
	service *Service
	shelf   BorrowState
}

func NewHTTPHandler(service *Service, shelf BorrowState) *HTTPHandler {
	return &HTTPHandler{service: service, shelf: shelf}
}

type bookCard struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Genre      string  `json:"genre,omitempty"`
	Rating     float64 `json:"rating"`
	CoverImage string  `json:"cover_image,omitempty"`
}

type bookDetail struct {
	Book
	Favorite  bool `json:"favorite"`
	Borrowed  bool `json:"borrowed"`
	CanBorrow bool `json:"can_borrow"`
}

// List handles GET /v1/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	books, refreshed := h.service.List(r.Context(), q)
	cards := make([]bookCard, 0, len(books))
	for _, b := range books {
		cards = append(cards, bookCard{
			ID:         b.ID,
			Title:      b.Title,
			Author:     b.Author,
			Genre:      b.Genre,
			Rating:     b.DisplayRating(),
			CoverImage: b.CoverImage,
		})
	}

	httpx.JSONSuccess(w, cards, map[string]any{
		"total":     len(cards),
		"query":     q,
		"refreshed": refreshed,
	})
}

// Get handles GET /v1/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Book id is required", nil)
		return
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	borrowed := h.shelf.IsBorrowed(id)
	httpx.JSONSuccess(w, bookDetail{
		Book:      book,
		Favorite:  h.service.IsFavorite(id),
		Borrowed:  borrowed,
		CanBorrow: !borrowed && h.shelf.CanBorrow(),
	}, nil)
}

// ToggleFavorite handles POST /v1/books/{id}/favorite
func (h *HTTPHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Book id is required", nil)
		return
	}

	fav, err := h.service.ToggleFavorite(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	httpx.JSONSuccess(w, map[string]any{"id": id, "favorite": fav}, nil)
}

// writeLookupError maps a failed book lookup to its HTTP status.
func writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrFetchFailure):
		httpx.JSONError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "Catalog is temporarily unavailable", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
