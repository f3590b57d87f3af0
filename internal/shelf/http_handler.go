package shelf

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/httpx"
)

// BookFinder looks up the catalog book to borrow.
type BookFinder interface {
	Get(ctx context.Context, id string) (catalog.Book, error)
}

type HTTPHandler struct {
	store *Store
	books BookFinder
}

func NewHTTPHandler(store *Store, books BookFinder) *HTTPHandler {
	return &HTTPHandler{store: store, books: books}
}

type borrowReq struct {
	BookID string `json:"book_id" validate:"required,max=256"`
}

type statusView struct {
	Kind  Kind   `json:"kind"`
	Days  int    `json:"days"`
	Label string `json:"label"`
}

type recordView struct {
	Record
	Status statusView `json:"status"`
}

func newRecordView(rec Record, now time.Time) recordView {
	st := Classify(rec.DueAt, now)
	return recordView{
		Record: rec,
		Status: statusView{Kind: st.Kind, Days: st.Days, Label: st.Label()},
	}
}

// List handles GET /v1/shelf
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	sh := h.store.Snapshot()
	now := h.store.Now()

	records := sh.Records()
	views := make([]recordView, 0, len(records))
	for _, rec := range records {
		views = append(views, newRecordView(rec, now))
	}

	httpx.JSONSuccess(w, views, map[string]any{
		"borrowed":         sh.Len(),
		"capacity":         Capacity,
		"progress_percent": sh.Len() * 100 / Capacity,
	})
}

// Borrow handles POST /v1/shelf
func (h *HTTPHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book, err := h.books.Get(r.Context(), req.BookID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		if errors.Is(err, catalog.ErrFetchFailure) {
			httpx.JSONError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "Catalog is temporarily unavailable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	rec, err := h.store.Borrow(book)
	switch {
	case errors.Is(err, ErrAlreadyBorrowed):
		httpx.JSONError(w, http.StatusConflict, "ALREADY_BORROWED", "You already have this book in your collection.", nil)
		return
	case errors.Is(err, ErrCapacityExceeded):
		httpx.JSONError(w, http.StatusConflict, "CAPACITY_EXCEEDED", "You can only borrow up to 3 books at a time.", nil)
		return
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, newRecordView(rec, h.store.Now()))
}

// Return handles DELETE /v1/shelf/{id}
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Book id is required", nil)
		return
	}

	if err := h.store.Return(id); err != nil {
		if errors.Is(err, ErrNotBorrowed) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_BORROWED", "Book is not in your collection", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
