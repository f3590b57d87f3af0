package catalog

import (
	"context"

	"bookshelf/internal/favorite"
)

type Service struct {
	loader    *Loader
	favorites *favorite.Set
}

func NewService(loader *Loader, favorites *favorite.Set) *Service {
	return &Service{loader: loader, favorites: favorites}
}

// List refreshes the catalog and returns the books matching query. When the
// refresh fails the last snapshot is filtered instead and refreshed is false.
func (s *Service) List(ctx context.Context, query string) (books []Book, refreshed bool) {
	all, err := s.loader.Refresh(ctx)
	if err != nil {
		all = s.loader.Books()
	} else {
		refreshed = true
	}
	return Filter(all, query), refreshed
}

// Get returns the book with the given id, refreshing once if the snapshot does
// not contain it. A failed refresh is returned as is and wraps ErrFetchFailure.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	if b, ok := s.loader.Find(id); ok {
		return b, nil
	}
	if _, err := s.loader.Refresh(ctx); err != nil {
		return Book{}, err
	}
	if b, ok := s.loader.Find(id); ok {
		return b, nil
	}
	return Book{}, ErrNotFound
}

// ToggleFavorite flips the favorite flag of an existing book.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	return s.favorites.Toggle(id), nil
}

func (s *Service) IsFavorite(id string) bool {
	return s.favorites.Has(id)
}
