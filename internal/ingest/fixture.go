package ingest

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bookshelf/internal/catalog"
)

var validate = validator.New()

type fixture struct {
	Books []fixtureBook `yaml:"books" validate:"dive"`
}

type fixtureBook struct {
	ID            string  `yaml:"id" validate:"required"`
	Title         string  `yaml:"title" validate:"required"`
	Author        string  `yaml:"author" validate:"required"`
	Genre         string  `yaml:"genre"`
	Rating        float64 `yaml:"rating" validate:"gte=0,lte=5"`
	Pages         int     `yaml:"pages" validate:"gte=0"`
	CoverImage    string  `yaml:"coverImage" validate:"omitempty,url"`
	Description   string  `yaml:"description"`
	PublishedYear int     `yaml:"publishedYear"`
	Language      string  `yaml:"language"`
	ISBN          string  `yaml:"isbn" validate:"omitempty,isbn"`
	Publisher     string  `yaml:"publisher"`
}

// LoadFixture reads and validates a YAML list of books.
func LoadFixture(path string) ([]catalog.Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(raw)
}

func ParseFixture(raw []byte) ([]catalog.Book, error) {
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Books))
	books := make([]catalog.Book, 0, len(f.Books))
	for _, fb := range f.Books {
		if _, dup := seen[fb.ID]; dup {
			return nil, fmt.Errorf("invalid fixture: duplicate id %q", fb.ID)
		}
		seen[fb.ID] = struct{}{}
		books = append(books, catalog.Book{
			ID:            fb.ID,
			Title:         fb.Title,
			Author:        fb.Author,
			Genre:         fb.Genre,
			Rating:        fb.Rating,
			Pages:         fb.Pages,
			CoverImage:    fb.CoverImage,
			Description:   fb.Description,
			PublishedYear: fb.PublishedYear,
			Language:      fb.Language,
			ISBN:          fb.ISBN,
			Publisher:     fb.Publisher,
		})
	}
	return books, nil
}
