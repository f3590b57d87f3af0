// Package ingest fills a catalog store from a YAML fixture or from Open
// Library.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookshelf/internal/catalog"
	"bookshelf/internal/platform/openlibrary"
)

// Source is the subset of the Open Library client used for imports.
type Source interface {
	SearchBySubject(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
	GetBooksByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.BookDetails, error)
}

// Result counts what a run did.
type Result struct {
	Fetched  int
	Upserted int
	Skipped  int
}

type Service struct {
	writer     catalog.Writer
	collection string
	logger     *zap.Logger
}

func NewService(writer catalog.Writer, collection string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{writer: writer, collection: collection, logger: logger}
}

// Books upserts each book as a document of the collection.
func (s *Service) Books(ctx context.Context, books []catalog.Book) (Result, error) {
	res := Result{Fetched: len(books)}
	for _, b := range books {
		if err := s.writer.Upsert(ctx, s.collection, catalog.DocumentFromBook(b)); err != nil {
			return res, err
		}
		res.Upserted++
	}
	s.logger.Info("books imported",
		zap.String("collection", s.collection),
		zap.Int("upserted", res.Upserted),
	)
	return res, nil
}

// Subject imports up to limit books of an Open Library subject. Hits without
// an ISBN or without edition details are skipped.
func (s *Service) Subject(ctx context.Context, src Source, subject string, limit int) (Result, error) {
	search, err := src.SearchBySubject(ctx, subject, limit)
	if err != nil {
		return Result{}, fmt.Errorf("search subject %q: %w", subject, err)
	}

	var (
		res   Result
		isbns []string
		hits  = map[string]openlibrary.SearchDoc{}
	)
	for _, d := range search.Docs {
		res.Fetched++
		if len(d.ISBN) == 0 {
			res.Skipped++
			continue
		}
		isbn := d.ISBN[0]
		// Open Library can return 10 or 13 digit ISBNs. We prefer 13.
		for _, i := range d.ISBN {
			if len(i) == 13 {
				isbn = i
				break
			}
		}
		if _, dup := hits[isbn]; dup {
			res.Skipped++
			continue
		}
		isbns = append(isbns, isbn)
		hits[isbn] = d
	}

	if len(isbns) == 0 {
		return res, nil
	}
	details, err := src.GetBooksByISBN(ctx, isbns)
	if err != nil {
		return res, fmt.Errorf("fetch editions: %w", err)
	}

	var books []catalog.Book
	for _, isbn := range isbns {
		det, ok := details["ISBN:"+isbn]
		if !ok {
			res.Skipped++
			continue
		}
		books = append(books, bookFromOpenLibrary(isbn, subject, hits[isbn], det))
	}

	imported, err := s.Books(ctx, books)
	res.Upserted = imported.Upserted
	return res, err
}

// DocumentID derives a stable document id from an ISBN so repeated imports
// update the same document.
func DocumentID(isbn string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://openlibrary.org/isbn/"+isbn)).String()
}

func bookFromOpenLibrary(isbn, subject string, hit openlibrary.SearchDoc, det openlibrary.BookDetails) catalog.Book {
	b := catalog.Book{
		ID:            DocumentID(isbn),
		Title:         det.Title,
		Genre:         genreFromSubject(subject),
		Pages:         det.NumberOfPages,
		CoverImage:    det.Cover.Large,
		Description:   det.NotesText(),
		PublishedYear: hit.FirstPublishYear,
		ISBN:          isbn,
	}
	if b.Title == "" {
		b.Title = hit.Title
	}
	if len(det.Authors) > 0 {
		b.Author = det.Authors[0].Name
	} else if len(hit.AuthorNames) > 0 {
		b.Author = hit.AuthorNames[0]
	}
	if b.CoverImage == "" {
		b.CoverImage = det.Cover.Medium
	}
	if len(hit.Language) > 0 {
		b.Language = hit.Language[0]
	}
	if len(det.Publishers) > 0 {
		b.Publisher = det.Publishers[0].Name
	}
	return b
}

func genreFromSubject(subject string) string {
	subject = strings.TrimSpace(strings.ReplaceAll(subject, "_", " "))
	if subject == "" {
		return ""
	}
	return strings.ToUpper(subject[:1]) + subject[1:]
}
