package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field names of a book document.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldGenre         = "genre"
	FieldRating        = "rating"
	FieldPages         = "pages"
	FieldCoverImage    = "coverImage"
	FieldDescription   = "description"
	FieldPublishedYear = "publishedYear"
	FieldLanguage      = "language"
	FieldISBN          = "isbn"
	FieldPublisher     = "publisher"
)

// BookFromDocument maps a store document to a Book. Missing or mistyped fields
// become zero values.
func BookFromDocument(doc Document) Book {
	f := doc.Fields
	return Book{
		ID:            doc.ID,
		Title:         stringField(f, FieldTitle),
		Author:        stringField(f, FieldAuthor),
		Genre:         stringField(f, FieldGenre),
		Rating:        floatField(f, FieldRating),
		Pages:         intField(f, FieldPages),
		CoverImage:    stringField(f, FieldCoverImage),
		Description:   stringField(f, FieldDescription),
		PublishedYear: intField(f, FieldPublishedYear),
		Language:      stringField(f, FieldLanguage),
		ISBN:          stringField(f, FieldISBN),
		Publisher:     stringField(f, FieldPublisher),
	}
}

// DocumentFromBook is the inverse of BookFromDocument, used when seeding a store.
// Zero-valued fields are left out.
func DocumentFromBook(b Book) Document {
	fields := map[string]any{}
	put := func(k string, v any, zero bool) {
		if !zero {
			fields[k] = v
		}
	}
	put(FieldTitle, b.Title, b.Title == "")
	put(FieldAuthor, b.Author, b.Author == "")
	put(FieldGenre, b.Genre, b.Genre == "")
	put(FieldRating, b.Rating, b.Rating == 0)
	put(FieldPages, b.Pages, b.Pages == 0)
	put(FieldCoverImage, b.CoverImage, b.CoverImage == "")
	put(FieldDescription, b.Description, b.Description == "")
	put(FieldPublishedYear, b.PublishedYear, b.PublishedYear == 0)
	put(FieldLanguage, b.Language, b.Language == "")
	put(FieldISBN, b.ISBN, b.ISBN == "")
	put(FieldPublisher, b.Publisher, b.Publisher == "")
	return Document{ID: b.ID, Fields: fields}
}

func stringField(f map[string]any, key string) string {
	s, _ := f[key].(string)
	return s
}

func floatField(f map[string]any, key string) float64 {
	v, ok := number(f[key])
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func intField(f map[string]any, key string) int {
	v, ok := number(f[key])
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

// number accepts the numeric types produced by the JSON, BSON and Firestore
// decoders, and numeric strings.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
