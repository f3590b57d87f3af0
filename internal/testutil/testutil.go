// Package testutil holds helpers shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"bookshelf/internal/catalog"
)

// Dune, Emma and Hyperion are small catalog fixtures. Hyperion has no
// rating so the list card falls back to the default.
var (
	Dune = catalog.Book{
		ID:            "dune",
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		Rating:        4.6,
		Pages:         688,
		PublishedYear: 1965,
		ISBN:          "9780441172719",
	}
	Emma = catalog.Book{
		ID:     "emma",
		Title:  "Emma",
		Author: "Jane Austen",
		Genre:  "Classic",
		Rating: 4.0,
	}
	Hyperion = catalog.Book{
		ID:     "hyperion",
		Title:  "Hyperion",
		Author: "Dan Simmons",
		Genre:  "Science Fiction",
	}
	Ubik = catalog.Book{
		ID:     "ubik",
		Title:  "Ubik",
		Author: "Philip K. Dick",
		Rating: 4.1,
	}
)

// Books returns the fixtures in id order.
func Books() []catalog.Book {
	return []catalog.Book{Dune, Emma, Hyperion, Ubik}
}

// Documents returns the fixtures as store documents in id order.
func Documents() []catalog.Document {
	books := Books()
	docs := make([]catalog.Document, 0, len(books))
	for _, b := range books {
		docs = append(docs, catalog.DocumentFromBook(b))
	}
	return docs
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse is a decoded response envelope.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response body as a JSON object.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" member of a success envelope as an object.
func (r RecordResponse) Data() map[string]interface{} {
	m, _ := r.Body["data"].(map[string]interface{})
	return m
}

// DataList returns the "data" member of a success envelope as a list.
func (r RecordResponse) DataList() []interface{} {
	l, _ := r.Body["data"].([]interface{})
	return l
}

// Meta returns the "meta" member of the envelope.
func (r RecordResponse) Meta() map[string]interface{} {
	m, _ := r.Body["meta"].(map[string]interface{})
	return m
}

// ErrorCode returns error.code of an error envelope.
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}
