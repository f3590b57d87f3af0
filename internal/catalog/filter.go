package catalog

import "strings"

// Filter returns the books whose title or author contains query, ignoring
// case. An empty query matches every book. The input slice is not modified and
// the result keeps catalog order.
func Filter(books []Book, query string) []Book {
	q := strings.ToLower(query)
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out
}
