package helpers

import (
	"net/http"
	"strconv"
)

// DefaultPage is the page used when the query string has no valid page value.
const DefaultPage = 1

// ParsePage reads the 1-based page number from the request query string.
// Invalid or missing values fall back to DefaultPage. Page size is fixed by
// the listing itself, not caller-controlled.
func ParsePage(r *http.Request) int {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	return page
}
