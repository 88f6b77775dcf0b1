package model

// SearchResultItem is one hit from a document search. Read-only; lives for the
// duration of one search response.
type SearchResultItem struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Tags     []string `json:"tags"`
}
