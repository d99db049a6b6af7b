package domain

import (
	"fmt"
	"math"
)

// Source represents a publisher or feed that content is aggregated from
type Source struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Content represents one aggregated item attributed to a Source.
// Similar is only populated on detail-style responses.
type Content struct {
	ID          string    `json:"id"`
	SourceID    string    `json:"source_id"`
	Title       string    `json:"title"`
	Body        string    `json:"content"`
	URL         string    `json:"url"`
	PublishedAt Timestamp `json:"published_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	Similar     []Content `json:"similar,omitempty"`
}

// Clone returns a deep copy of the content item, including Similar.
func (c Content) Clone() Content {
	out := c
	if c.Similar != nil {
		out.Similar = CloneContents(c.Similar)
	}
	return out
}

// CloneContents deep-copies a slice of content items.
func CloneContents(items []Content) []Content {
	if items == nil {
		return nil
	}
	out := make([]Content, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// SearchMethod selects the backend ranking strategy
type SearchMethod string

const (
	SearchMethodFTS      SearchMethod = "fts"
	SearchMethodSemantic SearchMethod = "semantic"
)

// DefaultSearchMethod is used when a caller does not pick one.
const DefaultSearchMethod = SearchMethodFTS

// IsValid checks if the search method is one of the known variants
func (m SearchMethod) IsValid() bool {
	switch m {
	case SearchMethodFTS, SearchMethodSemantic:
		return true
	}
	return false
}

// String returns the wire value
func (m SearchMethod) String() string {
	return string(m)
}

// ParseSearchMethod converts a wire value into a SearchMethod.
// An empty string yields DefaultSearchMethod.
func ParseSearchMethod(s string) (SearchMethod, error) {
	if s == "" {
		return DefaultSearchMethod, nil
	}
	m := SearchMethod(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidSearchMethod, s)
	}
	return m, nil
}

// PaginatedResponse is one page of an ordered collection.
// Page is 1-based; Total counts items across all pages.
type PaginatedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// PageOffset returns (page-1)*size. ok is false when the product does not
// fit in an int; such a page lies past any data set.
func PageOffset(page, size int) (offset int, ok bool) {
	if page < 1 || size < 1 {
		return 0, true
	}
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}

// Offset returns the zero-based index of the first item on the page,
// saturating at math.MaxInt.
func (p PaginatedResponse[T]) Offset() int {
	offset, ok := PageOffset(p.Page, p.Size)
	if !ok {
		return math.MaxInt
	}
	return offset
}

// HasMore reports whether items exist past this page.
func (p PaginatedResponse[T]) HasMore() bool {
	offset := p.Offset()
	if offset >= p.Total {
		return false
	}
	return p.Total-offset > len(p.Items)
}

// SearchAnalysis is the timing breakdown of a search, in seconds
type SearchAnalysis struct {
	TotalTime         float64 `json:"total_time"`
	PreprocessingTime float64 `json:"preprocessing_time"`
	SearchTime        float64 `json:"search_time"`
	RankingTime       float64 `json:"ranking_time"`
}

// StagesTime sums the preprocessing, search and ranking stages.
func (a SearchAnalysis) StagesTime() float64 {
	return a.PreprocessingTime + a.SearchTime + a.RankingTime
}

// SearchBenchmark is a search result annotated with timing instrumentation
type SearchBenchmark struct {
	Query    string         `json:"query"`
	Results  []Content      `json:"results"`
	Analysis SearchAnalysis `json:"analysis"`
}
