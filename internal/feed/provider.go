// Package feed is the search and retrieval facade over the digest backend.
//
// A Facade dispatches every operation to one Provider chosen at
// construction: HTTPProvider talks to the live /api/v1 service and
// SampleProvider answers from a fixed in-memory data set with the same
// response shapes.
package feed

import (
	"context"

	"github.com/cloo-solutions/digest/internal/domain"
)

// MaxSimilar caps the number of similar items returned to callers.
const MaxSimilar = 5

// Provider is the response contract shared by the live transport and the
// sample data generator.
type Provider interface {
	ListSources(ctx context.Context) ([]domain.Source, error)
	ListContent(ctx context.Context, page, size int) (*domain.PaginatedResponse[domain.Content], error)
	GetContent(ctx context.Context, id string) (*domain.Content, error)
	SimilarContent(ctx context.Context, id string) ([]domain.Content, error)
	SearchContent(ctx context.Context, query string, method domain.SearchMethod) ([]domain.Content, error)
	SearchBenchmark(ctx context.Context, query string) (*domain.SearchBenchmark, error)
}

var (
	_ Provider = (*HTTPProvider)(nil)
	_ Provider = (*SampleProvider)(nil)
	_ Provider = (*Facade)(nil)
)
