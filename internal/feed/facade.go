package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloo-solutions/digest/internal/domain"
)

// Mode names the data source a Facade dispatches to.
type Mode string

const (
	ModeLive   Mode = "live"
	ModeSample Mode = "sample"
)

// Config selects the facade's data source. It is read once by New.
type Config struct {
	UseSampleData bool
	BaseURL       string
	HTTPClient    *http.Client
}

// Facade validates inputs and forwards each call to its Provider.
// A failing live call is returned as is; there is no fallback to sample
// data.
type Facade struct {
	provider Provider
	mode     Mode
}

// New builds a Facade for cfg.
func New(cfg Config) *Facade {
	if cfg.UseSampleData {
		return &Facade{provider: NewSampleProvider(), mode: ModeSample}
	}
	return &Facade{provider: NewHTTPProvider(cfg.BaseURL, cfg.HTTPClient), mode: ModeLive}
}

// NewWithProvider wraps an arbitrary provider, e.g. a decorated one.
func NewWithProvider(p Provider, mode Mode) *Facade {
	return &Facade{provider: p, mode: mode}
}

// Mode reports which data source the facade was built for.
func (f *Facade) Mode() Mode {
	return f.mode
}

// Provider returns the underlying provider.
func (f *Facade) Provider() Provider {
	return f.provider
}

func (f *Facade) ListSources(ctx context.Context) ([]domain.Source, error) {
	return f.provider.ListSources(ctx)
}

func (f *Facade) ListContent(ctx context.Context, page, size int) (*domain.PaginatedResponse[domain.Content], error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidPage, page)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidPageSize, size)
	}
	return f.provider.ListContent(ctx, page, size)
}

func (f *Facade) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrMissingContentID
	}
	return f.provider.GetContent(ctx, id)
}

// SimilarContent returns at most MaxSimilar items whatever the provider
// answers.
func (f *Facade) SimilarContent(ctx context.Context, id string) ([]domain.Content, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrMissingContentID
	}
	items, err := f.provider.SimilarContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(items) > MaxSimilar {
		items = items[:MaxSimilar]
	}
	return items, nil
}

func (f *Facade) SearchContent(ctx context.Context, query string, method domain.SearchMethod) ([]domain.Content, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrMissingQuery
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: got %q", domain.ErrInvalidSearchMethod, method)
	}
	return f.provider.SearchContent(ctx, query, method)
}

func (f *Facade) SearchBenchmark(ctx context.Context, query string) (*domain.SearchBenchmark, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrMissingQuery
	}
	return f.provider.SearchBenchmark(ctx, query)
}
