package telemetry

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloo-solutions/digest/internal/domain"
	"github.com/cloo-solutions/digest/internal/feed"
)

// TracedProvider records one span per facade operation around another
// provider. Results and errors pass through untouched.
type TracedProvider struct {
	next feed.Provider
	mode string
}

var _ feed.Provider = (*TracedProvider)(nil)

// TraceProvider wraps next. mode is attached to every span as a tag.
func TraceProvider(next feed.Provider, mode feed.Mode) *TracedProvider {
	return &TracedProvider{next: next, mode: string(mode)}
}

// start opens the operation's span and leaves a breadcrumb so a later
// captured error shows which calls preceded it.
func (p *TracedProvider) start(ctx context.Context, name string, attrs SpanAttributes) (context.Context, *Span) {
	AddBreadcrumb(ctx, "feed", name+" ("+p.mode+")")
	return StartSpan(ctx, name, attrs)
}

// finish closes span and reports err to Sentry. Cancellation by the
// caller is not reported.
func (p *TracedProvider) finish(ctx context.Context, span *Span, err error) {
	span.Finish(err)
	if err != nil && !errors.Is(err, context.Canceled) {
		CaptureError(ctx, err)
	}
}

func (p *TracedProvider) ListSources(ctx context.Context) ([]domain.Source, error) {
	ctx, span := p.start(ctx, "feed.ListSources", SpanAttributes{
		Mode:      p.mode,
		Operation: "list_sources",
	})
	sources, err := p.next.ListSources(ctx)
	p.finish(ctx, span, err)
	return sources, err
}

func (p *TracedProvider) ListContent(ctx context.Context, page, size int) (*domain.PaginatedResponse[domain.Content], error) {
	ctx, span := p.start(ctx, "feed.ListContent", SpanAttributes{
		Mode:      p.mode,
		Operation: "list_content page=" + strconv.Itoa(page) + " size=" + strconv.Itoa(size),
	})
	resp, err := p.next.ListContent(ctx, page, size)
	p.finish(ctx, span, err)
	return resp, err
}

func (p *TracedProvider) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	ctx, span := p.start(ctx, "feed.GetContent", SpanAttributes{
		Mode:      p.mode,
		ContentID: id,
		Operation: "get_content",
	})
	content, err := p.next.GetContent(ctx, id)
	p.finish(ctx, span, err)
	return content, err
}

func (p *TracedProvider) SimilarContent(ctx context.Context, id string) ([]domain.Content, error) {
	ctx, span := p.start(ctx, "feed.SimilarContent", SpanAttributes{
		Mode:      p.mode,
		ContentID: id,
		Operation: "similar_content",
	})
	items, err := p.next.SimilarContent(ctx, id)
	p.finish(ctx, span, err)
	return items, err
}

func (p *TracedProvider) SearchContent(ctx context.Context, query string, method domain.SearchMethod) ([]domain.Content, error) {
	ctx, span := p.start(ctx, "feed.SearchContent", SpanAttributes{
		Mode:      p.mode,
		Query:     query,
		Method:    method.String(),
		Operation: "search_content",
	})
	items, err := p.next.SearchContent(ctx, query, method)
	p.finish(ctx, span, err)
	return items, err
}

func (p *TracedProvider) SearchBenchmark(ctx context.Context, query string) (*domain.SearchBenchmark, error) {
	ctx, span := p.start(ctx, "feed.SearchBenchmark", SpanAttributes{
		Mode:      p.mode,
		Query:     query,
		Operation: "search_benchmark",
	})
	bench, err := p.next.SearchBenchmark(ctx, query)
	p.finish(ctx, span, err)
	return bench, err
}
