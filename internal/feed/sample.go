package feed

import (
	"context"
	"strings"

	"github.com/cloo-solutions/digest/internal/domain"
)

// Synthetic benchmark timings, in seconds. Placeholders, not measurements.
var sampleAnalysis = domain.SearchAnalysis{
	TotalTime:         0.156,
	PreprocessingTime: 0.023,
	SearchTime:        0.089,
	RankingTime:       0.044,
}

var sampleSources = []domain.Source{
	{
		ID:        "1",
		Name:      "TechCrunch",
		URL:       "https://techcrunch.com",
		CreatedAt: domain.MustParseTimestamp("2024-03-05T08:00:00Z"),
		UpdatedAt: domain.MustParseTimestamp("2024-03-05T08:00:00Z"),
	},
	{
		ID:        "2",
		Name:      "The Verge",
		URL:       "https://theverge.com",
		CreatedAt: domain.MustParseTimestamp("2024-03-05T08:01:00Z"),
		UpdatedAt: domain.MustParseTimestamp("2024-03-05T08:01:00Z"),
	},
	{
		ID:        "3",
		Name:      "Hacker News",
		URL:       "https://news.ycombinator.com",
		CreatedAt: domain.MustParseTimestamp("2024-03-05T08:02:00Z"),
		UpdatedAt: domain.MustParseTimestamp("2024-03-05T08:02:00Z"),
	},
}

var sampleContent = []domain.Content{
	{
		ID:          "1",
		SourceID:    "1",
		Title:       "OpenAI Announces GPT-5",
		Body:        "OpenAI has announced their latest language model, GPT-5, which shows unprecedented capabilities in reasoning and understanding. The model demonstrates significant improvements in areas such as mathematical problem-solving, code generation, and natural language understanding.",
		URL:         "https://techcrunch.com/openai-gpt5",
		PublishedAt: domain.MustParseTimestamp("2024-03-05T09:00:00Z"),
		UpdatedAt:   domain.MustParseTimestamp("2024-03-05T09:00:00Z"),
	},
	{
		ID:          "2",
		SourceID:    "2",
		Title:       "Apple's New MacBook Pro Review",
		Body:        "The latest MacBook Pro with M3 Max chip sets new standards for laptop performance. Our extensive testing shows improvements in both CPU and GPU performance, with some tasks completing up to 40% faster than the previous generation.",
		URL:         "https://theverge.com/macbook-pro-m3-review",
		PublishedAt: domain.MustParseTimestamp("2024-03-05T09:30:00Z"),
		UpdatedAt:   domain.MustParseTimestamp("2024-03-05T09:30:00Z"),
	},
	{
		ID:          "3",
		SourceID:    "3",
		Title:       "Rust Becomes Linux Kernel's Second Official Language",
		Body:        "In a historic move, Rust has been officially adopted as the second programming language for Linux kernel development, joining C. This decision aims to improve memory safety in kernel development while maintaining performance.",
		URL:         "https://news.ycombinator.com/rust-linux-kernel",
		PublishedAt: domain.MustParseTimestamp("2024-03-05T10:00:00Z"),
		UpdatedAt:   domain.MustParseTimestamp("2024-03-05T10:00:00Z"),
	},
}

// SampleProvider answers every operation from a fixed data set without
// network access. Lookups ignore the requested id.
type SampleProvider struct {
	sources []domain.Source
	content []domain.Content
}

// NewSampleProvider returns a provider over the built-in sample data.
func NewSampleProvider() *SampleProvider {
	return &SampleProvider{
		sources: sampleSources,
		content: sampleContent,
	}
}

// NewSampleProviderWith returns a provider over caller-supplied data.
func NewSampleProviderWith(sources []domain.Source, content []domain.Content) *SampleProvider {
	return &SampleProvider{
		sources: sources,
		content: content,
	}
}

func (p *SampleProvider) ListSources(_ context.Context) ([]domain.Source, error) {
	out := make([]domain.Source, len(p.sources))
	copy(out, p.sources)
	return out, nil
}

// ListContent slices the half-open range [(page-1)*size, page*size),
// clamped to the data set. Total is always the full data set length.
func (p *SampleProvider) ListContent(_ context.Context, page, size int) (*domain.PaginatedResponse[domain.Content], error) {
	total := len(p.content)
	start := total
	if offset, ok := domain.PageOffset(page, size); ok {
		start = min(offset, total)
	}
	end := start + min(max(size, 0), total-start)

	return &domain.PaginatedResponse[domain.Content]{
		Items: domain.CloneContents(p.content[start:end]),
		Total: total,
		Page:  page,
		Size:  size,
	}, nil
}

func (p *SampleProvider) GetContent(_ context.Context, _ string) (*domain.Content, error) {
	if len(p.content) == 0 {
		return nil, domain.ErrContentNotFound
	}
	c := p.content[0].Clone()
	return &c, nil
}

func (p *SampleProvider) SimilarContent(_ context.Context, _ string) ([]domain.Content, error) {
	n := min(len(p.content), MaxSimilar)
	return domain.CloneContents(p.content[:n]), nil
}

// SearchContent ignores method: both strategies use substring matching.
func (p *SampleProvider) SearchContent(_ context.Context, query string, _ domain.SearchMethod) ([]domain.Content, error) {
	return p.match(query), nil
}

func (p *SampleProvider) SearchBenchmark(_ context.Context, query string) (*domain.SearchBenchmark, error) {
	return &domain.SearchBenchmark{
		Query:    query,
		Results:  p.match(query),
		Analysis: sampleAnalysis,
	}, nil
}

// match is a case-insensitive substring match on title or body.
func (p *SampleProvider) match(query string) []domain.Content {
	needle := strings.ToLower(query)
	results := make([]domain.Content, 0)
	for _, item := range p.content {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Body), needle) {
			results = append(results, item.Clone())
		}
	}
	return results
}
