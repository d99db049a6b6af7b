package feed

import (
	"context"
	"math"
	"testing"

	"github.com/cloo-solutions/digest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedPageLen(page, size, total int) int {
	return max(0, min(size, total-(page-1)*size))
}

func TestSampleProvider_ListContentPagination(t *testing.T) {
	p := NewSampleProvider()
	ctx := context.Background()
	total := len(sampleContent)

	for page := 1; page <= 5; page++ {
		for size := 1; size <= 5; size++ {
			resp, err := p.ListContent(ctx, page, size)
			require.NoError(t, err)

			assert.Len(t, resp.Items, expectedPageLen(page, size, total), "page=%d size=%d", page, size)
			assert.Equal(t, total, resp.Total)
			assert.Equal(t, page, resp.Page)
			assert.Equal(t, size, resp.Size)
			assert.LessOrEqual(t, len(resp.Items), resp.Size)
		}
	}
}

func TestSampleProvider_ListContentHugeSizes(t *testing.T) {
	f := New(Config{UseSampleData: true})
	ctx := context.Background()

	tests := []struct {
		name string
		page int
		size int
		want int
	}{
		{"first page, max size", 1, math.MaxInt, 3},
		{"offset overflows", 3, math.MaxInt/2 + 1, 0},
		{"offset overflows with max size", 2, math.MaxInt, 0},
		{"max page", math.MaxInt, 2, 0},
		{"max page and size", math.MaxInt, math.MaxInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.ListContent(ctx, tt.page, tt.size)
			require.NoError(t, err)
			assert.Len(t, resp.Items, tt.want)
			assert.Equal(t, len(sampleContent), resp.Total)
			assert.False(t, resp.HasMore())
		})
	}
}

func TestSampleProvider_ListContentFirstPageStartsAtZero(t *testing.T) {
	p := NewSampleProvider()

	resp, err := p.ListContent(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "1", resp.Items[0].ID)
	assert.Equal(t, "2", resp.Items[1].ID)

	resp, err = p.ListContent(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "3", resp.Items[0].ID)
}

func TestSampleProvider_Search(t *testing.T) {
	p := NewSampleProvider()
	ctx := context.Background()

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{"lowercase title match", "gpt", []string{"OpenAI Announces GPT-5"}},
		{"uppercase query", "RUST", []string{"Rust Becomes Linux Kernel's Second Official Language"}},
		{"body only match", "m3 max", []string{"Apple's New MacBook Pro Review"}},
		{"no match", "zzz-no-match", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range []domain.SearchMethod{domain.SearchMethodFTS, domain.SearchMethodSemantic} {
				results, err := p.SearchContent(ctx, tt.query, method)
				require.NoError(t, err)
				require.NotNil(t, results)

				titles := make([]string, 0, len(results))
				for _, r := range results {
					titles = append(titles, r.Title)
				}
				assert.Equal(t, tt.titles, titles)
			}
		})
	}
}

func TestSampleProvider_SearchBenchmarkConstantAnalysis(t *testing.T) {
	p := NewSampleProvider()

	for _, q := range []string{"gpt", "RUST", "zzz-no-match", ""} {
		bench, err := p.SearchBenchmark(context.Background(), q)
		require.NoError(t, err)

		assert.Equal(t, q, bench.Query)
		assert.Equal(t, 0.156, bench.Analysis.TotalTime)
		assert.Equal(t, 0.023, bench.Analysis.PreprocessingTime)
		assert.Equal(t, 0.089, bench.Analysis.SearchTime)
		assert.Equal(t, 0.044, bench.Analysis.RankingTime)
	}
}

func TestSampleProvider_SimilarContent(t *testing.T) {
	p := NewSampleProvider()

	items, err := p.SimilarContent(context.Background(), "does-not-matter")
	require.NoError(t, err)
	assert.Len(t, items, len(sampleContent))

	many := make([]domain.Content, 8)
	for i := range many {
		many[i] = domain.Content{ID: string(rune('a' + i))}
	}
	items, err = NewSampleProviderWith(nil, many).SimilarContent(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, items, MaxSimilar)
	assert.Equal(t, "a", items[0].ID)
}

func TestSampleProvider_GetContentIgnoresID(t *testing.T) {
	p := NewSampleProvider()

	for _, id := range []string{"1", "3", "unknown"} {
		c, err := p.GetContent(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "1", c.ID)
		assert.Equal(t, "OpenAI Announces GPT-5", c.Title)
	}
}

func TestSampleProvider_GetContentEmptySet(t *testing.T) {
	p := NewSampleProviderWith(nil, nil)

	_, err := p.GetContent(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
}

func TestSampleProvider_ResultsAreCopies(t *testing.T) {
	p := NewSampleProvider()
	ctx := context.Background()

	sources, err := p.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	sources[0].Name = "mutated"

	page, err := p.ListContent(ctx, 1, 10)
	require.NoError(t, err)
	page.Items[0].Title = "mutated"

	again, err := p.ListSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TechCrunch", again[0].Name)

	c, err := p.GetContent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "OpenAI Announces GPT-5", c.Title)
}

func TestSampleContent_ReferencesSampleSources(t *testing.T) {
	ids := make(map[string]bool)
	for _, s := range sampleSources {
		ids[s.ID] = true
	}
	for _, c := range sampleContent {
		assert.True(t, ids[c.SourceID], "content %s references unknown source %s", c.ID, c.SourceID)
	}
}
