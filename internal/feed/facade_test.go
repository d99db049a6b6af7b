package feed

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloo-solutions/digest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ListSources(ctx context.Context) ([]domain.Source, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Source), args.Error(1)
}

func (m *MockProvider) ListContent(ctx context.Context, page, size int) (*domain.PaginatedResponse[domain.Content], error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResponse[domain.Content]), args.Error(1)
}

func (m *MockProvider) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Content), args.Error(1)
}

func (m *MockProvider) SimilarContent(ctx context.Context, id string) ([]domain.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Content), args.Error(1)
}

func (m *MockProvider) SearchContent(ctx context.Context, query string, method domain.SearchMethod) ([]domain.Content, error) {
	args := m.Called(ctx, query, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Content), args.Error(1)
}

func (m *MockProvider) SearchBenchmark(ctx context.Context, query string) (*domain.SearchBenchmark, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchBenchmark), args.Error(1)
}

func TestNew_SelectsProviderByConfig(t *testing.T) {
	sample := New(Config{UseSampleData: true})
	assert.Equal(t, ModeSample, sample.Mode())
	assert.IsType(t, &SampleProvider{}, sample.Provider())

	live := New(Config{BaseURL: "http://backend.test/api/v1"})
	assert.Equal(t, ModeLive, live.Mode())
	require.IsType(t, &HTTPProvider{}, live.Provider())
	assert.Equal(t, "http://backend.test/api/v1", live.Provider().(*HTTPProvider).BaseURL())
}

func TestFacade_ValidationSkipsProvider(t *testing.T) {
	ctx := context.Background()
	m := new(MockProvider)
	f := NewWithProvider(m, ModeLive)

	_, err := f.ListContent(ctx, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	_, err = f.ListContent(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)

	_, err = f.GetContent(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrMissingContentID)

	_, err = f.SimilarContent(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingContentID)

	_, err = f.SearchContent(ctx, "", domain.SearchMethodFTS)
	assert.ErrorIs(t, err, domain.ErrMissingQuery)

	_, err = f.SearchContent(ctx, "gpt", domain.SearchMethod("vector"))
	assert.ErrorIs(t, err, domain.ErrInvalidSearchMethod)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))

	_, err = f.SearchBenchmark(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingQuery)

	m.AssertNotCalled(t, "ListContent", mock.Anything, mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "GetContent", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "SimilarContent", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "SearchContent", mock.Anything, mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "SearchBenchmark", mock.Anything, mock.Anything)
}

func TestFacade_SimilarContentTruncates(t *testing.T) {
	ctx := context.Background()
	m := new(MockProvider)
	items := make([]domain.Content, 9)
	for i := range items {
		items[i] = domain.Content{ID: string(rune('a' + i))}
	}
	m.On("SimilarContent", ctx, "1").Return(items, nil)

	f := NewWithProvider(m, ModeLive)
	got, err := f.SimilarContent(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, got, MaxSimilar)
	assert.Equal(t, "e", got[4].ID)
	m.AssertExpectations(t)
}

func TestFacade_PropagatesProviderErrors(t *testing.T) {
	ctx := context.Background()
	m := new(MockProvider)
	boom := &APIError{StatusCode: http.StatusInternalServerError, Body: "boom"}
	m.On("SearchContent", ctx, "gpt", domain.SearchMethodSemantic).Return(nil, boom)
	m.On("ListSources", ctx).Return(nil, boom)

	f := NewWithProvider(m, ModeLive)

	results, err := f.SearchContent(ctx, "gpt", domain.SearchMethodSemantic)
	assert.Nil(t, results)
	assert.Same(t, boom, err)

	sources, err := f.ListSources(ctx)
	assert.Nil(t, sources)
	assert.True(t, errors.Is(err, boom))
	m.AssertExpectations(t)
}

func TestFacade_LiveFailureDoesNotFallBackToSample(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	f := New(Config{BaseURL: "http://" + addr + "/api/v1"})
	ctx := context.Background()

	sources, err := f.ListSources(ctx)
	assert.Error(t, err)
	assert.Nil(t, sources)

	page, err := f.ListContent(ctx, 1, 10)
	assert.Error(t, err)
	assert.Nil(t, page)

	results, err := f.SearchContent(ctx, "gpt", domain.SearchMethodFTS)
	assert.Error(t, err)
	assert.Nil(t, results)
}

// summarize only depends on the declared shapes, so it must behave the
// same whichever data source produced them.
func summarize(t *testing.T, f *Facade) (int, int, string, int, int, float64) {
	t.Helper()
	ctx := context.Background()

	sources, err := f.ListSources(ctx)
	require.NoError(t, err)
	page, err := f.ListContent(ctx, 1, 2)
	require.NoError(t, err)
	c, err := f.GetContent(ctx, "1")
	require.NoError(t, err)
	similar, err := f.SimilarContent(ctx, "1")
	require.NoError(t, err)
	bench, err := f.SearchBenchmark(ctx, "gpt")
	require.NoError(t, err)

	return len(sources), page.Total, c.Title, len(similar), len(bench.Results), bench.Analysis.TotalTime
}

func TestFacade_SameShapesInBothModes(t *testing.T) {
	sample := New(Config{UseSampleData: true})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/sources":
			_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"},{"id":"3"}]`))
		case "/api/v1/content":
			_, _ = w.Write([]byte(`{"items":[{"id":"1"},{"id":"2"}],"total":3,"page":1,"size":2}`))
		case "/api/v1/content/1":
			_, _ = w.Write([]byte(`{"id":"1","title":"OpenAI Announces GPT-5"}`))
		case "/api/v1/content/similar":
			_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"},{"id":"3"}]`))
		case "/api/v1/content/search/benchmark":
			_, _ = w.Write([]byte(`{"query":"gpt","results":[{"id":"1"}],"analysis":{"total_time":0.156}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	live := New(Config{BaseURL: srv.URL + "/api/v1", HTTPClient: srv.Client()})

	ns, total, title, nsim, nres, tt := summarize(t, sample)
	ls, ltotal, ltitle, lsim, lres, ltt := summarize(t, live)

	assert.Equal(t, ns, ls)
	assert.Equal(t, total, ltotal)
	assert.Equal(t, title, ltitle)
	assert.Equal(t, nsim, lsim)
	assert.Equal(t, nres, lres)
	assert.Equal(t, tt, ltt)
}
