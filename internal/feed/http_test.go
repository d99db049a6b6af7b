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
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPProvider(srv.URL+"/api/v1", srv.Client())
}

func TestHTTPProvider_ListSources(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sources", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","name":"TechCrunch","url":"https://techcrunch.com","created_at":"2024-03-05T08:00:00","updated_at":"2024-03-05T08:00:00"}]`))
	})

	sources, err := p.ListSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "TechCrunch", sources[0].Name)
	assert.Equal(t, 2024, sources[0].CreatedAt.Year())
}

func TestHTTPProvider_ListContentPaginatedWrapper(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "1", r.URL.Query().Get("size"))

		_, _ = w.Write([]byte(`{"items":[{"id":"2","source_id":"2","title":"B"}],"total":3,"page":2,"size":1}`))
	})

	resp, err := p.ListContent(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2", resp.Items[0].ID)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 1, resp.Size)
}

func TestHTTPProvider_ListContentFlatArray(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(` [{"id":"1","title":"A"},{"id":"2","title":"B"}]`))
	})

	resp, err := p.ListContent(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Size)
}

func TestHTTPProvider_GetContentEscapesID(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":"a/b","title":"Slashed","similar":[{"id":"x"}]}`))
	})

	c, err := p.GetContent(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", c.ID)
	require.Len(t, c.Similar, 1)
	assert.Equal(t, "x", c.Similar[0].ID)
}

func TestHTTPProvider_SimilarContent(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content/similar", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("piece_id"))
		_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
	})

	items, err := p.SimilarContent(context.Background(), "42")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestHTTPProvider_SearchContent(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content/search", r.URL.Path)
		assert.Equal(t, "rust kernel", r.URL.Query().Get("query"))
		assert.Equal(t, "semantic", r.URL.Query().Get("method"))
		_, _ = w.Write([]byte(`[{"id":"3","title":"Rust"}]`))
	})

	items, err := p.SearchContent(context.Background(), "rust kernel", domain.SearchMethodSemantic)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ID)
}

func TestHTTPProvider_SearchBenchmark(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content/search/benchmark", r.URL.Path)
		assert.Equal(t, "gpt", r.URL.Query().Get("query"))
		assert.Empty(t, r.URL.Query().Get("method"))
		_, _ = w.Write([]byte(`{"query":"gpt","results":[{"id":"1"}],"analysis":{"total_time":0.5,"preprocessing_time":0.1,"search_time":0.2,"ranking_time":0.1}}`))
	})

	bench, err := p.SearchBenchmark(context.Background(), "gpt")
	require.NoError(t, err)
	assert.Equal(t, "gpt", bench.Query)
	assert.Len(t, bench.Results, 1)
	assert.Equal(t, 0.5, bench.Analysis.TotalTime)
}

func TestHTTPProvider_NonSuccessStatus(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	})

	_, err := p.GetContent(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Not Found")
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPProvider_MalformedBody(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	sources, err := p.ListSources(context.Background())
	require.Error(t, err)
	assert.Nil(t, sources)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestHTTPProvider_UnreachableEndpoint(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := NewHTTPProvider("http://"+addr+"/api/v1", nil)

	sources, err := p.ListSources(context.Background())
	require.Error(t, err)
	assert.Nil(t, sources)
	assert.Contains(t, err.Error(), "request failed")
}

func TestHTTPProvider_ContextCancelled(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ListSources(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPProvider_Defaults(t *testing.T) {
	p := NewHTTPProvider("", nil)
	assert.Equal(t, DefaultBaseURL, p.BaseURL())

	p = NewHTTPProvider("http://example.com/api/v1/", nil)
	assert.Equal(t, "http://example.com/api/v1", p.BaseURL())
}
