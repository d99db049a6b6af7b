package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloo-solutions/digest/internal/domain"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// HTTPProvider reads from the live backend. One request per call; no
// retries and no timeout beyond the caller's context.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProvider creates an HTTPProvider for baseURL. A nil client means
// http.DefaultClient.
func NewHTTPProvider(baseURL string, httpClient *http.Client) *HTTPProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the normalised base address.
func (p *HTTPProvider) BaseURL() string {
	return p.baseURL
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

func (p *HTTPProvider) ListSources(ctx context.Context) ([]domain.Source, error) {
	var sources []domain.Source
	if err := p.get(ctx, "/sources", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// ListContent accepts either the paginated wrapper or a flat array from
// the backend. A flat array is wrapped with the requested page and size.
func (p *HTTPProvider) ListContent(ctx context.Context, page, size int) (*domain.PaginatedResponse[domain.Content], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var raw json.RawMessage
	if err := p.get(ctx, "/content", params, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []domain.Content
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to parse content list: %w", err)
		}
		return &domain.PaginatedResponse[domain.Content]{
			Items: items,
			Total: len(items),
			Page:  page,
			Size:  size,
		}, nil
	}

	var resp domain.PaginatedResponse[domain.Content]
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse content page: %w", err)
	}
	return &resp, nil
}

func (p *HTTPProvider) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	var content domain.Content
	if err := p.get(ctx, "/content/"+url.PathEscape(id), nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (p *HTTPProvider) SimilarContent(ctx context.Context, id string) ([]domain.Content, error) {
	params := url.Values{}
	params.Set("piece_id", id)

	var items []domain.Content
	if err := p.get(ctx, "/content/similar", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *HTTPProvider) SearchContent(ctx context.Context, query string, method domain.SearchMethod) ([]domain.Content, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("method", method.String())

	var items []domain.Content
	if err := p.get(ctx, "/content/search", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *HTTPProvider) SearchBenchmark(ctx context.Context, query string) (*domain.SearchBenchmark, error) {
	params := url.Values{}
	params.Set("query", query)

	var bench domain.SearchBenchmark
	if err := p.get(ctx, "/content/search/benchmark", params, &bench); err != nil {
		return nil, err
	}
	return &bench, nil
}

func (p *HTTPProvider) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	target := p.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
