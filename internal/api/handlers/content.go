package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cloo-solutions/digest/internal/api"
	"github.com/cloo-solutions/digest/internal/domain"
	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPage = 1
	defaultSize = 10
)

// ContentHandler serves the /api/v1 read endpoints from a facade.
type ContentHandler struct {
	facade *feed.Facade
}

func NewContentHandler(facade *feed.Facade) *ContentHandler {
	return &ContentHandler{facade: facade}
}

func (h *ContentHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.facade.ListSources(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, nonNil(sources))
}

func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", defaultPage)
	if err != nil {
		api.HandleError(w, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "page must be an integer", err))
		return
	}
	// page_size is the older backend's name for size
	sizeKey := "size"
	if q := r.URL.Query(); !q.Has("size") && q.Has("page_size") {
		sizeKey = "page_size"
	}
	size, err := intParam(r, sizeKey, defaultSize)
	if err != nil {
		api.HandleError(w, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, sizeKey+" must be an integer", err))
		return
	}

	resp, err := h.facade.ListContent(r.Context(), page, size)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp.Items = nonNil(resp.Items)
	api.JSON(w, http.StatusOK, resp)
}

func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	content, err := h.facade.GetContent(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, content)
}

func (h *ContentHandler) SimilarContent(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("piece_id")

	items, err := h.facade.SimilarContent(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, nonNil(items))
}

func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	method, err := domain.ParseSearchMethod(r.URL.Query().Get("method"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items, err := h.facade.SearchContent(r.Context(), r.URL.Query().Get("query"), method)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, nonNil(items))
}

func (h *ContentHandler) SearchBenchmark(w http.ResponseWriter, r *http.Request) {
	bench, err := h.facade.SearchBenchmark(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	bench.Results = nonNil(bench.Results)
	api.JSON(w, http.StatusOK, bench)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
