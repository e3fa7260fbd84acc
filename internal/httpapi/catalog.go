package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := shopify.ProductListParams{
		After:            q.Get("after"),
		CollectionHandle: q.Get("collection_handle"),
		SearchQuery:      q.Get("search_query"),
		SortKey:          q.Get("sort_key"),
		Reverse:          q.Get("reverse") == "true",
		MinPrice:         q.Get("min_price"),
		MaxPrice:         q.Get("max_price"),
	}
	if raw := q.Get("first"); raw != "" {
		first, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "first must be an integer")
			return
		}
		params.First = first
	}

	list, err := s.deps.Catalog.Products(r.Context(), params)
	if err != nil {
		s.writeCatalogError(w, err, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) productByHandle(w http.ResponseWriter, r *http.Request) {
	product, err := s.deps.Catalog.ProductByHandle(r.Context(), r.PathValue("handle"))
	if err != nil {
		s.writeCatalogError(w, err, "Product not found")
		return
	}
	writeRaw(w, product)
}

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := shopify.CollectionListParams{
		After:       q.Get("after"),
		SearchQuery: q.Get("search_query"),
	}
	if raw := q.Get("first"); raw != "" {
		first, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "first must be an integer")
			return
		}
		params.First = first
	}

	list, err := s.deps.Catalog.Collections(r.Context(), params)
	if err != nil {
		s.writeCatalogError(w, err, "Collection not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) collectionByHandle(w http.ResponseWriter, r *http.Request) {
	collection, err := s.deps.Catalog.CollectionByHandle(r.Context(), r.PathValue("handle"))
	if err != nil {
		s.writeCatalogError(w, err, "Collection not found")
		return
	}
	writeRaw(w, collection)
}

func (s *Server) featuredCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.deps.Catalog.FeaturedCollections(r.Context())
	if err != nil {
		s.writeCatalogError(w, err, "Collection not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": collections})
}

func (s *Server) writeCatalogError(w http.ResponseWriter, err error, notFoundMsg string) {
	var apiErr *shopify.APIError
	var gqlErr *shopify.GraphQLError

	switch {
	case errors.Is(err, shopify.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, shopify.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &gqlErr):
		writeError(w, http.StatusBadRequest, gqlErr.Error())
	case errors.As(err, &apiErr):
		writeError(w, apiErr.StatusCode, apiErr.Error())
	default:
		s.logger.Error("catalog request failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
