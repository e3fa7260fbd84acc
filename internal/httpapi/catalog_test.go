package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func getPath(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestListProductsHandler(t *testing.T) {
	t.Run("query params mapped", func(t *testing.T) {
		catalog := new(catalogMock)
		catalog.On("Products", mock.Anything, shopify.ProductListParams{
			First:            50,
			CollectionHandle: "sarees",
			SearchQuery:      "silk",
			SortKey:          "PRICE",
			Reverse:          true,
			MinPrice:         "500",
			MaxPrice:         "5000",
		}).Return(&shopify.ProductList{Products: []json.RawMessage{}, PageInfo: json.RawMessage(`{}`)}, nil)
		srv := testServer(Deps{Catalog: catalog})

		rec := getPath(srv, "/api/products?first=50&collection_handle=sarees&search_query=silk&sort_key=PRICE&reverse=true&min_price=500&max_price=5000")
		require.Equal(t, http.StatusOK, rec.Code)
		catalog.AssertExpectations(t)
	})

	t.Run("invalid first", func(t *testing.T) {
		srv := testServer(Deps{Catalog: new(catalogMock)})
		rec := getPath(srv, "/api/products?first=abc")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid sort key is 400", func(t *testing.T) {
		catalog := new(catalogMock)
		catalog.On("Products", mock.Anything, mock.Anything).Return(nil, shopify.ErrInvalidParams)
		srv := testServer(Deps{Catalog: catalog})

		rec := getPath(srv, "/api/products?sort_key=POPULARITY")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upstream status propagated", func(t *testing.T) {
		catalog := new(catalogMock)
		catalog.On("Products", mock.Anything, mock.Anything).
			Return(nil, &shopify.APIError{StatusCode: 502, Body: "upstream unavailable"})
		srv := testServer(Deps{Catalog: catalog})

		rec := getPath(srv, "/api/products")
		require.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestProductByHandleHandler(t *testing.T) {
	t.Run("passes node through verbatim", func(t *testing.T) {
		catalog := new(catalogMock)
		catalog.On("ProductByHandle", mock.Anything, "test-saree").
			Return(json.RawMessage(`{"id":"gid://shopify/Product/1","handle":"test-saree"}`), nil)
		srv := testServer(Deps{Catalog: catalog})

		rec := getPath(srv, "/api/products/test-saree")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":"gid://shopify/Product/1","handle":"test-saree"}`, rec.Body.String())
	})

	t.Run("missing handle is 404", func(t *testing.T) {
		catalog := new(catalogMock)
		catalog.On("ProductByHandle", mock.Anything, "nope").Return(nil, shopify.ErrNotFound)
		srv := testServer(Deps{Catalog: catalog})

		rec := getPath(srv, "/api/products/nope")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Product not found")
	})

	t.Run("graphql errors are 400", func(t *testing.T) {
		catalog := new(catalogMock)
		catalog.On("ProductByHandle", mock.Anything, "bad").
			Return(nil, &shopify.GraphQLError{Errors: []json.RawMessage{json.RawMessage(`{"message":"boom"}`)}})
		srv := testServer(Deps{Catalog: catalog})

		rec := getPath(srv, "/api/products/bad")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFeaturedCollectionsRouting(t *testing.T) {
	// "featured" must hit the curated route, not the handle route.
	catalog := new(catalogMock)
	catalog.On("FeaturedCollections", mock.Anything).
		Return([]json.RawMessage{json.RawMessage(`{"handle":"sarees"}`)}, nil)
	srv := testServer(Deps{Catalog: catalog})

	rec := getPath(srv, "/api/collections/featured")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"collections":[{"handle":"sarees"}]}`, rec.Body.String())
	catalog.AssertNotCalled(t, "CollectionByHandle", mock.Anything, mock.Anything)
}

func TestCollectionByHandleHandler(t *testing.T) {
	catalog := new(catalogMock)
	catalog.On("CollectionByHandle", mock.Anything, "missing").Return(nil, shopify.ErrNotFound)
	srv := testServer(Deps{Catalog: catalog})

	rec := getPath(srv, "/api/collections/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Collection not found")
}
