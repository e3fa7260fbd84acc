package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/storage"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	get := func(srv *Server) map[string]any {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("everything configured and connected", func(t *testing.T) {
		store := new(storeAPIMock)
		store.On("Ping", mock.Anything).Return(nil)
		srv := testServer(Deps{
			Store:                  store,
			ShopifyConfigured:      true,
			ShopifyAdminConfigured: true,
			RazorpayConfigured:     true,
		})

		body := get(srv)
		require.Equal(t, "healthy", body["status"])
		require.Equal(t, true, body["mongodb_connected"])
		require.Equal(t, true, body["shopify_configured"])
		require.Equal(t, true, body["shopify_admin_configured"])
		require.Equal(t, true, body["razorpay_configured"])
	})

	t.Run("mongodb down", func(t *testing.T) {
		store := new(storeAPIMock)
		store.On("Ping", mock.Anything).Return(errors.New("no reachable servers"))
		srv := testServer(Deps{Store: store})

		body := get(srv)
		require.Equal(t, false, body["mongodb_connected"])
	})

	t.Run("mongodb never connected", func(t *testing.T) {
		srv := testServer(Deps{})

		body := get(srv)
		require.Equal(t, false, body["mongodb_connected"])
		require.Equal(t, false, body["shopify_configured"])
		require.Equal(t, false, body["shopify_admin_configured"])
		require.Equal(t, false, body["razorpay_configured"])
	})
}

func TestStatusCheckHandlers(t *testing.T) {
	t.Run("create returns the stored check", func(t *testing.T) {
		store := new(storeAPIMock)
		store.On("InsertStatusCheck", mock.Anything, mock.MatchedBy(func(check storage.StatusCheck) bool {
			return check.ClientName == "storefront" && check.ID != "" && !check.Timestamp.IsZero()
		})).Return(nil)
		srv := testServer(Deps{Store: store})

		rec := postJSON(t, srv, "/api/status", map[string]string{"client_name": "storefront"})
		require.Equal(t, http.StatusOK, rec.Code)

		var body storage.StatusCheck
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "storefront", body.ClientName)
		require.NotEmpty(t, body.ID)
		store.AssertExpectations(t)
	})

	t.Run("create without client_name rejected", func(t *testing.T) {
		srv := testServer(Deps{})
		rec := postJSON(t, srv, "/api/status", map[string]string{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create still succeeds when persistence is absent", func(t *testing.T) {
		srv := testServer(Deps{})
		rec := postJSON(t, srv, "/api/status", map[string]string{"client_name": "storefront"})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("list degrades to empty on store error", func(t *testing.T) {
		store := new(storeAPIMock)
		store.On("ListStatusChecks", mock.Anything).Return(nil, errors.New("mongo down"))
		srv := testServer(Deps{Store: store})

		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestRootAndCORS(t *testing.T) {
	srv := testServer(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Undhyu.com API")
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/verify-payment", bytes.NewReader(nil))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, preflight)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
