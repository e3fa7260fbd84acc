package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/storage"

	"github.com/google/uuid"
)

func (s *Server) createStatusCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName string `json:"client_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ClientName == "" {
		writeError(w, http.StatusBadRequest, "client_name is required")
		return
	}

	check := storage.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if s.deps.Store != nil {
		if err := s.deps.Store.InsertStatusCheck(r.Context(), check); err != nil {
			s.logger.Warn("status check insert skipped", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) listStatusChecks(w http.ResponseWriter, r *http.Request) {
	checks := []storage.StatusCheck{}
	if s.deps.Store != nil {
		found, err := s.deps.Store.ListStatusChecks(r.Context())
		if err != nil {
			s.logger.Warn("list status checks degraded", "err", err)
		} else if found != nil {
			checks = found
		}
	}
	writeJSON(w, http.StatusOK, checks)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	mongoConnected := false
	if s.deps.Store != nil && s.deps.Store.Ping(r.Context()) == nil {
		mongoConnected = true
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":                   "healthy",
		"mongodb_connected":        mongoConnected,
		"shopify_configured":       s.deps.ShopifyConfigured,
		"shopify_admin_configured": s.deps.ShopifyAdminConfigured,
		"razorpay_configured":      s.deps.RazorpayConfigured,
	})
}
