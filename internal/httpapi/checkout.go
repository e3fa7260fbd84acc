package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/checkout"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/razorpay"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *Server) createRazorpayOrder(w http.ResponseWriter, r *http.Request) {
	var req checkout.CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.deps.Checkout.CreateIntent(r.Context(), req)
	if err != nil {
		s.writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req checkout.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		writeError(w, http.StatusBadRequest, "missing payment verification fields")
		return
	}

	resp, err := s.deps.Checkout.VerifyAndFinalize(r.Context(), req)
	if err != nil {
		s.writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := []bson.M{}
	if s.deps.Store != nil {
		found, err := s.deps.Store.ListOrders(r.Context())
		if err != nil {
			// Persistence is a soft dependency; degrade to empty.
			s.logger.Warn("list orders degraded", "err", err)
		} else if found != nil {
			orders = found
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) writeCheckoutError(w http.ResponseWriter, err error) {
	var rzpErr *razorpay.APIError
	var shopErr *shopify.APIError

	switch {
	case errors.Is(err, checkout.ErrInvalidRequest),
		errors.Is(err, checkout.ErrSignatureMismatch),
		errors.Is(err, checkout.ErrPaymentNotCaptured):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &rzpErr):
		writeError(w, rzpErr.StatusCode, rzpErr.Message)
	case errors.As(err, &shopErr):
		writeError(w, shopErr.StatusCode, shopErr.Error())
	default:
		s.logger.Error("checkout failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
