package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/checkout"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
)

type CheckoutService interface {
	CreateIntent(ctx context.Context, req checkout.CreateIntentRequest) (*checkout.CreateIntentResponse, error)
	VerifyAndFinalize(ctx context.Context, req checkout.VerifyRequest) (*checkout.VerifyResponse, error)
}

type Catalog interface {
	Products(ctx context.Context, p shopify.ProductListParams) (*shopify.ProductList, error)
	ProductByHandle(ctx context.Context, handle string) (json.RawMessage, error)
	Collections(ctx context.Context, p shopify.CollectionListParams) (*shopify.CollectionList, error)
	CollectionByHandle(ctx context.Context, handle string) (json.RawMessage, error)
	FeaturedCollections(ctx context.Context) ([]json.RawMessage, error)
}

// Store is the persistence surface the API reads from. A nil Store means
// MongoDB was unreachable at boot; every route degrades rather than fails.
type Store interface {
	Ping(ctx context.Context) error
	ListOrders(ctx context.Context) ([]bson.M, error)
	InsertStatusCheck(ctx context.Context, check storage.StatusCheck) error
	ListStatusChecks(ctx context.Context) ([]storage.StatusCheck, error)
}

// Deps carries everything the API serves. The Configured flags mirror
// whether the corresponding credential was present at boot.
type Deps struct {
	Checkout CheckoutService
	Catalog  Catalog
	Store    Store

	ShopifyConfigured      bool
	ShopifyAdminConfigured bool
	RazorpayConfigured     bool
}

type Server struct {
	deps   Deps
	logger *slog.Logger
	mux    *http.ServeMux
}

func NewServer(deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		deps:   deps,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/{$}", s.root)
	s.mux.HandleFunc("POST /api/create-razorpay-order", s.createRazorpayOrder)
	s.mux.HandleFunc("POST /api/verify-payment", s.verifyPayment)
	s.mux.HandleFunc("GET /api/orders", s.listOrders)
	s.mux.HandleFunc("GET /api/health", s.health)
	s.mux.HandleFunc("GET /api/products", s.listProducts)
	s.mux.HandleFunc("GET /api/products/{handle}", s.productByHandle)
	s.mux.HandleFunc("GET /api/collections", s.listCollections)
	s.mux.HandleFunc("GET /api/collections/featured", s.featuredCollections)
	s.mux.HandleFunc("GET /api/collections/{handle}", s.collectionByHandle)
	s.mux.HandleFunc("POST /api/status", s.createStatusCheck)
	s.mux.HandleFunc("GET /api/status", s.listStatusChecks)
}

// HandleFunc registers additional routes (the websocket feed) on the
// underlying mux.
func (s *Server) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The storefront is served from a different origin; mirror the
	// original allow-all CORS policy.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Undhyu.com API - Authentic Indian Fashion"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
