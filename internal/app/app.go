package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/checkout"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/config"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/httpapi"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/messaging"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/razorpay"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/storage"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/websocket"
)

type App struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *storage.Store
	publisher messaging.Publisher
	wsHub     *websocket.Hub
	httpSrv   *http.Server
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	// MongoDB is a soft dependency: the storefront must keep selling even
	// when the mirror is down, so a failed connect only degrades reads.
	store, err := storage.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		logger.Warn("mongodb unavailable, running without persistence", "err", err)
		store = nil
	}

	rzp := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.HTTPClientTimeout)
	storefront := shopify.NewStorefrontClient(cfg.ShopifyStoreDomain, cfg.ShopifyStorefrontToken, cfg.ShopifyAPIVersion, cfg.HTTPClientTimeout)
	admin := shopify.NewAdminClient(cfg.ShopifyStoreDomain, cfg.ShopifyAdminToken, cfg.ShopifyAPIVersion, cfg.HTTPClientTimeout)
	verifier := checkout.NewVerifier(cfg.RazorpayKeySecret)

	var publisher messaging.Publisher
	if cfg.RabbitURL != "" {
		p, err := messaging.NewRabbitPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, running without events", "err", err)
		} else {
			publisher = p
		}
	}

	wsHub := websocket.NewHub()

	var orderStore checkout.OrderStore
	if store != nil {
		orderStore = store
	}
	var pub checkout.Publisher
	if publisher != nil {
		pub = publisher
	}
	checkoutSvc := checkout.NewService(rzp, admin, orderStore, verifier, pub, wsHub, logger)

	deps := httpapi.Deps{
		Checkout:               checkoutSvc,
		Catalog:                storefront,
		ShopifyConfigured:      storefront.Configured(),
		ShopifyAdminConfigured: admin.Configured(),
		RazorpayConfigured:     rzp.Configured(),
	}
	if store != nil {
		deps.Store = store
	}

	api := httpapi.NewServer(deps, logger)
	wsHandler := websocket.NewHandler(wsHub)
	api.HandleFunc("GET /api/orders/live", wsHandler.ServeWS)

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api,
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		publisher: publisher,
		wsHub:     wsHub,
		httpSrv:   httpSrv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)

	go a.wsHub.Run(ctx)

	go func() {
		a.logger.Info("storefront api listening", "addr", a.cfg.HTTPAddr)
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *App) Close(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownGracePeriod)
	defer cancel()
	_ = a.httpSrv.Shutdown(shutdownCtx)
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
	if a.store != nil {
		_ = a.store.Close(shutdownCtx)
	}
}

func Run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer app.Close(context.Background())

	return app.Run(ctx)
}
