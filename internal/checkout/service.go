package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/razorpay"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest     = errors.New("invalid checkout request")
	ErrPaymentNotCaptured = errors.New("payment not captured")
)

// The gateway rejects receipts longer than 40 characters.
const maxReceiptLen = 40

const capturedRoutingKey = "checkout.payment_captured"

// Service orchestrates the checkout flow: create a payment intent, then
// verify the client-reported completion, confirm capture, create the
// upstream Shopify order and update the local mirror.
type Service struct {
	gateway  PaymentGateway
	admin    OrderAdminGateway
	store    OrderStore
	verifier *Verifier
	pub      Publisher
	notifier Notifier
	logger   *slog.Logger
}

func NewService(gateway PaymentGateway, admin OrderAdminGateway, store OrderStore, verifier *Verifier, pub Publisher, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		gateway:  gateway,
		admin:    admin,
		store:    store,
		verifier: verifier,
		pub:      pub,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateIntent creates a gateway-side payment intent and mirrors it
// locally. The amount is the caller-computed cart total in minor units and
// is not recomputed here. Persistence is off the critical path: if the
// store is down the gateway order is still returned.
func (s *Service) CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	if req.Currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidRequest)
	}
	if len(req.Cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
	}

	order, err := s.gateway.CreateOrder(ctx, req.Amount, req.Currency, newReceipt(), map[string]string{"source": "undhyu_web"})
	if err != nil {
		s.logger.Error("create razorpay order failed", "err", err)
		return nil, err
	}

	if s.store != nil {
		rec := OrderRecord{
			ID:              uuid.New().String(),
			RazorpayOrderID: order.ID,
			Amount:          order.Amount,
			Currency:        order.Currency,
			Cart:            req.Cart,
			CustomerInfo:    req.CustomerInfo,
			Status:          StatusCreated,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.store.InsertOrder(ctx, rec); err != nil {
			s.logger.Warn("order record insert skipped", "razorpay_order_id", order.ID, "err", err)
		}
	}

	return &CreateIntentResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   order.Status,
		Key:      s.gateway.KeyID(),
	}, nil
}

// VerifyAndFinalize is the reconciliation flow. The signature check is a
// hard gate: nothing past it runs on a mismatch. Capture confirmation must
// see a captured status. The Shopify order is best-effort; its failure is
// logged and the call still succeeds, because the customer has already
// been charged.
func (s *Service) VerifyAndFinalize(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	if err := s.verifier.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		s.logger.Warn("payment signature rejected", "razorpay_order_id", req.RazorpayOrderID, "razorpay_payment_id", req.RazorpayPaymentID)
		return nil, err
	}

	payment, err := s.gateway.FetchPayment(ctx, req.RazorpayPaymentID)
	if err != nil {
		s.logger.Error("fetch payment failed", "razorpay_payment_id", req.RazorpayPaymentID, "err", err)
		return nil, err
	}
	if payment.Status != razorpay.PaymentCaptured {
		s.logger.Warn("payment not captured", "razorpay_payment_id", payment.ID, "status", payment.Status)
		return nil, fmt.Errorf("%w: status %q", ErrPaymentNotCaptured, payment.Status)
	}

	shopifyOrder, shopifyErr := s.createShopifyOrder(ctx, req, payment)
	if shopifyErr != nil {
		// Deliberate: the charge is already irreversible, so upstream
		// bookkeeping failures must not fail the checkout.
		s.logger.Error("shopify order creation failed", "razorpay_order_id", req.RazorpayOrderID, "razorpay_payment_id", payment.ID, "err", shopifyErr)
	}

	upd := PaidUpdate{
		PaymentID: payment.ID,
		PaidAt:    time.Now().UTC(),
		Payment:   payment,
	}
	var shopifyOrderID *int64
	if shopifyErr == nil && shopifyOrder != nil {
		upd.ShopifyOrderID = shopifyOrder.ID
		upd.ShopifyOrder = shopifyOrder.Raw
		shopifyOrderID = &shopifyOrder.ID
	}

	if s.store != nil {
		if err := s.store.MarkOrderPaid(ctx, req.RazorpayOrderID, upd); err != nil {
			s.logger.Warn("order record update skipped", "razorpay_order_id", req.RazorpayOrderID, "err", err)
		}
	}

	s.publishCaptured(ctx, req.RazorpayOrderID, payment, upd.ShopifyOrderID)
	if s.notifier != nil {
		s.notifier.BroadcastOrderPaid(req.RazorpayOrderID, payment.Amount, payment.Currency)
	}

	return &VerifyResponse{
		Success:        true,
		PaymentID:      payment.ID,
		OrderID:        req.RazorpayOrderID,
		Status:         payment.Status,
		ShopifyOrderID: shopifyOrderID,
	}, nil
}

func (s *Service) createShopifyOrder(ctx context.Context, req VerifyRequest, payment *razorpay.Payment) (*shopify.AdminOrder, error) {
	if s.admin == nil {
		return nil, errors.New("admin gateway not configured")
	}

	lines := make([]shopify.OrderLine, 0, len(req.Cart))
	for _, item := range req.Cart {
		lines = append(lines, shopify.OrderLine{
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     item.Price,
			VariantID: item.VariantID,
		})
	}

	return s.admin.CreateOrder(ctx, shopify.CreateOrderParams{
		Lines:       lines,
		Customer:    req.CustomerInfo,
		AmountMinor: payment.Amount,
		Currency:    payment.Currency,
		PaymentID:   payment.ID,
	})
}

func (s *Service) publishCaptured(ctx context.Context, orderID string, payment *razorpay.Payment, shopifyOrderID int64) {
	if s.pub == nil {
		return
	}
	evt := PaymentCapturedEvent{
		EventID:        uuid.New().String(),
		OrderID:        orderID,
		PaymentID:      payment.ID,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		ShopifyOrderID: shopifyOrderID,
		CapturedAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("marshal captured event", "err", err)
		return
	}
	if err := s.pub.Publish(ctx, capturedRoutingKey, payload); err != nil {
		s.logger.Warn("publish captured event skipped", "order_id", orderID, "err", err)
	}
}

func newReceipt() string {
	receipt := "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	if len(receipt) > maxReceiptLen {
		receipt = receipt[:maxReceiptLen]
	}
	return receipt
}
