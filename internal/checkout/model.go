package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCreated Status = "created"
	StatusPaid    Status = "paid"
)

// CartItem is a checkout line as submitted by the storefront. Quantity and
// price are taken at face value; they are not re-checked against the catalog.
type CartItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Handle    string          `json:"handle"`
	VariantID string          `json:"variant_id,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// CustomerInfo carries free-form contact and address fields. No keys are
// required; missing ones are defaulted when the upstream order is built.
type CustomerInfo map[string]string

// OrderRecord is the local mirror of a payment intent. The payment gateway
// owns the truth about whether the customer was charged; this record only
// tracks what this service observed.
type OrderRecord struct {
	ID              string
	RazorpayOrderID string
	Amount          int64
	Currency        string
	Cart            []CartItem
	CustomerInfo    CustomerInfo
	Status          Status
	CreatedAt       time.Time
	PaidAt          time.Time
	PaymentID       string
	ShopifyOrderID  int64
}

type CreateIntentRequest struct {
	Amount       int64        `json:"amount"`
	Currency     string       `json:"currency"`
	Cart         []CartItem   `json:"cart"`
	CustomerInfo CustomerInfo `json:"customer_info"`
}

type CreateIntentResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Key      string `json:"key"`
}

type VerifyRequest struct {
	RazorpayOrderID   string       `json:"razorpay_order_id"`
	RazorpayPaymentID string       `json:"razorpay_payment_id"`
	RazorpaySignature string       `json:"razorpay_signature"`
	Cart              []CartItem   `json:"cart"`
	CustomerInfo      CustomerInfo `json:"customer_info"`
}

type VerifyResponse struct {
	Success        bool   `json:"success"`
	PaymentID      string `json:"payment_id"`
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	ShopifyOrderID *int64 `json:"shopify_order_id"`
}

// PaymentCapturedEvent is published after a verification completes, whether
// or not the upstream Shopify order could be created.
type PaymentCapturedEvent struct {
	EventID        string    `json:"event_id"`
	OrderID        string    `json:"order_id"`
	PaymentID      string    `json:"payment_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	ShopifyOrderID int64     `json:"shopify_order_id,omitempty"`
	CapturedAt     time.Time `json:"captured_at"`
}
