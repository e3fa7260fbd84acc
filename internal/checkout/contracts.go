package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/razorpay"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"
)

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*razorpay.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
	KeyID() string
}

type OrderAdminGateway interface {
	CreateOrder(ctx context.Context, p shopify.CreateOrderParams) (*shopify.AdminOrder, error)
}

// PaidUpdate is applied to the local record after capture confirmation.
type PaidUpdate struct {
	PaymentID      string
	PaidAt         time.Time
	Payment        *razorpay.Payment
	ShopifyOrderID int64
	ShopifyOrder   json.RawMessage
}

// OrderStore is the local mirror. It is a soft dependency: a nil store or
// a failing write never fails a checkout.
type OrderStore interface {
	InsertOrder(ctx context.Context, rec OrderRecord) error
	MarkOrderPaid(ctx context.Context, razorpayOrderID string, upd PaidUpdate) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}

type Notifier interface {
	BroadcastOrderPaid(orderID string, amount int64, currency string)
}
