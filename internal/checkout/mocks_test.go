package checkout

import (
	"context"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/razorpay"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"

	"github.com/stretchr/testify/mock"
)

type gatewayMock struct{ mock.Mock }

func (m *gatewayMock) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*razorpay.Order, error) {
	args := m.Called(ctx, amount, currency, receipt, notes)
	o, _ := args.Get(0).(*razorpay.Order)
	return o, args.Error(1)
}

func (m *gatewayMock) FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(*razorpay.Payment)
	return p, args.Error(1)
}

func (m *gatewayMock) KeyID() string {
	return m.Called().String(0)
}

type adminMock struct{ mock.Mock }

func (m *adminMock) CreateOrder(ctx context.Context, p shopify.CreateOrderParams) (*shopify.AdminOrder, error) {
	args := m.Called(ctx, p)
	o, _ := args.Get(0).(*shopify.AdminOrder)
	return o, args.Error(1)
}

type storeMock struct{ mock.Mock }

func (m *storeMock) InsertOrder(ctx context.Context, rec OrderRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *storeMock) MarkOrderPaid(ctx context.Context, razorpayOrderID string, upd PaidUpdate) error {
	return m.Called(ctx, razorpayOrderID, upd).Error(0)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

type notifierMock struct{ mock.Mock }

func (m *notifierMock) BroadcastOrderPaid(orderID string, amount int64, currency string) {
	m.Called(orderID, amount, currency)
}
