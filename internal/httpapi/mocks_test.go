package httpapi

import (
	"context"
	"encoding/json"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/checkout"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/shopify"
	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/storage"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type checkoutMock struct{ mock.Mock }

func (m *checkoutMock) CreateIntent(ctx context.Context, req checkout.CreateIntentRequest) (*checkout.CreateIntentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*checkout.CreateIntentResponse)
	return resp, args.Error(1)
}

func (m *checkoutMock) VerifyAndFinalize(ctx context.Context, req checkout.VerifyRequest) (*checkout.VerifyResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*checkout.VerifyResponse)
	return resp, args.Error(1)
}

type catalogMock struct{ mock.Mock }

func (m *catalogMock) Products(ctx context.Context, p shopify.ProductListParams) (*shopify.ProductList, error) {
	args := m.Called(ctx, p)
	list, _ := args.Get(0).(*shopify.ProductList)
	return list, args.Error(1)
}

func (m *catalogMock) ProductByHandle(ctx context.Context, handle string) (json.RawMessage, error) {
	args := m.Called(ctx, handle)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *catalogMock) Collections(ctx context.Context, p shopify.CollectionListParams) (*shopify.CollectionList, error) {
	args := m.Called(ctx, p)
	list, _ := args.Get(0).(*shopify.CollectionList)
	return list, args.Error(1)
}

func (m *catalogMock) CollectionByHandle(ctx context.Context, handle string) (json.RawMessage, error) {
	args := m.Called(ctx, handle)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *catalogMock) FeaturedCollections(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	raw, _ := args.Get(0).([]json.RawMessage)
	return raw, args.Error(1)
}

type storeAPIMock struct{ mock.Mock }

func (m *storeAPIMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *storeAPIMock) ListOrders(ctx context.Context) ([]bson.M, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]bson.M)
	return orders, args.Error(1)
}

func (m *storeAPIMock) InsertStatusCheck(ctx context.Context, check storage.StatusCheck) error {
	return m.Called(ctx, check).Error(0)
}

func (m *storeAPIMock) ListStatusChecks(ctx context.Context) ([]storage.StatusCheck, error) {
	args := m.Called(ctx)
	checks, _ := args.Get(0).([]storage.StatusCheck)
	return checks, args.Error(1)
}
