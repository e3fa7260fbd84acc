package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/checkout"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ordersCollection       = "orders"
	statusChecksCollection = "status_checks"

	listOrdersLimit       = 100
	listStatusChecksLimit = 1000
)

type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// Store holds order mirrors and status checks in MongoDB. Everywhere in
// the service it is a soft dependency; only construction and Ping report
// connectivity.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, url, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) InsertOrder(ctx context.Context, rec checkout.OrderRecord) error {
	doc := bson.M{
		"id":                rec.ID,
		"razorpay_order_id": rec.RazorpayOrderID,
		"amount":            rec.Amount,
		"currency":          rec.Currency,
		"cart":              cartDocs(rec.Cart),
		"customer_info":     rec.CustomerInfo,
		"status":            string(rec.Status),
		"created_at":        rec.CreatedAt,
	}
	if _, err := s.db.Collection(ordersCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// MarkOrderPaid is an upsert-by-match keyed on the gateway order id. When
// no record matches (the store was down at creation time) it is a silent
// no-op; the gateway remains the source of truth for the charge.
func (s *Store) MarkOrderPaid(ctx context.Context, razorpayOrderID string, upd checkout.PaidUpdate) error {
	set := bson.M{
		"status":              string(checkout.StatusPaid),
		"paid_at":             upd.PaidAt,
		"razorpay_payment_id": upd.PaymentID,
	}
	if upd.Payment != nil {
		set["payment_details"] = bson.M{
			"id":       upd.Payment.ID,
			"amount":   upd.Payment.Amount,
			"currency": upd.Payment.Currency,
			"status":   upd.Payment.Status,
			"method":   upd.Payment.Method,
			"email":    upd.Payment.Email,
			"contact":  upd.Payment.Contact,
		}
	}
	if upd.ShopifyOrderID != 0 {
		set["shopify_order_id"] = upd.ShopifyOrderID
	}
	if len(upd.ShopifyOrder) > 0 {
		var snapshot map[string]any
		if err := json.Unmarshal(upd.ShopifyOrder, &snapshot); err == nil {
			set["shopify_order"] = snapshot
		}
	}

	_, err := s.db.Collection(ordersCollection).UpdateOne(ctx,
		bson.M{"razorpay_order_id": razorpayOrderID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ListOrders returns raw order documents newest first, capped at 100.
func (s *Store) ListOrders(ctx context.Context) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(listOrdersLimit).
		SetProjection(bson.M{"_id": 0})

	cursor, err := s.db.Collection(ordersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []bson.M
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *Store) InsertStatusCheck(ctx context.Context, check StatusCheck) error {
	if _, err := s.db.Collection(statusChecksCollection).InsertOne(ctx, check); err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

func (s *Store) ListStatusChecks(ctx context.Context) ([]StatusCheck, error) {
	opts := options.Find().SetLimit(listStatusChecksLimit)
	cursor, err := s.db.Collection(statusChecksCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status checks: %w", err)
	}
	defer cursor.Close(ctx)

	var checks []StatusCheck
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("decode status checks: %w", err)
	}
	return checks, nil
}

func cartDocs(cart []checkout.CartItem) []bson.M {
	docs := make([]bson.M, 0, len(cart))
	for _, item := range cart {
		doc := bson.M{
			"id":       item.ID,
			"title":    item.Title,
			"quantity": item.Quantity,
			"price":    item.Price.String(),
			"handle":   item.Handle,
		}
		if item.VariantID != "" {
			doc["variant_id"] = item.VariantID
		}
		if item.ImageURL != "" {
			doc["image_url"] = item.ImageURL
		}
		docs = append(docs, doc)
	}
	return docs
}
