package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Defaults substituted for missing customer fields. Incomplete contact
// details never fail an order.
const (
	defaultFirstName = "Guest"
	defaultCountry   = "India"
	defaultEmail     = "customer@undhyu.com"
)

// AdminClient creates order records through the Admin REST API.
type AdminClient struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewAdminClient(storeDomain, accessToken, apiVersion string, timeout time.Duration) *AdminClient {
	return &AdminClient{
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s", storeDomain, apiVersion),
		accessToken: accessToken,
		http:        &http.Client{Timeout: timeout},
	}
}

// NewAdminClientWithBaseURL is used by tests to target a fake API.
func NewAdminClientWithBaseURL(baseURL, accessToken string, timeout time.Duration) *AdminClient {
	return &AdminClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: timeout},
	}
}

func (c *AdminClient) Configured() bool {
	return c.accessToken != ""
}

type OrderLine struct {
	Title     string
	Quantity  int
	Price     decimal.Decimal
	VariantID string
}

type CreateOrderParams struct {
	Lines       []OrderLine
	Customer    map[string]string
	AmountMinor int64
	Currency    string
	PaymentID   string
}

// AdminOrder is the created upstream order. Raw holds the full response
// body for the local order snapshot.
type AdminOrder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Raw  json.RawMessage
}

// CreateOrder maps a checkout cart onto the Admin order shape and submits
// it, marked paid with a single sale transaction in major units.
func (c *AdminClient) CreateOrder(ctx context.Context, p CreateOrderParams) (*AdminOrder, error) {
	lineItems := make([]map[string]any, 0, len(p.Lines))
	for _, line := range p.Lines {
		item := map[string]any{
			"title":    line.Title,
			"quantity": line.Quantity,
			"price":    line.Price.StringFixed(CurrencyExponent(p.Currency)),
		}
		if id, ok := numericVariantID(line.VariantID); ok {
			item["variant_id"] = id
		}
		lineItems = append(lineItems, item)
	}

	address := buildAddress(p.Customer)
	email := p.Customer["email"]
	if email == "" {
		email = defaultEmail
	}

	payload := map[string]any{
		"order": map[string]any{
			"line_items":       lineItems,
			"email":            email,
			"phone":            p.Customer["phone"],
			"billing_address":  address,
			"shipping_address": address,
			"financial_status": "paid",
			"currency":         p.Currency,
			"transactions": []map[string]any{
				{
					"kind":    "sale",
					"status":  "success",
					"amount":  MajorUnitsString(p.AmountMinor, p.Currency),
					"gateway": "razorpay",
				},
			},
			"note": fmt.Sprintf("Razorpay payment ID: %s", p.PaymentID),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders.json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("admin request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var envelope struct {
		Order AdminOrder `json:"order"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	order := envelope.Order
	order.Raw = raw
	return &order, nil
}

// Billing and shipping addresses are synthesized identically from the
// same free-form customer map.
func buildAddress(customer map[string]string) map[string]any {
	first := customer["first_name"]
	if first == "" {
		first = defaultFirstName
	}
	country := customer["country"]
	if country == "" {
		country = defaultCountry
	}
	return map[string]any{
		"first_name": first,
		"last_name":  customer["last_name"],
		"address1":   customer["address"],
		"city":       customer["city"],
		"province":   customer["state"],
		"zip":        customer["pincode"],
		"country":    country,
		"phone":      customer["phone"],
	}
}

// numericVariantID extracts the numeric id from a Storefront variant GID
// such as "gid://shopify/ProductVariant/123". Absent or non-numeric ids
// are omitted from the line item rather than sent as null.
func numericVariantID(variantID string) (int64, bool) {
	if variantID == "" {
		return 0, false
	}
	tail := variantID
	if idx := strings.LastIndex(variantID, "/"); idx >= 0 {
		tail = variantID[idx+1:]
	}
	id, err := strconv.ParseInt(tail, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
