package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FeaturedCollectionHandles are the storefront's curated landing-page
// collections. Handles that do not exist in the store are skipped.
var FeaturedCollectionHandles = []string{"sarees", "lehengas", "suits", "jewelry", "salwar-kameez", "ethnic-wear"}

var sortKeys = map[string]bool{
	"CREATED_AT":   true,
	"UPDATED_AT":   true,
	"TITLE":        true,
	"PRICE":        true,
	"BEST_SELLING": true,
	"RELEVANCE":    true,
}

var ErrInvalidParams = errors.New("shopify: invalid query parameters")

type ProductListParams struct {
	First            int
	After            string
	CollectionHandle string
	SearchQuery      string
	SortKey          string
	Reverse          bool
	MinPrice         string
	MaxPrice         string
}

type ProductList struct {
	Products   []json.RawMessage `json:"products"`
	PageInfo   json.RawMessage   `json:"pageInfo"`
	TotalCount int               `json:"totalCount"`
}

type CollectionListParams struct {
	First       int
	After       string
	SearchQuery string
}

type CollectionList struct {
	Collections []map[string]any `json:"collections"`
	PageInfo    json.RawMessage  `json:"pageInfo"`
}

type connection struct {
	Edges []struct {
		Node json.RawMessage `json:"node"`
	} `json:"edges"`
	PageInfo json.RawMessage `json:"pageInfo"`
}

// Products runs the filtered product listing. Filters are joined with AND
// into a single Storefront search query string.
func (c *StorefrontClient) Products(ctx context.Context, p ProductListParams) (*ProductList, error) {
	if p.First <= 0 {
		p.First = 20
	}
	if p.First > 250 {
		return nil, fmt.Errorf("%w: first must be <= 250", ErrInvalidParams)
	}
	if p.SortKey == "" {
		p.SortKey = "CREATED_AT"
	}
	if !sortKeys[p.SortKey] {
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidParams, p.SortKey)
	}

	var filters []string
	if p.CollectionHandle != "" {
		filters = append(filters, fmt.Sprintf("collection:%q", p.CollectionHandle))
	}
	if p.SearchQuery != "" {
		filters = append(filters, fmt.Sprintf("title:*%s* OR tag:*%s*", p.SearchQuery, p.SearchQuery))
	}
	if p.MinPrice != "" {
		filters = append(filters, fmt.Sprintf("variants.price:>=%s", p.MinPrice))
	}
	if p.MaxPrice != "" {
		filters = append(filters, fmt.Sprintf("variants.price:<=%s", p.MaxPrice))
	}

	variables := map[string]any{
		"first":   p.First,
		"sortKey": p.SortKey,
		"reverse": p.Reverse,
	}
	if p.After != "" {
		variables["after"] = p.After
	}
	if len(filters) > 0 {
		variables["query"] = strings.Join(filters, " AND ")
	}

	data, err := c.Execute(ctx, productsQuery, variables)
	if err != nil {
		return nil, err
	}

	var conn connection
	if err := json.Unmarshal(data["products"], &conn); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	list := &ProductList{
		Products: make([]json.RawMessage, 0, len(conn.Edges)),
		PageInfo: conn.PageInfo,
	}
	for _, edge := range conn.Edges {
		list.Products = append(list.Products, edge.Node)
	}
	list.TotalCount = len(list.Products)
	return list, nil
}

// ProductByHandle returns the product node verbatim, or ErrNotFound when
// the handle does not resolve.
func (c *StorefrontClient) ProductByHandle(ctx context.Context, handle string) (json.RawMessage, error) {
	data, err := c.Execute(ctx, productByHandleQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	node := data["productByHandle"]
	if isNull(node) {
		return nil, ErrNotFound
	}
	return node, nil
}

func (c *StorefrontClient) Collections(ctx context.Context, p CollectionListParams) (*CollectionList, error) {
	if p.First <= 0 {
		p.First = 20
	}
	if p.First > 250 {
		return nil, fmt.Errorf("%w: first must be <= 250", ErrInvalidParams)
	}

	variables := map[string]any{"first": p.First}
	if p.After != "" {
		variables["after"] = p.After
	}
	if p.SearchQuery != "" {
		variables["query"] = fmt.Sprintf("title:*%s*", p.SearchQuery)
	}

	data, err := c.Execute(ctx, collectionsQuery, variables)
	if err != nil {
		return nil, err
	}

	var conn connection
	if err := json.Unmarshal(data["collections"], &conn); err != nil {
		return nil, fmt.Errorf("decode collections: %w", err)
	}

	list := &CollectionList{
		Collections: make([]map[string]any, 0, len(conn.Edges)),
		PageInfo:    conn.PageInfo,
	}
	for _, edge := range conn.Edges {
		var node map[string]any
		if err := json.Unmarshal(edge.Node, &node); err != nil {
			return nil, fmt.Errorf("decode collection node: %w", err)
		}
		node["productCount"] = productCount(node)
		list.Collections = append(list.Collections, node)
	}
	return list, nil
}

func (c *StorefrontClient) CollectionByHandle(ctx context.Context, handle string) (json.RawMessage, error) {
	data, err := c.Execute(ctx, collectionByHandleQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	node := data["collectionByHandle"]
	if isNull(node) {
		return nil, ErrNotFound
	}
	return node, nil
}

// FeaturedCollections resolves the curated handle list, dropping handles
// the store does not have.
func (c *StorefrontClient) FeaturedCollections(ctx context.Context) ([]json.RawMessage, error) {
	collections := make([]json.RawMessage, 0, len(FeaturedCollectionHandles))
	for _, handle := range FeaturedCollectionHandles {
		node, err := c.CollectionByHandle(ctx, handle)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		collections = append(collections, node)
	}
	return collections, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func productCount(node map[string]any) int {
	products, ok := node["products"].(map[string]any)
	if !ok {
		return 0
	}
	edges, ok := products["edges"].([]any)
	if !ok {
		return 0
	}
	return len(edges)
}
