package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiVersion = "2024-01"

type Client struct {
	Domain string // e.g. "example.myshopify.com"
	Token  string
	HTTP   *http.Client
}

func NewClient(domain, token string) *Client {
	return &Client{
		Domain: domain,
		Token:  token,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (c *Client) endpoint(path string) string {
	base := c.Domain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/admin/api/%s/%s", base, apiVersion, path)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.endpoint(path)
	if query != nil {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Shopify-Access-Token", c.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("shopify %s %s status=%d, body=%s", method, path, resp.StatusCode, string(b))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// SearchProducts queries the catalog by title. Shopify title search is a
// substring match, so callers still need to pick the best candidate.
func (c *Client) SearchProducts(ctx context.Context, title string) ([]Product, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", "50")

	var out productsResponse
	if err := c.do(ctx, "GET", "products.json", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// CreateProduct adds a sellable catalog product with a single variant at the
// given price.
func (c *Client) CreateProduct(ctx context.Context, title string, price float64) (Product, error) {
	in := productEnvelope{Product: Product{
		Title:  title,
		Status: "active",
		Variants: []Variant{
			{Price: fmt.Sprintf("%.2f", price)},
		},
	}}

	var out productEnvelope
	if err := c.do(ctx, "POST", "products.json", nil, in, &out); err != nil {
		return Product{}, err
	}
	return out.Product, nil
}

// EnsureServiceProduct finds or creates a catalog product for a service
// title. Preference order: exact case-insensitive title match, then a result
// whose title contains the search term or vice versa, then a fresh product.
// Returns the product tags and first variant id (0 when the product has no
// variants; callers fall back to a custom line item).
func (c *Client) EnsureServiceProduct(ctx context.Context, title string, price float64) (tags string, variantID int64, err error) {
	products, err := c.SearchProducts(ctx, title)
	if err != nil {
		return "", 0, err
	}

	var contains *Product
	lower := strings.ToLower(title)
	for i := range products {
		candidate := strings.ToLower(products[i].Title)
		if candidate == lower {
			return products[i].Tags, firstVariantID(products[i]), nil
		}
		if contains == nil && (strings.Contains(candidate, lower) || strings.Contains(lower, candidate)) {
			contains = &products[i]
		}
	}
	if contains != nil {
		return contains.Tags, firstVariantID(*contains), nil
	}

	created, err := c.CreateProduct(ctx, title, price)
	if err != nil {
		return "", 0, err
	}
	return created.Tags, firstVariantID(created), nil
}

func firstVariantID(p Product) int64 {
	if len(p.Variants) == 0 {
		return 0
	}
	return p.Variants[0].ID
}

// CreateDraftOrder creates an unpaid, editable sale in anticipation of
// checkout at the point of sale.
func (c *Client) CreateDraftOrder(ctx context.Context, draft DraftOrder) (int64, error) {
	var out draftOrderEnvelope
	if err := c.do(ctx, "POST", "draft_orders.json", nil, draftOrderEnvelope{DraftOrder: draft}, &out); err != nil {
		return 0, err
	}
	return out.DraftOrder.ID, nil
}

// DeleteDraftOrder removes a draft. Callers treat failure as non-fatal; the
// local order cancellation proceeds either way.
func (c *Client) DeleteDraftOrder(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("draft_orders/%s.json", id), nil, nil, nil)
}

// GetDraftOrder reads one draft, used to detect drafts completed while a
// payment webhook was missed.
func (c *Client) GetDraftOrder(ctx context.Context, id string) (DraftOrder, error) {
	var out draftOrderEnvelope
	if err := c.do(ctx, "GET", fmt.Sprintf("draft_orders/%s.json", id), nil, nil, &out); err != nil {
		return DraftOrder{}, err
	}
	return out.DraftOrder, nil
}

// GetOrder reads one completed order.
func (c *Client) GetOrder(ctx context.Context, id string) (Order, error) {
	var out orderEnvelope
	if err := c.do(ctx, "GET", fmt.Sprintf("orders/%s.json", id), nil, nil, &out); err != nil {
		return Order{}, err
	}
	return out.Order, nil
}
