package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShopify struct {
	products []Product
	created  []Product
	drafts   []DraftOrder
	deleted  []string
}

func (f *fakeShopify) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/admin/api/2024-01/products.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(productsResponse{Products: f.products})
		case http.MethodPost:
			var in productEnvelope
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in.Product.ID = int64(len(f.created) + 100)
			if len(in.Product.Variants) > 0 {
				in.Product.Variants[0].ID = in.Product.ID * 10
			}
			f.created = append(f.created, in.Product)
			json.NewEncoder(w).Encode(productEnvelope{Product: in.Product})
		}
	})

	mux.HandleFunc("/admin/api/2024-01/draft_orders.json", func(w http.ResponseWriter, r *http.Request) {
		var in draftOrderEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.DraftOrder.ID = int64(len(f.drafts) + 9000)
		f.drafts = append(f.drafts, in.DraftOrder)
		json.NewEncoder(w).Encode(draftOrderEnvelope{DraftOrder: in.DraftOrder})
	})

	mux.HandleFunc("/admin/api/2024-01/draft_orders/9000.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			f.deleted = append(f.deleted, "9000")
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(draftOrderEnvelope{DraftOrder: DraftOrder{ID: 9000, Status: "open"}})
	})

	mux.HandleFunc("/admin/api/2024-01/orders/4242.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(orderEnvelope{Order: Order{ID: 4242, TotalPrice: "150.00"}})
	})

	return mux
}

func newTestClient(t *testing.T, fake *fakeShopify) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token")
	return client, server
}

func TestEnsureServiceProductPrefersExactMatch(t *testing.T) {
	fake := &fakeShopify{products: []Product{
		{ID: 1, Title: "Color and Cut", Tags: "combo", Variants: []Variant{{ID: 11}}},
		{ID: 2, Title: "color", Tags: "color-service", Variants: []Variant{{ID: 22}}},
	}}
	client, _ := newTestClient(t, fake)

	tags, variantID, err := client.EnsureServiceProduct(context.Background(), "Color", 80)
	require.NoError(t, err)
	assert.Equal(t, "color-service", tags)
	assert.Equal(t, int64(22), variantID)
	assert.Empty(t, fake.created)
}

func TestEnsureServiceProductAcceptsContainsMatch(t *testing.T) {
	fake := &fakeShopify{products: []Product{
		{ID: 1, Title: "Signature Color Treatment", Tags: "signature", Variants: []Variant{{ID: 11}}},
	}}
	client, _ := newTestClient(t, fake)

	tags, variantID, err := client.EnsureServiceProduct(context.Background(), "Color", 80)
	require.NoError(t, err)
	assert.Equal(t, "signature", tags)
	assert.Equal(t, int64(11), variantID)
}

func TestEnsureServiceProductCreatesWhenMissing(t *testing.T) {
	fake := &fakeShopify{}
	client, _ := newTestClient(t, fake)

	_, variantID, err := client.EnsureServiceProduct(context.Background(), "Balayage", 120)
	require.NoError(t, err)
	assert.NotZero(t, variantID)

	require.Len(t, fake.created, 1)
	assert.Equal(t, "Balayage", fake.created[0].Title)
	require.Len(t, fake.created[0].Variants, 1)
	assert.Equal(t, "120.00", fake.created[0].Variants[0].Price)
}

func TestCreateAndDeleteDraftOrder(t *testing.T) {
	fake := &fakeShopify{}
	client, _ := newTestClient(t, fake)

	id, err := client.CreateDraftOrder(context.Background(), DraftOrder{
		Tags:      "appointment, stylist:Alex",
		LineItems: []DraftLineItem{{VariantID: 22, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), id)

	require.NoError(t, client.DeleteDraftOrder(context.Background(), "9000"))
	assert.Equal(t, []string{"9000"}, fake.deleted)
}

func TestGetOrder(t *testing.T) {
	client, _ := newTestClient(t, &fakeShopify{})

	order, err := client.GetOrder(context.Background(), "4242")
	require.NoError(t, err)
	assert.Equal(t, int64(4242), order.ID)
	assert.Equal(t, "150.00", order.TotalPrice)
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"Not Found"}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token")
	_, err := client.GetOrder(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}
