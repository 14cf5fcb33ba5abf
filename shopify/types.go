package shopify

// Wire types for the Shopify Admin REST API, trimmed to the fields the sync
// engine reads or writes.

type Variant struct {
	ID    int64  `json:"id,omitempty"`
	Price string `json:"price,omitempty"`
	Title string `json:"title,omitempty"`
}

type Product struct {
	ID       int64     `json:"id,omitempty"`
	Title    string    `json:"title"`
	Tags     string    `json:"tags,omitempty"`
	Status   string    `json:"status,omitempty"`
	Variants []Variant `json:"variants,omitempty"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

type productEnvelope struct {
	Product Product `json:"product"`
}

type DraftLineItem struct {
	VariantID int64  `json:"variant_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Price     string `json:"price,omitempty"`
	Quantity  int    `json:"quantity"`
	// Custom line items carry no variant and are untracked.
	Custom bool `json:"custom,omitempty"`
}

type DraftCustomer struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

type DraftOrder struct {
	ID        int64           `json:"id,omitempty"`
	Note      string          `json:"note,omitempty"`
	Tags      string          `json:"tags,omitempty"`
	LineItems []DraftLineItem `json:"line_items"`
	Customer  *DraftCustomer  `json:"customer,omitempty"`
	Status    string          `json:"status,omitempty"`
	// OrderID is set once the draft has been completed into a real order.
	OrderID *int64 `json:"order_id,omitempty"`
}

type draftOrderEnvelope struct {
	DraftOrder DraftOrder `json:"draft_order"`
}

// Order is a completed (paid) Shopify order as delivered by the orders/paid
// webhook or the orders read endpoint.
type Order struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	TotalPrice string `json:"total_price"`
	// SourceName is "shopify_draft_order" for orders completed from a draft.
	SourceName string          `json:"source_name"`
	LineItems  []OrderLineItem `json:"line_items"`
	TotalTip   string          `json:"total_tip_received"`
	Customer   *DraftCustomer  `json:"customer,omitempty"`
}

type OrderLineItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type orderEnvelope struct {
	Order Order `json:"order"`
}
