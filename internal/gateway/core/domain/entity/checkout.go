package entity

// Product is the subset of the catalog record the checkout flow cares about.
type Product struct {
	ID            string
	Name          string
	Price         float64
	SalePrice     float64
	FeaturedImage string
	Size          string
	Brand         string
}

// CartItem is a read-only snapshot of one cart line. The cart service owns
// the data; checkout never mutates it directly.
type CartItem struct {
	ID       string
	Product  Product
	Quantity int
}

// UnitPrice returns the effective price for one unit: the sale price when
// one is set, the regular price otherwise.
func (c CartItem) UnitPrice() float64 {
	if c.Product.SalePrice > 0 {
		return c.Product.SalePrice
	}
	return c.Product.Price
}

// Sellable reports whether the line survives the pre-submission filter:
// a positive quantity and a positive effective price.
func (c CartItem) Sellable() bool {
	return c.Quantity > 0 && c.UnitPrice() > 0
}

// ShippingInfo holds the contact fields collected on the checkout form.
// It is transient: scoped to a single checkout attempt, never stored.
type ShippingInfo struct {
	FullName string
	Phone    string
	Email    string
	Address  string
}

// OrderItem is one line of an order-creation request.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     float64
}

// CreateOrderInput is everything the commerce backend needs to persist a
// pending order.
type CreateOrderInput struct {
	UserID        string
	Items         []OrderItem
	Shipping      ShippingInfo
	PaymentMethod string
}

// PendingOrder is the backend's answer to a create request. OrderNumber is
// the external-facing identifier the payment gateway echoes back in its
// callback; OrderID is the internal one used for status updates.
type PendingOrder struct {
	OrderID     string
	OrderNumber string
	TotalAmount float64
}

// PaymentURLInput is the request for a hosted-payment-page URL.
type PaymentURLInput struct {
	Amount      int64
	OrderInfo   string
	Language    string
	BankCode    string
	OrderNumber string
}

// PendingPayment is the record that bridges the redirect to the gateway and
// back. It is the only state that survives the navigation boundary, persisted
// under the well-known "pending_order" slot until the reconciler consumes it.
type PendingPayment struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Amount      int64  `json:"amount"`
}

// Session identifies the signed-in customer for the duration of a request.
// It replaces the storefront's ambient user context with an explicit value
// resolved from the session cookie.
type Session struct {
	UserID string
	Email  string
}

// Order lifecycle statuses the reconciler writes back to the backend.
const (
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)
