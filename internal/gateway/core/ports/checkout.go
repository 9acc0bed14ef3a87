package ports

import (
	"context"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
)

// CartService reads and clears the server-side cart owned by the commerce
// backend. Checkout only ever takes snapshots; the single mutation it is
// allowed is the post-payment clear.
type CartService interface {
	GetCart(ctx context.Context, userID string) ([]entity.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

// OrderService persists pending orders and updates their status.
type OrderService interface {
	CreateOrder(ctx context.Context, in entity.CreateOrderInput) (*entity.PendingOrder, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// PaymentGateway asks the VNPay integration for a hosted-payment-page URL
// tied to an order. The returned URL is opaque to the caller.
type PaymentGateway interface {
	CreatePaymentURL(ctx context.Context, in entity.PaymentURLInput) (string, error)
}

// PendingStore carries the pending-payment record across the full-page
// navigation to the gateway and back. Save overwrites any prior record for
// the user; Consume reads and deletes atomically, returning nil (no error)
// when the record is already gone.
type PendingStore interface {
	Save(ctx context.Context, userID string, p entity.PendingPayment) error
	Consume(ctx context.Context, userID string) (*entity.PendingPayment, error)
}

// SessionStore resolves the session cookie into the signed-in customer.
// Sessions are owned by the auth service; this port only reads and revokes.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
