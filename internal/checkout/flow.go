// Package checkout implements the two halves of the payment flow: the
// pre-redirect orchestration (validate → create order → request payment URL
// → persist the pending-payment record) and the post-return reconciliation
// state machine. The full-page navigation to the gateway is an intentional
// point of no return; the only state shared across it is the record in the
// pending store.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/sportshop/checkout-gateway/internal/events"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/pkg/metrics"
)

// PaymentMethodVNPay is the only payment method this flow supports.
const PaymentMethodVNPay = "vnpay"

// Flow runs the pre-redirect half of a checkout attempt. The two backend
// calls it makes are strictly sequential: the payment URL request needs the
// order number from the create response.
type Flow struct {
	cart    ports.CartService
	orders  ports.OrderService
	gateway ports.PaymentGateway
	pending ports.PendingStore
	// publisher and m are nil-safe: events and metrics are skipped if unset.
	publisher *events.Publisher
	m         *metrics.CheckoutMetrics
}

func NewFlow(
	cart ports.CartService,
	orders ports.OrderService,
	gateway ports.PaymentGateway,
	pending ports.PendingStore,
	publisher *events.Publisher,
	m *metrics.CheckoutMetrics,
) *Flow {
	return &Flow{
		cart:      cart,
		orders:    orders,
		gateway:   gateway,
		pending:   pending,
		publisher: publisher,
		m:         m,
	}
}

// BeginInput is one checkout attempt for a signed-in customer.
type BeginInput struct {
	Session  entity.Session
	Shipping entity.ShippingInfo
	BankCode string
	Language string
}

// BeginResult is everything the client needs to navigate to the gateway.
type BeginResult struct {
	PaymentURL string
	Order      entity.PendingOrder
	Amount     int64
}

// Begin validates the shipping form, snapshots the cart, creates a pending
// order and obtains the hosted-payment-page URL.
//
// The pending-payment record is written durably before the URL is returned:
// once the caller navigates, the page unloads and nothing in memory survives,
// so the record must already be in the store.
func (f *Flow) Begin(ctx context.Context, in BeginInput) (*BeginResult, error) {
	if fieldErrs := ValidateShipping(in.Shipping); len(fieldErrs) > 0 {
		f.countAttempt("validation_failed")
		return nil, &ValidationError{Fields: fieldErrs}
	}

	items, err := f.cart.GetCart(ctx, in.Session.UserID)
	if err != nil {
		f.countAttempt("cart_unavailable")
		return nil, fmt.Errorf("checkout: cart snapshot: %w", err)
	}

	orderItems, total := selectSellable(items)
	if len(orderItems) == 0 {
		f.countAttempt("no_valid_items")
		return nil, ErrNoValidItems
	}

	f.publish(ctx, events.EventCheckoutStarted, events.Event{
		UserID:  in.Session.UserID,
		Payload: map[string]any{"items": len(orderItems), "total": total},
	})

	order, err := f.orders.CreateOrder(ctx, entity.CreateOrderInput{
		UserID:        in.Session.UserID,
		Items:         orderItems,
		Shipping:      in.Shipping,
		PaymentMethod: PaymentMethodVNPay,
	})
	if err != nil {
		f.countAttempt("order_failed")
		return nil, wrapOrderError(err)
	}

	// The gateway keys its callback on the order number; without it the
	// returned payment can never be matched back to the order.
	if order.OrderNumber == "" {
		f.countAttempt("missing_order_number")
		return nil, ErrMissingOrderNumber
	}

	amount := int64(math.Round(order.TotalAmount))
	orderInfo := fmt.Sprintf("Thanh toan don hang %s - %s", order.OrderNumber, in.Shipping.FullName)

	paymentURL, err := f.gateway.CreatePaymentURL(ctx, entity.PaymentURLInput{
		Amount:      amount,
		OrderInfo:   orderInfo,
		Language:    in.Language,
		BankCode:    in.BankCode,
		OrderNumber: order.OrderNumber,
	})
	if err != nil {
		f.countAttempt("payment_url_failed")
		return nil, wrapPaymentURLError(err)
	}

	// Write state before navigating, never after: the redirect unloads the
	// page and any write still in flight would be lost. A failed write
	// aborts the attempt while the user is still on the checkout page.
	if err := f.pending.Save(ctx, in.Session.UserID, entity.PendingPayment{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Amount:      amount,
	}); err != nil {
		f.countAttempt("pending_save_failed")
		return nil, fmt.Errorf("checkout: persist pending payment: %w", err)
	}

	slog.InfoContext(ctx, "checkout redirecting to gateway",
		"user_id", in.Session.UserID,
		"order_id", order.OrderID,
		"order_number", order.OrderNumber,
		"amount", amount,
	)
	f.countAttempt("redirected")
	f.publish(ctx, events.EventCheckoutRedirected, events.Event{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		UserID:      in.Session.UserID,
		Payload:     map[string]any{"amount": amount},
	})

	return &BeginResult{
		PaymentURL: paymentURL,
		Order:      *order,
		Amount:     amount,
	}, nil
}

// selectSellable drops cart lines with a non-positive quantity or no usable
// price, and returns the surviving order lines plus their total.
func selectSellable(items []entity.CartItem) ([]entity.OrderItem, float64) {
	orderItems := make([]entity.OrderItem, 0, len(items))
	var total float64
	for _, it := range items {
		if !it.Sellable() {
			continue
		}
		price := it.UnitPrice()
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     price,
		})
		total += price * float64(it.Quantity)
	}
	return orderItems, total
}

// wrapOrderError keeps backend transport errors distinguishable from
// business rejections while preserving the backend's message for display.
func wrapOrderError(err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	var oce *OrderCreationError
	if errors.As(err, &oce) {
		return err
	}
	return &OrderCreationError{Message: err.Error()}
}

func wrapPaymentURLError(err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	var pue *PaymentURLError
	if errors.As(err, &pue) {
		return err
	}
	return &PaymentURLError{Message: err.Error()}
}

func (f *Flow) countAttempt(result string) {
	if f.m != nil {
		f.m.Attempts.WithLabelValues(result).Inc()
	}
}

func (f *Flow) publish(ctx context.Context, eventType string, e events.Event) {
	if f.publisher.Enabled() {
		f.publisher.Publish(ctx, eventType, e)
	}
}
