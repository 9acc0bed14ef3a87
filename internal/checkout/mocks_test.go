package checkout

import (
	"context"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
)

// mockCart implements ports.CartService for testing.
type mockCart struct {
	items      []entity.CartItem
	getErr     error
	clearErr   error
	clearCalls int
}

func (m *mockCart) GetCart(_ context.Context, _ string) ([]entity.CartItem, error) {
	return m.items, m.getErr
}

func (m *mockCart) Clear(_ context.Context, _ string) error {
	m.clearCalls++
	return m.clearErr
}

type statusUpdate struct {
	OrderID string
	Status  string
}

// mockOrders implements ports.OrderService for testing.
type mockOrders struct {
	order       *entity.PendingOrder
	createErr   error
	createCalls int
	lastCreate  entity.CreateOrderInput
	updateErr   error
	updates     []statusUpdate
}

func (m *mockOrders) CreateOrder(_ context.Context, in entity.CreateOrderInput) (*entity.PendingOrder, error) {
	m.createCalls++
	m.lastCreate = in
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.order, nil
}

func (m *mockOrders) UpdateStatus(_ context.Context, orderID, status string) error {
	m.updates = append(m.updates, statusUpdate{OrderID: orderID, Status: status})
	return m.updateErr
}

// mockGateway implements ports.PaymentGateway for testing.
type mockGateway struct {
	url       string
	err       error
	calls     int
	lastInput entity.PaymentURLInput
}

func (m *mockGateway) CreatePaymentURL(_ context.Context, in entity.PaymentURLInput) (string, error) {
	m.calls++
	m.lastInput = in
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

// mockPending implements ports.PendingStore for testing. Consume returns the
// record once and then reports it absent, mirroring the Redis GETDEL.
type mockPending struct {
	record       *entity.PendingPayment
	saved        *entity.PendingPayment
	saveErr      error
	consumeErr   error
	consumeCalls int
}

func (m *mockPending) Save(_ context.Context, _ string, p entity.PendingPayment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &p
	m.record = &p
	return nil
}

func (m *mockPending) Consume(_ context.Context, _ string) (*entity.PendingPayment, error) {
	m.consumeCalls++
	if m.consumeErr != nil {
		return nil, m.consumeErr
	}
	rec := m.record
	m.record = nil
	return rec, nil
}
