package service

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
)

// In-memory implementations of the backend ports, intended for local
// development and manual testing only. Do NOT use in production.

var _ ports.CartService = (*fakeCartService)(nil)

type fakeCartService struct {
	mu    sync.Mutex
	carts map[string][]entity.CartItem
}

// NewFakeCartService returns a cart pre-seeded for any user that asks, so a
// local checkout can run end to end without the commerce backend.
func NewFakeCartService() ports.CartService {
	return &fakeCartService{carts: make(map[string][]entity.CartItem)}
}

func (f *fakeCartService) GetCart(ctx context.Context, userID string) ([]entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, ok := f.carts[userID]
	if !ok {
		items = []entity.CartItem{
			{
				ID: uuid.NewString(),
				Product: entity.Product{
					ID:        uuid.NewString(),
					Name:      "Giày chạy bộ Pegasus 41",
					Price:     3200000,
					SalePrice: 2650000,
					Size:      "42",
					Brand:     "Nike",
				},
				Quantity: 1,
			},
			{
				ID: uuid.NewString(),
				Product: entity.Product{
					ID:    uuid.NewString(),
					Name:  "Áo bóng đá sân nhà 2025",
					Price: 850000,
					Size:  "L",
					Brand: "Adidas",
				},
				Quantity: 2,
			},
		}
		f.carts[userID] = items
	}

	out := make([]entity.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeCartService) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[userID] = nil
	return nil
}

var _ ports.OrderService = (*fakeOrderService)(nil)

type fakeOrderService struct {
	mu     sync.Mutex
	orders map[string]*entity.PendingOrder
	status map[string]string
}

// NewFakeOrderService returns an in-memory OrderService.
func NewFakeOrderService() ports.OrderService {
	return &fakeOrderService{
		orders: make(map[string]*entity.PendingOrder),
		status: make(map[string]string),
	}
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, in entity.CreateOrderInput) (*entity.PendingOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total float64
	for _, it := range in.Items {
		total += float64(it.Quantity) * it.Price
	}

	order := &entity.PendingOrder{
		OrderID:     uuid.NewString(),
		OrderNumber: fmt.Sprintf("ORD%s%04d", time.Now().UTC().Format("20060102"), rand.Intn(10000)),
		TotalAmount: total,
	}
	f.orders[order.OrderID] = order
	f.status[order.OrderID] = "pending"
	return order, nil
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders[orderID]; !ok {
		return fmt.Errorf("fake order service: order %s not found", orderID)
	}
	f.status[orderID] = status
	return nil
}

var _ ports.PaymentGateway = (*fakePaymentGateway)(nil)

type fakePaymentGateway struct{}

// NewFakePaymentGateway returns a gateway that hands out sandbox-shaped URLs
// without signing anything.
func NewFakePaymentGateway() ports.PaymentGateway {
	return &fakePaymentGateway{}
}

func (f *fakePaymentGateway) CreatePaymentURL(ctx context.Context, in entity.PaymentURLInput) (string, error) {
	q := url.Values{}
	q.Set("vnp_TxnRef", in.OrderNumber)
	q.Set("vnp_Amount", fmt.Sprintf("%d", in.Amount*100))
	q.Set("vnp_OrderInfo", in.OrderInfo)
	return "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?" + q.Encode(), nil
}
