package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sportshop/checkout-gateway/internal/checkout"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
)

var _ ports.OrderService = (*OrderClient)(nil)

// OrderClient creates pending orders and updates their status.
type OrderClient struct {
	*Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{Client: c}
}

type createOrderItemDTO struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type createOrderRequestDTO struct {
	UserID          string               `json:"user_id"`
	Items           []createOrderItemDTO `json:"items"`
	ShippingAddress string               `json:"shipping_address"`
	Phone           string               `json:"phone"`
	Email           string               `json:"email"`
	Name            string               `json:"name"`
	PaymentMethod   string               `json:"payment_method"`
}

type createOrderDataDTO struct {
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
}

// CreateOrder persists a pending order. No retries: a failure aborts the
// whole checkout attempt and leaves the cart untouched.
func (o *OrderClient) CreateOrder(ctx context.Context, in entity.CreateOrderInput) (*entity.PendingOrder, error) {
	items := make([]createOrderItemDTO, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, createOrderItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	env, err := o.doJSON(ctx, http.MethodPost, "/orders/create", in.UserID, createOrderRequestDTO{
		UserID:          in.UserID,
		Items:           items,
		ShippingAddress: in.Shipping.Address,
		Phone:           in.Shipping.Phone,
		Email:           in.Shipping.Email,
		Name:            in.Shipping.FullName,
		PaymentMethod:   in.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		// The backend's rejection message is surfaced verbatim.
		return nil, &checkout.OrderCreationError{Message: env.Message}
	}

	var data createOrderDataDTO
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("rest: decode order: %w", err)
	}

	return &entity.PendingOrder{
		OrderID:     data.OrderID,
		OrderNumber: data.OrderNumber,
		TotalAmount: data.TotalAmount,
	}, nil
}

// UpdateStatus sets the order's status. Callers on the reconciliation path
// treat a failure as best-effort.
func (o *OrderClient) UpdateStatus(ctx context.Context, orderID, status string) error {
	env, err := o.doJSON(ctx, http.MethodPut, "/orders/"+orderID+"/status", "", map[string]string{
		"status": status,
	})
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("rest: update order %s status to %s: %s", orderID, status, env.Message)
	}
	return nil
}
