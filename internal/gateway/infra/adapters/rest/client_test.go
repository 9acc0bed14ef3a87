package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportshop/checkout-gateway/internal/checkout"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func createOrderInput() entity.CreateOrderInput {
	return entity.CreateOrderInput{
		UserID: "user-1",
		Items: []entity.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 80000},
		},
		Shipping: entity.ShippingInfo{
			FullName: "Nguyễn Văn An",
			Phone:    "0901234567",
			Email:    "an.nguyen@example.com",
			Address:  "12 Lê Lợi, Quận 1, TP.HCM",
		},
		PaymentMethod: "vnpay",
	}
}

func TestOrderClient_CreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/create", r.URL.Path)
		assert.Equal(t, "user-1", r.Header.Get("X-User-Id"))

		var body createOrderRequestDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user-1", body.UserID)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "prod-1", body.Items[0].ProductID)
		assert.Equal(t, "vnpay", body.PaymentMethod)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"order_id":     "42",
				"order_number": "ORD202508290001",
				"total_amount": 160000,
			},
		})
	})

	order, err := NewOrderClient(client).CreateOrder(context.Background(), createOrderInput())

	require.NoError(t, err)
	assert.Equal(t, "42", order.OrderID)
	assert.Equal(t, "ORD202508290001", order.OrderNumber)
	assert.Equal(t, 160000.0, order.TotalAmount)
}

func TestOrderClient_CreateOrder_RejectionSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Sản phẩm đã hết hàng",
		})
	})

	_, err := NewOrderClient(client).CreateOrder(context.Background(), createOrderInput())

	var oce *checkout.OrderCreationError
	require.ErrorAs(t, err, &oce)
	assert.Equal(t, "Sản phẩm đã hết hàng", oce.Message)
}

func TestClient_StatusCodesBecomeBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"token expired"}`, "token expired"},
		{"server error with empty body", http.StatusInternalServerError, "", "Internal Server Error"},
		{"bad request with broken body", http.StatusBadRequest, "<html>oops</html>", "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := NewOrderClient(client).CreateOrder(context.Background(), createOrderInput())

			var be *checkout.BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.status, be.StatusCode)
			assert.Equal(t, tt.want, be.Message)
		})
	}
}

func TestOrderClient_UpdateStatus(t *testing.T) {
	var gotPath, gotStatus string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotStatus = body["status"]
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	err := NewOrderClient(client).UpdateStatus(context.Background(), "42", "paid")

	require.NoError(t, err)
	assert.Equal(t, "/orders/42/status", gotPath)
	assert.Equal(t, "paid", gotStatus)
}

func TestVNPayClient_CreatePaymentURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/vnpay/create-payment-url", r.URL.Path)

		var body paymentURLRequestDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(160000), body.Amount)
		assert.Equal(t, "ORD202508290001", body.OrderNumber)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"paymentUrl": "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?x=1"},
		})
	})

	url, err := NewVNPayClient(client).CreatePaymentURL(context.Background(), entity.PaymentURLInput{
		Amount:      160000,
		OrderInfo:   "Thanh toan don hang ORD202508290001 - Nguyễn Văn An",
		Language:    "vn",
		OrderNumber: "ORD202508290001",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?x=1", url)
}

func TestVNPayClient_EmptyURLIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"paymentUrl": ""},
		})
	})

	_, err := NewVNPayClient(client).CreatePaymentURL(context.Background(), entity.PaymentURLInput{Amount: 1000})

	var pue *checkout.PaymentURLError
	require.ErrorAs(t, err, &pue)
}

func TestCartClient_GetCart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "user-1", r.Header.Get("X-User-Id"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{
					"id": "line-1",
					"product": map[string]any{
						"id":         "prod-1",
						"name":       "Giày chạy bộ Pegasus 41",
						"price":      3200000,
						"sale_price": 2690000,
					},
					"quantity": 2,
				},
			},
		})
	})

	items, err := NewCartClient(client).GetCart(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "line-1", items[0].ID)
	assert.Equal(t, 2690000.0, items[0].Product.SalePrice)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2690000.0, items[0].UnitPrice())
}

func TestCartClient_Clear(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	require.NoError(t, NewCartClient(client).Clear(context.Background(), "user-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/cart/clear", gotPath)
}
