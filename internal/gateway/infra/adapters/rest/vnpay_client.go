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

var _ ports.PaymentGateway = (*VNPayClient)(nil)

// VNPayClient talks to the VNPay integration endpoint that signs requests
// and builds hosted-payment-page URLs. Signature handling lives entirely on
// that side; this client only carries the order reference and amount over.
type VNPayClient struct {
	*Client
}

func NewVNPayClient(c *Client) *VNPayClient {
	return &VNPayClient{Client: c}
}

type paymentURLRequestDTO struct {
	Amount      int64  `json:"amount"`
	OrderInfo   string `json:"orderInfo"`
	Language    string `json:"language"`
	BankCode    string `json:"bankCode"`
	OrderNumber string `json:"order_number"`
}

type paymentURLDataDTO struct {
	PaymentURL string `json:"paymentUrl"`
}

// CreatePaymentURL requests a redirect URL for the order. The URL is opaque;
// nothing in it is parsed or validated here.
func (v *VNPayClient) CreatePaymentURL(ctx context.Context, in entity.PaymentURLInput) (string, error) {
	env, err := v.doJSON(ctx, http.MethodPost, "/payment/vnpay/create-payment-url", "", paymentURLRequestDTO{
		Amount:      in.Amount,
		OrderInfo:   in.OrderInfo,
		Language:    in.Language,
		BankCode:    in.BankCode,
		OrderNumber: in.OrderNumber,
	})
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", &checkout.PaymentURLError{Message: env.Message}
	}

	var data paymentURLDataDTO
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("rest: decode payment url: %w", err)
	}
	if data.PaymentURL == "" {
		return "", &checkout.PaymentURLError{Message: "gateway returned an empty payment URL"}
	}

	return data.PaymentURL, nil
}
