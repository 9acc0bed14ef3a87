package httpx

import "time"

type CheckoutRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	BankCode string `json:"bank_code,omitempty"`
	Language string `json:"language,omitempty"`
}

type CheckoutResponse struct {
	PaymentURL  string `json:"payment_url"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Amount      int64  `json:"amount"`
}

type OutcomeResponse struct {
	State       string `json:"state"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	OrderNumber string `json:"order_number,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	Code        string `json:"code,omitempty"`
}

type ReconciliationEntryResponse struct {
	OrderID     string    `json:"order_id"`
	Kind        string    `json:"kind"`
	State       string    `json:"state"`
	GatewayCode string    `json:"gateway_code,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	TraceID     string    `json:"trace_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
