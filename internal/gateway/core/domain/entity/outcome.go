package entity

import "net/url"

// PaymentOutcome is the gateway's reported result, derived entirely from the
// query parameters on the return URL. It is ephemeral: parsed once, consumed
// once by the reconciler, never persisted.
type PaymentOutcome struct {
	Status       string
	VNPayOrderID string
	Amount       string
	Code         string
	Message      string
}

// ParsePaymentOutcome reads the return-URL contract out of query values.
// Missing parameters come back as empty strings; the reconciler treats an
// unrecognised status as its Unknown terminal state.
func ParsePaymentOutcome(q url.Values) PaymentOutcome {
	return PaymentOutcome{
		Status:       q.Get("status"),
		VNPayOrderID: q.Get("vnpay_order_id"),
		Amount:       q.Get("amount"),
		Code:         q.Get("code"),
		Message:      q.Get("message"),
	}
}
