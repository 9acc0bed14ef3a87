package checkout

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoValidItems means every cart line was dropped by the
	// pre-submission filter; the backend is never contacted.
	ErrNoValidItems = errors.New("no valid products in cart")

	// ErrMissingOrderNumber means the backend returned an order without the
	// external identifier the gateway keys its callback on. Checkout cannot
	// proceed; the payment gateway is never contacted.
	ErrMissingOrderNumber = errors.New("order has no order number")
)

// ValidationError carries field-level messages from the shipping validator.
// It blocks submission; no network call has been made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("shipping info invalid: %d field(s)", len(e.Fields))
}

// OrderCreationError wraps the backend's rejection of an order-creation
// request. Message is the backend's text, surfaced verbatim to the user.
type OrderCreationError struct {
	Message string
}

func (e *OrderCreationError) Error() string {
	return "order creation failed: " + e.Message
}

// PaymentURLError means the gateway integration did not return a usable
// redirect URL. Checkout is aborted and no navigation occurs.
type PaymentURLError struct {
	Message string
}

func (e *PaymentURLError) Error() string {
	return "payment url request failed: " + e.Message
}

// BackendError is a transport-level failure from one of the two core
// pre-redirect calls, keyed by HTTP status code.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage maps the status code to the storefront's user-facing text.
func (e *BackendError) UserMessage() string {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return "Thông tin thanh toán không hợp lệ"
	case http.StatusUnauthorized:
		return "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại"
	case http.StatusInternalServerError:
		return "Lỗi máy chủ, vui lòng thử lại sau"
	default:
		return "Có lỗi xảy ra, vui lòng thử lại"
	}
}
