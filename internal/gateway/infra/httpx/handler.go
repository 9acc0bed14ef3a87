package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sportshop/checkout-gateway/internal/checkout"
	"github.com/sportshop/checkout-gateway/internal/checkout/reconlog"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/gateway/infra/httpx/middlewares"
	"github.com/sportshop/checkout-gateway/internal/pkg/metrics"
)

// Handler exposes the two checkout entry points plus the reconciliation
// outcome lookup. audit may be nil, in which case the lookup always 404s.
type Handler struct {
	flow       *checkout.Flow
	reconciler *checkout.Reconciler
	audit      reconlog.Repository
	sessions   ports.SessionStore
	m          *metrics.CheckoutMetrics
}

func NewHandler(flow *checkout.Flow, reconciler *checkout.Reconciler, audit reconlog.Repository, sessions ports.SessionStore, m *metrics.CheckoutMetrics) *Handler {
	return &Handler{
		flow:       flow,
		reconciler: reconciler,
		audit:      audit,
		sessions:   sessions,
		m:          m,
	}
}

// Checkout runs the pre-redirect flow and returns the gateway URL the client
// navigates to. Once the client follows that URL the page unloads; nothing
// after this response can assume in-memory continuation.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	defer h.observe("checkout", time.Now())

	sess, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	result, err := h.flow.Begin(r.Context(), checkout.BeginInput{
		Session: sess,
		Shipping: entity.ShippingInfo{
			FullName: req.FullName,
			Phone:    req.Phone,
			Email:    req.Email,
			Address:  req.Address,
		},
		BankCode: req.BankCode,
		Language: req.Language,
	})
	if err != nil {
		h.writeFlowError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{
		PaymentURL:  result.PaymentURL,
		OrderID:     result.Order.OrderID,
		OrderNumber: result.Order.OrderNumber,
		Amount:      result.Amount,
	})
}

// PaymentReturn is the post-redirect entry point: the gateway sends the
// browser back here with the outcome in the query string.
func (h *Handler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	defer h.observe("payment_return", time.Now())

	sess, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	outcome := h.reconciler.Reconcile(r.Context(), sess, entity.ParsePaymentOutcome(r.URL.Query()))

	writeJSON(w, http.StatusOK, OutcomeResponse{
		State:       string(outcome.State),
		Title:       outcome.Title,
		Message:     outcome.Message,
		OrderNumber: outcome.OrderNumber,
		Amount:      outcome.Amount,
		Code:        r.URL.Query().Get("code"),
	})
}

// Outcome returns the latest reconciliation log entry for an order.
func (h *Handler) Outcome(w http.ResponseWriter, r *http.Request) {
	defer h.observe("outcome", time.Now())

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order_id_required", "")
		return
	}
	if h.audit == nil {
		writeError(w, http.StatusNotFound, "outcome_not_found", "")
		return
	}

	entry, err := h.audit.Latest(r.Context(), orderID)
	if err != nil {
		slog.ErrorContext(r.Context(), "outcome lookup failed", "order_id", orderID, "error", err)
		writeError(w, http.StatusInternalServerError, "outcome_lookup_failed", "")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "outcome_not_found", "")
		return
	}

	writeJSON(w, http.StatusOK, ReconciliationEntryResponse{
		OrderID:     entry.OrderID,
		Kind:        string(entry.Kind),
		State:       entry.State,
		GatewayCode: entry.GatewayCode,
		Detail:      entry.Detail,
		TraceID:     entry.TraceID,
		CreatedAt:   entry.CreatedAt,
	})
}

// Logout revokes the session and expires the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middlewares.SessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			slog.ErrorContext(r.Context(), "session delete failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeFlowError maps the checkout error taxonomy onto HTTP responses.
// Backend rejections keep their message verbatim; transport failures get the
// storefront's status-specific text.
func (h *Handler) writeFlowError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation_failed",
			Fields: ve.Fields,
		})
		return
	}

	if errors.Is(err, checkout.ErrNoValidItems) {
		writeError(w, http.StatusBadRequest, "no_valid_items", "Không có sản phẩm hợp lệ trong giỏ hàng")
		return
	}
	if errors.Is(err, checkout.ErrMissingOrderNumber) {
		writeError(w, http.StatusBadGateway, "missing_order_number", "Không thể khởi tạo thanh toán cho đơn hàng này")
		return
	}

	var be *checkout.BackendError
	if errors.As(err, &be) {
		status := http.StatusBadGateway
		if be.StatusCode == http.StatusBadRequest || be.StatusCode == http.StatusUnauthorized {
			status = be.StatusCode
		}
		writeError(w, status, "backend_error", be.UserMessage())
		return
	}

	var oce *checkout.OrderCreationError
	if errors.As(err, &oce) {
		writeError(w, http.StatusBadGateway, "order_creation_failed", oce.Message)
		return
	}

	var pue *checkout.PaymentURLError
	if errors.As(err, &pue) {
		writeError(w, http.StatusBadGateway, "payment_url_failed", pue.Message)
		return
	}

	slog.ErrorContext(r.Context(), "checkout failed", "error", err)
	writeError(w, http.StatusInternalServerError, "checkout_failed", "Có lỗi xảy ra, vui lòng thử lại")
}

func (h *Handler) observe(handler string, start time.Time) {
	if h.m != nil {
		h.m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
