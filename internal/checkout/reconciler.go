package checkout

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/sportshop/checkout-gateway/internal/checkout/reconlog"
	"github.com/sportshop/checkout-gateway/internal/events"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/pkg/metrics"
)

// State is a terminal state of the reconciliation state machine.
type State string

const (
	StateSuccess State = "success"
	StateFailed  State = "failed"
	StateError   State = "error"
	StateUnknown State = "unknown"
)

// Outcome is what the return page renders. OrderUpdated and CartCleared
// report whether the best-effort backend mutations went through; the user
// never sees them, but handlers expose them for observability.
type Outcome struct {
	State        State
	Title        string
	Message      string
	OrderNumber  string
	Amount       int64
	OrderUpdated bool
	CartCleared  bool
}

// Reconciler interprets the gateway's return parameters and reconciles them
// with the order and cart.
//
// The gateway's signal is authoritative for the user-facing outcome. The
// order-status update and cart clear are best-effort: a failure is logged,
// counted and written to the reconciliation log, but never changes what the
// user sees. The audit repo and publisher are nil-safe, skipped if unset.
type Reconciler struct {
	orders    ports.OrderService
	cart      ports.CartService
	pending   ports.PendingStore
	audit     reconlog.Repository
	publisher *events.Publisher
	m         *metrics.CheckoutMetrics
}

func NewReconciler(
	orders ports.OrderService,
	cart ports.CartService,
	pending ports.PendingStore,
	audit reconlog.Repository,
	publisher *events.Publisher,
	m *metrics.CheckoutMetrics,
) *Reconciler {
	return &Reconciler{
		orders:    orders,
		cart:      cart,
		pending:   pending,
		audit:     audit,
		publisher: publisher,
		m:         m,
	}
}

// Reconcile drives the state machine for one return from the gateway.
//
// It never mutates the order or the cart without a consumed pending-payment
// record: on a page refresh the record is already gone, the outcome is still
// rendered from the query parameters, and every mutation is silently skipped.
func (r *Reconciler) Reconcile(ctx context.Context, sess entity.Session, out entity.PaymentOutcome) Outcome {
	switch out.Status {
	case "success":
		return r.reconcileSuccess(ctx, sess, out)
	case "failed":
		return r.reconcileFailed(ctx, sess, out)
	case "error":
		return r.reconcileError(ctx, out)
	default:
		outcome := Outcome{
			State:   StateUnknown,
			Title:   "Không xác định được kết quả thanh toán",
			Message: "Vui lòng liên hệ bộ phận hỗ trợ để kiểm tra trạng thái đơn hàng",
		}
		r.finish(ctx, "", outcome, out)
		return outcome
	}
}

func (r *Reconciler) reconcileSuccess(ctx context.Context, sess entity.Session, out entity.PaymentOutcome) Outcome {
	rec := r.consume(ctx, sess.UserID)

	outcome := Outcome{
		State:       StateSuccess,
		Title:       "Đặt hàng thành công",
		Message:     "Thanh toán thành công. Đơn hàng của bạn đang được xử lý, chúng tôi sẽ liên hệ để xác nhận giao hàng.",
		OrderNumber: out.VNPayOrderID,
		Amount:      parseAmount(out.Amount),
	}

	var orderID string
	if rec != nil {
		orderID = rec.OrderID
		outcome.OrderNumber = rec.OrderNumber
		outcome.Amount = rec.Amount

		// Both calls are best-effort: the money already moved, so the user
		// sees success regardless. Failures become monitored conditions.
		if err := r.orders.UpdateStatus(ctx, rec.OrderID, entity.OrderStatusPaid); err != nil {
			r.mutationFailed(ctx, rec.OrderID, StateSuccess, "order_status", err)
		} else {
			outcome.OrderUpdated = true
		}
		if err := r.cart.Clear(ctx, sess.UserID); err != nil {
			r.mutationFailed(ctx, rec.OrderID, StateSuccess, "cart_clear", err)
		} else {
			outcome.CartCleared = true
		}

		r.publish(ctx, events.EventCheckoutCompleted, events.Event{
			OrderID:     rec.OrderID,
			OrderNumber: rec.OrderNumber,
			UserID:      sess.UserID,
			Payload:     map[string]any{"amount": rec.Amount},
		})
	}

	r.finish(ctx, orderID, outcome, out)
	return outcome
}

func (r *Reconciler) reconcileFailed(ctx context.Context, sess entity.Session, out entity.PaymentOutcome) Outcome {
	rec := r.consume(ctx, sess.UserID)

	outcome := Outcome{
		State:       StateFailed,
		Title:       "Thanh toán không thành công",
		Message:     ResponseCodeMessage(out.Code),
		OrderNumber: out.VNPayOrderID,
		Amount:      parseAmount(out.Amount),
	}

	var orderID string
	if rec != nil {
		orderID = rec.OrderID
		outcome.OrderNumber = rec.OrderNumber
		outcome.Amount = rec.Amount

		if err := r.orders.UpdateStatus(ctx, rec.OrderID, entity.OrderStatusCancelled); err != nil {
			r.mutationFailed(ctx, rec.OrderID, StateFailed, "order_status", err)
		} else {
			outcome.OrderUpdated = true
		}

		r.publish(ctx, events.EventCheckoutFailed, events.Event{
			OrderID:     rec.OrderID,
			OrderNumber: rec.OrderNumber,
			UserID:      sess.UserID,
			Payload:     map[string]any{"code": out.Code},
		})
	}

	r.finish(ctx, orderID, outcome, out)
	return outcome
}

// reconcileError handles the gateway reporting a processing error. No order
// mutation is attempted and the pending record is left alone so the user can
// retry the attempt.
func (r *Reconciler) reconcileError(ctx context.Context, out entity.PaymentOutcome) Outcome {
	outcome := Outcome{
		State: StateError,
		Title: "Lỗi xử lý thanh toán",
	}
	if out.Message == "invalid_signature" {
		// A signature mismatch means the callback was tampered with or
		// forged; retrying will not help.
		outcome.Message = "Chữ ký giao dịch không hợp lệ. Vui lòng liên hệ bộ phận hỗ trợ."
	} else {
		outcome.Message = "Hệ thống thanh toán gặp sự cố, vui lòng thử lại sau."
	}

	r.finish(ctx, "", outcome, out)
	return outcome
}

// consume fetches-and-deletes the pending record. A store error is treated
// as an absent record: rendering the outcome matters more than the bookkeeping.
func (r *Reconciler) consume(ctx context.Context, userID string) *entity.PendingPayment {
	rec, err := r.pending.Consume(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "reconcile: pending record unavailable", "user_id", userID, "error", err)
		return nil
	}
	return rec
}

// mutationFailed records a best-effort call that failed after a terminal
// gateway outcome. This is the monitored condition behind the
// reconcile_failures_total metric: a paid order may not be marked paid
// server-side until an operator repairs it.
func (r *Reconciler) mutationFailed(ctx context.Context, orderID string, state State, call string, err error) {
	slog.ErrorContext(ctx, "reconcile: best-effort mutation failed",
		"order_id", orderID,
		"state", string(state),
		"call", call,
		"error", err,
	)
	if r.m != nil {
		r.m.ReconcileFailures.WithLabelValues(call).Inc()
	}
	if r.audit != nil {
		entry := reconlog.NewEntry(ctx, orderID, reconlog.KindMutationFailed, string(state), "", call+": "+err.Error())
		if saveErr := r.audit.Save(ctx, entry); saveErr != nil {
			slog.ErrorContext(ctx, "reconcile: audit write failed", "order_id", orderID, "error", saveErr)
		}
	}
}

// finish records the terminal outcome in metrics and the audit log.
func (r *Reconciler) finish(ctx context.Context, orderID string, outcome Outcome, out entity.PaymentOutcome) {
	slog.InfoContext(ctx, "reconcile: outcome",
		"state", string(outcome.State),
		"order_id", orderID,
		"order_number", outcome.OrderNumber,
		"code", out.Code,
	)
	if r.m != nil {
		r.m.Outcomes.WithLabelValues(string(outcome.State)).Inc()
	}
	if r.audit != nil {
		entry := reconlog.NewEntry(ctx, orderID, reconlog.KindOutcome, string(outcome.State), out.Code, outcome.Message)
		if err := r.audit.Save(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "reconcile: audit write failed", "order_id", orderID, "error", err)
		}
	}
}

func (r *Reconciler) publish(ctx context.Context, eventType string, e events.Event) {
	if r.publisher.Enabled() {
		r.publisher.Publish(ctx, eventType, e)
	}
}

func parseAmount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
