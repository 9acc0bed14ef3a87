// Package reconlog defines the durable audit trail for payment
// reconciliation.
//
// Every terminal outcome the reconciler computes, and every best-effort
// backend mutation that fails afterwards, is appended as a row. The table
// exists because the gateway's success signal is authoritative for the user
// while the backend reconciliation is best-effort: a paid order whose status
// update failed would otherwise be invisible. Operators query this log (or
// the /checkout/outcomes endpoint) to find and repair those orders, and can
// jump to the full distributed trace via the trace_id column.
package reconlog

import "time"

// Kind distinguishes the two classes of rows in the log.
type Kind string

const (
	// KindOutcome records the terminal state the reconciler reached.
	KindOutcome Kind = "OUTCOME"

	// KindMutationFailed records a best-effort call (order status update or
	// cart clear) that failed after a terminal gateway outcome.
	KindMutationFailed Kind = "MUTATION_FAILED"
)

// Entry is a single row in the reconciliation_logs table.
type Entry struct {
	// OrderID is the internal order identifier, empty when the reconciler
	// ran without a pending-payment record (e.g. a page refresh).
	OrderID string

	// Kind classifies the row.
	Kind Kind

	// State is the terminal state of the reconciliation ("success",
	// "failed", "error", "unknown").
	State string

	// GatewayCode is the raw VNPay response code, when one was supplied.
	GatewayCode string

	// Detail carries the failure message for MUTATION_FAILED rows and the
	// user-facing summary for OUTCOME rows.
	Detail string

	// TraceID is the W3C trace ID active when the row was written, so the
	// row can be joined with the distributed trace.
	TraceID string

	// SpanID pinpoints the exact span within that trace.
	SpanID string

	// CreatedAt is the wall-clock time of the row.
	CreatedAt time.Time
}
