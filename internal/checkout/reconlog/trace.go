package reconlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEntry builds an Entry with the trace identifiers extracted from the
// active OpenTelemetry span in ctx. When no span is active (unit tests),
// both IDs are empty strings.
func NewEntry(ctx context.Context, orderID string, kind Kind, state, gatewayCode, detail string) *Entry {
	var traceID, spanID string
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
		spanID = sc.SpanID().String()
	}

	return &Entry{
		OrderID:     orderID,
		Kind:        kind,
		State:       state,
		GatewayCode: gatewayCode,
		Detail:      detail,
		TraceID:     traceID,
		SpanID:      spanID,
		CreatedAt:   time.Now().UTC(),
	}
}
