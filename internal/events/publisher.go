package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher emits checkout lifecycle events to Kafka. Publishing is
// fire-and-forget: a broker error is logged and dropped, never surfaced to
// the checkout flow. With an empty broker list the publisher is disabled and
// every Publish is a no-op, which keeps local development broker-free.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Publisher from a comma-separated broker list.
func NewPublisher(brokersCSV, topic string) *Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish sends one event keyed by order number so all events for an order
// land on the same partition.
func (p *Publisher) Publish(ctx context.Context, eventType string, e Event) {
	if !p.Enabled() {
		return
	}

	e.EventID = uuid.NewString()
	e.Type = eventType
	e.CreatedAt = time.Now().UTC()

	value, err := json.Marshal(e)
	if err != nil {
		slog.ErrorContext(ctx, "events: marshal failed", "type", eventType, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(e.OrderNumber),
		Value: value,
	}); err != nil {
		slog.ErrorContext(ctx, "events: publish failed", "type", eventType, "order_id", e.OrderID, "error", err)
	}
}

func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
