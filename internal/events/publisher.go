package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"international-payments-backend/internal/models"
)

const TopicPaymentStatus = "payments.status"

// StatusEvent is published on every successful payment status change.
type StatusEvent struct {
	TransactionID string               `json:"transaction_id"`
	OldStatus     models.PaymentStatus `json:"old_status"`
	NewStatus     models.PaymentStatus `json:"new_status"`
	Actor         string               `json:"actor"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// Publisher emits lifecycle events to downstream consumers. Publishing is
// fire-and-forget: a broker failure is logged and never fails the request.
type Publisher interface {
	PublishStatusChange(ctx context.Context, event StatusEvent)
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewKafkaPublisher builds a publisher for the payments.status topic.
func NewKafkaPublisher(broker string, log *slog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        TopicPaymentStatus,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		RequiredAcks: kafka.RequireOne,
	}
	return &kafkaPublisher{writer: writer, log: log}
}

func (p *kafkaPublisher) PublishStatusChange(ctx context.Context, event StatusEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal status event", "error", err)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	})
	if err != nil {
		p.log.Error("publish status event", "transaction_id", event.TransactionID, "error", err)
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) PublishStatusChange(context.Context, StatusEvent) {}
