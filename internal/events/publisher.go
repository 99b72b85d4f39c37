package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bunaihills/shop-service/internal/config"
	"github.com/bunaihills/shop-service/internal/entities"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// Event is the wire shape published to the order event stream.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits order lifecycle events. The stream is an optional
// collaborator, when no brokers are configured a Publisher is still
// returned but every publish is a no-op.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg config.Kafka) *Publisher {
	if !cfg.Configured() {
		return &Publisher{}
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order entities.Order) error {
	return p.publish(ctx, Event{
		EventID:    uuid.NewString(),
		Type:       TypeOrderCreated,
		OrderID:    order.ID,
		Status:     string(order.Status),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, order entities.Order) error {
	return p.publish(ctx, Event{
		EventID:    uuid.NewString(),
		Type:       TypeOrderStatusChanged,
		OrderID:    order.ID,
		Status:     string(order.Status),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	if p.writer == nil {
		return nil
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
