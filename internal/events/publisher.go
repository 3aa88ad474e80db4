package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/config"
	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderPaid          EventType = "order.paid"
	EventTypeOrderCancelled     EventType = "order.cancelled"
	EventTypeOrderRefunded      EventType = "order.refunded"
)

// OrderEvent is the envelope written to the orders topic.
type OrderEvent struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	OrderID    int64           `json:"order_id"`
	MerchantID int64           `json:"merchant_id"`
	Data       json.RawMessage `json:"data"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Publisher emits order lifecycle events for downstream consumers
// (reporting, receipt printing, loyalty).
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *entity.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *entity.Order, previousStatus enum.OrderStatus) error
	PublishOrderRefunded(ctx context.Context, order *entity.Order, refund *entity.Refund) error
	Close() error
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg *config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger.Named("events"),
	}
}

// PublishOrderCreated publishes an order created event.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCreated, order, data))
}

// PublishOrderStatusChanged publishes a status change event. A transition
// into PAID is published as order.paid, other transitions as
// order.status_changed.
func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *entity.Order, previousStatus enum.OrderStatus) error {
	payload := struct {
		Order          *entity.Order    `json:"order"`
		PreviousStatus enum.OrderStatus `json:"previous_status"`
		NewStatus      enum.OrderStatus `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	eventType := EventTypeOrderStatusChanged
	switch order.Status {
	case enum.OrderStatusPaid:
		eventType = EventTypeOrderPaid
	case enum.OrderStatusCancelled:
		eventType = EventTypeOrderCancelled
	}
	return p.publish(ctx, newEvent(eventType, order, data))
}

// PublishOrderRefunded publishes an order refunded event with the refund
// breakdown attached.
func (p *KafkaPublisher) PublishOrderRefunded(ctx context.Context, order *entity.Order, refund *entity.Refund) error {
	payload := struct {
		Order  *entity.Order  `json:"order"`
		Refund *entity.Refund `json:"refund"`
	}{
		Order:  order,
		Refund: refund,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderRefunded, order, data))
}

func newEvent(eventType EventType, order *entity.Order, data []byte) *OrderEvent {
	return &OrderEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		OrderID:    order.ID,
		MerchantID: order.MerchantID,
		Data:       data,
		Timestamp:  time.Now(),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Key by order ID so events for one order stay ordered on a partition.
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Int64("order_id", event.OrderID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("order_id", event.OrderID),
	)
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	return nil
}

func (NopPublisher) PublishOrderStatusChanged(ctx context.Context, order *entity.Order, previousStatus enum.OrderStatus) error {
	return nil
}

func (NopPublisher) PublishOrderRefunded(ctx context.Context, order *entity.Order, refund *entity.Refund) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
