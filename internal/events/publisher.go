package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

type orderCreatedItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type OrderCreatedEvent struct {
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	Status      string             `json:"status"`
	TotalAmount string             `json:"total_amount"`
	Items       []orderCreatedItem `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Publisher emits order lifecycle events. Publishing is best effort and runs
// after the checkout transaction committed; a broker outage never fails or
// rolls back a checkout.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func newOrderCreatedEvent(order *domain.Order, items []domain.OrderItem) OrderCreatedEvent {
	event := OrderCreatedEvent{
		OrderID:     order.ID.String(),
		UserID:      order.UserID.String(),
		Status:      order.Status.String(),
		TotalAmount: order.TotalAmount.String(),
		Items:       make([]orderCreatedItem, 0, len(items)),
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range items {
		event.Items = append(event.Items, orderCreatedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
		})
	}
	return event
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	event := newOrderCreatedEvent(order, items)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order created event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write order created event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *domain.Order, []domain.OrderItem) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
