package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"brutus/internal/config"
	"brutus/internal/domain"
)

// Publisher emits order-created events to the broker. The messaging
// bot consumes the topic and sends the customer their confirmation, so
// this path is best effort by contract: the order is already committed
// when an event is published.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(cfg config.KafkaConfig, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}

	return &Publisher{writer: writer, logger: logger}
}

type orderCreatedEvent struct {
	OrderID   int64          `json:"orderId"`
	Customer  eventCustomer  `json:"customer"`
	Items     []eventItem    `json:"items"`
	Total     float64        `json:"total"`
	Delivery  *eventDelivery `json:"delivery,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

type eventCustomer struct {
	Name         string   `json:"name"`
	Phone        *string  `json:"phone,omitempty"`
	Address      string   `json:"address"`
	MessagingID  *string  `json:"messagingId,omitempty"`
	Payment      string   `json:"payment"`
	CashTendered *float64 `json:"cashTendered,omitempty"`
}

type eventItem struct {
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"qty"`
	Note        string  `json:"note,omitempty"`
}

type eventDelivery struct {
	DistanceKm float64 `json:"distanceKm"`
	Fee        float64 `json:"fee"`
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	event := orderCreatedEvent{
		OrderID: order.ID,
		Customer: eventCustomer{
			Name:         order.CustomerName,
			Phone:        order.CustomerPhone,
			Address:      order.Address,
			MessagingID:  order.MessagingID,
			Payment:      order.PaymentMethod,
			CashTendered: order.CashTendered,
		},
		Total:     order.Total,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, eventItem{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Note:        item.Note,
		})
	}
	if order.Delivery != nil {
		event.Delivery = &eventDelivery{
			DistanceKm: order.Delivery.DistanceKm,
			Fee:        order.Delivery.Fee,
		}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling order-created event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing order-created event: %w", err)
	}

	p.logger.Debug("order-created event published",
		zap.Int64("orderId", order.ID),
		zap.String("topic", p.writer.Topic))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
