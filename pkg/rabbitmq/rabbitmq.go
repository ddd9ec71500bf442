package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

const (
	// ExchangeOrders is a durable topic exchange carrying every order event.
	ExchangeOrders = "orders"
	// QueueOrders receives everything published under "order.*".
	QueueOrders = "order_queue"

	RoutingOrderCreated       = "order.created"
	RoutingOrderStatusUpdated = "order.status_updated"
)

// OrderEvent is the JSON body of every message on ExchangeOrders.
type OrderEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    uint      `json:"orderId"`
	OrderRef   string    `json:"orderRef"`
	Status     string    `json:"status"`
	Section    string    `json:"section,omitempty"`
	Total      string    `json:"total,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewOrderEvent stamps an event of the given routing key with a fresh id.
func NewOrderEvent(routingKey string, orderID uint, orderRef, status string) OrderEvent {
	return OrderEvent{
		ID:         uuid.NewString(),
		Type:       routingKey,
		OrderID:    orderID,
		OrderRef:   orderRef,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}

// DecodeOrderEvent parses a delivery body.
func DecodeOrderEvent(body []byte) (OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return OrderEvent{}, fmt.Errorf("failed to decode order event: %w", err)
	}
	if ev.Type == "" || ev.OrderRef == "" {
		return OrderEvent{}, fmt.Errorf("order event missing type or orderRef: %s", body)
	}
	return ev, nil
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects, declares the orders exchange and queue, and binds them.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("[Events] RabbitMQ connected, %s bound to %s", QueueOrders, ExchangeOrders)
	return &Client{conn: conn, channel: ch}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		ExchangeOrders, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeOrders, err)
	}
	if _, err := ch.QueueDeclare(
		QueueOrders,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare %s: %w", QueueOrders, err)
	}
	if err := ch.QueueBind(QueueOrders, "order.*", ExchangeOrders, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s: %w", QueueOrders, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// ConsumeOrderEvents delivers every message on QueueOrders to handler on a
// separate goroutine. A handler error requeues the message once; a message
// that fails again after redelivery is dropped.
func (c *Client) ConsumeOrderEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		QueueOrders,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				log.Printf("[Events] Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
					log.Printf("[Events] Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("[Events] Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()
	return nil
}
