package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNoBroker is returned by NopPublisher.
var ErrNoBroker = errors.New("no message broker configured")

// Publisher hands confirmed selections to the booking collaborator.
type Publisher interface {
	PublishSeatsConfirmed(ctx context.Context, ev SeatsConfirmedEvent) error
}

// AMQPPublisher publishes to RabbitMQ.  A connection is dialled per
// message; confirmations are rare and this keeps the server free of
// long-lived broker state.
type AMQPPublisher struct {
	url    string
	logger *slog.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPPublisher{url: url, logger: logger}
}

// PublishSeatsConfirmed publishes ev to BookingQueue as a persistent JSON
// message.  Errors are logged and returned so the caller can decide to
// carry on without the hand-off.
func (p *AMQPPublisher) PublishSeatsConfirmed(ctx context.Context, ev SeatsConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", "err", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", "err", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		BookingQueue, // name
		true,         // durable
		false,        // autoDelete
		false,        // exclusive
		false,        // noWait
		nil,          // args
	); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", "err", err)
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.SessionID,
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", BookingQueue, false, false, pub); err != nil {
		p.logger.Warn("rabbitmq publish failed", "err", err)
		return fmt.Errorf("publish: %w", err)
	}
	p.logger.Info("seats confirmed event published", "session", ev.SessionID, "seats", len(ev.Seats))
	return nil
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

// PublishSeatsConfirmed implements Publisher.
func (NopPublisher) PublishSeatsConfirmed(context.Context, SeatsConfirmedEvent) error {
	return ErrNoBroker
}
