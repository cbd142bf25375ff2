package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Queue names.  Both are durable so messages survive broker restarts.
const (
	ReservationCreatedQueue = "reservation.created"
	CheckinConfirmedQueue   = "checkin.confirmed"
)

// Publisher pushes domain events to RabbitMQ.  Every publish is best
// effort: errors are logged and returned so callers can ignore them
// without interrupting the request flow.  A nil Publisher is valid and
// drops all events, which keeps the broker optional in development.
type Publisher struct {
	url string
	log *zap.Logger
}

// NewPublisher returns a Publisher for the given broker URL, or nil
// when the URL is empty.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log}
}

// ReservationCreated publishes a ReservationCreatedEvent.
func (p *Publisher) ReservationCreated(ctx context.Context, ev ReservationCreatedEvent) error {
	return p.publish(ctx, ReservationCreatedQueue, ev)
}

// CheckinConfirmed publishes a CheckinConfirmedEvent.
func (p *Publisher) CheckinConfirmed(ctx context.Context, ev CheckinConfirmedEvent) error {
	return p.publish(ctx, CheckinConfirmedQueue, ev)
}

// publish dials the broker, declares the queue (idempotent) and sends
// one persistent JSON message.  The connection is short-lived; gate
// traffic is low enough that connection reuse buys nothing.
func (p *Publisher) publish(ctx context.Context, queueName string, ev any) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("broker dial failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("broker channel open failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("marshal event failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("publish failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	return nil
}
