// Package service provides the best-effort domain-event publisher. Errors
// are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher publishes domain events to RabbitMQ. A nil publisher is a
// valid no-op, used when no broker URL is configured.
type EventPublisher struct {
	URL string
}

// NewEventPublisher returns nil when url is empty, disabling publishing.
func NewEventPublisher(url string) *EventPublisher {
	if url == "" {
		return nil
	}
	return &EventPublisher{URL: url}
}

// Publish marshals the payload and delivers it as a persistent message to
// the named queue, declaring the queue idempotently first.
func (p *EventPublisher) Publish(ctx context.Context, queueName string, payload any) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
