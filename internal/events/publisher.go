// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events publishes storefront domain events to RabbitMQ. Each
// event goes to a durable queue named after it, through the default
// exchange, as a persistent JSON message.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"cinesou/internal/contact"
	"cinesou/internal/purchase"
)

// Queue names.
const (
	QueueContactReceived   = "contact.received"
	QueuePurchaseCompleted = "purchase.completed"
)

// Envelope wraps every event body.
type Envelope struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// ContactReceived is published for every accepted contact form.
type ContactReceived struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// PurchaseCompleted is published after a confirmed purchase.
type PurchaseCompleted struct {
	MovieID string  `json:"movie_id"`
	Title   string  `json:"title"`
	Price   float64 `json:"price"`
}

// Publisher sends events to the broker at URL. It dials per publish, so
// a broker outage never blocks startup. A nil *Publisher drops events.
type Publisher struct {
	url string
	now func() time.Time
}

// NewPublisher returns a publisher for the AMQP URL, or nil when url is
// empty.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, now: time.Now}
}

// Publish sends data to queue wrapped in an Envelope.
func (p *Publisher) Publish(ctx context.Context, queue string, data any) error {
	if p == nil {
		return nil
	}

	body, err := encode(queue, data, p.now())
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", queue, err)
	}
	return nil
}

// Submit implements contact.Submitter by publishing contact.received.
// Unlike the best-effort purchase event, a failure here fails the
// submission.
func (p *Publisher) Submit(ctx context.Context, s contact.Submission) error {
	if p == nil {
		return fmt.Errorf("rabbitmq not configured")
	}
	return p.Publish(ctx, QueueContactReceived, ContactReceived{
		Name:    s.Name,
		Email:   s.Email,
		Subject: s.Subject,
		Message: s.Message,
	})
}

// PurchaseCompleted implements purchase.Notifier. Failures are logged.
func (p *Publisher) PurchaseCompleted(ctx context.Context, r purchase.Receipt) {
	err := p.Publish(ctx, QueuePurchaseCompleted, PurchaseCompleted{
		MovieID: r.MovieID,
		Title:   r.Title,
		Price:   r.Price,
	})
	if err != nil {
		slog.Warn("purchase event not published", "movie_id", r.MovieID, "error", err)
	}
}

func encode(eventType string, data any, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	body, err := json.Marshal(Envelope{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: at.UTC(),
		Data:       raw,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return body, nil
}
