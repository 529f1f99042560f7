// Package service holds adapters between the assistant and outside
// systems.  Publishing failures are logged and returned so callers can
// ignore them without interrupting a conversation.
package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/movie-booking-assistant/internal/logger"
    "github.com/iliyamo/movie-booking-assistant/internal/model"
    q "github.com/iliyamo/movie-booking-assistant/internal/queue"
)

// QueuePublisher publishes booking events to RabbitMQ.  Each publish
// opens its own connection; bookings are rare enough that a pooled
// channel is not worth the reconnect logic.
type QueuePublisher struct {
    URL string
    Log *zap.Logger
    Now func() time.Time
}

// NewQueuePublisher returns a publisher for the broker at url.
func NewQueuePublisher(url string, log *zap.Logger) *QueuePublisher {
    return &QueuePublisher{URL: url, Log: logger.Or(log), Now: time.Now}
}

// BookingConfirmed publishes res to the booking.confirmed queue.
func (p *QueuePublisher) BookingConfirmed(ctx context.Context, res model.Reservation) error {
    return p.publish(ctx, q.NewBookingEvent(q.KindConfirmed, res, p.Now()))
}

// BookingCancelled publishes res to the booking.cancelled queue.
func (p *QueuePublisher) BookingCancelled(ctx context.Context, res model.Reservation) error {
    return p.publish(ctx, q.NewBookingEvent(q.KindCancelled, res, p.Now()))
}

func (p *QueuePublisher) publish(ctx context.Context, event q.BookingEvent) error {
    queue := q.QueueFor(event.Kind)
    log := p.Log.With(zap.String("queue", queue), zap.String("booking_id", event.BookingID))

    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Warn("rabbitmq: dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Warn("rabbitmq: channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
        log.Warn("rabbitmq: queue declare failed", zap.Error(err))
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Warn("rabbitmq: marshal event failed", zap.Error(err))
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    p.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
        log.Warn("rabbitmq: publish failed", zap.Error(err))
        return err
    }
    log.Debug("rabbitmq: published", zap.String("kind", event.Kind))
    return nil
}
