package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/movie-booking-assistant/internal/logger"
)

// LogWriter appends one line per booking event to <dir>/booking.log.
type LogWriter struct {
    Dir string
    mu  sync.Mutex
}

// Write appends the line for ev.
func (w *LogWriter) Write(ev BookingEvent) error {
    w.mu.Lock()
    defer w.mu.Unlock()

    if err := os.MkdirAll(w.Dir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(w.Dir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single log line ending in a newline.
func FormatLine(ev BookingEvent) string {
    return fmt.Sprintf("[%s] Booking %s | booking_id=%s | user=%q | movie=%q | date=%q | time=%s | theater=%q | tickets=%d | seat=%s | total=%.2f\n",
        ev.OccurredAt, ev.Kind, ev.BookingID, ev.Username, ev.Movie, ev.Date, ev.Time, ev.Theater, ev.Tickets, ev.SeatType, ev.TotalPrice)
}

// HandleMessage decodes one delivery body and writes it to the log.
func (w *LogWriter) HandleMessage(body []byte) error {
    var ev BookingEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    return w.Write(ev)
}

// Consumer listens to the booking queues and feeds every event to a
// LogWriter.
type Consumer struct {
    URL    string
    Writer *LogWriter
    Log    *zap.Logger
}

// Run connects to the broker and consumes until ctx is cancelled,
// reconnecting with exponential backoff (capped at 30s).  Bad messages
// are rejected without requeue so they cannot loop.
func (c *Consumer) Run(ctx context.Context) {
    log := logger.Or(c.Log).With(zap.String("component", "booking-consumer"))
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.Warn("dial broker failed", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn, log)
        _ = conn.Close()
        if ctx.Err() != nil {
            log.Info("consumer stopped")
            return
        }
        log.Warn("consume loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, log *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn("set QoS failed", zap.Error(err))
    }

    var streams []<-chan amqp.Delivery
    for _, name := range []string{ConfirmedQueue, CancelledQueue} {
        if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
            return fmt.Errorf("queue declare %s: %w", name, err)
        }
        msgs, err := ch.Consume(name, "", false, false, false, false, nil)
        if err != nil {
            return fmt.Errorf("queue consume %s: %w", name, err)
        }
        streams = append(streams, msgs)
    }

    confirmed, cancelled := streams[0], streams[1]
    for {
        var d amqp.Delivery
        var ok bool
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok = <-confirmed:
        case d, ok = <-cancelled:
        }
        if !ok {
            return errors.New("deliveries channel closed")
        }
        if err := c.Writer.HandleMessage(d.Body); err != nil {
            log.Error("handle message failed", zap.Error(err))
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
