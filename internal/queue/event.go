// Package queue defines the booking events exchanged over RabbitMQ and
// the consumer that writes them to the booking log.
package queue

import (
    "time"

    "github.com/iliyamo/movie-booking-assistant/internal/model"
)

// Queue names.  Both queues are durable; routing uses the default
// exchange with the queue name as key.
const (
    ConfirmedQueue = "booking.confirmed"
    CancelledQueue = "booking.cancelled"
)

// Event kinds carried in BookingEvent.Kind.
const (
    KindConfirmed = "confirmed"
    KindCancelled = "cancelled"
)

// BookingEvent is published when a reservation is confirmed or
// cancelled.  It carries the whole reservation so consumers never need
// to read the reservation store.
type BookingEvent struct {
    Kind       string  `json:"kind"`
    BookingID  string  `json:"booking_id"`
    Username   string  `json:"username"`
    Movie      string  `json:"movie"`
    Date       string  `json:"date"`
    Time       string  `json:"time"`
    Theater    string  `json:"theater"`
    Tickets    int     `json:"tickets"`
    SeatType   string  `json:"seat_type"`
    TotalPrice float64 `json:"total_price"`
    OccurredAt string  `json:"occurred_at"`
}

// NewBookingEvent builds the event for res.
func NewBookingEvent(kind string, res model.Reservation, at time.Time) BookingEvent {
    return BookingEvent{
        Kind:       kind,
        BookingID:  res.BookingID,
        Username:   res.Username,
        Movie:      res.Movie,
        Date:       res.Date,
        Time:       res.Time,
        Theater:    res.Theater,
        Tickets:    res.Tickets,
        SeatType:   string(res.SeatType),
        TotalPrice: res.TotalPrice,
        OccurredAt: at.UTC().Format(time.RFC3339),
    }
}

// QueueFor returns the queue an event kind is routed to.
func QueueFor(kind string) string {
    if kind == KindCancelled {
        return CancelledQueue
    }
    return ConfirmedQueue
}
