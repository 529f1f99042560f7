package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/movie-booking-assistant/internal/model"
)

func sampleReservation() model.Reservation {
    return model.Reservation{
        BookingID: "BK12345", Username: "alice", Movie: "Heartstrings",
        Date: "today", Time: "19:00", Theater: "Grand Arena", Tickets: 2,
        SeatType: model.SeatStandard, TotalPrice: 27, Status: model.StatusConfirmed,
    }
}

func TestNewBookingEvent(t *testing.T) {
    at := time.Date(2024, 5, 17, 19, 30, 0, 0, time.UTC)
    ev := NewBookingEvent(KindConfirmed, sampleReservation(), at)

    assert.Equal(t, "BK12345", ev.BookingID)
    assert.Equal(t, "Standard", ev.SeatType)
    assert.Equal(t, "2024-05-17T19:30:00Z", ev.OccurredAt)
    assert.Equal(t, ConfirmedQueue, QueueFor(KindConfirmed))
    assert.Equal(t, CancelledQueue, QueueFor(KindCancelled))
}

func TestFormatLine(t *testing.T) {
    ev := NewBookingEvent(KindCancelled, sampleReservation(), time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC))
    line := FormatLine(ev)

    assert.True(t, strings.HasSuffix(line, "\n"))
    assert.Equal(t, 1, strings.Count(line, "\n"))
    assert.Contains(t, line, "Booking cancelled")
    assert.Contains(t, line, "booking_id=BK12345")
    assert.Contains(t, line, `theater="Grand Arena"`)
    assert.Contains(t, line, "total=27.00")
}

func TestLogWriterAppends(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    w := &LogWriter{Dir: dir}

    body, err := json.Marshal(NewBookingEvent(KindConfirmed, sampleReservation(), time.Now()))
    require.NoError(t, err)
    require.NoError(t, w.HandleMessage(body))
    require.NoError(t, w.HandleMessage(body))

    raw, err := os.ReadFile(filepath.Join(dir, "booking.log"))
    require.NoError(t, err)
    assert.Equal(t, 2, strings.Count(string(raw), "booking_id=BK12345"))

    assert.Error(t, w.HandleMessage([]byte("{not json")))
}
