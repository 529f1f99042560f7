package model

import "time"

// SeatClass is the seating tier of a reservation.
type SeatClass string

const (
    SeatStandard SeatClass = "Standard"
    SeatVIP      SeatClass = "VIP"
)

// Status values stored on a reservation.
const (
    StatusConfirmed = "confirmed"
    StatusCancelled = "cancelled"
)

// BookingDateLayout is the layout of Reservation.BookingDate.
const BookingDateLayout = "2006-01-02 15:04:05"

// Reservation records a confirmed booking as stored in the bookings
// document.  Apart from Status it never changes after creation; the
// total is computed by the pricing engine at confirmation time.
//
// Fields:
//  BookingID   – "BK" followed by five digits.
//  Username    – owner of the reservation ("guest" when anonymous).
//  Movie       – movie title.
//  Date        – date expression ("today", "this friday", "2025-01-31").
//  Time        – showtime ("18:30" or "6:30 PM").
//  Tickets     – number of tickets (1–10).
//  Theater     – theater name.
//  SeatType    – Standard or VIP.
//  TotalPrice  – total including tax, two decimals.
//  BookingDate – creation timestamp, BookingDateLayout.
//  Status      – confirmed or cancelled.
type Reservation struct {
    BookingID   string    `json:"booking_id"`
    Username    string    `json:"username"`
    Movie       string    `json:"movie"`
    Date        string    `json:"date"`
    Time        string    `json:"time"`
    Tickets     int       `json:"tickets"`
    Theater     string    `json:"theater"`
    SeatType    SeatClass `json:"seat_type"`
    TotalPrice  float64   `json:"total_price"`
    BookingDate string    `json:"booking_date"`
    Status      string    `json:"status"`
}

// CreatedAt parses BookingDate.  The zero time is returned when the
// stored value cannot be parsed.
func (r Reservation) CreatedAt() time.Time {
    t, err := time.ParseInLocation(BookingDateLayout, r.BookingDate, time.Local)
    if err != nil {
        return time.Time{}
    }
    return t
}
