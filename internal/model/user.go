package model

import "time"

// GuestUsername identifies callers without an authenticated identity.
const GuestUsername = "guest"

// User is an entry of the users document.  Only the bcrypt hash of
// the password is stored.
type User struct {
    Username     string    `json:"username"`
    PasswordHash string    `json:"password_hash"`
    CreatedAt    time.Time `json:"created_at"`
}

// Preferences holds what the assistant has picked up about a user from
// their messages.  It is advisory only: nothing in the booking flow
// reads it to validate or block a booking.
type Preferences struct {
    Genre             string    `json:"genre,omitempty"`
    TimePreference    string    `json:"time_preference"`
    TheaterPreference string    `json:"theater_preference,omitempty"`
    SeatType          SeatClass `json:"seat_type"`
    FavoriteMovies    []string  `json:"favorite_movies"`
}

// DefaultPreferences returns the preferences of a user the assistant
// has not learned anything about yet.
func DefaultPreferences() Preferences {
    return Preferences{
        TimePreference: "evening",
        SeatType:       SeatStandard,
        FavoriteMovies: []string{},
    }
}
