package slot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

var titles = []string{"The Last Adventure", "Cosmic Dreams", "Heartstrings", "Midnight Mystery", "Laugh Out Loud"}

func TestMovie(t *testing.T) {
	tests := []struct {
		description string
		text        string
		want        string
		ok          bool
	}{
		{"exact title", "book The Last Adventure", "The Last Adventure", true},
		{"lower case", "two for cosmic dreams please", "Cosmic Dreams", true},
		{"catalog order wins", "heartstrings or cosmic dreams", "Cosmic Dreams", true},
		{"no title", "book something fun", "", false},
		{"partial title", "book cosmic", "", false},
	}
	for _, test := range tests {
		got, ok := Movie(test.text, titles)
		assert.Equalf(t, test.ok, ok, test.description)
		assert.Equalf(t, test.want, got, test.description)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"today", "today", true},
		{"Tomorrow evening", "tomorrow", true},
		{"sometime this weekend", "this weekend", true},
		{"on Friday", "this friday", true},
		{"next sunday maybe", "this sunday", true},
		{"the 14th", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		got, ok := Date(test.text)
		assert.Equalf(t, test.ok, ok, test.text)
		assert.Equalf(t, test.want, got, test.text)
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"6pm", "18:00", true},
		{"6:30 PM", "18:30", true},
		{"9", "09:00", true},
		{"at 9:15", "09:15", true},
		{"12am", "00:00", true},
		{"12pm", "12:00", true},
		{"11 am", "11:00", true},
		{"0pm", "", false},
		{"0am", "", false},
		{"0pm or 8pm", "20:00", true},
		{"21:45", "21:45", true},
		{"25:00 or 7pm", "19:00", true},
		{"in the morning", "10:00 AM", true},
		{"afternoon works", "2:00 PM", true},
		{"evening", "6:30 PM", true},
		{"late night", "9:00 PM", true},
		{"whenever", "", false},
	}
	for _, test := range tests {
		got, ok := Time(test.text)
		assert.Equalf(t, test.ok, ok, test.text)
		assert.Equalf(t, test.want, got, test.text)
	}
}

func TestTickets(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"2 tickets", 2, true},
		{"1 ticket please", 1, true},
		{"I want 0 tickets", 0, true},
		{"4tickets", 4, true},
		{"12 TICKETS", 12, true},
		{"99999999999999999999 tickets", math.MaxInt, true},
		{"two tickets", 0, false},
		{"3", 0, false},
	}
	for _, test := range tests {
		got, ok := Tickets(test.text)
		assert.Equalf(t, test.ok, ok, test.text)
		assert.Equalf(t, test.want, got, test.text)
	}
}

func TestTheater(t *testing.T) {
	names := []string{"City Center Cinemas", "Starlight Theater", "Grand Arena", "Royal IMAX"}

	got, ok := Theater("City Center Cinemas", names)
	assert.True(t, ok)
	assert.Equal(t, "City Center Cinemas", got)

	got, ok = Theater("the royal imax one", names)
	assert.True(t, ok)
	assert.Equal(t, "Royal IMAX", got)

	_, ok = Theater("the one downtown", names)
	assert.False(t, ok)
}

func TestBookingID(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"cancel booking BK12345", "BK12345", true},
		{"Cancel booking #bk54321", "BK54321", true},
		{"cancel booking#BK11111", "BK11111", true},
		{"cancel my booking", "", false},
		{"cancel bookings", "", false},
		{"cancel", "", false},
	}
	for _, test := range tests {
		got, ok := BookingID(test.text)
		assert.Equalf(t, test.ok, ok, test.text)
		assert.Equalf(t, test.want, got, test.text)
	}
}

func TestSeatClass(t *testing.T) {
	c, ok := SeatClass("make it VIP")
	assert.True(t, ok)
	assert.Equal(t, model.SeatVIP, c)

	c, ok = SeatClass("standard seats")
	assert.True(t, ok)
	assert.Equal(t, model.SeatStandard, c)

	_, ok = SeatClass("vipers")
	assert.False(t, ok)
}
