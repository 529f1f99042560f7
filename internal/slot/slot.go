// Package slot extracts structured booking values from free text.
//
// Every function is pure and reports a miss with ok == false; none of
// them guesses.  Callers decide what a miss means (the booking flow
// re-prompts).
package slot

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

var (
	timePattern      = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	ticketPattern    = regexp.MustCompile(`(?i)(\d+)\s*tickets?`)
	bookingIDPattern = regexp.MustCompile(`(?i)\bbooking\b\s*#?\s*(\w+)`)
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// timeWords map loose times of day to a fixed showtime.  Order matters:
// "afternoon" is checked before "night" so neither shadows the other.
var timeWords = []struct{ word, value string }{
	{"morning", "10:00 AM"},
	{"afternoon", "2:00 PM"},
	{"evening", "6:30 PM"},
	{"night", "9:00 PM"},
}

// Movie returns the first title, in the given order, that appears in
// text, ignoring case.
func Movie(text string, titles []string) (string, bool) {
	return firstContained(text, titles)
}

// Theater returns the first theater name, in the given order, that
// appears in text, ignoring case.
func Theater(text string, names []string) (string, bool) {
	return firstContained(text, names)
}

func firstContained(text string, candidates []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

// Date recognises "today", "tomorrow", "weekend" and weekday names and
// returns a normalised token ("today", "tomorrow", "this weekend",
// "this monday").  No calendar arithmetic is done.
func Date(text string) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "today"):
		return "today", true
	case strings.Contains(lower, "tomorrow"):
		return "tomorrow", true
	case strings.Contains(lower, "weekend"):
		return "this weekend", true
	}
	for _, d := range weekdays {
		if strings.Contains(lower, d) {
			return "this " + d, true
		}
	}
	return "", false
}

// Time finds the first H[:MM][am|pm] in text and returns it as a 24
// hour "HH:MM".  Without am/pm the hour is taken as given.  Candidates
// that are not a valid clock time are skipped.  When no explicit time
// is present, morning/afternoon/evening/night map to fixed showtimes.
func Time(text string) (string, bool) {
	for _, m := range timePattern.FindAllStringSubmatch(text, -1) {
		hour, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		minute := m[2]
		if minute == "" {
			minute = "00"
		}
		if mm, _ := strconv.Atoi(minute); mm > 59 {
			continue
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if hour == 0 || hour > 12 {
				continue
			}
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 0 || hour > 12 {
				continue
			}
			if hour == 12 {
				hour = 0
			}
		}
		if hour > 23 {
			continue
		}
		return fmt.Sprintf("%02d:%s", hour, minute), true
	}
	lower := strings.ToLower(text)
	for _, tw := range timeWords {
		if strings.Contains(lower, tw.word) {
			return tw.value, true
		}
	}
	return "", false
}

// Tickets returns the integer written right before "ticket" or
// "tickets".  The value is not range checked; a count too large for an
// int comes back as math.MaxInt so callers still see it as a count.
func Tickets(text string) (int, bool) {
	m := ticketPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// BookingID returns the token following the word "booking" (an
// optional "#" is skipped), upper-cased: "cancel booking #bk12345"
// yields "BK12345".
func BookingID(text string) (string, bool) {
	m := bookingIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// SeatClass reports an explicit seat tier named in text.
func SeatClass(text string) (model.SeatClass, bool) {
	for _, w := range strings.FieldsFunc(strings.ToLower(text), notAlnum) {
		switch w {
		case "vip", "premium":
			return model.SeatVIP, true
		case "standard", "regular":
			return model.SeatStandard, true
		}
	}
	return "", false
}

func notAlnum(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}
