package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		description string
		text        string
		active      bool
		want        Intent
	}{
		{"greeting", "Hello there", false, Greeting},
		{"greeting beats booking", "hi, book Cosmic Dreams", false, Greeting},
		{"book request", "book The Last Adventure", false, BookRequest},
		{"booking beats show", "book tickets for the show", false, BookRequest},
		{"ticket count is a book request", "2 tickets", true, BookRequest},
		{"show catalog", "what movies are playing?", false, ShowCatalog},
		{"view reservations", "view my bookings", false, ViewReservations},
		{"bookings is not book", "bookings", false, ViewReservations},
		{"cancel", "cancel booking BK12345", false, CancelReservation},
		{"price", "what's the price", false, PriceQuery},
		{"how much", "how much is it?", true, PriceQuery},
		{"recommendation", "can you recommend something", false, RecommendationQuery},
		{"help", "help", false, HelpRequest},
		{"what can you do", "what can you do", false, HelpRequest},
		{"thanks", "thanks a lot", false, Thanks},
		{"hi inside a word", "this monday", true, FlowContinuation},
		{"flow continuation", "City Center Cinemas", true, FlowContinuation},
		{"unknown", "City Center Cinemas", false, Unknown},
		{"empty", "", false, Unknown},
	}
	for _, test := range tests {
		assert.Equalf(t, test.want, Classify(test.text, test.active), test.description)
	}
}

func TestRulesOrder(t *testing.T) {
	want := []Intent{
		Greeting, BookRequest, ShowCatalog, ViewReservations, CancelReservation,
		PriceQuery, RecommendationQuery, HelpRequest, Thanks,
	}
	got := make([]Intent, 0, len(Rules))
	for _, r := range Rules {
		got = append(got, r.Intent)
	}
	assert.Equal(t, want, got)
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"what", "s", "the", "price"}, Words("What's the PRICE?"))
}
