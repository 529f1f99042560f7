// Package intent classifies an utterance into a coarse intent by
// keyword matching.
package intent

import "strings"

// Intent is the purpose of one user utterance.
type Intent int

const (
	Unknown Intent = iota
	Greeting
	BookRequest
	ShowCatalog
	ViewReservations
	CancelReservation
	PriceQuery
	RecommendationQuery
	HelpRequest
	Thanks
	FlowContinuation
)

var names = map[Intent]string{
	Unknown:             "unknown",
	Greeting:            "greeting",
	BookRequest:         "book_request",
	ShowCatalog:         "show_catalog",
	ViewReservations:    "view_reservations",
	CancelReservation:   "cancel_reservation",
	PriceQuery:          "price_query",
	RecommendationQuery: "recommendation_query",
	HelpRequest:         "help_request",
	Thanks:              "thanks",
	FlowContinuation:    "flow_continuation",
}

func (i Intent) String() string {
	if s, ok := names[i]; ok {
		return s
	}
	return "unknown"
}

// Rule ties an intent to the words and phrases that signal it.
type Rule struct {
	Intent   Intent
	Keywords []string
}

// Rules are evaluated top to bottom and the first rule with a matching
// keyword decides the intent.  Many utterances match several rules
// ("book a ticket for the show"), so this order is the tie-break and
// must not be rearranged.
var Rules = []Rule{
	{Greeting, []string{"hello", "hi", "hey", "greetings"}},
	{BookRequest, []string{"book", "ticket", "tickets", "reserve"}},
	{ShowCatalog, []string{"show", "movie", "movies", "available", "playing", "showing"}},
	{ViewReservations, []string{"my booking", "my bookings", "view booking", "view bookings", "bookings"}},
	{CancelReservation, []string{"cancel", "delete"}},
	{PriceQuery, []string{"price", "prices", "cost", "how much"}},
	{RecommendationQuery, []string{"recommend", "recommendation", "recommendations", "suggest", "suggestion", "suggestions"}},
	{HelpRequest, []string{"help", "what can you do"}},
	{Thanks, []string{"thank", "thanks"}},
}

// Classify returns the intent of text.  Keywords match whole words
// (multi-word keywords match a run of whole words) of the lower-cased
// text, so "hi" does not fire inside "this".  When no rule matches the
// result is FlowContinuation if a booking is in progress and Unknown
// otherwise.
func Classify(text string, draftActive bool) Intent {
	padded := " " + strings.Join(Words(text), " ") + " "
	for _, r := range Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return r.Intent
			}
		}
	}
	if draftActive {
		return FlowContinuation
	}
	return Unknown
}

// Words lower-cases text and splits it on anything that is not a
// letter or digit.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
