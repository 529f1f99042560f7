// Package pricing computes ticket totals.
package pricing

import (
	"math"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

// Engine prices reservations from configured constants.  The zero
// value charges nothing; use Default or fill the fields from config.
type Engine struct {
	BasePrice    float64 // price of one standard ticket
	VIPSurcharge float64 // added to the unit price of VIP tickets
	TaxRate      float64 // fraction added on top of the subtotal
}

// Default returns the engine with the stock prices: 12.50 per ticket,
// 5.00 VIP surcharge, 8% tax.
func Default() Engine {
	return Engine{BasePrice: 12.50, VIPSurcharge: 5.00, TaxRate: 0.08}
}

// UnitPrice is the pre-tax price of one ticket of the given class.
func (e Engine) UnitPrice(class model.SeatClass) float64 {
	if class == model.SeatVIP {
		return e.BasePrice + e.VIPSurcharge
	}
	return e.BasePrice
}

// Price returns the total for tickets tickets of class, tax included,
// rounded to cents.
func (e Engine) Price(tickets int, class model.SeatClass) float64 {
	subtotal := e.UnitPrice(class) * float64(tickets)
	return Round2(subtotal * (1 + e.TaxRate))
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
