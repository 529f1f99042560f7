package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

func TestPriceKnownValues(t *testing.T) {
	e := Default()
	tests := []struct {
		tickets int
		class   model.SeatClass
		want    float64
	}{
		{1, model.SeatStandard, 13.50},
		{2, model.SeatStandard, 27.00},
		{2, model.SeatVIP, 37.80},
		{3, model.SeatStandard, 40.50},
		{10, model.SeatVIP, 189.00},
	}
	for _, test := range tests {
		assert.InDeltaf(t, test.want, e.Price(test.tickets, test.class), 1e-9, "%d %s", test.tickets, test.class)
	}
}

func TestPriceMonotonicAndVIPNotCheaper(t *testing.T) {
	e := Default()
	for _, class := range []model.SeatClass{model.SeatStandard, model.SeatVIP} {
		prev := 0.0
		for n := 1; n <= 10; n++ {
			p := e.Price(n, class)
			assert.GreaterOrEqualf(t, p, prev, "%s n=%d", class, n)
			prev = p
		}
	}
	for n := 1; n <= 10; n++ {
		assert.GreaterOrEqual(t, e.Price(n, model.SeatVIP), e.Price(n, model.SeatStandard))
	}
}

func TestPriceUsesConfiguredConstants(t *testing.T) {
	e := Engine{BasePrice: 10, VIPSurcharge: 2, TaxRate: 0.5}
	assert.Equal(t, 10.0, e.UnitPrice(model.SeatStandard))
	assert.Equal(t, 12.0, e.UnitPrice(model.SeatVIP))
	assert.InDelta(t, 36.0, e.Price(2, model.SeatVIP), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.235000001))
	assert.Equal(t, 0.0, Round2(0.004))
}
