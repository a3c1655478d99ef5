package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTable maps an ordered (from, to) currency pair to its multiplicative
// conversion factor.
type RateTable map[Code]map[Code]decimal.Decimal

// Validate checks that the table defines a positive factor for every
// ordered pair of its currencies, and that every identity factor is 1.
func (t RateTable) Validate() error {
	one := decimal.NewFromInt(1)
	for from := range t {
		for to := range t {
			rate, ok := t[from][to]
			if !ok {
				return fmt.Errorf("rate table: missing rate %s->%s", from, to)
			}
			if !rate.IsPositive() {
				return fmt.Errorf("rate table: rate %s->%s must be positive, got %s", from, to, rate)
			}
			if from == to && !rate.Equal(one) {
				return fmt.Errorf("rate table: identity rate %s->%s must be 1, got %s", from, to, rate)
			}
		}
	}
	return nil
}

// Converter converts amounts between currencies via a static rate table.
type Converter struct {
	rates RateTable
}

// NewConverter validates the rate table and returns a Converter over it.
func NewConverter(rates RateTable) (*Converter, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &Converter{rates: rates}, nil
}

// Convert returns amount * rate[from][to]. No rounding is applied; callers
// round at presentation time only.
func (c *Converter) Convert(amount decimal.Decimal, from, to Code) (decimal.Decimal, error) {
	rate, ok := c.rates[from][to]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no conversion rate for %s->%s", from, to)
	}
	return amount.Mul(rate), nil
}
