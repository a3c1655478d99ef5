package currency

import (
	"errors"
	"fmt"
)

// Code is a canonical lowercase currency code.
type Code string

const (
	USD Code = "usd"
	EUR Code = "eur"
	RUB Code = "rub"
)

// ErrUnknownCurrency is returned when a token is not in the canonical map.
var ErrUnknownCurrency = errors.New("unknown currency")

// canonical maps the currency spellings accepted in messages and config
// files to their canonical codes.
var canonical = map[string]Code{
	"$":   USD,
	"€":   EUR,
	"₽":   RUB,
	"usd": USD,
	"eur": EUR,
	"rub": RUB,
	"USD": USD,
	"EUR": EUR,
	"RUB": RUB,
}

// Canonicalize maps a currency symbol or locale spelling to its canonical
// code.
func Canonicalize(token string) (Code, error) {
	code, ok := canonical[token]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, token)
	}
	return code, nil
}
