package pricing

import (
	"errors"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrInvalidCurrency = errors.New("pricing: invalid currency code")
	ErrInvalidLanguage = errors.New("pricing: invalid language tag")
)

// Query filters a product's prices by currency and/or billing interval.
// Empty fields do not constrain the match.
type Query struct {
	Currency string
	Interval string
}

// ActivePrice returns the first of the product's prices matching the query.
//
// With both filters set, currency AND recurring interval must match; with one
// filter set, only that dimension is compared. An interval filter never matches
// a one-time price. With neither filter set no price matches: callers are
// expected to supply at least the form's selected currency or interval, and an
// unconstrained lookup has no meaningful "first" price.
//
// Duplicate (currency, interval) pairs within one product are a configuration
// defect; the first wins.
func ActivePrice(product Product, q Query) (Price, bool) {
	for _, price := range product.Prices {
		currencyMatch := price.Currency == q.Currency
		intervalMatch := price.Recurring != nil && price.Recurring.Interval == q.Interval

		var match bool
		switch {
		case q.Currency != "" && q.Interval != "":
			match = currencyMatch && intervalMatch
		case q.Currency != "":
			match = currencyMatch
		case q.Interval != "":
			match = intervalMatch
		}

		if match {
			return price, true
		}
	}
	return Price{}, false
}

// FormatAmount renders the price's unit amount as a localized currency string,
// e.g. "$10.99" for lang "en" and a 1099-cent USD price.
func FormatAmount(price Price, lang string) (string, error) {
	unit, err := currency.ParseISO(price.Currency)
	if err != nil {
		return "", errors.Join(ErrInvalidCurrency, err)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return "", errors.Join(ErrInvalidLanguage, err)
	}

	scale, _ := currency.Cash.Rounding(unit)
	major := float64(price.UnitAmount)
	for i := 0; i < scale; i++ {
		major /= 10
	}

	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(major))), nil
}
