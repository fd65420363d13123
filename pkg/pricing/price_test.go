package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priceblocs/priceblocs-go/pkg/pricing"
)

func TestActivePrice(t *testing.T) {
	t.Parallel()

	product := pricing.Product{
		ID:   "prod_1",
		Name: "Pro",
		Prices: []pricing.Price{
			{ID: "price_usd_month", Currency: "usd", Recurring: &pricing.Recurring{Interval: pricing.IntervalMonth}},
			{ID: "price_usd_year", Currency: "usd", Recurring: &pricing.Recurring{Interval: pricing.IntervalYear}},
			{ID: "price_eur_month", Currency: "eur", Recurring: &pricing.Recurring{Interval: pricing.IntervalMonth}},
			{ID: "price_usd_once", Currency: "usd", Recurring: nil},
		},
	}

	t.Run("matches on currency and interval", func(t *testing.T) {
		t.Parallel()

		price, ok := pricing.ActivePrice(product, pricing.Query{Currency: "usd", Interval: pricing.IntervalYear})
		require.True(t, ok)
		assert.Equal(t, "price_usd_year", price.ID)
	})

	t.Run("currency filter alone matches a one-time price", func(t *testing.T) {
		t.Parallel()

		oneTime := pricing.Product{Prices: []pricing.Price{
			{ID: "price_once", Currency: "usd", Recurring: nil},
		}}
		price, ok := pricing.ActivePrice(oneTime, pricing.Query{Currency: "usd"})
		require.True(t, ok)
		assert.Equal(t, "price_once", price.ID)
	})

	t.Run("interval filter alone", func(t *testing.T) {
		t.Parallel()

		price, ok := pricing.ActivePrice(product, pricing.Query{Interval: pricing.IntervalYear})
		require.True(t, ok)
		assert.Equal(t, "price_usd_year", price.ID)
	})

	t.Run("interval filter never matches one-time prices", func(t *testing.T) {
		t.Parallel()

		oneTime := pricing.Product{Prices: []pricing.Price{
			{ID: "price_once", Currency: "usd", Recurring: nil},
		}}
		_, ok := pricing.ActivePrice(oneTime, pricing.Query{Interval: pricing.IntervalMonth})
		assert.False(t, ok)
	})

	t.Run("no filters matches nothing", func(t *testing.T) {
		t.Parallel()

		_, ok := pricing.ActivePrice(product, pricing.Query{})
		assert.False(t, ok)
	})

	t.Run("no qualifying price", func(t *testing.T) {
		t.Parallel()

		_, ok := pricing.ActivePrice(product, pricing.Query{Currency: "gbp", Interval: pricing.IntervalMonth})
		assert.False(t, ok)
	})

	t.Run("first of duplicate pairs wins", func(t *testing.T) {
		t.Parallel()

		duplicated := pricing.Product{Prices: []pricing.Price{
			{ID: "first", Currency: "usd", Recurring: &pricing.Recurring{Interval: pricing.IntervalMonth}},
			{ID: "second", Currency: "usd", Recurring: &pricing.Recurring{Interval: pricing.IntervalMonth}},
		}}
		price, ok := pricing.ActivePrice(duplicated, pricing.Query{Currency: "usd", Interval: pricing.IntervalMonth})
		require.True(t, ok)
		assert.Equal(t, "first", price.ID)
	})

	t.Run("empty product", func(t *testing.T) {
		t.Parallel()

		_, ok := pricing.ActivePrice(pricing.Product{}, pricing.Query{Currency: "usd"})
		assert.False(t, ok)
	})
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	t.Run("formats cents as major units", func(t *testing.T) {
		t.Parallel()

		got, err := pricing.FormatAmount(pricing.Price{Currency: "USD", UnitAmount: 1099}, "en")
		require.NoError(t, err)
		assert.Contains(t, got, "10.99")
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		t.Parallel()

		_, err := pricing.FormatAmount(pricing.Price{Currency: "nope", UnitAmount: 100}, "en")
		require.ErrorIs(t, err, pricing.ErrInvalidCurrency)
	})

	t.Run("rejects unparsable language", func(t *testing.T) {
		t.Parallel()

		_, err := pricing.FormatAmount(pricing.Price{Currency: "USD", UnitAmount: 100}, "!!")
		require.ErrorIs(t, err, pricing.ErrInvalidLanguage)
	})
}
