package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priceblocs/priceblocs-go/pkg/client"
	"github.com/priceblocs/priceblocs-go/pkg/session"
)

const fixtureYAML = `
id: cfg_local
data:
  admin:
    clientKey: pk_local
  form:
    currencies: [usd, eur]
    currency: usd
    intervals: [month, year]
    interval: month
  products:
    - id: p1
      name: Basic
      prices:
        - id: price_basic
          currency: usd
          unit_amount: 900
          recurring:
            interval: month
`

func TestStaticSource(t *testing.T) {
	t.Parallel()

	t.Run("parses the API envelope from YAML", func(t *testing.T) {
		t.Parallel()

		src, err := session.NewStaticSourceFromBytes([]byte(fixtureYAML))
		require.NoError(t, err)

		values, metadata, err := src.FetchConfig(context.Background(), client.ConfigParams{})
		require.NoError(t, err)
		assert.Equal(t, "cfg_local", metadata.ID)
		assert.Equal(t, "pk_local", values.Admin.ClientKey)
		require.Len(t, values.Products, 1)
		require.Len(t, values.Products[0].Prices, 1)
		assert.Equal(t, int64(900), values.Products[0].Prices[0].UnitAmount)
		require.NotNil(t, values.Products[0].Prices[0].Recurring)
		assert.Equal(t, "month", values.Products[0].Prices[0].Recurring.Interval)
	})

	t.Run("loads from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricing.yaml")
		require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

		src, err := session.NewStaticSource(path)
		require.NoError(t, err)
		_, metadata, err := src.FetchConfig(context.Background(), client.ConfigParams{})
		require.NoError(t, err)
		assert.Equal(t, "cfg_local", metadata.ID)
	})

	t.Run("returns independent copies", func(t *testing.T) {
		t.Parallel()

		src, err := session.NewStaticSourceFromBytes([]byte(fixtureYAML))
		require.NoError(t, err)

		first, _, err := src.FetchConfig(context.Background(), client.ConfigParams{})
		require.NoError(t, err)
		first.Form.Currency = "gbp"

		second, _, err := src.FetchConfig(context.Background(), client.ConfigParams{})
		require.NoError(t, err)
		assert.Equal(t, "usd", second.Form.Currency)
	})

	t.Run("rejects a fixture without data", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewStaticSourceFromBytes([]byte("id: cfg_local"))
		require.Error(t, err)
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewStaticSourceFromBytes([]byte("{not yaml"))
		require.Error(t, err)
	})

	t.Run("feeds a session like the API source", func(t *testing.T) {
		t.Parallel()

		src, err := session.NewStaticSourceFromBytes([]byte(fixtureYAML))
		require.NoError(t, err)

		sess, err := session.New(context.Background(), session.Config{}, session.WithConfigSource(src))
		require.NoError(t, err)
		t.Cleanup(func() { _ = sess.Close() })

		snap := sess.Snapshot()
		require.NotNil(t, snap.Values)
		assert.Equal(t, "pk_local", snap.Values.Admin.ClientKey)
		assert.Equal(t, "cfg_local", snap.Metadata.ID)

		price, ok := sess.ActiveProductPrice("p1")
		require.True(t, ok)
		assert.Equal(t, "price_basic", price.ID)
	})
}
