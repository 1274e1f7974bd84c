package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_rawQuoteFromCloses(t *testing.T) {
	t.Run("computes change from previous close", func(t *testing.T) {
		raw := rawQuoteFromCloses("AAPL", 110, 100, 500)
		require.Equal(t, RawQuote{
			Symbol:        "AAPL",
			Price:         "110",
			Change:        "10.0000",
			ChangePercent: "10.0000%",
			Volume:        "500",
		}, *raw)
	})

	t.Run("no previous close leaves change empty", func(t *testing.T) {
		raw := rawQuoteFromCloses("AAPL", 110, 0, 0)
		require.Equal(t, "", raw.Change)
		require.Equal(t, "", raw.ChangePercent)
		require.Equal(t, "110", raw.Price)
	})
}
