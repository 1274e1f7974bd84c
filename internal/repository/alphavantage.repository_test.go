package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newAlphaVantageServer(t *testing.T, status int, body string) string {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestNewAlphaVantageRepository(t *testing.T) {
	require.Nil(t, NewAlphaVantageRepository("", "", time.Second))
}

func Test_alphaVantageRepositoryHandler_FetchQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("maps fields", func(t *testing.T) {
		url := newAlphaVantageServer(t, 200, `{"Global Quote": {"01. symbol": "MSFT", "05. price": "410.5", "06. volume": "99", "09. change": "-2.1", "10. change percent": "-0.51%"}}`)
		provider := NewAlphaVantageRepository("key", url, time.Second)

		raw, err := provider.FetchQuote(ctx, "MSFT")
		require.NoError(t, err)
		require.Equal(t, RawQuote{
			Symbol:        "MSFT",
			Price:         "410.5",
			Change:        "-2.1",
			ChangePercent: "-0.51%",
			Volume:        "99",
		}, *raw)
	})

	t.Run("rate limit", func(t *testing.T) {
		url := newAlphaVantageServer(t, 200, `{"Information": "rate limit"}`)
		provider := NewAlphaVantageRepository("key", url, time.Second)

		_, err := provider.FetchQuote(ctx, "MSFT")
		require.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("empty quote", func(t *testing.T) {
		url := newAlphaVantageServer(t, 200, `{}`)
		provider := NewAlphaVantageRepository("key", url, time.Second)

		_, err := provider.FetchQuote(ctx, "MSFT")
		require.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("server down", func(t *testing.T) {
		url := newAlphaVantageServer(t, 503, `down`)
		provider := NewAlphaVantageRepository("key", url, time.Second)

		_, err := provider.FetchQuote(ctx, "MSFT")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}
