package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, status int, body string) Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		require.Equal(t, "key", r.URL.Query().Get("apikey"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return Client{
		HttpClient: server.Client(),
		ApiKey:     "key",
		BaseUrl:    server.URL,
	}
}

func TestClient_GetGlobalQuote(t *testing.T) {
	t.Run("parses quote", func(t *testing.T) {
		c := newTestClient(t, 200, `{"Global Quote": {
			"01. symbol": "AAPL",
			"05. price": "189.8400",
			"06. volume": "1234",
			"09. change": "1.2000",
			"10. change percent": "0.6361%"
		}}`)

		quote, err := c.GetGlobalQuote(context.Background(), "AAPL")
		require.NoError(t, err)
		require.Equal(t, "AAPL", quote.Symbol)
		require.Equal(t, "189.8400", quote.Price)
		require.Equal(t, "0.6361%", quote.ChangePercent)
	})

	t.Run("note means rate limited", func(t *testing.T) {
		c := newTestClient(t, 200, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute"}`)

		_, err := c.GetGlobalQuote(context.Background(), "AAPL")
		require.True(t, errors.Is(err, ErrRateLimited))
	})

	t.Run("429 means rate limited", func(t *testing.T) {
		c := newTestClient(t, 429, ``)

		_, err := c.GetGlobalQuote(context.Background(), "AAPL")
		require.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("empty global quote", func(t *testing.T) {
		c := newTestClient(t, 200, `{"Global Quote": {}}`)

		_, err := c.GetGlobalQuote(context.Background(), "ZZZZ")
		require.ErrorIs(t, err, ErrEmptyQuote)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestClient(t, 200, `<html>`)

		_, err := c.GetGlobalQuote(context.Background(), "AAPL")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, 500, `oops`)

		_, err := c.GetGlobalQuote(context.Background(), "AAPL")
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrRateLimited))
		require.False(t, errors.Is(err, ErrEmptyQuote))
	})
}
