package repository

import (
	"context"
	"edustocks/pkg/alphavantage"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type alphaVantageRepositoryHandler struct {
	Client alphavantage.Client
}

// NewAlphaVantageRepository returns nil when no api key is configured, which
// leaves the quote cache on fallback data.
func NewAlphaVantageRepository(apiKey, baseUrl string, timeout time.Duration) QuoteProvider {
	if apiKey == "" {
		return nil
	}
	return alphaVantageRepositoryHandler{
		Client: alphavantage.Client{
			HttpClient: &http.Client{Timeout: timeout},
			ApiKey:     apiKey,
			BaseUrl:    baseUrl,
		},
	}
}

func (h alphaVantageRepositoryHandler) Name() string {
	return "alphavantage"
}

func (h alphaVantageRepositoryHandler) FetchQuote(ctx context.Context, symbol string) (*RawQuote, error) {
	quote, err := h.Client.GetGlobalQuote(ctx, symbol)
	if errors.Is(err, alphavantage.ErrRateLimited) {
		return nil, fmt.Errorf("failed to get quote for %s: %w: %w", symbol, ErrRateLimited, err)
	} else if errors.Is(err, alphavantage.ErrEmptyQuote) || errors.Is(err, alphavantage.ErrMalformed) {
		return nil, fmt.Errorf("failed to get quote for %s: %w: %w", symbol, ErrInvalidResponse, err)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w: %w", symbol, ErrUnavailable, err)
	}

	return &RawQuote{
		Symbol:        quote.Symbol,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		Volume:        quote.Volume,
	}, nil
}
