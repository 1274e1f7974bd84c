package repository

import (
	"context"
	"errors"
)

var (
	ErrRateLimited     = errors.New("quote provider rate limited")
	ErrInvalidResponse = errors.New("quote provider returned an invalid response")
	ErrUnavailable     = errors.New("quote provider unavailable")
)

// RawQuote is a provider response before parsing. Fields are kept as text so
// one unparsable field does not sink the whole quote.
type RawQuote struct {
	Symbol        string
	Name          string
	Price         string
	Change        string
	ChangePercent string
	Volume        string
	Exchange      string
}

// QuoteProvider fetches a single quote from an external market data source.
// Errors wrap ErrRateLimited, ErrInvalidResponse or ErrUnavailable.
type QuoteProvider interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (*RawQuote, error)
}
