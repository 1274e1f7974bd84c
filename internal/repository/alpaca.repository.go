package repository

import (
	"context"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

type alpacaMarketDataClient interface {
	GetSnapshot(symbol string, req marketdata.GetSnapshotRequest) (*marketdata.Snapshot, error)
}

type alpacaRepositoryHandler struct {
	MdClient alpacaMarketDataClient
}

// NewAlpacaRepository builds a snapshot-backed quote provider. Only the
// market data api is used; no orders are ever placed.
func NewAlpacaRepository(apiKey, apiSecret string, endpoint string) QuoteProvider {
	if apiKey == "" || apiSecret == "" {
		return nil
	}

	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaRepositoryHandler{
		MdClient: mdClient,
	}
}

func (h alpacaRepositoryHandler) Name() string {
	return "alpaca"
}

func (h alpacaRepositoryHandler) FetchQuote(_ context.Context, symbol string) (*RawQuote, error) {
	snapshot, err := h.MdClient.GetSnapshot(symbol, marketdata.GetSnapshotRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w: %w", symbol, ErrUnavailable, err)
	}
	if snapshot == nil || snapshot.LatestTrade == nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w: no latest trade", symbol, ErrInvalidResponse)
	}

	prev := 0.0
	if snapshot.PrevDailyBar != nil {
		prev = snapshot.PrevDailyBar.Close
	}
	volume := int64(0)
	if snapshot.DailyBar != nil {
		volume = int64(snapshot.DailyBar.Volume)
	}

	return rawQuoteFromCloses(symbol, snapshot.LatestTrade.Price, prev, volume), nil
}
