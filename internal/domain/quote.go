package domain

import (
	"strings"
	"time"
)

// Quote is an immutable market snapshot for one symbol.
type Quote struct {
	Symbol        string
	DisplayName   string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        int64
	Exchange      string
}

// Tradable reports whether the quote can price a trade. Provider fields
// that fail to parse default to zero, so a zero price means "unknown".
func (q Quote) Tradable() bool {
	return q.Price > 0
}

type QuoteSource string

const (
	QuoteSourceLive     QuoteSource = "live"
	QuoteSourceCache    QuoteSource = "cache"
	QuoteSourceFallback QuoteSource = "fallback"
)

// QuoteResult is what the quote cache hands out. A fallback result carries
// the reason the live path was not used.
type QuoteResult struct {
	Quote          Quote
	Source         QuoteSource
	FetchedAt      time.Time
	FallbackReason string
}

func (r QuoteResult) IsFallback() bool {
	return r.Source == QuoteSourceFallback
}

type CachedQuote struct {
	Quote     Quote
	FetchedAt time.Time
}

func (c CachedQuote) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.FetchedAt) < ttl
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

type MarketSummary struct {
	Count               int
	Advancers           int
	Decliners           int
	Unchanged           int
	MeanChangePercent   float64
	MedianChangePercent float64
	StdevChangePercent  float64
	FallbackQuotes      int
	BestPerformer       string
	WorstPerformer      string
}
