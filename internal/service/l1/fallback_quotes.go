package l1_service

import "edustocks/internal/domain"

const defaultExchange = "NYSE"

// WatchList is the fixed set of symbols served by GetAllQuotes.
var WatchList = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
	"META", "NVDA", "JPM", "V", "JNJ",
}

// approximate snapshots used when the live provider cannot answer
var fallbackQuotes = map[string]domain.Quote{
	"AAPL":  {Symbol: "AAPL", DisplayName: "Apple Inc.", Price: 189.84, Change: 1.2, ChangePercent: 0.64, Volume: 52_000_000, Exchange: "NASDAQ"},
	"MSFT":  {Symbol: "MSFT", DisplayName: "Microsoft Corporation", Price: 415.5, Change: -2.1, ChangePercent: -0.5, Volume: 21_000_000, Exchange: "NASDAQ"},
	"GOOGL": {Symbol: "GOOGL", DisplayName: "Alphabet Inc.", Price: 172.63, Change: 0.85, ChangePercent: 0.49, Volume: 25_000_000, Exchange: "NASDAQ"},
	"AMZN":  {Symbol: "AMZN", DisplayName: "Amazon.com, Inc.", Price: 183.32, Change: 1.75, ChangePercent: 0.96, Volume: 38_000_000, Exchange: "NASDAQ"},
	"TSLA":  {Symbol: "TSLA", DisplayName: "Tesla, Inc.", Price: 177.46, Change: -3.4, ChangePercent: -1.88, Volume: 95_000_000, Exchange: "NASDAQ"},
	"META":  {Symbol: "META", DisplayName: "Meta Platforms, Inc.", Price: 493.5, Change: 4.1, ChangePercent: 0.84, Volume: 15_000_000, Exchange: "NASDAQ"},
	"NVDA":  {Symbol: "NVDA", DisplayName: "NVIDIA Corporation", Price: 903.56, Change: 12.3, ChangePercent: 1.38, Volume: 45_000_000, Exchange: "NASDAQ"},
	"JPM":   {Symbol: "JPM", DisplayName: "JPMorgan Chase & Co.", Price: 198.47, Change: 0.6, ChangePercent: 0.3, Volume: 9_000_000, Exchange: "NYSE"},
	"V":     {Symbol: "V", DisplayName: "Visa Inc.", Price: 274.86, Change: -0.9, ChangePercent: -0.33, Volume: 6_500_000, Exchange: "NYSE"},
	"JNJ":   {Symbol: "JNJ", DisplayName: "Johnson & Johnson", Price: 152.18, Change: 0.0, ChangePercent: 0.0, Volume: 7_200_000, Exchange: "NYSE"},
}

// DefaultFallbackQuotes returns a copy of the built-in fallback data.
func DefaultFallbackQuotes() map[string]domain.Quote {
	out := make(map[string]domain.Quote, len(fallbackQuotes))
	for symbol, q := range fallbackQuotes {
		out[symbol] = q
	}
	return out
}
