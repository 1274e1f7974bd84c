package l1_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/logger"
	"edustocks/internal/repository"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// QuoteTTL is how long a live quote is served from cache.
const QuoteTTL = 600 * time.Second

const maxConcurrentFetches = 5

type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*domain.QuoteResult, error)
	GetAllQuotes(ctx context.Context) []domain.QuoteResult
	SearchQuotes(ctx context.Context, query string) []domain.QuoteResult
	MarketSummary(ctx context.Context) domain.MarketSummary
}

type quoteServiceHandler struct {
	// Provider is nil when no credential is configured.
	Provider  repository.QuoteProvider
	Fallbacks map[string]domain.Quote
	WatchList []string
	TTL       time.Duration
	Now       func() time.Time

	mu    sync.RWMutex
	cache map[string]domain.CachedQuote
}

func NewQuoteService(provider repository.QuoteProvider) QuoteService {
	return newQuoteServiceHandler(provider, DefaultFallbackQuotes(), WatchList, time.Now)
}

func newQuoteServiceHandler(provider repository.QuoteProvider, fallbacks map[string]domain.Quote, watchList []string, now func() time.Time) *quoteServiceHandler {
	return &quoteServiceHandler{
		Provider:  provider,
		Fallbacks: fallbacks,
		WatchList: watchList,
		TTL:       QuoteTTL,
		Now:       now,
		cache:     map[string]domain.CachedQuote{},
	}
}

func (h *quoteServiceHandler) GetQuote(ctx context.Context, symbol string) (*domain.QuoteResult, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.NewError(domain.KindStockNotFound, "symbol is required")
	}

	now := h.Now()
	if cached, ok := h.getCached(symbol); ok && cached.IsFresh(now, h.TTL) {
		return &domain.QuoteResult{
			Quote:     cached.Quote,
			Source:    domain.QuoteSourceCache,
			FetchedAt: cached.FetchedAt,
		}, nil
	}

	if h.Provider == nil {
		return h.fallback(ctx, symbol, domain.NewError(
			domain.KindConfiguration,
			"stock api key not configured and no fallback data for %s", symbol,
		))
	}

	raw, err := h.Provider.FetchQuote(ctx, symbol)
	if err == nil && (raw == nil || strings.TrimSpace(raw.Price) == "") {
		err = repository.ErrInvalidResponse
	}
	if err != nil {
		return h.fallback(ctx, symbol, classifyProviderError(symbol, err))
	}

	quote := h.parseRawQuote(symbol, *raw)
	if quote.Price <= 0 {
		err = fmt.Errorf("unusable price %q: %w", raw.Price, repository.ErrInvalidResponse)
		return h.fallback(ctx, symbol, classifyProviderError(symbol, err))
	}

	h.mu.Lock()
	h.cache[symbol] = domain.CachedQuote{
		Quote:     quote,
		FetchedAt: now,
	}
	h.mu.Unlock()

	return &domain.QuoteResult{
		Quote:     quote,
		Source:    domain.QuoteSourceLive,
		FetchedAt: now,
	}, nil
}

func (h *quoteServiceHandler) getCached(symbol string) (domain.CachedQuote, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cached, ok := h.cache[symbol]
	return cached, ok
}

// fallback returns built-in data for symbol, or cause when there is none.
func (h *quoteServiceHandler) fallback(ctx context.Context, symbol string, cause *domain.Error) (*domain.QuoteResult, error) {
	quote, ok := h.Fallbacks[symbol]
	if !ok {
		return nil, cause
	}
	logger.FromContext(ctx).Warnf("serving fallback quote for %s: %s", symbol, cause.Error())
	return &domain.QuoteResult{
		Quote:          quote,
		Source:         domain.QuoteSourceFallback,
		FetchedAt:      h.Now(),
		FallbackReason: string(cause.Kind),
	}, nil
}

func classifyProviderError(symbol string, err error) *domain.Error {
	switch {
	case errors.Is(err, repository.ErrRateLimited):
		return domain.WrapError(domain.KindUpstreamRateLimited, err, "quote provider rate limited for %s", symbol)
	case errors.Is(err, repository.ErrInvalidResponse):
		return domain.WrapError(domain.KindUpstreamInvalidResponse, err, "invalid quote response for %s", symbol)
	default:
		return domain.WrapError(domain.KindUpstreamUnavailable, err, "quote provider unavailable for %s", symbol)
	}
}

// parseRawQuote never fails: a field that does not parse becomes zero.
// GetQuote rejects a zero price before caching.
func (h *quoteServiceHandler) parseRawQuote(symbol string, raw repository.RawQuote) domain.Quote {
	known := h.Fallbacks[symbol]

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = known.DisplayName
	}
	if name == "" {
		name = symbol
	}
	exchange := strings.TrimSpace(raw.Exchange)
	if exchange == "" {
		exchange = known.Exchange
	}
	if exchange == "" {
		exchange = defaultExchange
	}

	return domain.Quote{
		Symbol:        symbol,
		DisplayName:   name,
		Price:         parseFloatSafe(raw.Price),
		Change:        parseFloatSafe(raw.Change),
		ChangePercent: parseFloatSafe(strings.TrimSuffix(strings.TrimSpace(raw.ChangePercent), "%")),
		Volume:        parseIntSafe(raw.Volume),
		Exchange:      exchange,
	}
}

func parseFloatSafe(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntSafe(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return int64(parseFloatSafe(s))
}

// GetAllQuotes fetches the watch list with bounded concurrency. A symbol
// that fails without fallback data is left out; order follows the list.
func (h *quoteServiceHandler) GetAllQuotes(ctx context.Context) []domain.QuoteResult {
	log := logger.FromContext(ctx)

	type workInput struct {
		index  int
		symbol string
	}
	type workResult struct {
		index  int
		result *domain.QuoteResult
		err    error
	}

	inputCh := make(chan workInput, len(h.WatchList))
	resultCh := make(chan workResult, len(h.WatchList))
	for i, symbol := range h.WatchList {
		inputCh <- workInput{index: i, symbol: symbol}
	}
	close(inputCh)

	numGoroutines := maxConcurrentFetches
	if len(h.WatchList) < numGoroutines {
		numGoroutines = len(h.WatchList)
	}
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input := range inputCh {
				result, err := h.GetQuote(ctx, input.symbol)
				resultCh <- workResult{index: input.index, result: result, err: err}
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	ordered := make([]*domain.QuoteResult, len(h.WatchList))
	for r := range resultCh {
		if r.err != nil {
			log.Warnf("skipping %s: %s", h.WatchList[r.index], r.err.Error())
			continue
		}
		ordered[r.index] = r.result
	}

	out := []domain.QuoteResult{}
	for _, r := range ordered {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (h *quoteServiceHandler) SearchQuotes(ctx context.Context, query string) []domain.QuoteResult {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []domain.QuoteResult{}
	for _, r := range h.GetAllQuotes(ctx) {
		if strings.Contains(strings.ToLower(r.Quote.Symbol), query) ||
			strings.Contains(strings.ToLower(r.Quote.DisplayName), query) {
			out = append(out, r)
		}
	}
	return out
}

func (h *quoteServiceHandler) MarketSummary(ctx context.Context) domain.MarketSummary {
	results := h.GetAllQuotes(ctx)
	return summarizeQuotes(results)
}

func summarizeQuotes(results []domain.QuoteResult) domain.MarketSummary {
	summary := domain.MarketSummary{
		Count: len(results),
	}
	if len(results) == 0 {
		return summary
	}

	changes := []float64{}
	for _, r := range results {
		changes = append(changes, r.Quote.ChangePercent)
		switch {
		case r.Quote.ChangePercent > 0:
			summary.Advancers++
		case r.Quote.ChangePercent < 0:
			summary.Decliners++
		default:
			summary.Unchanged++
		}
		if r.IsFallback() {
			summary.FallbackQuotes++
		}
	}

	// stats only errors on empty input, which is handled above
	summary.MeanChangePercent, _ = stats.Mean(changes)
	summary.MedianChangePercent, _ = stats.Median(changes)
	summary.StdevChangePercent, _ = stats.StandardDeviation(changes)

	sorted := append([]domain.QuoteResult{}, results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quote.ChangePercent > sorted[j].Quote.ChangePercent
	})
	summary.BestPerformer = sorted[0].Quote.Symbol
	summary.WorstPerformer = sorted[len(sorted)-1].Quote.Symbol

	return summary
}
