package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

type yahooRepositoryHandler struct {
	Now func() time.Time
}

func NewYahooRepository() QuoteProvider {
	return yahooRepositoryHandler{
		Now: time.Now,
	}
}

func (h yahooRepositoryHandler) Name() string {
	return "yahoo"
}

// FetchQuote reads the last two daily bars. The latest close is the price
// and the previous close is the base for the change fields.
func (h yahooRepositoryHandler) FetchQuote(_ context.Context, symbol string) (*RawQuote, error) {
	end := h.Now().UTC()
	start := end.AddDate(0, 0, -7)
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	// finance-go does not take a context
	iter := chart.Get(params)
	bars := []dailyBar{}
	for iter.Next() {
		bars = append(bars, dailyBar{
			close:  iter.Bar().Close.InexactFloat64(),
			volume: int64(iter.Bar().Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get chart for %s: %w: %w", symbol, ErrUnavailable, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("failed to get chart for %s: %w: no bars", symbol, ErrInvalidResponse)
	}

	last := bars[len(bars)-1]
	prev := 0.0
	if len(bars) > 1 {
		prev = bars[len(bars)-2].close
	}

	return rawQuoteFromCloses(symbol, last.close, prev, last.volume), nil
}

type dailyBar struct {
	close  float64
	volume int64
}

func rawQuoteFromCloses(symbol string, last, prev float64, volume int64) *RawQuote {
	raw := &RawQuote{
		Symbol: symbol,
		Price:  strconv.FormatFloat(last, 'f', -1, 64),
		Volume: strconv.FormatInt(volume, 10),
	}
	if prev > 0 {
		change := last - prev
		raw.Change = strconv.FormatFloat(change, 'f', 4, 64)
		raw.ChangePercent = strconv.FormatFloat(change/prev*100, 'f', 4, 64) + "%"
	}
	return raw
}
