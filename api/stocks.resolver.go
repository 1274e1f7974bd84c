package api

import (
	"edustocks/internal/domain"

	"github.com/gin-gonic/gin"
)

type stockResponse struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"changePercent"`
	Volume         int64   `json:"volume"`
	Exchange       string  `json:"exchange"`
	Source         string  `json:"source"`
	FallbackReason string  `json:"fallbackReason,omitempty"`
}

func stockResponseFromResult(r domain.QuoteResult) stockResponse {
	return stockResponse{
		Symbol:         r.Quote.Symbol,
		Name:           r.Quote.DisplayName,
		Price:          r.Quote.Price,
		Change:         r.Quote.Change,
		ChangePercent:  r.Quote.ChangePercent,
		Volume:         r.Quote.Volume,
		Exchange:       r.Quote.Exchange,
		Source:         string(r.Source),
		FallbackReason: r.FallbackReason,
	}
}

func stockResponses(results []domain.QuoteResult) []stockResponse {
	out := []stockResponse{}
	for _, r := range results {
		out = append(out, stockResponseFromResult(r))
	}
	return out
}

func (m ApiHandler) listStocks(c *gin.Context) {
	results := m.QuoteService.GetAllQuotes(c.Request.Context())
	c.JSON(200, stockResponses(results))
}

type searchStocksRequest struct {
	Query string `form:"query" binding:"required"`
}

func (m ApiHandler) searchStocks(c *gin.Context) {
	var req searchStocksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		returnErrorJson(domain.WrapError(domain.KindInvalidInput, err, "query is required"), c)
		return
	}

	results := m.QuoteService.SearchQuotes(c.Request.Context(), req.Query)
	c.JSON(200, stockResponses(results))
}

func (m ApiHandler) getStock(c *gin.Context) {
	symbol := c.Param("symbol")
	result, err := m.QuoteService.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		// an unknown symbol comes back from the provider as an empty quote
		if domain.IsKind(err, domain.KindUpstreamInvalidResponse) {
			err = domain.WrapError(domain.KindStockNotFound, err, "stock %s not found", domain.NormalizeSymbol(symbol))
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, stockResponseFromResult(*result))
}

type marketSummaryResponse struct {
	Count               int     `json:"count"`
	Advancers           int     `json:"advancers"`
	Decliners           int     `json:"decliners"`
	Unchanged           int     `json:"unchanged"`
	MeanChangePercent   float64 `json:"meanChangePercent"`
	MedianChangePercent float64 `json:"medianChangePercent"`
	StdevChangePercent  float64 `json:"stdevChangePercent"`
	FallbackQuotes      int     `json:"fallbackQuotes"`
	BestPerformer       string  `json:"bestPerformer"`
	WorstPerformer      string  `json:"worstPerformer"`
}

func (m ApiHandler) marketSummary(c *gin.Context) {
	s := m.QuoteService.MarketSummary(c.Request.Context())
	c.JSON(200, marketSummaryResponse{
		Count:               s.Count,
		Advancers:           s.Advancers,
		Decliners:           s.Decliners,
		Unchanged:           s.Unchanged,
		MeanChangePercent:   s.MeanChangePercent,
		MedianChangePercent: s.MedianChangePercent,
		StdevChangePercent:  s.StdevChangePercent,
		FallbackQuotes:      s.FallbackQuotes,
		BestPerformer:       s.BestPerformer,
		WorstPerformer:      s.WorstPerformer,
	})
}
