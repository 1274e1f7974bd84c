package api

import (
	"edustocks/internal/domain"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type holdingResponse struct {
	Symbol        string  `json:"symbol"`
	Quantity      int64   `json:"quantity"`
	AveragePrice  float64 `json:"averagePrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	TotalValue    float64 `json:"totalValue"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
}

type portfolioResponse struct {
	UserID     string            `json:"userId"`
	Balance    float64           `json:"balance"`
	TotalValue float64           `json:"totalValue"`
	Holdings   []holdingResponse `json:"holdings"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func portfolioResponseFromDomain(p domain.Portfolio) portfolioResponse {
	holdings := []holdingResponse{}
	for _, h := range p.SortedHoldings() {
		holdings = append(holdings, holdingResponse{
			Symbol:        h.Symbol,
			Quantity:      h.Quantity,
			AveragePrice:  h.AveragePrice.InexactFloat64(),
			CurrentPrice:  h.CurrentPrice.InexactFloat64(),
			TotalValue:    h.TotalValue.InexactFloat64(),
			Profit:        h.Profit.InexactFloat64(),
			ProfitPercent: h.ProfitPercent.InexactFloat64(),
		})
	}
	return portfolioResponse{
		UserID:     p.UserID,
		Balance:    p.Balance.InexactFloat64(),
		TotalValue: p.TotalValue.InexactFloat64(),
		Holdings:   holdings,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.ModifiedAt,
	}
}

func (m ApiHandler) getPortfolio(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	portfolio, err := m.LedgerService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, portfolioResponseFromDomain(*portfolio))
}

type tradeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	// Quantity is a pointer so a missing field is told apart from zero.
	Quantity *int64 `json:"quantity" binding:"required"`
}

type tradeResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Portfolio portfolioResponse `json:"portfolio"`
}

func (m ApiHandler) bindTrade(c *gin.Context) (string, *tradeRequest, error) {
	userID, err := userIDFromContext(c)
	if err != nil {
		return "", nil, err
	}
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", nil, domain.WrapError(domain.KindInvalidInput, err, "symbol and quantity are required")
	}
	return userID, &req, nil
}

func (m ApiHandler) buyStock(c *gin.Context) {
	userID, req, err := m.bindTrade(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	portfolio, err := m.LedgerService.Buy(c.Request.Context(), userID, req.Symbol, *req.Quantity)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, tradeResponse{
		Success:   true,
		Message:   "Stock purchased successfully",
		Portfolio: portfolioResponseFromDomain(*portfolio),
	})
}

func (m ApiHandler) sellStock(c *gin.Context) {
	userID, req, err := m.bindTrade(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	portfolio, err := m.LedgerService.Sell(c.Request.Context(), userID, req.Symbol, *req.Quantity)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, tradeResponse{
		Success:   true,
		Message:   "Stock sold successfully",
		Portfolio: portfolioResponseFromDomain(*portfolio),
	})
}

func (m ApiHandler) exportPortfolio(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out, err := m.LedgerService.ExportHoldingsCSV(c.Request.Context(), userID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="holdings-%s.csv"`, userID))
	c.Data(200, "text/csv", out)
}
