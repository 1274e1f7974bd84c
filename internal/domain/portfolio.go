package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var StartingBalance = decimal.NewFromInt(10000)

type Portfolio struct {
	UserID   string
	Balance  decimal.Decimal
	Holdings map[string]*Holding
	// TotalValue is derived on every read; Balance and Holdings are the
	// source of truth.
	TotalValue decimal.Decimal
	CreatedAt  time.Time
	ModifiedAt time.Time
}

func NewPortfolio(userID string) *Portfolio {
	return &Portfolio{
		UserID:     userID,
		Balance:    StartingBalance,
		Holdings:   map[string]*Holding{},
		TotalValue: StartingBalance,
	}
}

func (p Portfolio) HeldSymbols() []string {
	symbols := []string{}
	for symbol := range p.Holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// SortedHoldings returns the holdings ordered by symbol.
func (p Portfolio) SortedHoldings() []Holding {
	out := []Holding{}
	for _, symbol := range p.HeldSymbols() {
		out = append(out, *p.Holdings[symbol])
	}
	return out
}

func (p Portfolio) DeepCopy() *Portfolio {
	newPortfolio := p
	newPortfolio.Holdings = map[string]*Holding{}
	for symbol, holding := range p.Holdings {
		h := *holding
		newPortfolio.Holdings[symbol] = &h
	}
	return &newPortfolio
}

// Revalue refreshes derived fields from the given prices. Holdings without
// a price keep their last computed values.
func (p *Portfolio) Revalue(prices map[string]decimal.Decimal) {
	holdingsValue := decimal.Zero
	for symbol, holding := range p.Holdings {
		if price, ok := prices[symbol]; ok {
			holding.Revalue(price)
		}
		holdingsValue = holdingsValue.Add(holding.TotalValue)
	}
	p.TotalValue = p.Balance.Add(holdingsValue)
}

type Holding struct {
	Symbol   string
	Quantity int64
	// AveragePrice is the cost basis per share, weighted over all buys.
	AveragePrice  decimal.Decimal
	CurrentPrice  decimal.Decimal
	TotalValue    decimal.Decimal
	Profit        decimal.Decimal
	ProfitPercent decimal.Decimal
}

func NewHolding(symbol string, quantity int64, price decimal.Decimal) *Holding {
	h := &Holding{
		Symbol:       symbol,
		Quantity:     quantity,
		AveragePrice: price,
	}
	h.Revalue(price)
	return h
}

func (h Holding) CostBasis() decimal.Decimal {
	return h.AveragePrice.Mul(decimal.NewFromInt(h.Quantity))
}

func (h *Holding) Revalue(price decimal.Decimal) {
	h.CurrentPrice = price
	h.TotalValue = price.Mul(decimal.NewFromInt(h.Quantity))
	cost := h.CostBasis()
	h.Profit = h.TotalValue.Sub(cost)
	if cost.IsZero() {
		h.ProfitPercent = decimal.Zero
		return
	}
	h.ProfitPercent = h.Profit.Div(cost).Mul(decimal.NewFromInt(100))
}

// AddShares folds a buy of quantity shares costing cost in total into the
// position's average cost basis.
func (h *Holding) AddShares(quantity int64, cost decimal.Decimal) {
	newQuantity := h.Quantity + quantity
	h.AveragePrice = h.CostBasis().Add(cost).Div(decimal.NewFromInt(newQuantity))
	h.Quantity = newQuantity
}
