package l2_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/logger"
	"edustocks/internal/repository"
	l1_service "edustocks/internal/service/l1"
	"edustocks/internal/util"
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// LedgerService owns each user's cash and holdings. Operations for one user
// are serialized; different users never block each other.
type LedgerService interface {
	GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error)
	Buy(ctx context.Context, userID, symbol string, quantity int64) (*domain.Portfolio, error)
	Sell(ctx context.Context, userID, symbol string, quantity int64) (*domain.Portfolio, error)
	ExportHoldingsCSV(ctx context.Context, userID string) ([]byte, error)
}

type ledgerServiceHandler struct {
	PortfolioRepository repository.PortfolioRepository
	QuoteService        l1_service.QuoteService
	Now                 func() time.Time
	locks               *util.KeyedMutex
}

func NewLedgerService(portfolioRepository repository.PortfolioRepository, quoteService l1_service.QuoteService) LedgerService {
	return ledgerServiceHandler{
		PortfolioRepository: portfolioRepository,
		QuoteService:        quoteService,
		Now:                 time.Now,
		locks:               util.NewKeyedMutex(),
	}
}

func validateUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.NewError(domain.KindUnauthenticated, "user is not authenticated")
	}
	return userID, nil
}

func validateTrade(userID, symbol string, quantity int64) (string, string, error) {
	userID, err := validateUser(userID)
	if err != nil {
		return "", "", err
	}
	if quantity <= 0 {
		return "", "", domain.NewError(domain.KindInvalidQuantity, "quantity must be a positive whole number, got %d", quantity)
	}
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return "", "", domain.NewError(domain.KindStockNotFound, "symbol is required")
	}
	return userID, symbol, nil
}

// load returns the stored portfolio, or a new unsaved one.
func (h ledgerServiceHandler) load(ctx context.Context, userID string) (*domain.Portfolio, bool, error) {
	p, err := h.PortfolioRepository.Get(ctx, userID)
	if err != nil {
		return nil, false, domain.WrapError(domain.KindStorageUnavailable, err, "failed to load portfolio")
	}
	if p != nil {
		if p.Holdings == nil {
			p.Holdings = map[string]*domain.Holding{}
		}
		return p, true, nil
	}

	p = domain.NewPortfolio(userID)
	p.CreatedAt = h.Now().UTC()
	p.ModifiedAt = p.CreatedAt
	return p, false, nil
}

func (h ledgerServiceHandler) save(ctx context.Context, p *domain.Portfolio) error {
	if err := h.PortfolioRepository.Put(ctx, *p); err != nil {
		return domain.WrapError(domain.KindStorageUnavailable, err, "failed to save portfolio")
	}
	return nil
}

// tradePrice resolves the price a trade executes at. A quote without a
// positive price cannot price a trade.
func (h ledgerServiceHandler) tradePrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	result, err := h.QuoteService.GetQuote(ctx, symbol)
	if err != nil {
		return decimal.Zero, domain.WrapError(domain.KindStockNotFound, err, "stock %s not found", symbol)
	}
	if !result.Quote.Tradable() {
		return decimal.Zero, domain.NewError(domain.KindStockNotFound, "no tradable price for %s", symbol)
	}
	return decimal.NewFromFloat(result.Quote.Price), nil
}

// revalue refreshes derived fields. known holds prices already fetched for
// this operation; a holding whose quote fails keeps its last values.
func (h ledgerServiceHandler) revalue(ctx context.Context, p *domain.Portfolio, known map[string]decimal.Decimal) {
	log := logger.FromContext(ctx)

	prices := map[string]decimal.Decimal{}
	for symbol, price := range known {
		prices[symbol] = price
	}
	for _, symbol := range p.HeldSymbols() {
		if _, ok := prices[symbol]; ok {
			continue
		}
		result, err := h.QuoteService.GetQuote(ctx, symbol)
		if err != nil {
			log.Warnf("skipping revaluation of %s for %s: %s", symbol, p.UserID, err.Error())
			continue
		}
		if !result.Quote.Tradable() {
			log.Warnf("skipping revaluation of %s for %s: zero price", symbol, p.UserID)
			continue
		}
		prices[symbol] = decimal.NewFromFloat(result.Quote.Price)
	}

	p.Revalue(prices)
}

func (h ledgerServiceHandler) GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	userID, err := validateUser(userID)
	if err != nil {
		return nil, err
	}
	unlock := h.locks.Lock(userID)
	defer unlock()

	p, exists, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := h.save(ctx, p); err != nil {
			return nil, err
		}
	}

	h.revalue(ctx, p, nil)
	return p, nil
}

func (h ledgerServiceHandler) Buy(ctx context.Context, userID, symbol string, quantity int64) (*domain.Portfolio, error) {
	userID, symbol, err := validateTrade(userID, symbol, quantity)
	if err != nil {
		return nil, err
	}
	unlock := h.locks.Lock(userID)
	defer unlock()

	p, _, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	price, err := h.tradePrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	cost := price.Mul(decimal.NewFromInt(quantity))
	if cost.GreaterThan(p.Balance) {
		return nil, domain.NewError(
			domain.KindInsufficientBalance,
			"insufficient balance: %d %s costs %s, available %s",
			quantity, symbol, cost.StringFixed(2), p.Balance.StringFixed(2),
		)
	}

	if holding, ok := p.Holdings[symbol]; ok {
		holding.AddShares(quantity, cost)
		holding.Revalue(price)
	} else {
		p.Holdings[symbol] = domain.NewHolding(symbol, quantity, price)
	}
	p.Balance = p.Balance.Sub(cost)
	p.ModifiedAt = h.Now().UTC()

	h.revalue(ctx, p, map[string]decimal.Decimal{symbol: price})
	if err := h.save(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infof("%s bought %d %s at %s", userID, quantity, symbol, price.String())
	return p, nil
}

func (h ledgerServiceHandler) Sell(ctx context.Context, userID, symbol string, quantity int64) (*domain.Portfolio, error) {
	userID, symbol, err := validateTrade(userID, symbol, quantity)
	if err != nil {
		return nil, err
	}
	unlock := h.locks.Lock(userID)
	defer unlock()

	p, _, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	holding, ok := p.Holdings[symbol]
	if !ok || holding.Quantity < quantity {
		held := int64(0)
		if ok {
			held = holding.Quantity
		}
		return nil, domain.NewError(
			domain.KindInsufficientShares,
			"insufficient shares: tried to sell %d %s, holding %d",
			quantity, symbol, held,
		)
	}

	price, err := h.tradePrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	proceeds := price.Mul(decimal.NewFromInt(quantity))

	p.Balance = p.Balance.Add(proceeds)
	if holding.Quantity == quantity {
		delete(p.Holdings, symbol)
	} else {
		holding.Quantity -= quantity
		holding.Revalue(price)
	}
	p.ModifiedAt = h.Now().UTC()

	h.revalue(ctx, p, map[string]decimal.Decimal{symbol: price})
	if err := h.save(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infof("%s sold %d %s at %s", userID, quantity, symbol, price.String())
	return p, nil
}

type holdingCsvRow struct {
	Symbol        string `csv:"symbol"`
	Quantity      int64  `csv:"quantity"`
	AveragePrice  string `csv:"average_price"`
	CurrentPrice  string `csv:"current_price"`
	TotalValue    string `csv:"total_value"`
	Profit        string `csv:"profit"`
	ProfitPercent string `csv:"profit_percent"`
}

func (h ledgerServiceHandler) ExportHoldingsCSV(ctx context.Context, userID string) ([]byte, error) {
	p, err := h.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := []holdingCsvRow{}
	for _, holding := range p.SortedHoldings() {
		rows = append(rows, holdingCsvRow{
			Symbol:        holding.Symbol,
			Quantity:      holding.Quantity,
			AveragePrice:  holding.AveragePrice.StringFixed(2),
			CurrentPrice:  holding.CurrentPrice.StringFixed(2),
			TotalValue:    holding.TotalValue.StringFixed(2),
			Profit:        holding.Profit.StringFixed(2),
			ProfitPercent: holding.ProfitPercent.StringFixed(2),
		})
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal holdings csv: %w", err)
	}
	return out, nil
}
