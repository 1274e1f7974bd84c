package repository

import (
	"context"
	"database/sql"
	"edustocks/internal/db/models/postgres/public/model"
	"edustocks/internal/db/models/postgres/public/table"
	"edustocks/internal/domain"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/shopspring/decimal"
)

// PortfolioRepository is a keyed record store for portfolios. Put replaces
// the whole record for the user. Get returns nil when no record exists.
type PortfolioRepository interface {
	Get(ctx context.Context, userID string) (*domain.Portfolio, error)
	Put(ctx context.Context, portfolio domain.Portfolio) error
	ListAll(ctx context.Context) ([]domain.Portfolio, error)
	Delete(ctx context.Context, userID string) error
}

type memoryPortfolioRepositoryHandler struct {
	store *memoryStore[domain.Portfolio]
}

func NewMemoryPortfolioRepository() PortfolioRepository {
	return memoryPortfolioRepositoryHandler{
		store: newMemoryStore(func(p domain.Portfolio) domain.Portfolio {
			return *p.DeepCopy()
		}),
	}
}

func (h memoryPortfolioRepositoryHandler) Get(ctx context.Context, userID string) (*domain.Portfolio, error) {
	p, ok := h.store.get(userID)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (h memoryPortfolioRepositoryHandler) Put(ctx context.Context, portfolio domain.Portfolio) error {
	h.store.put(portfolio.UserID, portfolio)
	return nil
}

func (h memoryPortfolioRepositoryHandler) ListAll(ctx context.Context) ([]domain.Portfolio, error) {
	return h.store.listAll(), nil
}

func (h memoryPortfolioRepositoryHandler) Delete(ctx context.Context, userID string) error {
	h.store.delete(userID)
	return nil
}

type portfolioRepositoryHandler struct {
	Db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return portfolioRepositoryHandler{
		Db: db,
	}
}

type holdingRecord struct {
	Symbol        string          `json:"symbol"`
	Quantity      int64           `json:"quantity"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profitPercent"`
}

func portfolioToModel(p domain.Portfolio) (*model.Portfolio, error) {
	records := []holdingRecord{}
	for _, h := range p.SortedHoldings() {
		records = append(records, holdingRecord(h))
	}
	holdings, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal holdings: %w", err)
	}

	return &model.Portfolio{
		UserID:     p.UserID,
		Balance:    p.Balance,
		TotalValue: p.TotalValue,
		Holdings:   string(holdings),
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.ModifiedAt.UTC(),
	}, nil
}

func portfolioFromModel(m model.Portfolio) (*domain.Portfolio, error) {
	records := []holdingRecord{}
	if m.Holdings != "" {
		if err := json.Unmarshal([]byte(m.Holdings), &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal holdings for %s: %w", m.UserID, err)
		}
	}

	p := &domain.Portfolio{
		UserID:     m.UserID,
		Balance:    m.Balance,
		TotalValue: m.TotalValue,
		Holdings:   map[string]*domain.Holding{},
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.UpdatedAt,
	}
	for _, r := range records {
		h := domain.Holding(r)
		p.Holdings[h.Symbol] = &h
	}

	return p, nil
}

func (h portfolioRepositoryHandler) Get(ctx context.Context, userID string) (*domain.Portfolio, error) {
	t := table.Portfolio
	query := t.SELECT(t.AllColumns).
		WHERE(t.UserID.EQ(postgres.String(userID)))

	out := model.Portfolio{}
	err := query.QueryContext(ctx, h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, domain.WrapError(domain.KindStorageUnavailable, err, "failed to get portfolio")
	}

	return portfolioFromModel(out)
}

func (h portfolioRepositoryHandler) Put(ctx context.Context, portfolio domain.Portfolio) error {
	m, err := portfolioToModel(portfolio)
	if err != nil {
		return err
	}

	t := table.Portfolio
	query := t.INSERT(t.AllColumns).
		MODEL(m).
		ON_CONFLICT(t.UserID).
		DO_UPDATE(
			postgres.SET(
				t.Balance.SET(t.EXCLUDED.Balance),
				t.TotalValue.SET(t.EXCLUDED.TotalValue),
				t.Holdings.SET(t.EXCLUDED.Holdings),
				t.UpdatedAt.SET(t.EXCLUDED.UpdatedAt),
			),
		)

	_, err = query.ExecContext(ctx, h.Db)
	if err != nil {
		return domain.WrapError(domain.KindStorageUnavailable, err, "failed to save portfolio")
	}

	return nil
}

func (h portfolioRepositoryHandler) ListAll(ctx context.Context) ([]domain.Portfolio, error) {
	t := table.Portfolio
	query := t.SELECT(t.AllColumns).
		ORDER_BY(t.UserID.ASC())

	result := []model.Portfolio{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, domain.WrapError(domain.KindStorageUnavailable, err, "failed to list portfolios")
	}

	out := []domain.Portfolio{}
	for _, m := range result {
		p, err := portfolioFromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, nil
}

func (h portfolioRepositoryHandler) Delete(ctx context.Context, userID string) error {
	t := table.Portfolio
	query := t.DELETE().
		WHERE(t.UserID.EQ(postgres.String(userID)))

	_, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return domain.WrapError(domain.KindStorageUnavailable, err, "failed to delete portfolio")
	}

	return nil
}
