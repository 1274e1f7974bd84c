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
)

type UserProgressRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserProgress, error)
	Put(ctx context.Context, progress domain.UserProgress) error
	ListAll(ctx context.Context) ([]domain.UserProgress, error)
	Delete(ctx context.Context, userID string) error
}

type memoryUserProgressRepositoryHandler struct {
	store *memoryStore[domain.UserProgress]
}

func NewMemoryUserProgressRepository() UserProgressRepository {
	return memoryUserProgressRepositoryHandler{
		store: newMemoryStore(func(p domain.UserProgress) domain.UserProgress {
			return *p.DeepCopy()
		}),
	}
}

func (h memoryUserProgressRepositoryHandler) Get(ctx context.Context, userID string) (*domain.UserProgress, error) {
	p, ok := h.store.get(userID)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (h memoryUserProgressRepositoryHandler) Put(ctx context.Context, progress domain.UserProgress) error {
	h.store.put(progress.UserID, progress)
	return nil
}

func (h memoryUserProgressRepositoryHandler) ListAll(ctx context.Context) ([]domain.UserProgress, error) {
	return h.store.listAll(), nil
}

func (h memoryUserProgressRepositoryHandler) Delete(ctx context.Context, userID string) error {
	h.store.delete(userID)
	return nil
}

type userProgressRepositoryHandler struct {
	Db *sql.DB
}

func NewUserProgressRepository(db *sql.DB) UserProgressRepository {
	return userProgressRepositoryHandler{
		Db: db,
	}
}

func userProgressFromModel(m model.UserProgress) (*domain.UserProgress, error) {
	completed := []string{}
	if m.CompletedLessons != "" {
		if err := json.Unmarshal([]byte(m.CompletedLessons), &completed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal completed lessons for %s: %w", m.UserID, err)
		}
	}
	return &domain.UserProgress{
		UserID:           m.UserID,
		Level:            m.Level,
		CompletedLessons: completed,
		XP:               int(m.Xp),
		Rank:             m.Rank,
		CreatedAt:        m.CreatedAt,
		ModifiedAt:       m.UpdatedAt,
	}, nil
}

func (h userProgressRepositoryHandler) Get(ctx context.Context, userID string) (*domain.UserProgress, error) {
	t := table.UserProgress
	query := t.SELECT(t.AllColumns).
		WHERE(t.UserID.EQ(postgres.String(userID)))

	out := model.UserProgress{}
	err := query.QueryContext(ctx, h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, domain.WrapError(domain.KindStorageUnavailable, err, "failed to get progress")
	}

	return userProgressFromModel(out)
}

func (h userProgressRepositoryHandler) Put(ctx context.Context, progress domain.UserProgress) error {
	completed := progress.CompletedLessons
	if completed == nil {
		completed = []string{}
	}
	completedJson, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("failed to marshal completed lessons: %w", err)
	}

	t := table.UserProgress
	query := t.INSERT(t.AllColumns).
		MODEL(model.UserProgress{
			UserID:           progress.UserID,
			Level:            progress.Level,
			CompletedLessons: string(completedJson),
			Xp:               int32(progress.XP),
			Rank:             progress.Rank,
			CreatedAt:        progress.CreatedAt.UTC(),
			UpdatedAt:        progress.ModifiedAt.UTC(),
		}).
		ON_CONFLICT(t.UserID).
		DO_UPDATE(
			postgres.SET(
				t.Level.SET(t.EXCLUDED.Level),
				t.CompletedLessons.SET(t.EXCLUDED.CompletedLessons),
				t.Xp.SET(t.EXCLUDED.Xp),
				t.Rank.SET(t.EXCLUDED.Rank),
				t.UpdatedAt.SET(t.EXCLUDED.UpdatedAt),
			),
		)

	_, err = query.ExecContext(ctx, h.Db)
	if err != nil {
		return domain.WrapError(domain.KindStorageUnavailable, err, "failed to save progress")
	}

	return nil
}

func (h userProgressRepositoryHandler) ListAll(ctx context.Context) ([]domain.UserProgress, error) {
	t := table.UserProgress
	query := t.SELECT(t.AllColumns).
		ORDER_BY(t.UserID.ASC())

	result := []model.UserProgress{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, domain.WrapError(domain.KindStorageUnavailable, err, "failed to list progress")
	}

	out := []domain.UserProgress{}
	for _, m := range result {
		p, err := userProgressFromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, nil
}

func (h userProgressRepositoryHandler) Delete(ctx context.Context, userID string) error {
	t := table.UserProgress
	query := t.DELETE().
		WHERE(t.UserID.EQ(postgres.String(userID)))

	_, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return domain.WrapError(domain.KindStorageUnavailable, err, "failed to delete progress")
	}

	return nil
}
