package l2_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/logger"
	"edustocks/internal/repository"
	l1_service "edustocks/internal/service/l1"
	"edustocks/internal/util"
	"fmt"
	"math"
	"time"

	"github.com/maja42/goval"
)

type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	CompleteLesson(ctx context.Context, userID, lessonID string, score float64) (*domain.UserProgress, error)
}

type progressServiceHandler struct {
	UserProgressRepository repository.UserProgressRepository
	LessonService          l1_service.LessonService
	XpFormula              string
	Now                    func() time.Time
	locks                  *util.KeyedMutex
}

// NewProgressService fails when xpFormula does not evaluate to a number for
// a perfect score.
func NewProgressService(
	userProgressRepository repository.UserProgressRepository,
	lessonService l1_service.LessonService,
	xpFormula string,
) (ProgressService, error) {
	if _, err := evaluateXpFormula(xpFormula, 100); err != nil {
		return nil, domain.WrapError(domain.KindConfiguration, err, "invalid xp formula %q", xpFormula)
	}
	return progressServiceHandler{
		UserProgressRepository: userProgressRepository,
		LessonService:          lessonService,
		XpFormula:              xpFormula,
		Now:                    time.Now,
		locks:                  util.NewKeyedMutex(),
	}, nil
}

func xpFunctions() map[string]goval.ExpressionFunction {
	toFloat := func(v interface{}) (float64, error) {
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case float64:
			return n, nil
		}
		return 0, fmt.Errorf("expected number, got %T", v)
	}
	floats := func(name string, want int, args []interface{}) ([]float64, error) {
		if len(args) != want {
			return nil, fmt.Errorf("%s needs %d args, got %d", name, want, len(args))
		}
		out := make([]float64, 0, len(args))
		for _, arg := range args {
			f, err := toFloat(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out = append(out, f)
		}
		return out, nil
	}

	return map[string]goval.ExpressionFunction{
		// min(a, b)
		"min": func(args ...interface{}) (interface{}, error) {
			f, err := floats("min", 2, args)
			if err != nil {
				return 0, err
			}
			return math.Min(f[0], f[1]), nil
		},
		// max(a, b)
		"max": func(args ...interface{}) (interface{}, error) {
			f, err := floats("max", 2, args)
			if err != nil {
				return 0, err
			}
			return math.Max(f[0], f[1]), nil
		},
		"round": func(args ...interface{}) (interface{}, error) {
			f, err := floats("round", 1, args)
			if err != nil {
				return 0, err
			}
			return math.Round(f[0]), nil
		},
	}
}

// evaluateXpFormula returns the xp earned for score, truncated and never
// negative.
func evaluateXpFormula(formula string, score float64) (int, error) {
	eval := goval.NewEvaluator()
	variables := map[string]interface{}{
		"score": score,
	}
	result, err := eval.Evaluate(formula, variables, xpFunctions())
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate xp formula: %w", err)
	}

	var xp float64
	switch r := result.(type) {
	case int:
		xp = float64(r)
	case float64:
		xp = r
	default:
		return 0, fmt.Errorf("xp formula returned %T, expected number", result)
	}
	if math.IsNaN(xp) || math.IsInf(xp, 0) {
		return 0, fmt.Errorf("xp formula returned %v", xp)
	}
	if xp < 0 {
		return 0, nil
	}
	return int(xp), nil
}

func (h progressServiceHandler) load(ctx context.Context, userID string) (*domain.UserProgress, bool, error) {
	p, err := h.UserProgressRepository.Get(ctx, userID)
	if err != nil {
		return nil, false, domain.WrapError(domain.KindStorageUnavailable, err, "failed to load progress")
	}
	if p != nil {
		return p, true, nil
	}
	p = domain.NewUserProgress(userID)
	p.CreatedAt = h.Now().UTC()
	p.ModifiedAt = p.CreatedAt
	return p, false, nil
}

func (h progressServiceHandler) save(ctx context.Context, p *domain.UserProgress) error {
	if err := h.UserProgressRepository.Put(ctx, *p); err != nil {
		return domain.WrapError(domain.KindStorageUnavailable, err, "failed to save progress")
	}
	return nil
}

// GetProgress creates the default record on first access.
func (h progressServiceHandler) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
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
	return p, nil
}

// CompleteLesson awards xp once per lesson. Completing a lesson again
// returns the current progress unchanged.
func (h progressServiceHandler) CompleteLesson(ctx context.Context, userID, lessonID string, score float64) (*domain.UserProgress, error) {
	userID, err := validateUser(userID)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, domain.NewError(domain.KindInvalidInput, "score must be between 0 and 100, got %v", score)
	}
	lesson, err := h.LessonService.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(userID)
	defer unlock()

	p, _, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.HasCompleted(lesson.ID) {
		return p, nil
	}

	xp, err := evaluateXpFormula(h.XpFormula, score)
	if err != nil {
		return nil, err
	}
	p.CompletedLessons = append(p.CompletedLessons, lesson.ID)
	p.AwardXP(xp)
	p.ModifiedAt = h.Now().UTC()

	if err := h.save(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infof("%s completed %s with score %v, +%d xp", userID, lesson.ID, score, xp)
	return p, nil
}
