package l2_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/repository"
	mock_repository "edustocks/internal/repository/mocks"
	l1_service "edustocks/internal/service/l1"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestProgressService(t *testing.T, repo repository.UserProgressRepository, formula string) progressServiceHandler {
	lessonRepository, err := repository.NewLessonRepository()
	require.NoError(t, err)
	service, err := NewProgressService(repo, l1_service.NewLessonService(lessonRepository), formula)
	require.NoError(t, err)
	handler := service.(progressServiceHandler)
	handler.Now = func() time.Time {
		return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	}
	return handler
}

func Test_evaluateXpFormula(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		score    float64
		expected int
		wantErr  bool
	}{
		{name: "default formula", formula: "score / 10", score: 85, expected: 8},
		{name: "perfect score", formula: "score / 10", score: 100, expected: 10},
		{name: "integer result", formula: "50", score: 10, expected: 50},
		{name: "functions", formula: "max(10, round(score * 1.5))", score: 3, expected: 10},
		{name: "min caps", formula: "min(score * 100, 500)", score: 90, expected: 500},
		{name: "negative clamps to zero", formula: "score - 50", score: 20, expected: 0},
		{name: "string result", formula: `"xp"`, score: 10, wantErr: true},
		{name: "bad syntax", formula: "score /", score: 10, wantErr: true},
		{name: "wrong arity", formula: "min(score)", score: 10, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, err := evaluateXpFormula(tt.formula, tt.score)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, xp)
		})
	}
}

func TestNewProgressService_invalidFormula(t *testing.T) {
	lessonRepository, err := repository.NewLessonRepository()
	require.NoError(t, err)

	_, err = NewProgressService(repository.NewMemoryUserProgressRepository(), l1_service.NewLessonService(lessonRepository), "unknown(score)")
	require.True(t, domain.IsKind(err, domain.KindConfiguration))
}

func TestProgressService_CompleteLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("awards xp once", func(t *testing.T) {
		repo := repository.NewMemoryUserProgressRepository()
		service := newTestProgressService(t, repo, "score / 10")

		p, err := service.GetProgress(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, domain.LevelBeginner, p.Level)
		require.Equal(t, "Novice", p.Rank)
		require.Empty(t, p.CompletedLessons)

		p, err = service.CompleteLesson(ctx, "u1", "lesson-1", 90)
		require.NoError(t, err)
		require.Equal(t, 9, p.XP)
		require.Equal(t, []string{"lesson-1"}, p.CompletedLessons)

		p, err = service.CompleteLesson(ctx, "u1", "lesson-1", 100)
		require.NoError(t, err)
		require.Equal(t, 9, p.XP)
		require.Equal(t, []string{"lesson-1"}, p.CompletedLessons)

		stored, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, 9, stored.XP)
	})

	t.Run("level and rank follow xp", func(t *testing.T) {
		service := newTestProgressService(t, repository.NewMemoryUserProgressRepository(), "score * 25")

		p, err := service.CompleteLesson(ctx, "u1", "lesson-1", 100)
		require.NoError(t, err)
		require.Equal(t, 2500, p.XP)
		require.Equal(t, domain.LevelIntermediate, p.Level)
		require.Equal(t, "Expert", p.Rank)

		p, err = service.CompleteLesson(ctx, "u1", "lesson-2", 100)
		require.NoError(t, err)
		require.Equal(t, 5000, p.XP)
		require.Equal(t, domain.LevelAdvanced, p.Level)
		require.Equal(t, "Master", p.Rank)
	})

	t.Run("rejections", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockUserProgressRepository(ctrl)
		service := newTestProgressService(t, repo, "score / 10")
		// no repository calls expected

		_, err := service.CompleteLesson(ctx, "u1", "lesson-1", 101)
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
		_, err = service.CompleteLesson(ctx, "u1", "lesson-1", -1)
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
		_, err = service.CompleteLesson(ctx, "u1", "lesson-99", 50)
		require.True(t, domain.IsKind(err, domain.KindLessonNotFound))
		_, err = service.CompleteLesson(ctx, "", "lesson-1", 50)
		require.True(t, domain.IsKind(err, domain.KindUnauthenticated))
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockUserProgressRepository(ctrl)
		service := newTestProgressService(t, repo, "score / 10")

		repo.EXPECT().Get(gomock.Any(), "u1").Return(nil, errors.New("connection refused"))

		_, err := service.GetProgress(ctx, "u1")
		require.True(t, domain.IsKind(err, domain.KindStorageUnavailable))
	})

	t.Run("concurrent completions", func(t *testing.T) {
		repo := repository.NewMemoryUserProgressRepository()
		service := newTestProgressService(t, repo, "100")

		lessons := []string{"lesson-1", "lesson-2", "lesson-3", "lesson-4", "lesson-5", "lesson-6"}
		errs := make(chan error, len(lessons)*2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			for _, lessonID := range lessons {
				wg.Add(1)
				go func(lessonID string) {
					defer wg.Done()
					_, err := service.CompleteLesson(ctx, "u1", lessonID, 80)
					errs <- err
				}(lessonID)
			}
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		p, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, 600, p.XP)
		require.ElementsMatch(t, lessons, p.CompletedLessons)
		require.Equal(t, "Intermediate", p.Rank)
	})
}
