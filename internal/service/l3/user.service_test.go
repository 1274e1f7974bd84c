package l3_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/repository"
	mock_repository "edustocks/internal/repository/mocks"
	l1_service "edustocks/internal/service/l1"
	l2_service "edustocks/internal/service/l2"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserService(t *testing.T, portfolioRepository repository.PortfolioRepository, progressRepository repository.UserProgressRepository) UserService {
	lessonRepository, err := repository.NewLessonRepository()
	require.NoError(t, err)
	progressService, err := l2_service.NewProgressService(progressRepository, l1_service.NewLessonService(lessonRepository), "score / 10")
	require.NoError(t, err)
	ledgerService := l2_service.NewLedgerService(portfolioRepository, l1_service.NewQuoteService(nil))

	return NewUserService(ledgerService, progressService)
}

func TestUserService_InitializeUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates records once", func(t *testing.T) {
		portfolios := repository.NewMemoryPortfolioRepository()
		progress := repository.NewMemoryUserProgressRepository()
		service := newTestUserService(t, portfolios, progress)

		overview, err := service.InitializeUser(ctx, "u1", "u1@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", overview.UserID)
		require.Equal(t, "u1@example.com", overview.Email)
		require.True(t, domain.StartingBalance.Equal(overview.Portfolio.Balance))
		require.Equal(t, domain.LevelBeginner, overview.Progress.Level)

		storedPortfolio, err := portfolios.Get(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, storedPortfolio)
		storedProgress, err := progress.Get(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, storedProgress)

		_, err = service.InitializeUser(ctx, "u1", "u1@example.com")
		require.NoError(t, err)
		all, err := portfolios.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("missing user", func(t *testing.T) {
		service := newTestUserService(t, repository.NewMemoryPortfolioRepository(), repository.NewMemoryUserProgressRepository())
		_, err := service.InitializeUser(ctx, "  ", "")
		require.True(t, domain.IsKind(err, domain.KindUnauthenticated))
	})

	t.Run("storage failure keeps kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		portfolios := mock_repository.NewMockPortfolioRepository(ctrl)
		portfolios.EXPECT().Get(gomock.Any(), "u1").Return(nil, errors.New("timeout"))

		service := newTestUserService(t, portfolios, repository.NewMemoryUserProgressRepository())
		_, err := service.InitializeUser(ctx, "u1", "")
		require.True(t, domain.IsKind(err, domain.KindStorageUnavailable))
	})
}
