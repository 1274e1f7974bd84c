package l1_service

import (
	"edustocks/internal/domain"
	"edustocks/internal/repository"
	mock_repository "edustocks/internal/repository/mocks"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLessonService(t *testing.T) {
	lessonRepository, err := repository.NewLessonRepository()
	require.NoError(t, err)
	service := NewLessonService(lessonRepository)

	t.Run("list by level", func(t *testing.T) {
		lessons, err := service.ListLessons("advanced")
		require.NoError(t, err)
		require.Len(t, lessons, 3)
		require.Equal(t, "lesson-7", lessons[0].ID)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := service.ListLessons("expert")
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})

	t.Run("missing lesson", func(t *testing.T) {
		_, err := service.GetLesson("nope")
		require.True(t, domain.IsKind(err, domain.KindLessonNotFound))
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockLessonRepository(ctrl)
		repo.EXPECT().Get("lesson-1").Return(nil, errors.New("boom"))

		_, err := NewLessonService(repo).GetLesson("lesson-1")
		require.Error(t, err)
		require.Equal(t, domain.KindInternal, domain.KindOf(err))
	})
}
