package repository

import (
	"edustocks/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLessonRepository(t *testing.T) {
	repo, err := NewLessonRepository()
	require.NoError(t, err)

	t.Run("all lessons ordered by level", func(t *testing.T) {
		lessons, err := repo.List("")
		require.NoError(t, err)
		require.Len(t, lessons, 9)

		ids := []string{}
		for _, l := range lessons {
			ids = append(ids, l.ID)
			require.Len(t, l.Questions, 1)
		}
		require.Equal(t, []string{
			"lesson-1", "lesson-2", "lesson-3",
			"lesson-4", "lesson-5", "lesson-6",
			"lesson-7", "lesson-8", "lesson-9",
		}, ids)
	})

	t.Run("filter by level", func(t *testing.T) {
		lessons, err := repo.List("Intermediate")
		require.NoError(t, err)
		require.Len(t, lessons, 3)
		for _, l := range lessons {
			require.Equal(t, domain.LevelIntermediate, l.Level)
		}
	})

	t.Run("get", func(t *testing.T) {
		lesson, err := repo.Get("lesson-2")
		require.NoError(t, err)
		require.Equal(t, "Reading Stock Prices", lesson.Title)
		require.Equal(t, []string{"$5", "$5%", "5%", "$-5"}, lesson.Questions[0].Options)

		missing, err := repo.Get("lesson-404")
		require.NoError(t, err)
		require.Nil(t, missing)
	})
}

func Test_parseLessonCatalog(t *testing.T) {
	_, err := parseLessonCatalog(
		[]byte("id,title,description,level,order,content\nl1,t,d,beginner,1,c\n"),
		[]byte("lesson_id,id,text,options,correct_answer,explanation\nl1,q,text,a|b,5,e\n"),
	)
	require.Error(t, err)
}
