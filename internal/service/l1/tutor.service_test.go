package l1_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/repository"
	mock_repository "edustocks/internal/repository/mocks"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTutor(t *testing.T) (*mock_repository.MockTextGenerationRepository, TutorService) {
	ctrl := gomock.NewController(t)
	gen := mock_repository.NewMockTextGenerationRepository(ctrl)
	return gen, NewTutorService(gen, repository.NewMemoryTutorQuestionRepository())
}

func TestTutorService_GenerateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("parses formatted output", func(t *testing.T) {
		gen, service := newTestTutor(t)
		gen.EXPECT().
			Complete(gomock.Any(), tutorSystemPrompt, gomock.Any()).
			DoAndReturn(func(ctx context.Context, system, prompt string) (string, error) {
				require.Contains(t, prompt, "beginner-level")
				require.Contains(t, prompt, "dividends")
				return "QUESTION: What is a dividend? OPTIONS: [A) A payout to shareholders B) A loan C) A tax D) A fee] ANSWER: A", nil
			})

		q, err := service.GenerateQuestion(ctx, "beginner", "dividends")
		require.NoError(t, err)
		require.NotEmpty(t, q.QuestionID)
		require.Equal(t, "What is a dividend?", q.Text)
		require.Equal(t, []string{"A payout to shareholders", "A loan", "A tax", "A fee"}, q.Options)
	})

	t.Run("unparsed output is passed through", func(t *testing.T) {
		gen, service := newTestTutor(t)
		gen.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("Here is a question for you.", nil)

		q, err := service.GenerateQuestion(ctx, "beginner", "etfs")
		require.NoError(t, err)
		require.Equal(t, "Here is a question for you.", q.Text)
		require.Empty(t, q.Options)
	})

	t.Run("blank input", func(t *testing.T) {
		_, service := newTestTutor(t)
		_, err := service.GenerateQuestion(ctx, "", "etfs")
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
		_, err = service.GenerateQuestion(ctx, "beginner", " ")
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})

	t.Run("provider failure", func(t *testing.T) {
		gen, service := newTestTutor(t)
		gen.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("503"))

		_, err := service.GenerateQuestion(ctx, "beginner", "etfs")
		require.True(t, domain.IsKind(err, domain.KindUpstreamUnavailable))
	})
}

func TestTutorService_CheckAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("known question sends its text", func(t *testing.T) {
		gen, service := newTestTutor(t)
		gen.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("QUESTION: Q? OPTIONS: A) a B) b C) c D) d ANSWER: B", nil)
		q, err := service.GenerateQuestion(ctx, "beginner", "bonds")
		require.NoError(t, err)

		gen.EXPECT().
			Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, system, prompt string) (string, error) {
				require.True(t, strings.HasPrefix(prompt, "Question:\nQUESTION: Q?"))
				require.Contains(t, prompt, "answer 'B'")
				return "CORRECT\nB is right because it is.", nil
			})

		eval, err := service.CheckAnswer(ctx, q.QuestionID, 1)
		require.NoError(t, err)
		require.True(t, eval.Correct)
		require.Equal(t, "B is right because it is.", eval.Explanation)
	})

	t.Run("unknown question uses the id", func(t *testing.T) {
		gen, service := newTestTutor(t)
		gen.EXPECT().
			Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, system, prompt string) (string, error) {
				require.Contains(t, prompt, "question ID abc")
				return "INCORRECT", nil
			})

		eval, err := service.CheckAnswer(ctx, "abc", 3)
		require.NoError(t, err)
		require.False(t, eval.Correct)
		require.Equal(t, "INCORRECT", eval.Explanation)
	})

	t.Run("answer out of range", func(t *testing.T) {
		_, service := newTestTutor(t)
		_, err := service.CheckAnswer(ctx, "abc", 4)
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
		_, err = service.CheckAnswer(ctx, "", 0)
		require.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})
}

func TestTutorService_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults level", func(t *testing.T) {
		gen, service := newTestTutor(t)
		gen.EXPECT().
			Complete(gomock.Any(), tutorSystemPrompt, "As a beginner-level tutor, answer the following query:\nwhat is a stock?").
			Return(" A share of a company. ", nil)

		reply, err := service.Ask(ctx, "what is a stock?", "")
		require.NoError(t, err)
		require.Equal(t, "A share of a company.", reply.Response)
		require.Equal(t, domain.LevelBeginner, reply.Level)
	})

	t.Run("not configured", func(t *testing.T) {
		service := NewTutorService(nil, repository.NewMemoryTutorQuestionRepository())
		_, err := service.Ask(ctx, "hi", "beginner")
		require.True(t, domain.IsKind(err, domain.KindConfiguration))
	})
}
