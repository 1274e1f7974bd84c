package repository

import (
	"context"
	"edustocks/internal/domain"
)

// TutorQuestionRepository remembers generated questions so answers can be
// checked against the question text.
type TutorQuestionRepository interface {
	Get(ctx context.Context, questionID string) (*domain.TutorQuestion, error)
	Put(ctx context.Context, question domain.TutorQuestion) error
}

type memoryTutorQuestionRepositoryHandler struct {
	store *memoryStore[domain.TutorQuestion]
}

func NewMemoryTutorQuestionRepository() TutorQuestionRepository {
	return memoryTutorQuestionRepositoryHandler{
		store: newMemoryStore(func(q domain.TutorQuestion) domain.TutorQuestion {
			q.Options = append([]string{}, q.Options...)
			return q
		}),
	}
}

func (h memoryTutorQuestionRepositoryHandler) Get(ctx context.Context, questionID string) (*domain.TutorQuestion, error) {
	q, ok := h.store.get(questionID)
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (h memoryTutorQuestionRepositoryHandler) Put(ctx context.Context, question domain.TutorQuestion) error {
	h.store.put(question.QuestionID, question)
	return nil
}
