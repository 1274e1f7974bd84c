package l1_service

import (
	"edustocks/internal/domain"
	"edustocks/internal/repository"
	"fmt"
	"strings"
)

type LessonService interface {
	ListLessons(level string) ([]domain.Lesson, error)
	GetLesson(lessonID string) (*domain.Lesson, error)
}

type lessonServiceHandler struct {
	LessonRepository repository.LessonRepository
}

func NewLessonService(lessonRepository repository.LessonRepository) LessonService {
	return lessonServiceHandler{
		LessonRepository: lessonRepository,
	}
}

func IsKnownLevel(level string) bool {
	switch strings.ToLower(level) {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
		return true
	}
	return false
}

// ListLessons returns every lesson when level is empty.
func (h lessonServiceHandler) ListLessons(level string) ([]domain.Lesson, error) {
	level = strings.TrimSpace(level)
	if level != "" && !IsKnownLevel(level) {
		return nil, domain.NewError(domain.KindInvalidInput, "unknown level %q", level)
	}
	lessons, err := h.LessonRepository.List(level)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

func (h lessonServiceHandler) GetLesson(lessonID string) (*domain.Lesson, error) {
	lesson, err := h.LessonRepository.Get(lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson %s: %w", lessonID, err)
	}
	if lesson == nil {
		return nil, domain.NewError(domain.KindLessonNotFound, "lesson %s not found", lessonID)
	}
	return lesson, nil
}
