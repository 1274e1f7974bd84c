package repository

import (
	_ "embed"
	"edustocks/internal/domain"
	"fmt"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed catalog/lessons.csv
var lessonsCsv []byte

//go:embed catalog/questions.csv
var questionsCsv []byte

// LessonRepository serves the read-only lesson catalog.
type LessonRepository interface {
	List(level string) ([]domain.Lesson, error)
	Get(lessonID string) (*domain.Lesson, error)
}

type lessonRow struct {
	ID          string `csv:"id"`
	Title       string `csv:"title"`
	Description string `csv:"description"`
	Level       string `csv:"level"`
	Order       int    `csv:"order"`
	Content     string `csv:"content"`
}

type questionRow struct {
	LessonID      string `csv:"lesson_id"`
	ID            string `csv:"id"`
	Text          string `csv:"text"`
	Options       string `csv:"options"`
	CorrectAnswer int    `csv:"correct_answer"`
	Explanation   string `csv:"explanation"`
}

type lessonRepositoryHandler struct {
	lessons []domain.Lesson
}

func NewLessonRepository() (LessonRepository, error) {
	lessons, err := parseLessonCatalog(lessonsCsv, questionsCsv)
	if err != nil {
		return nil, err
	}
	return lessonRepositoryHandler{
		lessons: lessons,
	}, nil
}

func parseLessonCatalog(lessonsData, questionsData []byte) ([]domain.Lesson, error) {
	lessonRows := []lessonRow{}
	if err := gocsv.UnmarshalBytes(lessonsData, &lessonRows); err != nil {
		return nil, fmt.Errorf("failed to parse lessons csv: %w", err)
	}
	questionRows := []questionRow{}
	if err := gocsv.UnmarshalBytes(questionsData, &questionRows); err != nil {
		return nil, fmt.Errorf("failed to parse questions csv: %w", err)
	}

	questionsByLesson := map[string][]domain.Question{}
	for _, q := range questionRows {
		options := strings.Split(q.Options, "|")
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(options) {
			return nil, fmt.Errorf("question %s has answer %d outside its %d options", q.ID, q.CorrectAnswer, len(options))
		}
		questionsByLesson[q.LessonID] = append(questionsByLesson[q.LessonID], domain.Question{
			ID:            q.ID,
			Text:          q.Text,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	lessons := []domain.Lesson{}
	for _, row := range lessonRows {
		questions := questionsByLesson[row.ID]
		if questions == nil {
			questions = []domain.Question{}
		}
		lessons = append(lessons, domain.Lesson{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Level:       strings.ToLower(row.Level),
			Content:     row.Content,
			Questions:   questions,
			Order:       row.Order,
		})
	}
	sort.SliceStable(lessons, func(i, j int) bool {
		return domain.LessonLess(lessons[i], lessons[j])
	})

	return lessons, nil
}

// List returns lessons for level, or every lesson when level is empty.
func (h lessonRepositoryHandler) List(level string) ([]domain.Lesson, error) {
	out := []domain.Lesson{}
	for _, l := range h.lessons {
		if level == "" || strings.EqualFold(l.Level, level) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (h lessonRepositoryHandler) Get(lessonID string) (*domain.Lesson, error) {
	for _, l := range h.lessons {
		if l.ID == lessonID {
			lesson := l
			return &lesson, nil
		}
	}
	return nil, nil
}
