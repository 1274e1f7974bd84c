package domain

import (
	"strings"
	"time"
)

type Lesson struct {
	ID          string
	Title       string
	Description string
	Level       string
	Content     string
	Questions   []Question
	Order       int
}

type Question struct {
	ID            string
	Text          string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

func levelRank(level string) int {
	switch strings.ToLower(level) {
	case LevelBeginner:
		return 0
	case LevelIntermediate:
		return 1
	case LevelAdvanced:
		return 2
	default:
		return 3
	}
}

// LessonLess orders lessons by level, then by their order within a level.
func LessonLess(a, b Lesson) bool {
	if levelRank(a.Level) != levelRank(b.Level) {
		return levelRank(a.Level) < levelRank(b.Level)
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.ID < b.ID
}

// TutorQuestion is a generated quiz question. RawText is the model output
// as returned; Text and Options are filled when it could be parsed.
type TutorQuestion struct {
	QuestionID  string
	RawText     string
	Text        string
	Options     []string
	Level       string
	Topic       string
	GeneratedAt time.Time
}

type AnswerEvaluation struct {
	QuestionID  string
	UserAnswer  int
	Correct     bool
	Explanation string
	EvaluatedAt time.Time
}

type TutorReply struct {
	Response    string
	Level       string
	RespondedAt time.Time
}
