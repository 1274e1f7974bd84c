package l1_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/logger"
	"edustocks/internal/repository"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const tutorSystemPrompt = "You are an AI stock learning assistant."

type TutorService interface {
	GenerateQuestion(ctx context.Context, level, topic string) (*domain.TutorQuestion, error)
	CheckAnswer(ctx context.Context, questionID string, answer int) (*domain.AnswerEvaluation, error)
	Ask(ctx context.Context, query, level string) (*domain.TutorReply, error)
}

type tutorServiceHandler struct {
	TextGenerationRepository repository.TextGenerationRepository
	QuestionRepository       repository.TutorQuestionRepository
	Now                      func() time.Time
}

func NewTutorService(textGenerationRepository repository.TextGenerationRepository, questionRepository repository.TutorQuestionRepository) TutorService {
	return tutorServiceHandler{
		TextGenerationRepository: textGenerationRepository,
		QuestionRepository:       questionRepository,
		Now:                      time.Now,
	}
}

func (h tutorServiceHandler) complete(ctx context.Context, prompt string) (string, error) {
	if h.TextGenerationRepository == nil {
		return "", domain.NewError(domain.KindConfiguration, "ai tutor is not configured")
	}
	text, err := h.TextGenerationRepository.Complete(ctx, tutorSystemPrompt, prompt)
	if err != nil {
		return "", domain.WrapError(domain.KindUpstreamUnavailable, err, "ai tutor is unavailable")
	}
	return strings.TrimSpace(text), nil
}

func (h tutorServiceHandler) GenerateQuestion(ctx context.Context, level, topic string) (*domain.TutorQuestion, error) {
	level = strings.TrimSpace(level)
	topic = strings.TrimSpace(topic)
	if level == "" {
		return nil, domain.NewError(domain.KindInvalidInput, "level cannot be blank")
	}
	if topic == "" {
		return nil, domain.NewError(domain.KindInvalidInput, "topic cannot be blank")
	}

	prompt := fmt.Sprintf(
		"Create a %s-level multiple-choice question about %s stock trading. "+
			"Format: QUESTION: [question text] OPTIONS: [A) option1 B) option2 C) option3 D) option4] ANSWER: [A/B/C/D]",
		level, topic,
	)
	text, err := h.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	question := domain.TutorQuestion{
		QuestionID:  uuid.NewString(),
		RawText:     text,
		Text:        text,
		Options:     []string{},
		Level:       level,
		Topic:       topic,
		GeneratedAt: h.Now().UTC(),
	}
	if questionText, options, ok := parseGeneratedQuestion(text); ok {
		question.Text = questionText
		question.Options = options
	}

	if err := h.QuestionRepository.Put(ctx, question); err != nil {
		// the question is still usable; CheckAnswer falls back to the id
		logger.FromContext(ctx).Warnf("failed to store tutor question %s: %s", question.QuestionID, err.Error())
	}

	return &question, nil
}

var (
	questionPattern = regexp.MustCompile(`(?is)QUESTION:\s*(.*?)\s*OPTIONS:\s*(.*?)\s*(?:ANSWER:.*)?$`)
	optionPattern   = regexp.MustCompile(`(?:^|\s)[A-D]\)\s*`)
)

// parseGeneratedQuestion splits model output in the QUESTION/OPTIONS/ANSWER
// format into its text and four options.
func parseGeneratedQuestion(text string) (string, []string, bool) {
	match := questionPattern.FindStringSubmatch(text)
	if match == nil {
		return "", nil, false
	}
	questionText := strings.Trim(strings.TrimSpace(match[1]), "[]")
	rawOptions := strings.Trim(strings.TrimSpace(match[2]), "[]")

	options := []string{}
	for _, o := range optionPattern.Split(rawOptions, -1) {
		o = strings.TrimSpace(o)
		if o != "" {
			options = append(options, o)
		}
	}
	if questionText == "" || len(options) != 4 {
		return "", nil, false
	}
	return strings.TrimSpace(questionText), options, true
}

func (h tutorServiceHandler) CheckAnswer(ctx context.Context, questionID string, answer int) (*domain.AnswerEvaluation, error) {
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return nil, domain.NewError(domain.KindInvalidInput, "question id cannot be blank")
	}
	if answer < 0 || answer > 3 {
		return nil, domain.NewError(domain.KindInvalidInput, "answer must be between 0 and 3 (A-D)")
	}
	letter := string(rune('A' + answer))

	question, err := h.QuestionRepository.Get(ctx, questionID)
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to load tutor question %s: %s", questionID, err.Error())
	}

	var prompt string
	if question != nil {
		prompt = fmt.Sprintf(
			"Question:\n%s\n\nEvaluate if answer '%s' is correct for this question. "+
				"Reply with exactly 'CORRECT' or 'INCORRECT' on first line, then explanation.",
			question.RawText, letter,
		)
	} else {
		prompt = fmt.Sprintf(
			"Evaluate if answer '%s' is correct for question ID %s. "+
				"Reply with exactly 'CORRECT' or 'INCORRECT' on first line, then explanation.",
			letter, questionID,
		)
	}

	evaluation, err := h.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	explanation := evaluation
	if i := strings.Index(evaluation, "\n"); i >= 0 {
		explanation = strings.TrimSpace(evaluation[i+1:])
	}

	return &domain.AnswerEvaluation{
		QuestionID:  questionID,
		UserAnswer:  answer,
		Correct:     strings.HasPrefix(strings.ToLower(evaluation), "correct"),
		Explanation: explanation,
		EvaluatedAt: h.Now().UTC(),
	}, nil
}

func (h tutorServiceHandler) Ask(ctx context.Context, query, level string) (*domain.TutorReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewError(domain.KindInvalidInput, "query cannot be blank")
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = domain.LevelBeginner
	}

	prompt := fmt.Sprintf("As a %s-level tutor, answer the following query:\n%s", level, query)
	response, err := h.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &domain.TutorReply{
		Response:    response,
		Level:       level,
		RespondedAt: h.Now().UTC(),
	}, nil
}
