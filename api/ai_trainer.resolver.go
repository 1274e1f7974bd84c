package api

import (
	"edustocks/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
)

type generateQuestionRequest struct {
	Level string `json:"level" binding:"required"`
	Topic string `json:"topic" binding:"required"`
}

type generateQuestionResponse struct {
	QuestionID  string    `json:"questionId"`
	Question    string    `json:"question"`
	Options     []string  `json:"options"`
	Level       string    `json:"level"`
	Topic       string    `json:"topic"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func (m ApiHandler) generateQuestion(c *gin.Context) {
	var req generateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJson(domain.WrapError(domain.KindInvalidInput, err, "level and topic are required"), c)
		return
	}

	q, err := m.TutorService.GenerateQuestion(c.Request.Context(), req.Level, req.Topic)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	text := q.Text
	if text == "" {
		text = q.RawText
	}
	options := q.Options
	if options == nil {
		options = []string{}
	}
	c.JSON(200, generateQuestionResponse{
		QuestionID:  q.QuestionID,
		Question:    text,
		Options:     options,
		Level:       q.Level,
		Topic:       q.Topic,
		GeneratedAt: q.GeneratedAt,
	})
}

type checkAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     *int   `json:"answer" binding:"required"`
}

type checkAnswerResponse struct {
	QuestionID  string    `json:"questionId"`
	UserAnswer  int       `json:"userAnswer"`
	IsCorrect   bool      `json:"isCorrect"`
	Explanation string    `json:"explanation"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

func (m ApiHandler) checkAnswer(c *gin.Context) {
	var req checkAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJson(domain.WrapError(domain.KindInvalidInput, err, "questionId and answer are required"), c)
		return
	}

	evaluation, err := m.TutorService.CheckAnswer(c.Request.Context(), req.QuestionID, *req.Answer)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, checkAnswerResponse{
		QuestionID:  evaluation.QuestionID,
		UserAnswer:  evaluation.UserAnswer,
		IsCorrect:   evaluation.Correct,
		Explanation: evaluation.Explanation,
		EvaluatedAt: evaluation.EvaluatedAt,
	})
}

type askTutorRequest struct {
	Query string `json:"query" binding:"required"`
	Level string `json:"level"`
}

type askTutorResponse struct {
	Success     bool      `json:"success"`
	Response    string    `json:"response"`
	Level       string    `json:"level"`
	RespondedAt time.Time `json:"respondedAt"`
}

func (m ApiHandler) askTutor(c *gin.Context) {
	var req askTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJson(domain.WrapError(domain.KindInvalidInput, err, "query is required"), c)
		return
	}

	reply, err := m.TutorService.Ask(c.Request.Context(), req.Query, req.Level)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, askTutorResponse{
		Success:     true,
		Response:    reply.Response,
		Level:       reply.Level,
		RespondedAt: reply.RespondedAt,
	})
}
