package api

import (
	"edustocks/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
)

type questionResponse struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type lessonResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Level       string             `json:"level"`
	Content     string             `json:"content"`
	Order       int                `json:"order"`
	Questions   []questionResponse `json:"questions"`
}

func lessonResponseFromDomain(l domain.Lesson) lessonResponse {
	questions := []questionResponse{}
	for _, q := range l.Questions {
		questions = append(questions, questionResponse{
			ID:            q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return lessonResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Level:       l.Level,
		Content:     l.Content,
		Order:       l.Order,
		Questions:   questions,
	}
}

type listLessonsRequest struct {
	Level string `form:"level"`
}

func (m ApiHandler) listLessons(c *gin.Context) {
	var req listLessonsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		returnErrorJson(domain.WrapError(domain.KindInvalidInput, err, "invalid query"), c)
		return
	}

	lessons, err := m.LessonService.ListLessons(req.Level)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []lessonResponse{}
	for _, l := range lessons {
		out = append(out, lessonResponseFromDomain(l))
	}
	c.JSON(200, out)
}

func (m ApiHandler) getLesson(c *gin.Context) {
	lesson, err := m.LessonService.GetLesson(c.Param("id"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, lessonResponseFromDomain(*lesson))
}

type completeLessonRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

type completeLessonResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	LessonID    string           `json:"lessonId"`
	Score       float64          `json:"score"`
	CompletedAt time.Time        `json:"completedAt"`
	Progress    progressResponse `json:"progress"`
}

func (m ApiHandler) completeLesson(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	var req completeLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJson(domain.WrapError(domain.KindInvalidInput, err, "score is required"), c)
		return
	}

	lessonID := c.Param("id")
	progress, err := m.ProgressService.CompleteLesson(c.Request.Context(), userID, lessonID, *req.Score)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, completeLessonResponse{
		Success:     true,
		Message:     "Lesson completed successfully",
		LessonID:    lessonID,
		Score:       *req.Score,
		CompletedAt: progress.ModifiedAt,
		Progress:    progressResponseFromDomain(*progress),
	})
}
