package api

import (
	"edustocks/internal/domain"

	"github.com/gin-gonic/gin"
)

type progressResponse struct {
	UserID           string   `json:"userId"`
	Level            string   `json:"level"`
	CompletedLessons []string `json:"completedLessons"`
	XP               int      `json:"xp"`
	Rank             string   `json:"rank"`
}

func progressResponseFromDomain(p domain.UserProgress) progressResponse {
	completed := p.CompletedLessons
	if completed == nil {
		completed = []string{}
	}
	return progressResponse{
		UserID:           p.UserID,
		Level:            p.Level,
		CompletedLessons: completed,
		XP:               p.XP,
		Rank:             p.Rank,
	}
}

func (m ApiHandler) getProgress(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	progress, err := m.ProgressService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, progressResponseFromDomain(*progress))
}
