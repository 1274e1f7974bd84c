package api

import (
	"github.com/gin-gonic/gin"
)

type verifyUserResponse struct {
	Success  bool             `json:"success"`
	UserID   string           `json:"userId"`
	Email    string           `json:"email"`
	Balance  float64          `json:"balance"`
	Progress progressResponse `json:"progress"`
}

func (m ApiHandler) verifyUser(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	email := c.GetString("userEmail")

	overview, err := m.UserService.InitializeUser(c.Request.Context(), userID, email)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, verifyUserResponse{
		Success:  true,
		UserID:   overview.UserID,
		Email:    overview.Email,
		Balance:  overview.Portfolio.Balance.InexactFloat64(),
		Progress: progressResponseFromDomain(overview.Progress),
	})
}
