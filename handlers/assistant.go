package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/assistant"
	"github.com/Kerubo0/Rafiki/utils"
)

// ProcessMessageHandler runs one conversation turn. An empty or expired
// session ID gets a fresh session; the effective ID comes back in the
// response body.
func ProcessMessageHandler(svc assistant.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AssistantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		turn, err := svc.ProcessMessage(c.Request.Context(), req.SessionID, req.Text, req.Language)
		if err != nil {
			utils.GetLogger().Error("failed to process message",
				zap.String("sessionId", req.SessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
			return
		}

		c.JSON(http.StatusOK, turn)
	}
}
