package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"belissimo/models"
	"belissimo/services/booking"
	ai "belissimo/services/intelligence"
	"belissimo/utils"
)

// AIService is wired in main before the router starts serving.
var AIService ai.AIService

// RespondToMessage handles POST /api/ai/respond (and its /api/ai/message alias).
func RespondToMessage(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := AIService.HandleMessage(c.Request.Context(), req)
	if err != nil {
		if booking.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("conversation turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
