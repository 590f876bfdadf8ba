package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	serviceRepo "belissimo/database/repository/service"
	"belissimo/utils"
)

// ServiceRepo is wired in main before the router starts serving.
var ServiceRepo serviceRepo.ServiceRepository

// ListServices handles GET /api/services.
func ListServices(c *gin.Context) {
	services, err := ServiceRepo.GetAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("failed to load service catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
