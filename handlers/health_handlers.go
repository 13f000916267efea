package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/sheet_url_checker/models"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheckHandler godoc
// @Summary      Health Check
// @Description  Checks the health of the API.
// @Tags         Monitoring
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /api/v1/health [get]
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "UP"})
}
