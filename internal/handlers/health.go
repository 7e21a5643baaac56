package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
)

type HealthHandler struct {
	config    *services.ConfigService
	validator *services.Validator
}

func NewHealthHandler(config *services.ConfigService, validator *services.Validator) *HealthHandler {
	return &HealthHandler{config: config, validator: validator}
}

// Check reports service status plus the current configuration health
// score.
func (h *HealthHandler) Check(c *gin.Context) {
	summary := h.validator.ValidateAll(h.config.GetGlobal(), h.config.ListProjects())
	c.JSON(200, gin.H{
		"status":        "ok",
		"service":       "eva-config",
		"overallHealth": summary.OverallHealth,
		"projects":      len(summary.Projects),
	})
}
