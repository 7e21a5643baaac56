package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/response"
)

type ValidationHandler struct {
	config    *services.ConfigService
	validator *services.Validator
}

func NewValidationHandler(config *services.ConfigService, validator *services.Validator) *ValidationHandler {
	return &ValidationHandler{config: config, validator: validator}
}

// ValidateAll runs the full dashboard validation over the Global
// record and every project.
func (h *ValidationHandler) ValidateAll(c *gin.Context) {
	summary := h.validator.ValidateAll(h.config.GetGlobal(), h.config.ListProjects())
	response.Success(c, summary)
}

// ValidateProject validates a single stored project.
func (h *ValidationHandler) ValidateProject(c *gin.Context) {
	project := h.config.GetProject(c.Param("id"))
	if project == nil {
		response.NotFound(c, "project not found")
		return
	}
	response.Success(c, h.validator.ValidateProject(project))
}
