package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/response"
)

type GlobalConfigHandler struct {
	config *services.ConfigService
}

func NewGlobalConfigHandler(config *services.ConfigService) *GlobalConfigHandler {
	return &GlobalConfigHandler{config: config}
}

func (h *GlobalConfigHandler) Get(c *gin.Context) {
	response.Success(c, h.config.GetGlobal())
}

func (h *GlobalConfigHandler) Update(c *gin.Context) {
	var req services.GlobalConfigUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.config.UpdateGlobal(&req); err != nil {
		// The in-memory update is applied; only persistence failed.
		response.ServerError(c, "update applied but not persisted: "+err.Error())
		return
	}
	response.Success(c, h.config.GetGlobal())
}

func (h *GlobalConfigHandler) Reset(c *gin.Context) {
	if err := h.config.ResetGlobal(); err != nil {
		response.ServerError(c, "reset applied but not persisted: "+err.Error())
		return
	}
	response.Success(c, h.config.GetGlobal())
}
