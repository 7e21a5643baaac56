package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/response"
)

type UserConfigHandler struct {
	config *services.ConfigService
}

func NewUserConfigHandler(config *services.ConfigService) *UserConfigHandler {
	return &UserConfigHandler{config: config}
}

func (h *UserConfigHandler) Get(c *gin.Context) {
	response.Success(c, h.config.GetUser(sessionFrom(c)))
}

func (h *UserConfigHandler) Update(c *gin.Context) {
	var req services.UserConfigUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session := sessionFrom(c)
	if err := h.config.UpdateUser(session, &req); err != nil {
		response.ServerError(c, "update applied but not persisted: "+err.Error())
		return
	}
	response.Success(c, h.config.GetUser(session))
}
