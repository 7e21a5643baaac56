package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/response"
)

type ProjectHandler struct {
	config *services.ConfigService
}

func NewProjectHandler(config *services.ConfigService) *ProjectHandler {
	return &ProjectHandler{config: config}
}

func (h *ProjectHandler) List(c *gin.Context) {
	response.Success(c, h.config.ListProjects())
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	project := h.config.GetProject(c.Param("id"))
	if project == nil {
		response.NotFound(c, "project not found")
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var cfg models.ProjectConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if cfg.ID == "" {
		response.BadRequest(c, "id is required")
		return
	}
	if h.config.GetProject(cfg.ID) != nil {
		response.Error(c, response.NewConflict("project "+cfg.ID+" already exists"))
		return
	}
	if err := h.config.SetProject(&cfg); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, h.config.GetProject(cfg.ID))
}

// Update replaces the whole record under the path id.
func (h *ProjectHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if h.config.GetProject(id) == nil {
		response.NotFound(c, "project not found")
		return
	}
	var cfg models.ProjectConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cfg.ID = id
	if err := h.config.SetProject(&cfg); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, h.config.GetProject(id))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	deleted, err := h.config.DeleteProject(c.Param("id"))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !deleted {
		response.NotFound(c, "project not found")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// Resolve returns the effective value at a dotted path, falling back
// to the Global default when the project does not set one.
func (h *ProjectHandler) Resolve(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.BadRequest(c, "path query parameter is required")
		return
	}
	value := h.config.Resolve(c.Param("id"), path)
	response.Success(c, gin.H{"path": path, "value": value})
}
