package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/response"
)

// maxImportSize bounds uploaded backup files (8 MiB).
const maxImportSize = 8 << 20

type BackupHandler struct {
	backups *services.BackupService
}

func NewBackupHandler(backups *services.BackupService) *BackupHandler {
	return &BackupHandler{backups: backups}
}

func (h *BackupHandler) List(c *gin.Context) {
	response.Success(c, h.backups.ListBackups())
}

type createBackupRequest struct {
	Description string `json:"description"`
}

func (h *BackupHandler) Create(c *gin.Context) {
	var req createBackupRequest
	// Body is optional; a bare POST creates an undescribed backup.
	_ = c.ShouldBindJSON(&req)

	key, err := h.backups.CreateBackup(req.Description, sessionFrom(c).OperatorID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, gin.H{"key": key})
}

func (h *BackupHandler) Restore(c *gin.Context) {
	result := h.backups.RestoreFromBackup(c.Param("key"))
	if !result.Success {
		response.BadRequest(c, result.Message)
		return
	}
	response.Success(c, result)
}

func (h *BackupHandler) Delete(c *gin.Context) {
	deleted, err := h.backups.DeleteBackup(c.Param("key"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !deleted {
		response.NotFound(c, "backup not found")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

type cleanupRequest struct {
	KeepCount int `json:"keepCount" binding:"required"`
}

func (h *BackupHandler) Cleanup(c *gin.Context) {
	var req cleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deleted, err := h.backups.CleanupOldBackups(req.KeepCount)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"deletedCount": deleted})
}

// Export streams the snapshot as a downloadable JSON file; nothing is
// persisted server side.
func (h *BackupHandler) Export(c *gin.Context) {
	data, filename, err := h.backups.Export(c.Query("description"), sessionFrom(c).OperatorID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import accepts a previously exported backup file as the raw request
// body and applies it after re-validation.
func (h *BackupHandler) Import(c *gin.Context) {
	contents, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		response.BadRequest(c, "reading upload failed: "+err.Error())
		return
	}
	result := h.backups.ImportFromFile(contents)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	response.Success(c, result)
}
