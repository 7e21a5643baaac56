package main

import (
	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/handlers"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/middleware"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

func registerRoutes(r *gin.Engine, configService *services.ConfigService, validator *services.Validator, backupService *services.BackupService) {
	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(50, 100))

	healthHandler := handlers.NewHealthHandler(configService, validator)
	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	api.Use(middleware.AuditLog())
	{
		globalHandler := handlers.NewGlobalConfigHandler(configService)
		api.GET("/config/global", globalHandler.Get)
		api.PUT("/config/global", globalHandler.Update)
		api.POST("/config/global/reset", globalHandler.Reset)

		projectHandler := handlers.NewProjectHandler(configService)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.GetByID)
		api.POST("/projects", projectHandler.Create)
		api.PUT("/projects/:id", projectHandler.Update)
		api.DELETE("/projects/:id", projectHandler.Delete)
		api.GET("/projects/:id/resolve", projectHandler.Resolve)

		userHandler := handlers.NewUserConfigHandler(configService)
		api.GET("/config/user", userHandler.Get)
		api.PUT("/config/user", userHandler.Update)

		validationHandler := handlers.NewValidationHandler(configService, validator)
		api.GET("/validation", validationHandler.ValidateAll)
		api.GET("/validation/projects/:id", validationHandler.ValidateProject)

		backupHandler := handlers.NewBackupHandler(backupService)
		api.GET("/backups", backupHandler.List)
		api.POST("/backups", backupHandler.Create)
		api.POST("/backups/cleanup", backupHandler.Cleanup)
		api.POST("/backups/:key/restore", backupHandler.Restore)
		api.DELETE("/backups/:key", backupHandler.Delete)
		api.GET("/backups/export", backupHandler.Export)
		api.POST("/backups/import", backupHandler.Import)
	}
}
