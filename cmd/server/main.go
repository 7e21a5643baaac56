package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/config"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/kvstore"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/services"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	store, err := openStore(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}

	configService := services.NewConfigService(store)
	validator := services.NewValidator()
	backupService := services.NewBackupService(store, configService, validator)

	// One-shot schema migration and default backfill, before the API
	// starts serving.
	services.NewMigrationService(store, configService).Run()

	if cfg.Backup.AutoEnabled {
		scheduler := services.NewBackupScheduler(backupService, cfg.Backup.KeepCount)
		if err := scheduler.Start(cfg.Backup.Hour, cfg.Backup.Minute); err != nil {
			logger.Warn().Err(err).Msg("automatic backups disabled")
		}
		defer scheduler.Stop()
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	registerRoutes(r, configService, validator, backupService)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info().Str("addr", addr).Msg("eva-config listening")
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server exited: %v", err)
	}
}

func openStore(cfg *config.DatabaseConfig) (kvstore.Store, error) {
	if cfg.Driver == "memory" {
		return kvstore.NewMemoryStore(), nil
	}
	db, err := models.InitDB(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}
	return kvstore.NewGormStore(db), nil
}
