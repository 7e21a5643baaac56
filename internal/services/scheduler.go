package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

// BackupScheduler runs the automatic nightly backup and bounded
// retention cleanup.
type BackupScheduler struct {
	backups       *BackupService
	cronScheduler *cron.Cron
	entryID       cron.EntryID
	keepCount     int
}

func NewBackupScheduler(backups *BackupService, keepCount int) *BackupScheduler {
	return &BackupScheduler{backups: backups, keepCount: keepCount}
}

// Start schedules the daily run at the given hour and minute.
func (s *BackupScheduler) Start(hour, minute int) error {
	if s.cronScheduler != nil {
		s.cronScheduler.Remove(s.entryID)
	} else {
		s.cronScheduler = cron.New()
		s.cronScheduler.Start()
	}

	cronExpr := fmt.Sprintf("%d %d * * *", minute, hour)
	entryID, err := s.cronScheduler.AddFunc(cronExpr, s.runOnce)
	if err != nil {
		return fmt.Errorf("scheduling automatic backup: %w", err)
	}
	s.entryID = entryID
	logger.Info().Str("cron", cronExpr).Int("keep", s.keepCount).Msg("automatic backup scheduled")
	return nil
}

// Stop halts the scheduler.
func (s *BackupScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *BackupScheduler) runOnce() {
	runID := uuid.NewString()
	key, err := s.backups.CreateBackup("scheduled backup", "scheduler/"+runID)
	if err != nil {
		logger.Error().Err(err).Str("run", runID).Msg("scheduled backup failed")
		return
	}
	deleted, err := s.backups.CleanupOldBackups(s.keepCount)
	if err != nil {
		logger.Error().Err(err).Str("run", runID).Msg("scheduled backup cleanup failed")
		return
	}
	logger.Info().Str("run", runID).Str("key", key).Int("deleted", deleted).Msg("scheduled backup complete")
}
