package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/kvstore"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

// backupKeyTimeFormat derives the storage key from the creation
// instant. Millisecond precision keeps back-to-back backups distinct.
const backupKeyTimeFormat = "20060102T150405.000"

// healthValidThreshold: a stored backup is listed as "valid" when the
// health score captured at creation time exceeds this.
const healthValidThreshold = 80

// importEnvelopeSchema is the structural contract for uploaded backup
// files. Record-level validation happens separately; this only rejects
// files that are not backup envelopes at all.
const importEnvelopeSchema = `{
	"type": "object",
	"required": ["version", "timestamp", "globalConfig", "projectConfigs"],
	"properties": {
		"version": {"type": "string"},
		"timestamp": {"type": "string"},
		"metadata": {"type": "object"},
		"globalConfig": {"type": "object"},
		"projectConfigs": {"type": "array"}
	}
}`

// BackupService builds, stores, restores and serves timestamped
// snapshots of the Global record plus all project records.
type BackupService struct {
	store     kvstore.Store
	config    *ConfigService
	validator *Validator
	envelope  *jsonschema.Schema
	now       func() time.Time
}

func NewBackupService(store kvstore.Store, config *ConfigService, validator *Validator) *BackupService {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("backup-envelope.json", strings.NewReader(importEnvelopeSchema)); err != nil {
		panic("backup envelope schema: " + err.Error())
	}
	schema, err := compiler.Compile("backup-envelope.json")
	if err != nil {
		panic("backup envelope schema: " + err.Error())
	}
	return &BackupService{
		store:     store,
		config:    config,
		validator: validator,
		envelope:  schema,
		now:       time.Now,
	}
}

func (s *BackupService) snapshot(description, creator string) *models.ConfigBackup {
	global := s.config.GetGlobal()
	projects := s.config.ListProjects()
	return &models.ConfigBackup{
		Version:   models.BackupFormatVersion,
		Timestamp: s.now().UTC(),
		Metadata: models.BackupInfo{
			Description: description,
			Creator:     creator,
			Platform:    global.Platform.Name,
		},
		GlobalConfig:      global,
		ProjectConfigs:    projects,
		ValidationSummary: s.validator.ValidateAll(global, projects),
	}
}

// CreateBackup snapshots current state under a timestamp-derived key
// and returns the key.
func (s *BackupService) CreateBackup(description, creator string) (string, error) {
	backup := s.snapshot(description, creator)
	data, err := json.Marshal(backup)
	if err != nil {
		return "", err
	}
	key := backupKeyPrefix + backup.Timestamp.Format(backupKeyTimeFormat)
	if err := s.store.Set(key, string(data)); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("writing backup failed")
		return "", err
	}
	logger.Info().Str("key", key).Int("projects", len(backup.ProjectConfigs)).Msg("backup created")
	return key, nil
}

// Export builds the same snapshot as CreateBackup and returns it
// pretty-printed for the download collaborator, along with a suggested
// filename. Nothing is persisted.
func (s *BackupService) Export(description, creator string) ([]byte, string, error) {
	backup := s.snapshot(description, creator)
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eva-config-%s.json", backup.Timestamp.Format("20060102-150405"))
	return data, filename, nil
}

// ImportResult reports the outcome of an import attempt. Summary is
// present whenever the embedded records were validated, including on
// rejection, so the caller can display what blocked the import.
type ImportResult struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Summary *models.ValidationSummary `json:"validationSummary,omitempty"`
}

// ImportFromFile applies an externally supplied backup file. The
// envelope is checked structurally, then every embedded record is
// re-validated; any blocking error rejects the import without touching
// the store. Warnings alone never block.
func (s *BackupService) ImportFromFile(contents []byte) ImportResult {
	var payload any
	if err := json.Unmarshal(contents, &payload); err != nil {
		return ImportResult{Message: "file is not valid JSON"}
	}
	if err := s.envelope.Validate(payload); err != nil {
		return ImportResult{Message: "file is not a configuration backup: " + err.Error()}
	}

	var backup models.ConfigBackup
	if err := json.Unmarshal(contents, &backup); err != nil {
		return ImportResult{Message: "backup payload could not be decoded: " + err.Error()}
	}

	summary := s.validator.ValidateAll(backup.GlobalConfig, backup.ProjectConfigs)
	blocking := len(summary.Global.Errors)
	for _, pv := range summary.Projects {
		blocking += len(pv.Result.Errors)
	}
	if blocking > 0 {
		return ImportResult{
			Message: fmt.Sprintf("import rejected: %d blocking validation error(s)", blocking),
			Summary: &summary,
		}
	}

	if err := s.apply(&backup); err != nil {
		return ImportResult{Message: "applying imported configuration failed: " + err.Error(), Summary: &summary}
	}
	return ImportResult{
		Success: true,
		Message: fmt.Sprintf("imported global config and %d project(s)", len(backup.ProjectConfigs)),
		Summary: &summary,
	}
}

// RestoreResult reports the outcome of a restore.
type RestoreResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RestoreFromBackup applies a stored backup unconditionally; a backup
// we wrote ourselves is trusted and not re-validated. An absent or
// corrupt backup fails without mutating state.
func (s *BackupService) RestoreFromBackup(key string) RestoreResult {
	raw, err := s.store.Get(key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return RestoreResult{Message: fmt.Sprintf("backup %q not found", key)}
		}
		return RestoreResult{Message: "reading backup failed: " + err.Error()}
	}
	var backup models.ConfigBackup
	if err := json.Unmarshal([]byte(raw), &backup); err != nil {
		return RestoreResult{Message: "backup is corrupt: " + err.Error()}
	}
	if backup.GlobalConfig == nil {
		return RestoreResult{Message: "backup is corrupt: no global config"}
	}
	if err := s.apply(&backup); err != nil {
		return RestoreResult{Message: "applying backup failed: " + err.Error()}
	}
	return RestoreResult{
		Success: true,
		Message: fmt.Sprintf("restored global config and %d project(s) from %s", len(backup.ProjectConfigs), key),
	}
}

// apply writes the backup's records into the configuration store
// verbatim.
func (s *BackupService) apply(backup *models.ConfigBackup) error {
	return s.config.ApplySnapshot(backup.GlobalConfig, backup.ProjectConfigs)
}

// ListBackups enumerates stored backups, newest first. Individually
// corrupt entries are logged and skipped, never fatal.
func (s *BackupService) ListBackups() []models.BackupMetadata {
	keys, err := s.store.Keys(backupKeyPrefix)
	if err != nil {
		logger.Error().Err(err).Msg("listing backups failed")
		return []models.BackupMetadata{}
	}

	list := make([]models.BackupMetadata, 0, len(keys))
	for _, key := range keys {
		raw, err := s.store.Get(key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("skipping unreadable backup")
			continue
		}
		var backup models.ConfigBackup
		if err := json.Unmarshal([]byte(raw), &backup); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("skipping corrupt backup")
			continue
		}
		list = append(list, models.BackupMetadata{
			Key:          key,
			Timestamp:    backup.Timestamp,
			Description:  backup.Metadata.Description,
			Size:         len(raw),
			Valid:        backup.ValidationSummary.OverallHealth > healthValidThreshold,
			ProjectCount: len(backup.ProjectConfigs),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return list
}

// DeleteBackup removes a stored backup. It reports whether the key
// existed.
func (s *BackupService) DeleteBackup(key string) (bool, error) {
	if !strings.HasPrefix(key, backupKeyPrefix) {
		return false, fmt.Errorf("%q is not a backup key", key)
	}
	if _, err := s.store.Get(key); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.store.Delete(key); err != nil {
		return false, err
	}
	return true, nil
}

// CleanupOldBackups deletes all but the keepCount newest backups and
// returns how many were deleted.
func (s *BackupService) CleanupOldBackups(keepCount int) (int, error) {
	if keepCount < 0 {
		keepCount = 0
	}
	list := s.ListBackups()
	if len(list) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, meta := range list[keepCount:] {
		if err := s.store.Delete(meta.Key); err != nil {
			logger.Error().Err(err).Str("key", meta.Key).Msg("deleting old backup failed")
			continue
		}
		deleted++
	}
	logger.Info().Int("deleted", deleted).Int("kept", keepCount).Msg("backup cleanup complete")
	return deleted, nil
}
