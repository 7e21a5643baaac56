package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/kvstore"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

// MigrationService brings persisted state into the current schema at
// cold start: it converts legacy flat project records and backfills
// the built-in default tenants.
//
// The run is idempotent. A legacy entry whose id already exists as a
// current record is ignored, so re-running never reverts customized
// records; the legacy source itself is left untouched.
type MigrationService struct {
	store  kvstore.Store
	config *ConfigService
}

func NewMigrationService(store kvstore.Store, config *ConfigService) *MigrationService {
	return &MigrationService{store: store, config: config}
}

// MigrationReport summarizes one run.
type MigrationReport struct {
	Migrated    int `json:"migrated"`
	Synthesized int `json:"synthesized"`
	Backfilled  int `json:"backfilled"`
	Skipped     int `json:"skipped"`
}

// Run executes the full migration sequence. A failure on one legacy
// record is logged and skipped; it never aborts the rest of the batch.
func (m *MigrationService) Run() MigrationReport {
	var report MigrationReport

	for _, legacy := range m.readLegacy() {
		if m.config.GetProject(legacy.ID) != nil {
			report.Skipped++
			continue
		}
		cfg, synthesized, err := m.convertLegacy(legacy)
		if err != nil {
			logger.Warn().Err(err).Str("project", legacy.ID).Msg("skipping legacy record")
			report.Skipped++
			continue
		}
		if err := m.config.SetProject(cfg); err != nil {
			logger.Error().Err(err).Str("project", cfg.ID).Msg("persisting migrated record failed")
			report.Skipped++
			continue
		}
		if synthesized {
			report.Synthesized++
		} else {
			report.Migrated++
		}
	}

	for _, tpl := range models.DefaultProjects() {
		if m.config.GetProject(tpl.ID) != nil {
			continue
		}
		if err := m.config.SetProject(tpl); err != nil {
			logger.Error().Err(err).Str("project", tpl.ID).Msg("backfilling default project failed")
			continue
		}
		report.Backfilled++
	}

	logger.Info().
		Int("migrated", report.Migrated).
		Int("synthesized", report.Synthesized).
		Int("backfilled", report.Backfilled).
		Int("skipped", report.Skipped).
		Msg("configuration migration complete")
	return report
}

func (m *MigrationService) readLegacy() []models.LegacyProjectRecord {
	raw, err := m.store.Get(legacyProjectsKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn().Err(err).Msg("reading legacy projects failed")
		}
		return nil
	}
	var records []models.LegacyProjectRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Warn().Err(err).Msg("legacy project list is corrupt, ignoring")
		return nil
	}
	return records
}

// convertLegacy produces a current-schema record from a legacy entry:
// merged onto a deep copy of the matching built-in template when one
// exists, synthesized from the legacy fields alone otherwise.
func (m *MigrationService) convertLegacy(legacy models.LegacyProjectRecord) (*models.ProjectConfig, bool, error) {
	if legacy.ID == "" {
		return nil, false, fmt.Errorf("legacy record has no id")
	}

	if tpl := models.DefaultProjectTemplate(legacy.ID); tpl != nil {
		cfg := tpl.Clone()
		applyLegacyFields(cfg, legacy)
		cfg.SchemaVersion = models.CurrentSchemaVersion
		return cfg, false, nil
	}
	return synthesizeFromLegacy(legacy), true, nil
}

// applyLegacyFields copies the fields the old console stored onto the
// template copy; template fields absent from the legacy shape are
// retained.
func applyLegacyFields(cfg *models.ProjectConfig, legacy models.LegacyProjectRecord) {
	if legacy.Label != "" {
		cfg.DisplayName = legacy.Label
		cfg.UI.Branding.Title = legacy.Label
	}
	if legacy.Endpoint != "" {
		cfg.Technical.Endpoints.Primary = legacy.Endpoint
	}
	if legacy.Owner != "" {
		cfg.Business.Owner = legacy.Owner
	}
	if legacy.Domain != "" {
		cfg.Business.Domain = legacy.Domain
	}
	if legacy.Contact != "" {
		cfg.Business.ContactEmail = legacy.Contact
	}
	if legacy.Theme != nil {
		if legacy.Theme.Primary != "" {
			cfg.UI.Theme.Primary = legacy.Theme.Primary
		}
		if legacy.Theme.Secondary != "" {
			cfg.UI.Theme.Secondary = legacy.Theme.Secondary
		}
		if legacy.Theme.Accent != "" {
			cfg.UI.Theme.Accent = legacy.Theme.Accent
		}
	}
	if legacy.RAGIndex != nil {
		if legacy.RAGIndex.IndexName != "" {
			cfg.Technical.SearchIndex.IndexName = legacy.RAGIndex.IndexName
		}
		if legacy.RAGIndex.SemanticConfig != "" {
			cfg.Technical.SearchIndex.SemanticConfig = legacy.RAGIndex.SemanticConfig
		}
		if legacy.RAGIndex.TopK > 0 {
			cfg.Technical.SearchIndex.TopK = legacy.RAGIndex.TopK
		}
	}
}

// synthesizeFromLegacy builds a minimal valid record for a legacy id
// with no matching template: names derived from the id, conservative
// AI defaults.
func synthesizeFromLegacy(legacy models.LegacyProjectRecord) *models.ProjectConfig {
	display := legacy.Label
	if display == "" {
		display = legacy.ID
	}
	cfg := &models.ProjectConfig{
		ID:          legacy.ID,
		Name:        legacy.ID,
		DisplayName: display,
		Business: models.BusinessConfig{
			Domain:       legacy.Domain,
			Owner:        legacy.Owner,
			ContactEmail: legacy.Contact,
		},
		Technical: models.TechnicalConfig{
			Endpoints: models.EndpointConfig{
				Primary:        legacy.Endpoint,
				TimeoutSeconds: 30,
				MaxRetries:     3,
			},
			DataPartition: models.DataPartitionConfig{
				Container:    legacy.ID + "-data",
				PartitionKey: "/sessionId",
				Throughput:   400,
			},
			SearchIndex: models.SearchIndexConfig{
				IndexName:      legacy.ID + "-index",
				SemanticConfig: "default-semantic",
				TopK:           5,
			},
			AI: models.AIConfig{
				Model:       "gpt-4o-mini",
				MaxTokens:   1024,
				Temperature: 0.2,
			},
		},
		UI: models.UIConfig{
			Theme: models.ThemeConfig{
				Primary:   "#26374a",
				Secondary: "#335075",
				Accent:    "#af3c43",
				FontSize:  14,
			},
			Branding: models.BrandingConfig{Title: display},
			Layout:   models.LayoutConfig{SidebarWidth: 280, MaxChatWidth: 860},
		},
		Compliance: models.ComplianceConfig{
			DataClassification: models.ClassificationInternal,
			RetentionPolicy:    models.RetentionPolicy{ChatHistory: 30, Documents: 365, AuditLogs: 730},
			AuditEnabled:       true,
		},
		SchemaVersion: models.CurrentSchemaVersion,
	}
	applyLegacyFields(cfg, legacy)
	return cfg
}
