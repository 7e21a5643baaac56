package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/kvstore"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
)

func seedLegacy(t *testing.T, store *kvstore.MemoryStore, records []models.LegacyProjectRecord) {
	t.Helper()
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal legacy records: %v", err)
	}
	if err := store.Set("project-configs-legacy", string(data)); err != nil {
		t.Fatalf("seed legacy records: %v", err)
	}
}

func TestMigration_BackfillsDefaultsWithNoLegacyData(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)

	report := NewMigrationService(store, svc).Run()
	if report.Backfilled != 3 {
		t.Errorf("Backfilled = %d, expected 3", report.Backfilled)
	}
	if report.Migrated != 0 || report.Synthesized != 0 {
		t.Errorf("unexpected conversions: %+v", report)
	}
	for _, tpl := range models.DefaultProjects() {
		if svc.GetProject(tpl.ID) == nil {
			t.Errorf("default project %q should be backfilled", tpl.ID)
		}
	}
}

func TestMigration_SynthesizesUnknownLegacyRecord(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)
	seedLegacy(t, store, []models.LegacyProjectRecord{
		{
			ID:       "acme",
			Label:    "Acme",
			Theme:    &models.LegacyTheme{Primary: "#112233", Secondary: "#445566"},
			RAGIndex: &models.LegacySearchIndex{IndexName: "acme-idx", TopK: 7},
		},
	})

	report := NewMigrationService(store, svc).Run()
	if report.Synthesized != 1 {
		t.Fatalf("Synthesized = %d, expected 1", report.Synthesized)
	}

	p := svc.GetProject("acme")
	if p == nil {
		t.Fatal("migrated project missing")
	}
	if p.DisplayName != "Acme" {
		t.Errorf("DisplayName = %q, expected %q", p.DisplayName, "Acme")
	}
	if p.UI.Theme.Primary != "#112233" {
		t.Errorf("theme.primary = %q, expected %q", p.UI.Theme.Primary, "#112233")
	}
	if p.Technical.SearchIndex.IndexName != "acme-idx" {
		t.Errorf("searchIndex.indexName = %q, expected %q", p.Technical.SearchIndex.IndexName, "acme-idx")
	}
	if p.Technical.SearchIndex.TopK != 7 {
		t.Errorf("searchIndex.topK = %d, expected 7", p.Technical.SearchIndex.TopK)
	}
	// Synthesized records must come out valid
	result := NewValidator().ValidateProject(p)
	if !result.IsValid {
		t.Errorf("synthesized record should be valid, errors: %v", result.Errors)
	}
	if p.Technical.DataPartition.Container != "acme-data" {
		t.Errorf("container = %q, expected %q", p.Technical.DataPartition.Container, "acme-data")
	}
}

func TestMigration_MergesLegacyOntoMatchingTemplate(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)
	seedLegacy(t, store, []models.LegacyProjectRecord{
		{
			ID:    "permits",
			Label: "Permits Office",
			Theme: &models.LegacyTheme{Primary: "#aabbcc"},
		},
	})

	report := NewMigrationService(store, svc).Run()
	if report.Migrated != 1 {
		t.Fatalf("Migrated = %d, expected 1", report.Migrated)
	}

	p := svc.GetProject("permits")
	if p.DisplayName != "Permits Office" {
		t.Errorf("DisplayName = %q, expected legacy label", p.DisplayName)
	}
	if p.UI.Theme.Primary != "#aabbcc" {
		t.Errorf("theme.primary = %q, expected legacy value", p.UI.Theme.Primary)
	}
	// Template fields absent from the legacy shape are retained
	if p.Extension == nil || len(p.Extension.Jurisdictions) == 0 {
		t.Error("template extension block should be retained through the merge")
	}
	if p.Compliance.DataClassification != models.ClassificationProtectedA {
		t.Error("template compliance settings should be retained through the merge")
	}
}

func TestMigration_RunTwiceIsIdempotent(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)
	seedLegacy(t, store, []models.LegacyProjectRecord{
		{ID: "acme", Label: "Acme", Theme: &models.LegacyTheme{Primary: "#112233"}},
	})

	migration := NewMigrationService(store, svc)
	migration.Run()
	first := svc.ListProjects()

	report := migration.Run()
	if report.Migrated != 0 || report.Synthesized != 0 || report.Backfilled != 0 {
		t.Errorf("second run should change nothing, got %+v", report)
	}
	second := svc.ListProjects()
	if !reflect.DeepEqual(first, second) {
		t.Error("project list differs between migration runs")
	}
}

func TestMigration_DoesNotRevertCustomizedRecords(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)
	seedLegacy(t, store, []models.LegacyProjectRecord{
		{ID: "acme", Label: "Acme"},
	})

	migration := NewMigrationService(store, svc)
	migration.Run()

	customized := svc.GetProject("acme")
	customized.DisplayName = "Acme Modernized"
	if err := svc.SetProject(customized); err != nil {
		t.Fatalf("SetProject failed: %v", err)
	}

	// The legacy entry is still in the store; re-running must ignore it.
	migration.Run()
	if got := svc.GetProject("acme").DisplayName; got != "Acme Modernized" {
		t.Errorf("DisplayName = %q, migration reverted a customized record", got)
	}
}

func TestMigration_SkipsBadRecordAndContinues(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)
	seedLegacy(t, store, []models.LegacyProjectRecord{
		{Label: "No ID Here"},
		{ID: "acme", Label: "Acme"},
	})

	report := NewMigrationService(store, svc).Run()
	if report.Skipped != 1 {
		t.Errorf("Skipped = %d, expected 1", report.Skipped)
	}
	if svc.GetProject("acme") == nil {
		t.Error("records after a bad one should still migrate")
	}
}

func TestMigration_CorruptLegacySourceIsIgnored(t *testing.T) {
	store := kvstore.NewMemoryStore()
	store.Set("project-configs-legacy", "{{{corrupt")
	svc := NewConfigService(store)

	report := NewMigrationService(store, svc).Run()
	if report.Backfilled != 3 {
		t.Errorf("corrupt legacy source should not prevent backfill, got %+v", report)
	}
}
