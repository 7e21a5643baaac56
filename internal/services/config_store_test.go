package services

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/kvstore"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
)

func newTestService(t *testing.T) (*ConfigService, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewConfigService(store), store
}

func TestConfigService_DefaultsOnEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	global := svc.GetGlobal()
	if global.Platform.Name == "" {
		t.Error("empty store should fall back to built-in global defaults")
	}
	if len(svc.ListProjects()) != 0 {
		t.Error("empty store should start with no projects")
	}
}

func TestConfigService_DefaultsOnCorruptStore(t *testing.T) {
	store := kvstore.NewMemoryStore()
	store.Set("global-config", "{not json")
	store.Set("project-configs", "also not json")

	svc := NewConfigService(store)
	if svc.GetGlobal().Platform.Name == "" {
		t.Error("corrupt global record should fall back to defaults, not fail")
	}
	if len(svc.ListProjects()) != 0 {
		t.Error("corrupt project list should yield an empty project map")
	}
}

func TestConfigService_GetGlobalReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.GetGlobal()
	got.Platform.Name = "mutated"
	got.Features["rogue"] = true

	again := svc.GetGlobal()
	if again.Platform.Name == "mutated" {
		t.Error("mutating a returned global record must not affect stored state")
	}
	if again.Features["rogue"] {
		t.Error("mutating a returned features map must not affect stored state")
	}
}

func TestConfigService_UpdateGlobalBlockMerge(t *testing.T) {
	svc, store := newTestService(t)
	before := svc.GetGlobal()

	update := &GlobalConfigUpdate{
		Monitoring: &models.MonitoringSettings{TelemetryEnabled: false, LogLevel: "debug"},
		Features:   map[string]bool{"betaAssistants": true},
	}
	if err := svc.UpdateGlobal(update); err != nil {
		t.Fatalf("UpdateGlobal failed: %v", err)
	}

	after := svc.GetGlobal()
	if after.Monitoring.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected %q", after.Monitoring.LogLevel, "debug")
	}
	if !after.Features["betaAssistants"] {
		t.Error("feature merge should set betaAssistants")
	}
	// Untouched blocks and unmentioned features survive
	if after.Platform.Name != before.Platform.Name {
		t.Error("omitted platform block should be untouched")
	}
	if !after.Features["chatExport"] {
		t.Error("unmentioned feature toggles should be retained")
	}

	// Mutation persisted immediately
	raw, err := store.Get("global-config")
	if err != nil {
		t.Fatalf("global config not persisted: %v", err)
	}
	var persisted models.GlobalConfig
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted global config is not JSON: %v", err)
	}
	if persisted.Monitoring.LogLevel != "debug" {
		t.Error("persisted record should carry the update")
	}
}

func TestConfigService_UpdateGlobalPersistFailureKeepsMemoryState(t *testing.T) {
	svc, store := newTestService(t)
	store.FailWrites = errors.New("disk full")

	update := &GlobalConfigUpdate{
		Monitoring: &models.MonitoringSettings{TelemetryEnabled: true, LogLevel: "error"},
	}
	if err := svc.UpdateGlobal(update); err == nil {
		t.Fatal("UpdateGlobal should report the persistence failure")
	}
	// In-memory state keeps the update regardless
	if svc.GetGlobal().Monitoring.LogLevel != "error" {
		t.Error("in-memory update should be applied despite the write failure")
	}
}

func TestConfigService_ProjectLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	tpl := models.DefaultProjects()[0]

	if svc.GetProject(tpl.ID) != nil {
		t.Fatal("project should not exist yet")
	}
	if err := svc.SetProject(tpl); err != nil {
		t.Fatalf("SetProject failed: %v", err)
	}

	got := svc.GetProject(tpl.ID)
	if got == nil {
		t.Fatal("project should exist after SetProject")
	}
	if got.DisplayName != tpl.DisplayName {
		t.Errorf("DisplayName = %q, expected %q", got.DisplayName, tpl.DisplayName)
	}

	// Returned record is a copy
	got.DisplayName = "mutated"
	if svc.GetProject(tpl.ID).DisplayName == "mutated" {
		t.Error("mutating a returned project must not affect stored state")
	}

	deleted, err := svc.DeleteProject(tpl.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteProject = (%v, %v), expected (true, nil)", deleted, err)
	}
	if svc.GetProject(tpl.ID) != nil {
		t.Error("project should be gone after DeleteProject")
	}
	deleted, _ = svc.DeleteProject(tpl.ID)
	if deleted {
		t.Error("deleting an absent project should report false")
	}
}

func TestConfigService_SetProjectRequiresID(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.SetProject(&models.ProjectConfig{}); err == nil {
		t.Error("SetProject without an id should fail")
	}
	if err := svc.SetProject(nil); err == nil {
		t.Error("SetProject(nil) should fail")
	}
}

func TestConfigService_ListProjectsSorted(t *testing.T) {
	svc, _ := newTestService(t)
	for _, tpl := range models.DefaultProjects() {
		if err := svc.SetProject(tpl); err != nil {
			t.Fatalf("SetProject failed: %v", err)
		}
	}

	list := svc.ListProjects()
	if len(list) != 3 {
		t.Fatalf("ListProjects returned %d projects, expected 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("projects not sorted by id: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestConfigService_ProjectsSurviveReload(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewConfigService(store)
	for _, tpl := range models.DefaultProjects() {
		if err := svc.SetProject(tpl); err != nil {
			t.Fatalf("SetProject failed: %v", err)
		}
	}

	reloaded := NewConfigService(store)
	if len(reloaded.ListProjects()) != 3 {
		t.Errorf("reloaded service has %d projects, expected 3", len(reloaded.ListProjects()))
	}
}

func TestConfigService_UserSkeletonAndUpdate(t *testing.T) {
	svc, store := newTestService(t)
	session := models.Session{OperatorID: "op-17", Roles: []string{"admin"}}

	u := svc.GetUser(session)
	if u.OperatorID != "op-17" {
		t.Errorf("OperatorID = %q, expected %q", u.OperatorID, "op-17")
	}
	if u.Preferences.Language == "" {
		t.Error("skeleton user should carry default preferences")
	}

	update := &UserConfigUpdate{
		ProjectAccess: map[string]models.ProjectAccess{
			"benefits": {Role: "reviewer", Permissions: []string{"read"}},
		},
	}
	if err := svc.UpdateUser(session, update); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	u = svc.GetUser(session)
	if u.ProjectAccess["benefits"].Role != "reviewer" {
		t.Error("access grant should be merged into the user record")
	}
	if _, err := store.Get("user-config:op-17"); err != nil {
		t.Errorf("user record not persisted: %v", err)
	}

	// Distinct operators get distinct records
	other := svc.GetUser(models.Session{OperatorID: "op-18"})
	if len(other.ProjectAccess) != 0 {
		t.Error("another operator should get a fresh skeleton")
	}
}

func TestConfigService_Resolve(t *testing.T) {
	svc, _ := newTestService(t)
	tpl := models.DefaultProjectTemplate("permits")
	if err := svc.SetProject(tpl); err != nil {
		t.Fatalf("SetProject failed: %v", err)
	}

	// Project-level override wins
	if v := svc.Resolve("permits", "technical.endpoints.timeoutSeconds"); v != float64(45) {
		t.Errorf("Resolve(timeoutSeconds) = %v, expected 45", v)
	}
	// Theme comes from the project
	if v := svc.Resolve("permits", "uiConfig.theme.primary"); v != "#1c578a" {
		t.Errorf("Resolve(theme.primary) = %v, expected #1c578a", v)
	}
	// Unknown project falls back to the global default
	if v := svc.Resolve("nope", "technical.endpoints.timeoutSeconds"); v != float64(30) {
		t.Errorf("Resolve on unknown project = %v, expected global default 30", v)
	}
	// Feature flags fall through to global toggles
	if v := svc.Resolve("permits", "uiConfig.features.chatExport"); v != true {
		t.Errorf("Resolve(features.chatExport) = %v, expected global toggle true", v)
	}
	// Neither side has the path
	if v := svc.Resolve("permits", "no.such.path"); v != nil {
		t.Errorf("Resolve on unknown path = %v, expected nil", v)
	}
}

// Resolve reads a published snapshot without holding the lock, so it
// must stay safe against concurrent global updates (run with -race).
func TestConfigService_ResolveConcurrentWithUpdateGlobal(t *testing.T) {
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			platform := svc.GetGlobal().Platform
			platform.MaxProjectsPerUser = i + 1
			if err := svc.UpdateGlobal(&GlobalConfigUpdate{Platform: &platform}); err != nil {
				t.Errorf("UpdateGlobal failed: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if v := svc.Resolve("none", "technical.endpoints.timeoutSeconds"); v != float64(30) {
				t.Errorf("Resolve during updates = %v, expected 30", v)
				return
			}
		}
	}()
	wg.Wait()

	if got := svc.GetGlobal().Platform.MaxProjectsPerUser; got != 500 {
		t.Errorf("MaxProjectsPerUser = %d, expected 500 after final update", got)
	}
}
