package services

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/kvstore"
	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

// Logical keys in the persistence substrate.
const (
	globalConfigKey     = "global-config"
	projectConfigsKey   = "project-configs"
	legacyProjectsKey   = "project-configs-legacy"
	userConfigKeyPrefix = "user-config:"
	backupKeyPrefix     = "backup:"
)

// ConfigService owns the in-memory Global record, the Project map and
// per-operator User records, and persists every mutation through the
// key-value store. Readers always get defensive copies; mutating the
// returned record does not affect stored state.
//
// On load, absent or corrupt persisted records fall back to built-in
// defaults; the service never fails to construct.
type ConfigService struct {
	mu       sync.RWMutex
	store    kvstore.Store
	global   *models.GlobalConfig
	projects map[string]*models.ProjectConfig
	users    map[string]*models.UserConfig
}

func NewConfigService(store kvstore.Store) *ConfigService {
	s := &ConfigService{
		store:    store,
		projects: make(map[string]*models.ProjectConfig),
		users:    make(map[string]*models.UserConfig),
	}
	s.load()
	return s
}

func (s *ConfigService) load() {
	s.global = models.DefaultGlobalConfig()
	if raw, err := s.store.Get(globalConfigKey); err == nil {
		var g models.GlobalConfig
		if jsonErr := json.Unmarshal([]byte(raw), &g); jsonErr == nil {
			s.global = &g
		} else {
			logger.Warn().Err(jsonErr).Msg("corrupt global config, using defaults")
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		logger.Warn().Err(err).Msg("reading global config failed, using defaults")
	}

	if raw, err := s.store.Get(projectConfigsKey); err == nil {
		var list []*models.ProjectConfig
		if jsonErr := json.Unmarshal([]byte(raw), &list); jsonErr == nil {
			for _, p := range list {
				if p != nil && p.ID != "" {
					s.projects[p.ID] = p
				}
			}
		} else {
			logger.Warn().Err(jsonErr).Msg("corrupt project configs, starting empty")
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		logger.Warn().Err(err).Msg("reading project configs failed, starting empty")
	}
}

// GetGlobal returns a copy of the current Global record.
func (s *ConfigService) GetGlobal() *models.GlobalConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.global.Clone()
}

// GlobalConfigUpdate is a block-level partial update: a non-nil block
// replaces the stored block wholly, Features entries are merged by
// key. Fields inside an omitted block are untouched.
type GlobalConfigUpdate struct {
	Platform    *models.PlatformSettings    `json:"platform,omitempty"`
	Security    *models.SecurityPolicy      `json:"security,omitempty"`
	Performance *models.PerformanceSettings `json:"performance,omitempty"`
	Monitoring  *models.MonitoringSettings  `json:"monitoring,omitempty"`
	Features    map[string]bool             `json:"features,omitempty"`
}

// UpdateGlobal applies the update in memory and persists the full
// record. A persistence failure is logged and returned; the in-memory
// update stays applied either way.
//
// The update is applied to a clone which is then swapped in: published
// records are never mutated in place, so Resolve can read a snapshot
// without holding the lock.
func (s *ConfigService) UpdateGlobal(update *GlobalConfigUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.global.Clone()
	if update.Platform != nil {
		g.Platform = *update.Platform
	}
	if update.Security != nil {
		g.Security = *update.Security
	}
	if update.Performance != nil {
		g.Performance = *update.Performance
	}
	if update.Monitoring != nil {
		g.Monitoring = *update.Monitoring
	}
	if update.Features != nil {
		if g.Features == nil {
			g.Features = make(map[string]bool)
		}
		for name, enabled := range update.Features {
			g.Features[name] = enabled
		}
	}
	g.UpdatedAt = time.Now().UTC()
	s.global = g

	return s.persistGlobal()
}

// ResetGlobal restores the built-in defaults.
func (s *ConfigService) ResetGlobal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = models.DefaultGlobalConfig()
	return s.persistGlobal()
}

func (s *ConfigService) persistGlobal() error {
	data, err := json.Marshal(s.global)
	if err != nil {
		return err
	}
	if err := s.store.Set(globalConfigKey, string(data)); err != nil {
		logger.Error().Err(err).Msg("persisting global config failed")
		return err
	}
	return nil
}

// GetProject returns a copy of the project, or nil when unknown.
func (s *ConfigService) GetProject(id string) *models.ProjectConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil
	}
	return p.Clone()
}

// SetProject creates or replaces the record keyed by cfg.ID and
// persists the entire project map.
func (s *ConfigService) SetProject(cfg *models.ProjectConfig) error {
	if cfg == nil || cfg.ID == "" {
		return errors.New("project config requires an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cfg.Clone()
	stored.UpdatedAt = time.Now().UTC()
	if stored.SchemaVersion == "" {
		stored.SchemaVersion = models.CurrentSchemaVersion
	}
	s.projects[stored.ID] = stored
	return s.persistProjects()
}

// DeleteProject removes the record. It reports whether a record
// existed; access grants referencing the id are left to opportunistic
// validation.
func (s *ConfigService) DeleteProject(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	return true, s.persistProjects()
}

// ListProjects returns copies of every project, ordered by id.
func (s *ConfigService) ListProjects() []*models.ProjectConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*models.ProjectConfig, 0, len(s.projects))
	for _, p := range s.projects {
		list = append(list, p.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *ConfigService) persistProjects() error {
	list := make([]*models.ProjectConfig, 0, len(s.projects))
	for _, p := range s.projects {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := s.store.Set(projectConfigsKey, string(data)); err != nil {
		logger.Error().Err(err).Msg("persisting project configs failed")
		return err
	}
	return nil
}

// ApplySnapshot writes backup records verbatim: the Global record and
// each project keep the timestamps captured in the snapshot, so
// restoring a backup with no intervening mutation is a no-op on
// observable state. Projects not named in the snapshot are left alone.
func (s *ConfigService) ApplySnapshot(global *models.GlobalConfig, projects []*models.ProjectConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if global != nil {
		s.global = global.Clone()
		if err := s.persistGlobal(); err != nil {
			return err
		}
	}
	for _, p := range projects {
		if p == nil || p.ID == "" {
			continue
		}
		s.projects[p.ID] = p.Clone()
	}
	return s.persistProjects()
}

// GetUser returns the operator's User record, creating the default
// skeleton in memory on first touch.
func (s *ConfigService) GetUser(session models.Session) *models.UserConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userLocked(session.OperatorID).Clone()
}

func (s *ConfigService) userLocked(operatorID string) *models.UserConfig {
	if u, ok := s.users[operatorID]; ok {
		return u
	}
	u := models.DefaultUserConfig(operatorID)
	if raw, err := s.store.Get(userConfigKeyPrefix + operatorID); err == nil {
		var stored models.UserConfig
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr == nil {
			u = &stored
		} else {
			logger.Warn().Err(jsonErr).Str("operator", operatorID).Msg("corrupt user config, using defaults")
		}
	}
	if u.ProjectAccess == nil {
		u.ProjectAccess = make(map[string]models.ProjectAccess)
	}
	s.users[operatorID] = u
	return u
}

// UserConfigUpdate is a block-level partial update for a User record.
// ProjectAccess entries are merged by project id.
type UserConfigUpdate struct {
	Preferences    *models.UserPreferences         `json:"preferences,omitempty"`
	ProjectAccess  map[string]models.ProjectAccess `json:"projectAccess,omitempty"`
	Customizations *models.UserCustomizations      `json:"customizations,omitempty"`
}

// UpdateUser applies the update and persists the operator's record.
func (s *ConfigService) UpdateUser(session models.Session, update *UserConfigUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userLocked(session.OperatorID)
	if update.Preferences != nil {
		u.Preferences = *update.Preferences
	}
	for id, access := range update.ProjectAccess {
		u.ProjectAccess[id] = access
	}
	if update.Customizations != nil {
		u.Customizations = *update.Customizations
	}
	u.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.store.Set(userConfigKeyPrefix+session.OperatorID, string(data)); err != nil {
		logger.Error().Err(err).Str("operator", session.OperatorID).Msg("persisting user config failed")
		return err
	}
	return nil
}

// globalFallbacks maps project-level paths to the Global path holding
// their platform default.
var globalFallbacks = map[string]string{
	"technical.endpoints.timeoutSeconds": "performance.requestTimeoutSeconds",
	"technical.endpoints.maxRetries":     "performance.maxRetries",
}

// Resolve returns the effective value at a dotted path: the project's
// own value when present and non-zero, otherwise the corresponding
// Global default, otherwise nil. Project feature flags
// ("uiConfig.features.X") fall back to the Global toggle
// ("features.X").
func (s *ConfigService) Resolve(projectID, path string) any {
	s.mu.RLock()
	project, ok := s.projects[projectID]
	global := s.global
	s.mu.RUnlock()

	if ok {
		if v := lookupPath(project, path); !isZeroValue(v) {
			return v
		}
	}

	globalPath := path
	if mapped, ok := globalFallbacks[path]; ok {
		globalPath = mapped
	} else if strings.HasPrefix(path, "uiConfig.features.") {
		globalPath = "features." + strings.TrimPrefix(path, "uiConfig.features.")
	}
	if v := lookupPath(global, globalPath); v != nil {
		return v
	}
	return nil
}

// lookupPath walks a dotted path through the record's JSON shape.
func lookupPath(record any, path string) any {
	data, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil
	}

	var current any = tree
	for _, field := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = node[field]
		if !ok {
			return nil
		}
	}
	return current
}

func isZeroValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case float64:
		return value == 0
	default:
		return false
	}
}
