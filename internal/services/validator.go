package services

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"time"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
)

// issueBudgetPerRecord is the per-record issue ceiling used by the
// health score. Tunable; the score clamps at 0 as total issues
// approach (records * budget).
const issueBudgetPerRecord = 10

// Session timeout band accepted for the Global record, in minutes.
const (
	minSessionTimeoutMinutes = 5
	maxSessionTimeoutMinutes = 1440
)

var (
	hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Validator performs schema checks over configuration records. It
// never panics on malformed input; missing nested data surfaces as an
// issue on the corresponding field.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateProject checks a single project record. IsValid is true iff
// no errors were found; warnings never affect it.
func (v *Validator) ValidateProject(cfg *models.ProjectConfig) models.ValidationResult {
	result := models.ValidationResult{Errors: []string{}, Warnings: []string{}}
	if cfg == nil {
		result.Errors = append(result.Errors, "project config is missing")
		return result
	}

	if cfg.ID == "" {
		result.Errors = append(result.Errors, "id is required")
	}
	if cfg.Name == "" {
		result.Errors = append(result.Errors, "name is required")
	}
	if cfg.DisplayName == "" {
		result.Errors = append(result.Errors, "displayName is required")
	}

	v.checkTheme(cfg.UI.Theme, &result)
	v.checkEndpoints(cfg.Technical.Endpoints, &result)
	v.checkRetention(cfg.Compliance.RetentionPolicy, &result)
	v.checkClassification(cfg.Compliance.DataClassification, &result)
	v.checkAI(cfg.Technical.AI, &result)

	if cfg.Business.ContactEmail != "" && !emailRe.MatchString(cfg.Business.ContactEmail) {
		result.Warnings = append(result.Warnings, "business.contactEmail is not a valid email address")
	}
	if cfg.Business.ExpectedUsers <= 0 {
		result.Warnings = append(result.Warnings, "business.expectedUsers is not set")
	}

	if cfg.Extension != nil {
		v.checkExtension(cfg.Extension, &result)
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func (v *Validator) checkTheme(theme models.ThemeConfig, result *models.ValidationResult) {
	if theme.Primary == "" {
		result.Errors = append(result.Errors, "uiConfig.theme.primary is required")
	} else if !hexColorRe.MatchString(theme.Primary) {
		result.Errors = append(result.Errors, fmt.Sprintf("uiConfig.theme.primary %q is not a hex color", theme.Primary))
	}
	if theme.Secondary != "" && !hexColorRe.MatchString(theme.Secondary) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("uiConfig.theme.secondary %q is not a hex color", theme.Secondary))
	}
	if theme.Accent != "" && !hexColorRe.MatchString(theme.Accent) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("uiConfig.theme.accent %q is not a hex color", theme.Accent))
	}
}

func (v *Validator) checkEndpoints(endpoints models.EndpointConfig, result *models.ValidationResult) {
	if endpoints.Primary == "" {
		result.Warnings = append(result.Warnings, "technical.endpoints.primary is not configured")
	} else if !isValidURL(endpoints.Primary) {
		result.Errors = append(result.Errors, fmt.Sprintf("technical.endpoints.primary %q is not a valid URL", endpoints.Primary))
	}
	if endpoints.Backup == "" {
		result.Warnings = append(result.Warnings, "technical.endpoints.backup is not configured")
	} else if !isValidURL(endpoints.Backup) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("technical.endpoints.backup %q is not a valid URL", endpoints.Backup))
	}
}

func (v *Validator) checkRetention(rp models.RetentionPolicy, result *models.ValidationResult) {
	if rp.ChatHistory < 1 {
		result.Errors = append(result.Errors, "compliance.retentionPolicy.chatHistory must be at least 1 day")
	}
	if rp.Documents < 1 {
		result.Errors = append(result.Errors, "compliance.retentionPolicy.documents must be at least 1 day")
	}
	if rp.AuditLogs < 1 {
		result.Errors = append(result.Errors, "compliance.retentionPolicy.auditLogs must be at least 1 day")
	}
}

func (v *Validator) checkClassification(classification string, result *models.ValidationResult) {
	for _, accepted := range models.DataClassifications {
		if classification == accepted {
			return
		}
	}
	result.Errors = append(result.Errors, fmt.Sprintf("compliance.dataClassification %q is not an accepted classification", classification))
}

func (v *Validator) checkAI(ai models.AIConfig, result *models.ValidationResult) {
	if ai.Temperature < 0 || ai.Temperature > 2 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("technical.ai.temperature %.2f is outside the usual 0-2 range", ai.Temperature))
	}
	if ai.MaxTokens <= 0 {
		result.Warnings = append(result.Warnings, "technical.ai.maxTokens is not set; platform default applies")
	}
}

func (v *Validator) checkExtension(ext *models.DomainExtension, result *models.ValidationResult) {
	if len(ext.Jurisdictions) == 0 {
		result.Errors = append(result.Errors, "extension.jurisdictions must list at least one jurisdiction")
	}
	for i, db := range ext.ExternalDatabases {
		if db.Name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("extension.externalDatabases[%d].name is required", i))
		}
		if db.URL == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("extension.externalDatabases[%d].url is required", i))
		} else if !isValidURL(db.URL) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("extension.externalDatabases[%d].url %q is not a valid URL", i, db.URL))
		}
	}
}

// ValidateGlobal checks the Global record.
func (v *Validator) ValidateGlobal(cfg *models.GlobalConfig) models.ValidationResult {
	result := models.ValidationResult{Errors: []string{}, Warnings: []string{}}
	if cfg == nil {
		result.Errors = append(result.Errors, "global config is missing")
		return result
	}

	if cfg.Platform.Name == "" {
		result.Errors = append(result.Errors, "platform.name is required")
	}
	if cfg.Platform.Version == "" {
		result.Errors = append(result.Errors, "platform.version is required")
	}
	if cfg.Platform.SupportEmail == "" || !emailRe.MatchString(cfg.Platform.SupportEmail) {
		result.Errors = append(result.Errors, fmt.Sprintf("platform.supportEmail %q is not a valid email address", cfg.Platform.SupportEmail))
	}
	if cfg.Platform.MaxProjectsPerUser < 1 {
		result.Errors = append(result.Errors, "platform.maxProjectsPerUser must be at least 1")
	}
	if cfg.Platform.SessionTimeoutMinutes < minSessionTimeoutMinutes || cfg.Platform.SessionTimeoutMinutes > maxSessionTimeoutMinutes {
		result.Errors = append(result.Errors, fmt.Sprintf("platform.sessionTimeoutMinutes must be between %d and %d", minSessionTimeoutMinutes, maxSessionTimeoutMinutes))
	}
	if cfg.Platform.BaseURL != "" && !isValidURL(cfg.Platform.BaseURL) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("platform.baseURL %q is not a valid URL", cfg.Platform.BaseURL))
	}

	if cfg.Security.MaxLoginAttempts < 1 {
		result.Warnings = append(result.Warnings, "security.maxLoginAttempts is not set")
	}
	if cfg.Security.PasswordPolicy.MinLength < 8 {
		result.Warnings = append(result.Warnings, "security.passwordPolicy.minLength below 8 is weaker than the platform baseline")
	}

	if cfg.Performance.RequestTimeoutSeconds < 1 || cfg.Performance.RequestTimeoutSeconds > 300 {
		result.Warnings = append(result.Warnings, "performance.requestTimeoutSeconds is outside the 1-300s band")
	}

	switch cfg.Monitoring.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result.Warnings = append(result.Warnings, fmt.Sprintf("monitoring.logLevel %q is not a known level", cfg.Monitoring.LogLevel))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// ValidateAll validates the Global record and every project, then
// applies cross-record checks: duplicate project ids (error, attributed
// to every offender) and duplicate primary endpoints (warning). The
// health score is 100 at zero issues and trends to 0 as issues
// approach the per-record budget.
func (v *Validator) ValidateAll(global *models.GlobalConfig, projects []*models.ProjectConfig) models.ValidationSummary {
	summary := models.ValidationSummary{
		Global:    v.ValidateGlobal(global),
		Projects:  make([]models.ProjectValidation, 0, len(projects)),
		CheckedAt: time.Now().UTC(),
	}

	for _, p := range projects {
		pv := models.ProjectValidation{Result: v.ValidateProject(p)}
		if p != nil {
			pv.ProjectID = p.ID
		}
		summary.Projects = append(summary.Projects, pv)
	}

	idCounts := make(map[string]int)
	endpointCounts := make(map[string]int)
	for _, p := range projects {
		if p == nil {
			continue
		}
		idCounts[p.ID]++
		if p.Technical.Endpoints.Primary != "" {
			endpointCounts[p.Technical.Endpoints.Primary]++
		}
	}
	for i, p := range projects {
		if p == nil {
			continue
		}
		if idCounts[p.ID] > 1 {
			summary.Projects[i].Result.Errors = append(summary.Projects[i].Result.Errors,
				fmt.Sprintf("project id %q is used by multiple projects", p.ID))
			summary.Projects[i].Result.IsValid = false
		}
		if ep := p.Technical.Endpoints.Primary; ep != "" && endpointCounts[ep] > 1 {
			summary.Projects[i].Result.Warnings = append(summary.Projects[i].Result.Warnings,
				fmt.Sprintf("primary endpoint %q is shared with another project", ep))
		}
	}

	total := summary.Global.IssueCount()
	for _, pv := range summary.Projects {
		total += pv.Result.IssueCount()
	}
	summary.TotalIssues = total

	ceiling := (len(projects) + 1) * issueBudgetPerRecord
	health := 100 - int(math.Round(float64(total)/float64(ceiling)*100))
	if health < 0 {
		health = 0
	}
	summary.OverallHealth = health
	return summary
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
