package models

import "time"

// ValidationResult collects the issues found in a single record.
// Errors block import; warnings are advisory everywhere.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// IssueCount returns errors plus warnings.
func (r *ValidationResult) IssueCount() int {
	return len(r.Errors) + len(r.Warnings)
}

// ProjectValidation pairs a project id with its result so that
// cross-record issues (duplicate ids) can be attributed to every
// offending record rather than collapsing on a map key.
type ProjectValidation struct {
	ProjectID string           `json:"projectId"`
	Result    ValidationResult `json:"result"`
}

// ValidationSummary is the aggregate over the Global record and all
// project records, including cross-record checks and the derived
// health score.
type ValidationSummary struct {
	Global        ValidationResult    `json:"global"`
	Projects      []ProjectValidation `json:"projects"`
	TotalIssues   int                 `json:"totalIssues"`
	OverallHealth int                 `json:"overallHealth"`
	CheckedAt     time.Time           `json:"checkedAt"`
}
