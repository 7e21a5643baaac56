package models

import "time"

// BackupFormatVersion is written into every backup envelope; import
// accepts any envelope carrying a version string, the value is kept
// for forward compatibility.
const BackupFormatVersion = "1.0.0"

// ConfigBackup is the immutable snapshot bundle written under a
// timestamp-derived key and offered for download on export.
type ConfigBackup struct {
	Version           string            `json:"version"`
	Timestamp         time.Time         `json:"timestamp"`
	Metadata          BackupInfo        `json:"metadata"`
	GlobalConfig      *GlobalConfig     `json:"globalConfig"`
	ProjectConfigs    []*ProjectConfig  `json:"projectConfigs"`
	ValidationSummary ValidationSummary `json:"validationSummary"`
}

type BackupInfo struct {
	Description string `json:"description,omitempty"`
	Creator     string `json:"creator"`
	Platform    string `json:"platform"`
}

// BackupMetadata is the listing entry for a stored backup. Valid is
// derived from the snapshot's health score at creation time.
type BackupMetadata struct {
	Key          string    `json:"key"`
	Timestamp    time.Time `json:"timestamp"`
	Description  string    `json:"description,omitempty"`
	Size         int       `json:"size"`
	Valid        bool      `json:"valid"`
	ProjectCount int       `json:"projectCount"`
}
