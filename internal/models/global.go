package models

import "time"

// GlobalConfig holds platform-wide settings shared by every project.
// There is exactly one record per deployment; it is created from
// DefaultGlobalConfig when no persisted record exists.
type GlobalConfig struct {
	Platform    PlatformSettings    `json:"platform"`
	Security    SecurityPolicy      `json:"security"`
	Performance PerformanceSettings `json:"performance"`
	Monitoring  MonitoringSettings  `json:"monitoring"`
	Features    map[string]bool     `json:"features"`

	SchemaVersion string    `json:"schemaVersion"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type PlatformSettings struct {
	Name                  string `json:"name"`
	Version               string `json:"version"`
	SupportEmail          string `json:"supportEmail"`
	BaseURL               string `json:"baseURL"`
	MaxProjectsPerUser    int    `json:"maxProjectsPerUser"`
	SessionTimeoutMinutes int    `json:"sessionTimeoutMinutes"`
}

type SecurityPolicy struct {
	RequireMFA       bool           `json:"requireMFA"`
	PasswordPolicy   PasswordPolicy `json:"passwordPolicy"`
	MaxLoginAttempts int            `json:"maxLoginAttempts"`
	AllowedDomains   []string       `json:"allowedDomains"`
}

type PasswordPolicy struct {
	MinLength      int  `json:"minLength"`
	RequireSymbols bool `json:"requireSymbols"`
	RequireNumbers bool `json:"requireNumbers"`
	ExpiryDays     int  `json:"expiryDays"`
}

type PerformanceSettings struct {
	RequestTimeoutSeconds int `json:"requestTimeoutSeconds"`
	MaxRetries            int `json:"maxRetries"`
	CacheTTLSeconds       int `json:"cacheTTLSeconds"`
	BatchSize             int `json:"batchSize"`
}

type MonitoringSettings struct {
	TelemetryEnabled bool   `json:"telemetryEnabled"`
	LogLevel         string `json:"logLevel"`
}

// Clone returns a deep copy safe to hand to callers.
func (g *GlobalConfig) Clone() *GlobalConfig {
	return deepCopy(g)
}
