package models

import "time"

// Data classification levels accepted by compliance settings.
// The set is closed; anything else fails validation.
const (
	ClassificationPublic     = "public"
	ClassificationInternal   = "internal"
	ClassificationProtectedA = "protected-a"
	ClassificationProtectedB = "protected-b"
)

// DataClassifications lists every accepted classification value.
var DataClassifications = []string{
	ClassificationPublic,
	ClassificationInternal,
	ClassificationProtectedA,
	ClassificationProtectedB,
}

// ProjectConfig is the full per-tenant configuration record.
// ID is unique across all projects; the Extension block is only
// present for projects with jurisdiction-specific requirements.
type ProjectConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`

	Business   BusinessConfig   `json:"business"`
	Technical  TechnicalConfig  `json:"technical"`
	UI         UIConfig         `json:"uiConfig"`
	Compliance ComplianceConfig `json:"compliance"`
	Extension  *DomainExtension `json:"extension,omitempty"`

	SchemaVersion string    `json:"schemaVersion"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type BusinessConfig struct {
	Domain        string `json:"domain"`
	Owner         string `json:"owner"`
	CostCenter    string `json:"costCenter"`
	Department    string `json:"department"`
	ContactEmail  string `json:"contactEmail"`
	BusinessCase  string `json:"businessCase,omitempty"`
	ExpectedUsers int    `json:"expectedUsers"`
	LaunchDate    string `json:"launchDate,omitempty"`
}

type TechnicalConfig struct {
	Endpoints     EndpointConfig      `json:"endpoints"`
	DataPartition DataPartitionConfig `json:"dataPartition"`
	SearchIndex   SearchIndexConfig   `json:"searchIndex"`
	AI            AIConfig            `json:"ai"`
}

type EndpointConfig struct {
	Primary        string `json:"primary"`
	Backup         string `json:"backup,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	MaxRetries     int    `json:"maxRetries"`
}

type DataPartitionConfig struct {
	Container    string `json:"container"`
	PartitionKey string `json:"partitionKey"`
	Throughput   int    `json:"throughput"`
}

type SearchIndexConfig struct {
	IndexName      string `json:"indexName"`
	SemanticConfig string `json:"semanticConfig"`
	TopK           int    `json:"topK"`
}

type AIConfig struct {
	Model             string            `json:"model"`
	MaxTokens         int               `json:"maxTokens"`
	Temperature       float64           `json:"temperature"`
	SystemPrompt      string            `json:"systemPrompt"`
	ResponseTemplates map[string]string `json:"responseTemplates,omitempty"`
}

type UIConfig struct {
	Theme    ThemeConfig     `json:"theme"`
	Branding BrandingConfig  `json:"branding"`
	Layout   LayoutConfig    `json:"layout"`
	Features map[string]bool `json:"features,omitempty"`
}

// ThemeConfig colors are hex strings ("#0f62fe"); FontSize is the
// base size in px.
type ThemeConfig struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	FontSize  int    `json:"fontSize"`
}

type BrandingConfig struct {
	Title          string `json:"title"`
	Tagline        string `json:"tagline"`
	WelcomeMessage string `json:"welcomeMessage"`
}

type LayoutConfig struct {
	SidebarWidth int `json:"sidebarWidth"`
	MaxChatWidth int `json:"maxChatWidth"`
}

type ComplianceConfig struct {
	DataClassification string              `json:"dataClassification"`
	RetentionPolicy    RetentionPolicy     `json:"retentionPolicy"`
	AuditEnabled       bool                `json:"auditEnabled"`
	AccessControl      AccessControlConfig `json:"accessControl"`
}

// RetentionPolicy values are day counts; every category must be >= 1.
type RetentionPolicy struct {
	ChatHistory int `json:"chatHistory"`
	Documents   int `json:"documents"`
	AuditLogs   int `json:"auditLogs"`
}

type AccessControlConfig struct {
	RestrictByTime bool     `json:"restrictByTime"`
	AllowedHours   string   `json:"allowedHours,omitempty"` // "08:00-18:00"
	RestrictByIP   bool     `json:"restrictByIP"`
	AllowedCIDRs   []string `json:"allowedCIDRs,omitempty"`
}

// DomainExtension carries jurisdiction-specific settings for projects
// that serve regulated program areas.
type DomainExtension struct {
	Jurisdictions     []string           `json:"jurisdictions"`
	ExternalDatabases []ExternalDatabase `json:"externalDatabases,omitempty"`
}

type ExternalDatabase struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Clone returns a deep copy safe to hand to callers.
func (p *ProjectConfig) Clone() *ProjectConfig {
	return deepCopy(p)
}
