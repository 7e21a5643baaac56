package models

import "time"

// CurrentSchemaVersion marks records written by this release of the
// console. The migration engine stamps it onto every record it
// produces.
const CurrentSchemaVersion = "2.0.0"

// DefaultGlobalConfig returns the built-in platform defaults used
// when no persisted Global record exists (first start, or a corrupt
// store).
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Platform: PlatformSettings{
			Name:                  "EVA Digital Assistant",
			Version:               "2.0.0",
			SupportEmail:          "eva-support@gov.example.ca",
			BaseURL:               "https://eva.gov.example.ca",
			MaxProjectsPerUser:    10,
			SessionTimeoutMinutes: 60,
		},
		Security: SecurityPolicy{
			RequireMFA: true,
			PasswordPolicy: PasswordPolicy{
				MinLength:      12,
				RequireSymbols: true,
				RequireNumbers: true,
				ExpiryDays:     90,
			},
			MaxLoginAttempts: 5,
			AllowedDomains:   []string{"gov.example.ca"},
		},
		Performance: PerformanceSettings{
			RequestTimeoutSeconds: 30,
			MaxRetries:            3,
			CacheTTLSeconds:       300,
			BatchSize:             25,
		},
		Monitoring: MonitoringSettings{
			TelemetryEnabled: true,
			LogLevel:         "info",
		},
		Features: map[string]bool{
			"chatExport":     true,
			"documentUpload": true,
			"feedbackSurvey": true,
			"betaAssistants": false,
			"usageDashboard": true,
		},
		SchemaVersion: CurrentSchemaVersion,
		UpdatedAt:     time.Now().UTC(),
	}
}

// DefaultUserConfig returns the skeleton User record created the
// first time an operator is seen.
func DefaultUserConfig(operatorID string) *UserConfig {
	return &UserConfig{
		OperatorID: operatorID,
		Preferences: UserPreferences{
			Language: "en",
			Theme:    "system",
			FontSize: 14,
			Density:  "comfortable",
			Notifications: NotificationSettings{
				Email:  true,
				InApp:  true,
				Digest: false,
			},
		},
		ProjectAccess:  map[string]ProjectAccess{},
		Customizations: UserCustomizations{},
		UpdatedAt:      time.Now().UTC(),
	}
}

// DefaultProjects returns the built-in templates for the console's
// standing tenants. The migration engine backfills any of these that
// are missing from the store and uses them as merge bases for legacy
// records with matching ids.
func DefaultProjects() []*ProjectConfig {
	return []*ProjectConfig{
		{
			ID:          "citizen-services",
			Name:        "citizen-services",
			DisplayName: "Citizen Services Assistant",
			Business: BusinessConfig{
				Domain:        "citizen-services.gov.example.ca",
				Owner:         "Service Delivery Branch",
				CostCenter:    "CS-1100",
				Department:    "Citizen Services",
				ContactEmail:  "cs-assistant@gov.example.ca",
				ExpectedUsers: 5000,
			},
			Technical: TechnicalConfig{
				Endpoints: EndpointConfig{
					Primary:        "https://api.eva.gov.example.ca/citizen-services",
					Backup:         "https://api-dr.eva.gov.example.ca/citizen-services",
					TimeoutSeconds: 30,
					MaxRetries:     3,
				},
				DataPartition: DataPartitionConfig{
					Container:    "citizen-services-data",
					PartitionKey: "/sessionId",
					Throughput:   400,
				},
				SearchIndex: SearchIndexConfig{
					IndexName:      "citizen-services-index",
					SemanticConfig: "default-semantic",
					TopK:           5,
				},
				AI: AIConfig{
					Model:        "gpt-4o",
					MaxTokens:    2048,
					Temperature:  0.2,
					SystemPrompt: "You are the Citizen Services assistant. Answer only from provided program documentation.",
				},
			},
			UI: UIConfig{
				Theme: ThemeConfig{
					Primary:   "#26374a",
					Secondary: "#335075",
					Accent:    "#af3c43",
					FontSize:  14,
				},
				Branding: BrandingConfig{
					Title:          "Citizen Services Assistant",
					Tagline:        "Answers about government programs and services",
					WelcomeMessage: "How can I help you with government services today?",
				},
				Layout: LayoutConfig{SidebarWidth: 280, MaxChatWidth: 860},
				Features: map[string]bool{
					"chatExport":     true,
					"documentUpload": false,
				},
			},
			Compliance: ComplianceConfig{
				DataClassification: ClassificationProtectedA,
				RetentionPolicy:    RetentionPolicy{ChatHistory: 30, Documents: 365, AuditLogs: 730},
				AuditEnabled:       true,
				AccessControl:      AccessControlConfig{},
			},
			SchemaVersion: CurrentSchemaVersion,
			UpdatedAt:     time.Now().UTC(),
		},
		{
			ID:          "permits",
			Name:        "permits",
			DisplayName: "Permits & Licensing Assistant",
			Business: BusinessConfig{
				Domain:        "permits.gov.example.ca",
				Owner:         "Regulatory Affairs",
				CostCenter:    "RA-2200",
				Department:    "Permits and Licensing",
				ContactEmail:  "permits-assistant@gov.example.ca",
				ExpectedUsers: 1200,
			},
			Technical: TechnicalConfig{
				Endpoints: EndpointConfig{
					Primary:        "https://api.eva.gov.example.ca/permits",
					TimeoutSeconds: 45,
					MaxRetries:     3,
				},
				DataPartition: DataPartitionConfig{
					Container:    "permits-data",
					PartitionKey: "/sessionId",
					Throughput:   400,
				},
				SearchIndex: SearchIndexConfig{
					IndexName:      "permits-index",
					SemanticConfig: "default-semantic",
					TopK:           8,
				},
				AI: AIConfig{
					Model:        "gpt-4o",
					MaxTokens:    4096,
					Temperature:  0.1,
					SystemPrompt: "You are the Permits and Licensing assistant. Cite the permit class and fee schedule for every answer.",
				},
			},
			UI: UIConfig{
				Theme: ThemeConfig{
					Primary:   "#1c578a",
					Secondary: "#26374a",
					Accent:    "#f3a845",
					FontSize:  14,
				},
				Branding: BrandingConfig{
					Title:          "Permits & Licensing Assistant",
					Tagline:        "Guidance on permits, licences, and fees",
					WelcomeMessage: "Ask me about permit requirements and application steps.",
				},
				Layout: LayoutConfig{SidebarWidth: 280, MaxChatWidth: 860},
			},
			Compliance: ComplianceConfig{
				DataClassification: ClassificationProtectedA,
				RetentionPolicy:    RetentionPolicy{ChatHistory: 90, Documents: 1825, AuditLogs: 730},
				AuditEnabled:       true,
				AccessControl: AccessControlConfig{
					RestrictByTime: true,
					AllowedHours:   "06:00-22:00",
				},
			},
			Extension: &DomainExtension{
				Jurisdictions: []string{"federal", "provincial"},
				ExternalDatabases: []ExternalDatabase{
					{
						Name:        "permit-registry",
						URL:         "https://registry.gov.example.ca/permits",
						Description: "Authoritative permit class registry",
					},
				},
			},
			SchemaVersion: CurrentSchemaVersion,
			UpdatedAt:     time.Now().UTC(),
		},
		{
			ID:          "benefits",
			Name:        "benefits",
			DisplayName: "Benefits Navigator",
			Business: BusinessConfig{
				Domain:        "benefits.gov.example.ca",
				Owner:         "Benefits Delivery",
				CostCenter:    "BD-3300",
				Department:    "Social Benefits",
				ContactEmail:  "benefits-assistant@gov.example.ca",
				ExpectedUsers: 8000,
			},
			Technical: TechnicalConfig{
				Endpoints: EndpointConfig{
					Primary:        "https://api.eva.gov.example.ca/benefits",
					Backup:         "https://api-dr.eva.gov.example.ca/benefits",
					TimeoutSeconds: 30,
					MaxRetries:     5,
				},
				DataPartition: DataPartitionConfig{
					Container:    "benefits-data",
					PartitionKey: "/sessionId",
					Throughput:   800,
				},
				SearchIndex: SearchIndexConfig{
					IndexName:      "benefits-index",
					SemanticConfig: "default-semantic",
					TopK:           5,
				},
				AI: AIConfig{
					Model:        "gpt-4o-mini",
					MaxTokens:    2048,
					Temperature:  0.2,
					SystemPrompt: "You are the Benefits Navigator. Never estimate entitlement amounts; link to the official calculator instead.",
				},
			},
			UI: UIConfig{
				Theme: ThemeConfig{
					Primary:   "#2e5339",
					Secondary: "#26374a",
					Accent:    "#d4a017",
					FontSize:  15,
				},
				Branding: BrandingConfig{
					Title:          "Benefits Navigator",
					Tagline:        "Find the benefits you may be eligible for",
					WelcomeMessage: "Tell me a bit about your situation and I can point you to relevant programs.",
				},
				Layout: LayoutConfig{SidebarWidth: 300, MaxChatWidth: 900},
				Features: map[string]bool{
					"feedbackSurvey": true,
				},
			},
			Compliance: ComplianceConfig{
				DataClassification: ClassificationProtectedB,
				RetentionPolicy:    RetentionPolicy{ChatHistory: 14, Documents: 365, AuditLogs: 2555},
				AuditEnabled:       true,
				AccessControl: AccessControlConfig{
					RestrictByIP: true,
					AllowedCIDRs: []string{"10.0.0.0/8", "192.168.0.0/16"},
				},
			},
			SchemaVersion: CurrentSchemaVersion,
			UpdatedAt:     time.Now().UTC(),
		},
	}
}

// DefaultProjectTemplate returns the built-in template with the given
// id, or nil if the id is not one of the standing tenants.
func DefaultProjectTemplate(id string) *ProjectConfig {
	for _, tpl := range DefaultProjects() {
		if tpl.ID == id {
			return tpl
		}
	}
	return nil
}
