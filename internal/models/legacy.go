package models

// LegacyProjectRecord is the pre-versioning project shape: a flat
// entry from the unversioned array the console stored before the
// schema envelope was introduced. Only the fields the old console
// actually wrote are modeled; anything else in the payload is
// ignored.
type LegacyProjectRecord struct {
	ID       string             `json:"id"`
	Label    string             `json:"label"`
	Endpoint string             `json:"endpoint,omitempty"`
	Owner    string             `json:"owner,omitempty"`
	Domain   string             `json:"domain,omitempty"`
	Contact  string             `json:"contact,omitempty"`
	Theme    *LegacyTheme       `json:"theme,omitempty"`
	RAGIndex *LegacySearchIndex `json:"ragIndex,omitempty"`
}

type LegacyTheme struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

type LegacySearchIndex struct {
	IndexName      string `json:"indexName,omitempty"`
	SemanticConfig string `json:"semanticConfig,omitempty"`
	TopK           int    `json:"topK,omitempty"`
}
