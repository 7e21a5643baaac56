package models

import "time"

// Session identifies the operator making a call. Roles arrive
// already resolved by the identity layer; this package never
// authenticates anyone.
type Session struct {
	OperatorID string   `json:"operatorId"`
	Roles      []string `json:"roles,omitempty"`
}

// UserConfig holds one operator's preferences and per-project access
// grants. Keys of ProjectAccess should reference existing project ids;
// this is checked opportunistically by validation, not enforced on
// write.
type UserConfig struct {
	OperatorID     string                   `json:"operatorId"`
	Preferences    UserPreferences          `json:"preferences"`
	ProjectAccess  map[string]ProjectAccess `json:"projectAccess"`
	Customizations UserCustomizations       `json:"customizations"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type UserPreferences struct {
	Language      string               `json:"language"`
	Theme         string               `json:"theme"`
	FontSize      int                  `json:"fontSize"`
	Density       string               `json:"density"`
	Notifications NotificationSettings `json:"notifications"`
}

type NotificationSettings struct {
	Email  bool `json:"email"`
	InApp  bool `json:"inApp"`
	Digest bool `json:"digest"`
}

type ProjectAccess struct {
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions"`
	LastAccessed time.Time `json:"lastAccessed"`
}

type UserCustomizations struct {
	FavoriteProjects []string `json:"favoriteProjects,omitempty"`
	RecentQueries    []string `json:"recentQueries,omitempty"`
	SavedSearches    []string `json:"savedSearches,omitempty"`
}

// Clone returns a deep copy safe to hand to callers.
func (u *UserConfig) Clone() *UserConfig {
	return deepCopy(u)
}
