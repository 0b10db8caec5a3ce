package domain

import "github.com/google/uuid"

// Theme is the UI colour scheme preference
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// IsValid reports whether t is a known theme
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

const DefaultAccentColor = "#f97316"

// UserSettings holds per-user display preferences
type UserSettings struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_settings_user_id" json:"userId"`
	Theme        Theme     `gorm:"type:varchar(20);not null;default:'system'" json:"theme"`
	AccentColor  string    `gorm:"type:varchar(7);not null;default:'#f97316'" json:"accentColor"`
	CompactCards bool      `gorm:"not null;default:false" json:"compactCards"`
}

// TableName specifies the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultSettings returns the settings a new user starts with
func DefaultSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:      userID,
		Theme:       ThemeSystem,
		AccentColor: DefaultAccentColor,
	}
}
