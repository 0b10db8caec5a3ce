package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID              uuid.UUID `json:"userId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Email           string    `json:"email" example:"ada@example.com"`
	DisplayName     string    `json:"displayName" example:"Ada"`
	Bio             string    `json:"bio"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=100" example:"Ada L."`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
}

// SettingsResponse holds the user's display preferences
type SettingsResponse struct {
	Theme        string `json:"theme" example:"system"`
	AccentColor  string `json:"accentColor" example:"#f97316"`
	CompactCards bool   `json:"compactCards"`
}

// UpdateSettingsRequest represents a partial settings update
type UpdateSettingsRequest struct {
	Theme        *string `json:"theme" binding:"omitempty,oneof=light dark system"`
	AccentColor  *string `json:"accentColor" binding:"omitempty,hexcolor"`
	CompactCards *bool   `json:"compactCards"`
}

// PresignedURLRequest asks for an upload URL for a new profile image
type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255" example:"me.png"`
	ContentType string `json:"contentType" binding:"required" example:"image/png"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1" example:"102400"`
}

// PresignedURLResponse carries the upload URL and the pending attachment
type PresignedURLResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	UploadURL    string    `json:"uploadUrl"`
	FileKey      string    `json:"fileKey"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ConfirmProfileImageRequest sets an uploaded attachment as the profile image
type ConfirmProfileImageRequest struct {
	AttachmentID uuid.UUID `json:"attachmentId" binding:"required"`
}
