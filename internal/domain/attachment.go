package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentStatus represents the status of an uploaded file
type AttachmentStatus string

const (
	AttachmentStatusTemp      AttachmentStatus = "TEMP"
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED"
)

// Attachment is a file stored in object storage. Profile pictures start as
// TEMP when a presigned upload URL is issued and become CONFIRMED once set on
// the user. Expired TEMP rows are swept by the cleanup job.
type Attachment struct {
	BaseModel
	OwnerID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_owner_id" json:"ownerId"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"fileName"`
	FileKey     string           `gorm:"type:text;not null" json:"fileKey"` // S3 key, not a URL
	FileSize    int64            `gorm:"not null" json:"fileSize"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"contentType"`
	ExpiresAt   *time.Time       `gorm:"type:timestamp;index:idx_attachments_expires_at" json:"expiresAt"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
