package domain

import "github.com/google/uuid"

// Board is a user's Kanban board
type Board struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_boards_user_id" json:"userId"`
	Name    string    `gorm:"type:varchar(100);not null" json:"name"`
	Columns []Column  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}
