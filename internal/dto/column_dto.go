package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateColumnRequest represents the request to add a column to a board.
// Order is the zero-based target position; omitted appends.
type CreateColumnRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100" example:"To Do"`
	Order *int   `json:"order" example:"0"`
}

// UpdateColumnRequest renames and/or repositions a column
type UpdateColumnRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100" example:"Doing"`
	Order *int    `json:"order" example:"1"`
}

// MoveColumnRequest repositions a column within its board
type MoveColumnRequest struct {
	Order *int `json:"order" binding:"required" example:"2"`
}

// ColumnResponse is a column without its tasks
type ColumnResponse struct {
	ID        uuid.UUID `json:"columnId"`
	BoardID   uuid.UUID `json:"boardId"`
	Name      string    `json:"name" example:"To Do"`
	Order     int       `json:"order" example:"0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ColumnDetailResponse is a column with its tasks sorted by order
type ColumnDetailResponse struct {
	ColumnResponse
	Tasks []TaskResponse `json:"tasks"`
}
