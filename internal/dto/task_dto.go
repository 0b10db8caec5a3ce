package dto

import (
	"time"

	"github.com/google/uuid"
)

// LabelDTO is a coloured tag on a task
type LabelDTO struct {
	Name  string `json:"name" binding:"required,max=50" example:"bug"`
	Color string `json:"color" binding:"omitempty,hexcolor" example:"#ef4444"`
}

// ChecklistItemDTO is one line of a task checklist
type ChecklistItemDTO struct {
	ID   string `json:"id" example:"1"`
	Text string `json:"text" binding:"required,max=500" example:"Write tests"`
	Done bool   `json:"done"`
}

// CreateTaskRequest represents the request to create a task. The task is
// appended to the end of the column. Status defaults to the column name.
type CreateTaskRequest struct {
	Title       string             `json:"title" binding:"required,min=1,max=255" example:"Buy milk"`
	Description string             `json:"description" binding:"max=10000"`
	Status      string             `json:"status" binding:"max=100"`
	Priority    string             `json:"priority" binding:"omitempty,oneof=Low Medium High" example:"Medium"`
	DueDate     *time.Time         `json:"dueDate,omitempty" example:"2026-11-01T00:00:00Z"`
	Labels      []LabelDTO         `json:"labels" binding:"omitempty,dive"`
	Checklist   []ChecklistItemDTO `json:"checklist" binding:"omitempty,dive"`
	Stickers    []string           `json:"stickers" binding:"omitempty,dive,max=32"`
}

// UpdateTaskRequest is a partial content update. Position is changed only
// through the move endpoint. ClearDueDate removes the due date.
type UpdateTaskRequest struct {
	Title        *string             `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string             `json:"description" binding:"omitempty,max=10000"`
	Status       *string             `json:"status" binding:"omitempty,max=100"`
	Priority     *string             `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	DueDate      *time.Time          `json:"dueDate,omitempty"`
	ClearDueDate bool                `json:"clearDueDate"`
	Labels       *[]LabelDTO         `json:"labels"`
	Checklist    *[]ChecklistItemDTO `json:"checklist"`
	Stickers     *[]string           `json:"stickers"`
}

// MoveTaskRequest moves a task to a position in the same or another column
type MoveTaskRequest struct {
	ColumnID uuid.UUID `json:"columnId" binding:"required"`
	Order    *int      `json:"order" binding:"required" example:"0"`
}

// TaskResponse is the full view of a task
type TaskResponse struct {
	ID          uuid.UUID          `json:"taskId"`
	ColumnID    uuid.UUID          `json:"columnId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	Labels      []LabelDTO         `json:"labels"`
	Checklist   []ChecklistItemDTO `json:"checklist"`
	Stickers    []string           `json:"stickers"`
	Order       int                `json:"order"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
