package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Priority is a task's urgency level
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a card within a column
type Task struct {
	BaseModel
	ColumnID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_column_order,priority:1" json:"columnId"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(100)" json:"status"`
	Priority    Priority       `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	DueDate     *time.Time     `gorm:"type:timestamp;index:idx_tasks_due_date" json:"dueDate"`
	Labels      datatypes.JSON `gorm:"type:jsonb" json:"labels"`
	Checklist   datatypes.JSON `gorm:"type:jsonb" json:"checklist"`
	Stickers    datatypes.JSON `gorm:"type:jsonb" json:"stickers"`
	Order       int            `gorm:"column:sort_order;not null;default:0;index:idx_tasks_column_order,priority:2" json:"order"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

func (t *Task) GetOrder() int  { return t.Order }
func (t *Task) SetOrder(o int) { t.Order = o }

// TaskLabel is a coloured tag attached to a task
type TaskLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ChecklistItem is one line of a task checklist
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
