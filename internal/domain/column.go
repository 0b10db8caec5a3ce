package domain

import "github.com/google/uuid"

// Column is an ordered lane within a board. Names are unique per board.
type Column struct {
	BaseModel
	BoardID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_columns_board_name,priority:1;index:idx_columns_board_order,priority:1" json:"boardId"`
	Name    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_columns_board_name,priority:2" json:"name"`
	Order   int       `gorm:"column:sort_order;not null;default:0;index:idx_columns_board_order,priority:2" json:"order"`
	Tasks   []Task    `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName specifies the table name for Column
func (Column) TableName() string {
	return "columns"
}

func (c *Column) GetOrder() int  { return c.Order }
func (c *Column) SetOrder(o int) { c.Order = o }
