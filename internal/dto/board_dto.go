package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"Personal"`
}

// UpdateBoardRequest represents the request to rename a board
type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"Home"`
}

// BoardResponse is a board without its contents
type BoardResponse struct {
	ID        uuid.UUID `json:"boardId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name      string    `json:"name" example:"Personal"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardDetailResponse is a board with its columns and tasks, each sorted by order
type BoardDetailResponse struct {
	BoardResponse
	Columns []ColumnDetailResponse `json:"columns"`
}
