package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/service"
)

// ColumnHandler handles column requests
type ColumnHandler struct {
	columnService service.ColumnService
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columnService service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columnService: columnService}
}

// CreateColumn godoc
// @Summary      Add a column to a board
// @Description  Inserts at the given order, shifting later columns right; appends when order is omitted
// @Tags         columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateColumnRequest true "Column"
// @Success      201 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse "Column name already used on this board"
// @Router       /boards/{boardId}/columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(c.Request.Context(), authData.UserID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, column)
}

// ListColumns godoc
// @Summary      List a board's columns
// @Tags         columns
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{boardId}/columns [get]
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	columns, err := h.columnService.ListColumns(c.Request.Context(), authData.UserID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, columns)
}

// UpdateColumn godoc
// @Summary      Rename or reposition a column
// @Tags         columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.UpdateColumnRequest true "Changes"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /columns/{columnId} [put]
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	column, err := h.columnService.UpdateColumn(c.Request.Context(), authData.UserID, columnID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, column)
}

// MoveColumn godoc
// @Summary      Move a column
// @Description  Out of range targets are clamped to the first or last slot
// @Tags         columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.MoveColumnRequest true "Target order"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /columns/{columnId}/move [put]
func (h *ColumnHandler) MoveColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.MoveColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	column, err := h.columnService.MoveColumn(c.Request.Context(), authData.UserID, columnID, *req.Order)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, column)
}

// DeleteColumn godoc
// @Summary      Delete a column
// @Description  Removes the column and its tasks; later columns shift left
// @Tags         columns
// @Produce      json
// @Security     BearerAuth
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /columns/{columnId} [delete]
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(c.Request.Context(), authData.UserID, columnID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Column deleted successfully"})
}
