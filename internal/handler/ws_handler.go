package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/service"
)

// WSHandler upgrades board subscriptions onto the realtime hub
type WSHandler struct {
	boardService service.BoardService
	hub          *realtime.Hub
	upgrader     websocket.Upgrader
	logger       *zap.Logger
}

// NewWSHandler creates a WSHandler. Connections are authenticated by token,
// so any origin may open one.
func NewWSHandler(boardService service.BoardService, hub *realtime.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		boardService: boardService,
		hub:          hub,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// SubscribeBoard godoc
// @Summary      Subscribe to a board's changes
// @Description  Upgrades to a WebSocket that receives an event for every change made to the board
// @Tags         realtime
// @Param        boardId path string true "Board ID (UUID)"
// @Param        token query string true "Access token"
// @Success      101
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /ws/boards/{boardId} [get]
func (h *WSHandler) SubscribeBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if _, err := h.boardService.GetBoard(c.Request.Context(), authData.UserID, boardID); err != nil {
		handleServiceError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	h.hub.ServeClient(conn, boardID, authData.UserID)
}
