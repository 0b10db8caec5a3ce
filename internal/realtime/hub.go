package realtime

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
	broadcastQueue = 256
)

// Recorder receives hub statistics. *metrics.Metrics satisfies it.
type Recorder interface {
	SetWSConnections(count int)
	RecordEventPublished(eventType string)
}

// Client is one subscriber connection to a board room
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	boardID uuid.UUID
	userID  uuid.UUID
}

// Hub fans board events out to the connections subscribed to that board.
// The run goroutine is the only owner of the room map.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once
	count      atomic.Int64
	logger     *zap.Logger
	recorder   Recorder
}

// NewHub creates a hub; call Run in its own goroutine. recorder may be nil.
func NewHub(logger *zap.Logger, recorder Recorder) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, broadcastQueue),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     logger,
		recorder:   recorder,
	}
}

// Run processes registrations and broadcasts until Close is called
func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case client := <-h.register:
			room := h.rooms[client.boardID]
			if room == nil {
				room = make(map[*Client]struct{})
				h.rooms[client.boardID] = room
			}
			room[client] = struct{}{}
			h.setCount(h.count.Add(1))
			h.logger.Debug("Board feed client registered",
				zap.String("board_id", client.boardID.String()),
				zap.String("user_id", client.userID.String()))

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.broadcast:
			h.deliver(event)

		case <-h.done:
			for _, room := range h.rooms {
				for client := range room {
					close(client.send)
				}
			}
			h.rooms = make(map[uuid.UUID]map[*Client]struct{})
			h.count.Store(0)
			h.setCount(0)
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	room, ok := h.rooms[client.boardID]
	if !ok {
		return
	}
	if _, exists := room[client]; !exists {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.boardID)
	}
	h.setCount(h.count.Add(-1))
}

func (h *Hub) deliver(event Event) {
	room := h.rooms[event.BoardID]
	if len(room) == 0 {
		return
	}
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to encode board event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	for client := range room {
		select {
		case client.send <- message:
		default:
			// buffer full, drop the slow client
			h.logger.Warn("Dropping slow board feed client",
				zap.String("board_id", client.boardID.String()),
				zap.String("user_id", client.userID.String()))
			h.remove(client)
		}
	}
}

func (h *Hub) setCount(n int64) {
	if h.recorder != nil {
		h.recorder.SetWSConnections(int(n))
	}
}

// Publish queues event for delivery. It never blocks; when the queue is
// full or the hub is closed the event is dropped.
func (h *Hub) Publish(event Event) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- event:
		if h.recorder != nil {
			h.recorder.RecordEventPublished(event.Type)
		}
	default:
		h.logger.Warn("Board event queue full, dropping event",
			zap.String("type", event.Type),
			zap.String("board_id", event.BoardID.String()))
	}
}

// Connections returns the number of registered clients
func (h *Hub) Connections() int {
	return int(h.count.Load())
}

// Close stops Run and disconnects every client. Safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	<-h.stopped
}

// ServeClient subscribes conn to boardID and starts its pumps. It returns
// immediately; the connection lives until either side closes it.
func (h *Hub) ServeClient(conn *websocket.Conn, boardID, userID uuid.UUID) {
	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		boardID: boardID,
		userID:  userID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only services control frames; subscribers never send data
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Board feed read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
