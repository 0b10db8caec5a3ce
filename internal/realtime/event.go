package realtime

import (
	"time"

	"github.com/google/uuid"
)

// Event types pushed to board subscribers
const (
	EventBoardUpdated  = "board.updated"
	EventBoardDeleted  = "board.deleted"
	EventColumnCreated = "column.created"
	EventColumnUpdated = "column.updated"
	EventColumnMoved   = "column.moved"
	EventColumnDeleted = "column.deleted"
	EventTaskCreated   = "task.created"
	EventTaskUpdated   = "task.updated"
	EventTaskMoved     = "task.moved"
	EventTaskDeleted   = "task.deleted"
)

// Event is one committed change to a board
type Event struct {
	Type       string      `json:"type"`
	BoardID    uuid.UUID   `json:"boardId"`
	EntityID   uuid.UUID   `json:"entityId"`
	ActorID    uuid.UUID   `json:"actorId"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NewEvent stamps an event with the current time
func NewEvent(eventType string, boardID, entityID, actorID uuid.UUID, payload interface{}) Event {
	return Event{
		Type:       eventType,
		BoardID:    boardID,
		EntityID:   entityID,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
