package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRecorder struct {
	mu          sync.Mutex
	connections int
	published   map[string]int
}

func (r *fakeRecorder) SetWSConnections(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections = count
}

func (r *fakeRecorder) RecordEventPublished(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.published == nil {
		r.published = make(map[string]int)
	}
	r.published[eventType]++
}

// newTestServer serves /{boardId} and subscribes every connection to it
func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		boardID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil {
			http.Error(w, "bad board", http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeClient(conn, boardID, uuid.New())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, boardID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + boardID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func startHub(t *testing.T, rec Recorder) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop(), rec)
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func waitForConnections(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Connections() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DeliversToBoardRoomOnly(t *testing.T) {
	rec := &fakeRecorder{}
	hub := startHub(t, rec)
	srv := newTestServer(t, hub)

	board, other := uuid.New(), uuid.New()
	subscriber := dial(t, srv, board)
	bystander := dial(t, srv, other)
	waitForConnections(t, hub, 2)

	taskID, actor := uuid.New(), uuid.New()
	hub.Publish(NewEvent(EventTaskMoved, board, taskID, actor, map[string]int{"order": 0}))

	_ = subscriber.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := subscriber.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, EventTaskMoved, got.Type)
	assert.Equal(t, board, got.BoardID)
	assert.Equal(t, taskID, got.EntityID)
	assert.Equal(t, actor, got.ActorID)
	assert.False(t, got.OccurredAt.IsZero())

	_ = bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bystander.ReadMessage()
	assert.Error(t, err, "a different board's subscriber receives nothing")

	rec.mu.Lock()
	assert.Equal(t, 1, rec.published[EventTaskMoved])
	rec.mu.Unlock()
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	rec := &fakeRecorder{}
	hub := startHub(t, rec)
	srv := newTestServer(t, hub)

	conn := dial(t, srv, uuid.New())
	waitForConnections(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForConnections(t, hub, 0)

	rec.mu.Lock()
	assert.Equal(t, 0, rec.connections)
	rec.mu.Unlock()
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	go hub.Run()
	srv := newTestServer(t, hub)

	conn := dial(t, srv, uuid.New())
	waitForConnections(t, hub, 1)

	hub.Close()
	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Equal(t, 0, hub.Connections())

	// publishing after close is a silent no-op
	assert.NotPanics(t, func() {
		hub.Publish(NewEvent(EventBoardUpdated, uuid.New(), uuid.New(), uuid.New(), nil))
	})
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := startHub(t, nil)
	for i := 0; i < broadcastQueue*2; i++ {
		hub.Publish(NewEvent(EventTaskCreated, uuid.New(), uuid.New(), uuid.New(), nil))
	}
}
