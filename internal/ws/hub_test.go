package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zapzap/backend/internal/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestClient(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		go NewClient(hub, conn, r.URL.Query().Get("user")).Run()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	waitForUser(t, hub, userID)
	return conn
}

func waitForUser(t *testing.T, hub *Hub, userID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, id := range hub.ConnectedUsers() {
			if id == userID {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %s never registered", userID)
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestHubPushesToRecipients(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "u1")

	msg := &model.Message{ID: "m1", SenderID: "u2", Content: "hi", ChatType: model.ChatTypePrivate, TargetID: "u1"}
	hub.Notify([]string{"u1"}, msg)

	ev := readEvent(t, conn)
	assert.Equal(t, EventTypeMessage, ev.Type)
	require.NotNil(t, ev.Message)
	assert.Equal(t, "m1", ev.Message.ID)
	assert.Equal(t, "hi", ev.Message.Content)

	assert.Equal(t, int64(1), hub.metrics.MessagesSent.Load())
}

func TestHubSkipsUnconnectedUsers(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "u1")

	// u2 has no connection; only u1 receives anything.
	hub.Notify([]string{"u1", "u2"}, &model.Message{ID: "m1"})

	ev := readEvent(t, conn)
	assert.Equal(t, "m1", ev.Message.ID)
	assert.Equal(t, int64(1), hub.metrics.MessagesSent.Load())
}

func TestHubDeliversToEveryConnectionOfAUser(t *testing.T) {
	hub := NewHub()
	first := dialTestClient(t, hub, "u1")
	second := dialTestClient(t, hub, "u1")

	hub.Notify([]string{"u1"}, &model.Message{ID: "m1"})

	assert.Equal(t, "m1", readEvent(t, first).Message.ID)
	assert.Equal(t, "m1", readEvent(t, second).Message.ID)
}

func TestHubDedupesRecipientList(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "u1")

	// The same user listed twice (sender and target of a self-message)
	// still gets exactly one event.
	hub.Notify([]string{"u1", "u1"}, &model.Message{ID: "m1"})

	assert.Equal(t, "m1", readEvent(t, conn).Message.ID)
	assert.Equal(t, int64(1), hub.metrics.MessagesSent.Load())
}

func TestHubUnregisterRemovesUser(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "u1")

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(hub.ConnectedUsers()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("client never unregistered")
}
