package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.RegisterClient(conn, r.URL.Query().Get("kind"))
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLeaderboardChangedReachesMatchingClients(t *testing.T) {
	hub, url := startHub(t)

	daily := dial(t, url+"?kind=daily")
	rush := dial(t, url+"?kind=timeattack")

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	hub.LeaderboardChanged("daily")

	require.NoError(t, daily.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := daily.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "leaderboard_changed", msg.Type)

	require.NoError(t, rush.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = rush.ReadMessage()
	assert.Error(t, err, "mismatched kind filter receives nothing")
}

func TestLeaderboardChangedReachesUnfilteredClients(t *testing.T) {
	hub, url := startHub(t)

	all := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.LeaderboardChanged("timeattack")

	require.NoError(t, all.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := all.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "leaderboard_changed", msg.Type)

	payload, err := json.Marshal(msg.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"timeattack"}`, string(payload))
}
