package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/league-brackets/realtime"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketHandler_ReceivesSeasonEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	r := chi.NewRouter()
	r.Get("/ws/seasons/{seasonID}", NewWebSocketHandler(hub, []string{"*"}, logger).ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/seasons/s1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return hub.RoomSize(realtime.SeasonRoom("s1")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish("s1", realtime.MessageBracketGenerated, map[string]int{"created": 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]int `json:"payload"`
		RoomID  string         `json:"roomId"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, realtime.MessageBracketGenerated, msg.Type)
	assert.Equal(t, 3, msg.Payload["created"])
	assert.Equal(t, "season_s1", msg.RoomID)
}

func TestWebSocketHandler_StoppedHubClosesConnection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(logger)
	go hub.Run(ctx)
	cancel()
	<-hub.Done()

	r := chi.NewRouter()
	r.Get("/ws/seasons/{seasonID}", NewWebSocketHandler(hub, nil, logger).ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/seasons/s1", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Equal(t, 0, hub.RoomSize(realtime.SeasonRoom("s1")))
}

func TestOriginChecker(t *testing.T) {
	withOrigin := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/ws/seasons/s1", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		return req
	}

	anyOrigin := originChecker([]string{"*"})
	assert.True(t, anyOrigin(withOrigin("https://evil.example")))

	empty := originChecker(nil)
	assert.True(t, empty(withOrigin("https://evil.example")))

	listed := originChecker([]string{"https://league.example"})
	assert.True(t, listed(withOrigin("https://league.example")))
	assert.True(t, listed(withOrigin("")))
	assert.False(t, listed(withOrigin("https://evil.example")))
}
