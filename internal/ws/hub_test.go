package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lending_backend/internal/domain"
	"lending_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type stubSource struct {
	mu      sync.Mutex
	balance float64
	err     error
}

func (s *stubSource) set(balance float64) {
	s.mu.Lock()
	s.balance = balance
	s.mu.Unlock()
}

func (s *stubSource) Snapshot(_ context.Context, _ *domain.User) (*domain.DashboardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &domain.DashboardSnapshot{
		Metrics:        []domain.Metric{{Label: "Wallet Balance", Value: s.balance}},
		Performance:    []domain.PerformancePoint{},
		RecentActivity: []domain.Activity{},
	}, nil
}

func startServer(t *testing.T, hub *Hub) (*httptest.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	user := &domain.User{ID: 7, Email: "ws@example.com", IsActive: true}
	r.GET("/ws/dashboard", func(c *gin.Context) {
		c.Set(middleware.UserKey, user)
		c.Next()
	}, HandleDashboard(hub, ""))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, wait time.Duration) (Message, json.RawMessage, error) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(wait))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return Message{}, nil, err
	}
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode frame %s: %v", raw, err)
	}
	return Message{Type: env.Type}, env.Data, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDashboardPushOnlyWhenChanged(t *testing.T) {
	src := &stubSource{balance: 100}
	hub := NewHub(src, 20*time.Millisecond)
	_, url := startServer(t, hub)
	conn := dial(t, url)

	msg, data, err := readMessage(t, conn, time.Second)
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if msg.Type != MsgSnapshot {
		t.Fatalf("type = %q, want %q", msg.Type, MsgSnapshot)
	}
	var snap domain.DashboardSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Metrics) != 1 || snap.Metrics[0].Value != 100 {
		t.Fatalf("metrics = %+v", snap.Metrics)
	}

	// unchanged snapshot: several ticks pass without a frame
	if _, _, err := readMessage(t, conn, 150*time.Millisecond); err == nil {
		t.Fatal("received a frame for an unchanged snapshot")
	}

	// a timed out read poisons the gorilla conn, so use a fresh one
	conn2 := dial(t, url)
	if _, _, err := readMessage(t, conn2, time.Second); err != nil {
		t.Fatalf("initial frame on second conn: %v", err)
	}
	src.set(250)
	_, data, err = readMessage(t, conn2, time.Second)
	if err != nil {
		t.Fatalf("frame after change: %v", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Metrics[0].Value != 250 {
		t.Fatalf("value = %v, want 250", snap.Metrics[0].Value)
	}
}

func TestDashboardSnapshotError(t *testing.T) {
	src := &stubSource{err: errors.New("db down")}
	hub := NewHub(src, time.Hour)
	_, url := startServer(t, hub)
	conn := dial(t, url)

	msg, _, err := readMessage(t, conn, time.Second)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MsgError {
		t.Fatalf("type = %q, want %q", msg.Type, MsgError)
	}
}

func TestHubMembershipAndShutdown(t *testing.T) {
	hub := NewHub(&stubSource{balance: 1}, time.Hour)
	_, url := startServer(t, hub)

	conn := dial(t, url)
	if _, _, err := readMessage(t, conn, time.Second); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Shutdown()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("expected going away close, got %v", err)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// new connections are turned away after shutdown
	late := dial(t, url)
	late.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = late.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("late client: expected going away close, got %v", err)
	}
}
