package submit

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/gorilla/websocket"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

// scoreServer accepts websocket connections and forwards every text frame.
func scoreServer(t *testing.T) (*httptest.Server, <-chan map[string]any) {
	t.Helper()
	frames := make(chan map[string]any, 8)
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg map[string]any
			if err := json.Unmarshal(data, &msg); err == nil {
				frames <- msg
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, frames
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSubmitter_DeliversGameOver(t *testing.T) {
	srv, frames := scoreServer(t)
	s := New(wsURL(srv), 4, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !s.Enqueue(game.GameOver{GameID: "box-cutter", RunID: "r1", Score: 420, Level: 3, Timestamp: ts}) {
		t.Fatal("enqueue into an empty queue failed")
	}

	select {
	case msg := <-frames:
		if msg["type"] != "game_over" || msg["gameId"] != "box-cutter" || msg["runId"] != "r1" {
			t.Fatalf("unexpected frame %v", msg)
		}
		if msg["score"] != float64(420) || msg["level"] != float64(3) {
			t.Fatalf("score/level wrong in %v", msg)
		}
		if msg["timestamp"] != "2024-01-01T12:00:00Z" {
			t.Fatalf("timestamp=%v", msg["timestamp"])
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no frame received")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
	if sent, dropped := s.Stats(); sent != 1 || dropped != 0 {
		t.Fatalf("sent=%d dropped=%d", sent, dropped)
	}
}

func TestSubmitter_SubscribesToEngineEvents(t *testing.T) {
	srv, frames := scoreServer(t)
	s := New(wsURL(srv), 4, quietLogger())
	bus := game.NewEventBus()
	s.Subscribe(bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	bus.Emit(game.Event{Type: game.EventCapture})
	bus.Emit(game.Event{Type: game.EventGameOver, GameOver: game.GameOver{GameID: "box-cutter", RunID: "r2"}})

	select {
	case msg := <-frames:
		if msg["runId"] != "r2" {
			t.Fatalf("unexpected frame %v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("game over event was not submitted")
	}
}

func TestSubmitter_FullQueueDrops(t *testing.T) {
	s := New("ws://127.0.0.1:1/unused", 1, quietLogger())
	if !s.Enqueue(game.GameOver{RunID: "a"}) {
		t.Fatal("first enqueue should fit")
	}
	if s.Enqueue(game.GameOver{RunID: "b"}) {
		t.Fatal("second enqueue should be dropped")
	}
	if _, dropped := s.Stats(); dropped != 1 {
		t.Fatalf("dropped=%d, want 1", dropped)
	}
}

func TestSubmitter_UnreachableServerDrops(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(srv)
	srv.Close()

	s := New(url, 2, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Enqueue(game.GameOver{RunID: "lost"})
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, dropped := s.Stats(); dropped == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("undeliverable record was never dropped")
}
