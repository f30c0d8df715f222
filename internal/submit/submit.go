// Package submit pushes finished runs to a score server over a websocket.
package submit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/gorilla/websocket"
)

const (
	defaultBuffer = 16
	writeTimeout  = 5 * time.Second
)

// scoreMessage is the JSON frame sent for every finished run.
type scoreMessage struct {
	Type string `json:"type"`
	game.GameOver
}

// Submitter delivers GameOver records in the background. Enqueue never
// blocks, so it is safe to call from an engine event handler.
type Submitter struct {
	url    string
	dialer *websocket.Dialer
	queue  chan game.GameOver
	logger *log.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	sent    int
	dropped int
}

// New returns a submitter for the websocket endpoint url. buffer <= 0 uses a
// small default.
func New(url string, buffer int, logger *log.Logger) *Submitter {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Submitter{
		url:    url,
		dialer: websocket.DefaultDialer,
		queue:  make(chan game.GameOver, buffer),
		logger: logger,
	}
}

// Subscribe routes the bus's game-over events into the queue.
func (s *Submitter) Subscribe(bus *game.EventBus) {
	bus.Subscribe(game.EventGameOver, func(ev game.Event) {
		s.Enqueue(ev.GameOver)
	})
}

// Enqueue queues a record for delivery and reports false when the queue is
// full and the record was dropped.
func (s *Submitter) Enqueue(over game.GameOver) bool {
	select {
	case s.queue <- over:
		return true
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
		s.logger.Printf("submit: queue full, dropped run %s", over.RunID)
		return false
	}
}

// Stats returns how many records were delivered and dropped so far.
func (s *Submitter) Stats() (sent, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent, s.dropped
}

// Run delivers queued records until ctx is cancelled. A record that cannot be
// delivered is logged and dropped; the connection is re-dialled for the next.
func (s *Submitter) Run(ctx context.Context) error {
	defer s.close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case over := <-s.queue:
			if err := s.deliver(ctx, over); err != nil {
				s.mu.Lock()
				s.dropped++
				s.mu.Unlock()
				s.logger.Printf("submit: %v", err)
				s.close()
				continue
			}
			s.mu.Lock()
			s.sent++
			s.mu.Unlock()
		}
	}
}

func (s *Submitter) deliver(ctx context.Context, over game.GameOver) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}
	if err := conn.WriteJSON(scoreMessage{Type: "game_over", GameOver: over}); err != nil {
		return fmt.Errorf("send run %s: %w", over.RunID, err)
	}
	return nil
}

func (s *Submitter) connect(ctx context.Context) (*websocket.Conn, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		return conn, nil
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", s.url, err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	return conn, nil
}

func (s *Submitter) close() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = conn.Close()
}
