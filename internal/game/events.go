package game

import "time"

// EventType identifies an engine event.
type EventType int

const (
	EventCapture EventType = iota
	EventLevelComplete
	EventGameOver
	EventBestScore
)

func (t EventType) String() string {
	switch t {
	case EventCapture:
		return "capture"
	case EventLevelComplete:
		return "level_complete"
	case EventGameOver:
		return "game_over"
	case EventBestScore:
		return "best_score"
	default:
		return "unknown"
	}
}

// GameOver is the terminal record handed to score-submission collaborators.
type GameOver struct {
	GameID    string    `json:"gameId"`
	RunID     string    `json:"runId"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// Event is emitted synchronously from inside Tick. Handlers must not call
// back into the engine and must not block.
type Event struct {
	Type     EventType
	Tick     int
	Level    int
	Score    int
	Coverage float64
	Capture  CaptureResult // EventCapture only
	Points   int           // EventCapture only
	GameOver GameOver      // EventGameOver only
}

type EventHandler func(Event)

// EventBus fans engine events out to subscribers in subscription order.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
