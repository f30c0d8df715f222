package app

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 240
	feedMaxEntries = 40
	feedLineHeight = 14
	feedTitleH     = 16
)

// feedNote marks frontend lines that did not come from the engine.
const feedNote game.EventType = -1

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    game.EventType
	Message string
}

// EventFeed is a ring buffer of recent engine events rendered beside the
// playfield.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, kind game.EventType, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Kind:    kind,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Record turns an engine event into a feed line.
func (f *EventFeed) Record(ev game.Event) {
	var msg string
	switch ev.Type {
	case game.EventCapture:
		msg = fmt.Sprintf("+%d  %d cells  %.1f%%", ev.Points, ev.Capture.Total(), ev.Coverage)
	case game.EventLevelComplete:
		msg = fmt.Sprintf("level %d clear", ev.Level)
	case game.EventGameOver:
		msg = fmt.Sprintf("game over  %d pts", ev.Score)
	case game.EventBestScore:
		msg = fmt.Sprintf("new best %d", ev.Score)
	default:
		return
	}
	f.Add(ev.Tick, ev.Type, msg)
}

func feedColor(kind game.EventType) color.RGBA {
	switch kind {
	case game.EventCapture:
		return color.RGBA{R: 60, G: 200, B: 180, A: 255}
	case game.EventLevelComplete:
		return color.RGBA{R: 120, G: 220, B: 90, A: 255}
	case game.EventGameOver:
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	}
}

// Draw renders the feed panel at panelX, panelH pixels tall.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelY, panelH int) {
	px, py := float32(panelX), float32(panelY)
	vector.FillRect(screen, px, py, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, px, py, px, py+float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, px, py, feedPanelWidth, feedTitleH, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, panelY+1)

	entries := f.Recent()
	maxVisible := (panelH - feedTitleH - 4) / feedLineHeight
	if maxVisible <= 0 {
		return
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := panelY + feedTitleH + 4
	for i, e := range entries {
		if i == len(entries)-1 {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 36, B: 50, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, feedColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += feedLineHeight
	}
}
