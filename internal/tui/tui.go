// Package tui is a terminal frontend: one terminal cell per grid cell.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/gdamore/tcell/v2"
)

const (
	frameRate = 30
	hudRows   = 1
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleEmpty  = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue).Background(tcell.ColorBlack)
	styleFilled = tcell.StyleDefault.Foreground(tcell.ColorTeal).Background(tcell.ColorTeal)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack).Bold(true)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// Bounds returns the play area that fills a w x h terminal below the HUD.
func Bounds(cfg game.Config, w, h int) game.Rect {
	cols := max(w, 1)
	rows := max(h-hudRows, 1)
	return game.Rect{W: float64(cols) * cfg.CellSize, H: float64(rows) * cfg.CellSize}
}

// Runner drives an engine from a tcell screen.
type Runner struct {
	screen  tcell.Screen
	engine  *game.Engine
	pending game.Direction
	paused  bool
}

func New(screen tcell.Screen, eng *game.Engine) *Runner {
	return &Runner{screen: screen, engine: eng}
}

// Run polls input and ticks the engine at a fixed frame rate until ctx is
// cancelled or the player quits.
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	tick := time.NewTicker(time.Second / frameRate)
	defer tick.Stop()
	last := time.Now()
	r.render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				r.screen.Sync()
			case *tcell.EventKey:
				if r.handleKey(e) {
					return nil
				}
			}
		case now := <-tick.C:
			dt := game.ClampDelta(now.Sub(last).Seconds(), r.engine.Config().MaxDeltaSeconds)
			last = now
			r.step(dt)
			r.render()
		}
	}
}

// handleKey records a key press and reports whether the player asked to
// quit.
func (r *Runner) handleKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		r.pending = game.DirUp
	case tcell.KeyDown:
		r.pending = game.DirDown
	case tcell.KeyLeft:
		r.pending = game.DirLeft
	case tcell.KeyRight:
		r.pending = game.DirRight
	case tcell.KeyEnter:
		r.confirm()
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q':
			return true
		case 'w':
			r.pending = game.DirUp
		case 's':
			r.pending = game.DirDown
		case 'a':
			r.pending = game.DirLeft
		case 'd':
			r.pending = game.DirRight
		case 'p':
			r.paused = !r.paused
		case 'r':
			r.engine.Restart()
		case ' ':
			r.confirm()
		}
	}
	return false
}

func (r *Runner) confirm() {
	switch r.engine.Level().Phase {
	case game.PhaseLevelComplete:
		r.engine.AdvanceLevel()
	case game.PhaseGameOver:
		r.engine.Restart()
	}
}

// step hands the pending direction to the engine exactly once.
func (r *Runner) step(dt float64) {
	if r.paused {
		return
	}
	r.engine.Tick(r.pending, dt)
	r.pending = game.DirNone
}

func (r *Runner) render() {
	s := r.engine.Snapshot()
	r.screen.Clear()

	ls := s.Level
	drawText(r.screen, 0, 0, fmt.Sprintf(" L%d  score %d  best %d  %.1f%%/%.0f%%  q quit ",
		ls.Level, ls.Score, ls.BestScore, ls.Coverage, ls.TargetCoverage), styleHUD)

	g := s.Grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			ch, st := cellGlyph(&s, g.CellIndex(col, row))
			r.screen.SetContent(col, row+hudRows, ch, nil, st)
		}
	}

	ec := s.EnemyCell()
	r.screen.SetContent(ec.Col, ec.Row+hudRows, 'O', nil, styleEnemy)
	pc := s.PlayerCell()
	r.screen.SetContent(pc.Col, pc.Row+hudRows, '@', nil, stylePlayer)

	switch ls.Phase {
	case game.PhaseLevelComplete:
		drawCentered(r.screen, g.Cols/2, g.Rows/2+hudRows, " LEVEL CLEAR  enter ", styleBanner)
	case game.PhaseGameOver:
		drawCentered(r.screen, g.Cols/2, g.Rows/2+hudRows, fmt.Sprintf(" GAME OVER %d  enter ", ls.Score), styleBanner)
	}
	r.screen.Show()
}

func cellGlyph(s *game.Snapshot, idx int) (rune, tcell.Style) {
	switch {
	case s.Wall[idx]:
		return '#', styleWall
	case s.Filled[idx]:
		return ' ', styleFilled
	case s.Border[idx]:
		return '.', styleBorder
	default:
		return ' ', styleEmpty
	}
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	drawText(s, cx-len([]rune(text))/2, cy, text, st)
}
