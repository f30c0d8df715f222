// Package app is the ebiten frontend: it collects input, drives the engine
// one tick per frame and renders Snapshots.
package app

import (
	"fmt"
	"image/color"
	"log"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap around the playfield.
const borderWidth = 16

// Options configures the frontend.
type Options struct {
	Scale     float64 // screen pixels per world unit
	Sound     bool
	Autopilot bool // start in attract mode
	Seed      int64
	Logger    *log.Logger
}

// App implements ebiten.Game.
type App struct {
	engine *game.Engine
	input  *Input
	feed   *EventFeed
	sounds *Sounds
	logger *log.Logger

	width  int
	height int
	view   viewport

	cells  *ebiten.Image
	pix    []byte
	snap   game.Snapshot
	paused bool
	autoOn bool
	bot    *game.Autopilot
	seed   int64
}

// New wires a frontend to eng and subscribes to its events.
func New(eng *game.Engine, opts Options) *App {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	g := eng.Grid()
	view := viewport{
		offX:  borderWidth,
		offY:  hudHeight + borderWidth,
		scale: opts.Scale,
		grid:  g,
	}
	pw, ph := view.size()
	a := &App{
		engine: eng,
		feed:   NewEventFeed(),
		logger: opts.Logger,
		width:  borderWidth*2 + int(pw) + feedPanelWidth,
		height: hudHeight + borderWidth*2 + int(ph),
		view:   view,
		autoOn: opts.Autopilot,
		bot:    game.NewAutopilot(opts.Seed),
		seed:   opts.Seed,
	}
	padSize := float64(feedPanelWidth) / 5
	a.input = NewInput(dpad{
		cx:   float64(a.width - feedPanelWidth/2),
		cy:   float64(a.height) - padSize*2,
		size: padSize,
	})
	if opts.Sound {
		a.sounds = NewSounds()
	}

	bus := eng.Events()
	for _, t := range []game.EventType{game.EventCapture, game.EventLevelComplete, game.EventGameOver, game.EventBestScore} {
		bus.Subscribe(t, a.onEvent)
	}
	a.snap = eng.Snapshot()
	return a
}

func (a *App) onEvent(ev game.Event) {
	a.feed.Record(ev)
	a.sounds.Play(ev.Type)
}

// Size returns the window size the frontend lays out for.
func (a *App) Size() (int, int) { return a.width, a.height }

func (a *App) Update() error {
	act := a.input.Poll()

	if act.Mute && a.sounds != nil {
		a.sounds.Muted = !a.sounds.Muted
	}
	if act.Pause {
		a.paused = !a.paused
	}
	if act.Autopilot {
		a.autoOn = !a.autoOn
		a.bot = game.NewAutopilot(a.seed)
	}
	if act.Copy {
		if err := copyText(a.engine.Log().Summary(a.snap)); err != nil {
			a.logger.Printf("copy summary: %v", err)
		} else {
			a.feed.Add(a.snap.Tick, feedNote, "summary copied")
		}
	}
	if act.Restart {
		a.restart()
	}

	switch a.engine.Level().Phase {
	case game.PhaseLevelComplete:
		if act.Confirm || a.autoOn {
			a.engine.AdvanceLevel()
			a.syncGrid()
		}
	case game.PhaseGameOver:
		if act.Confirm {
			a.restart()
		}
	default:
		if !a.paused {
			dir := act.Dir
			if a.autoOn {
				dir = a.bot.Next(&a.snap)
			}
			dt := game.ClampDelta(1/float64(ebiten.TPS()), a.engine.Config().MaxDeltaSeconds)
			a.engine.Tick(dir, dt)
		}
	}
	a.snap = a.engine.Snapshot()
	return nil
}

func (a *App) restart() {
	a.engine.Restart()
	a.bot = game.NewAutopilot(a.seed)
	a.syncGrid()
	a.feed.Add(0, feedNote, "new run "+shortID(a.engine.RunID()))
}

// syncGrid picks up a grid rebuilt by a level change or restart.
func (a *App) syncGrid() {
	a.view.grid = a.engine.Grid()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 7, B: 10, A: 255})
	s := &a.snap

	a.drawCells(screen, s)
	a.drawTokens(screen, s)

	pw, ph := a.view.size()
	vector.StrokeRect(screen, float32(a.view.offX)-1, float32(a.view.offY)-1, pw+2, ph+2, 2.0, color.RGBA{R: 60, G: 80, B: 110, A: 255}, false)

	drawHUD(screen, hudLines(s.Level, a.paused, a.autoOn), a.width)
	a.feed.Draw(screen, a.width-feedPanelWidth, hudHeight, a.height-hudHeight-int(a.input.pad.size*3.5))
	a.drawPad(screen)

	switch s.Level.Phase {
	case game.PhaseLevelComplete:
		drawBanner(screen, fmt.Sprintf("LEVEL %d CLEAR  %.1f%%", s.Level.Level, s.Level.Coverage), a.view)
	case game.PhaseGameOver:
		drawBanner(screen, fmt.Sprintf("GAME OVER  %d", s.Level.Score), a.view)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("T%d %.0f FPS", s.Tick, ebiten.ActualFPS()), a.width-feedPanelWidth+8, a.height-16)
}

// drawCells uploads one pixel per cell and scales the image over the
// playfield.
func (a *App) drawCells(screen *ebiten.Image, s *game.Snapshot) {
	g := s.Grid
	if a.cells == nil || a.cells.Bounds().Dx() != g.Cols || a.cells.Bounds().Dy() != g.Rows {
		if a.cells != nil {
			a.cells.Deallocate()
		}
		a.cells = ebiten.NewImage(g.Cols, g.Rows)
	}
	a.pix = renderCells(s, a.pix)
	a.cells.WritePixels(a.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.CellSize*a.view.scale, g.CellSize*a.view.scale)
	op.GeoM.Translate(a.view.offX, a.view.offY)
	screen.DrawImage(a.cells, op)
}

func (a *App) drawTokens(screen *ebiten.Image, s *game.Snapshot) {
	ex, ey := a.view.toScreen(s.Enemy.X, s.Enemy.Y)
	vector.FillCircle(screen, ex, ey, float32(s.Enemy.Radius*a.view.scale), colEnemy, true)

	px, py := a.view.toScreen(s.Player.X, s.Player.Y)
	r := float32(s.Player.Radius * a.view.scale)
	vector.FillCircle(screen, px, py, r, colPlayer, true)
	if s.Player.Drawing {
		vector.StrokeCircle(screen, px, py, r+2, 1.5, colWall, true)
	}
}

func (a *App) drawPad(screen *ebiten.Image) {
	held := a.snap.Player.Dir
	for _, b := range a.input.pad.buttons() {
		c := color.RGBA{R: 40, G: 48, B: 64, A: 220}
		if b.dir == held {
			c = color.RGBA{R: 80, G: 110, B: 150, A: 240}
		}
		vector.FillRect(screen, float32(b.x)+2, float32(b.y)+2, float32(b.w)-4, float32(b.h)-4, c, false)
		ebitenutil.DebugPrintAt(screen, b.dir.String(), int(b.x)+6, int(b.y+b.h/2)-8)
	}
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}
