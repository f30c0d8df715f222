package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BestScoreStore persists the best score between sessions.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// TickResult reports what one Tick did.
type TickResult struct {
	Phase         Phase
	Captured      bool
	Capture       CaptureResult
	Points        int
	GameOver      bool // became game over during this tick
	LevelComplete bool // reached the target during this tick
}

// Engine is the whole simulation of one run. It is driven by Tick from a
// single goroutine and never performs I/O of its own; persistence and event
// delivery go through the injected collaborators.
type Engine struct {
	cfg    Config
	bounds Rect

	grid   Grid
	masks  Masks
	player Player
	enemy  Enemy
	level  LevelState
	tick   int
	runID  string

	// Per-level scratch for capture resolution.
	reach Mask
	queue *cellQueue

	store BestScoreStore
	bus   *EventBus
	log   *SimLog
	now   func() time.Time
	newID func() string
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithBestScoreStore injects the best-score persistence collaborator.
func WithBestScoreStore(s BestScoreStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithEventBus routes engine events to bus.
func WithEventBus(bus *EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithSimLog records engine events into log.
func WithSimLog(log *SimLog) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock sets the clock used to stamp GameOver events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRunIDs sets the generator for per-run identifiers.
func WithRunIDs(next func() string) Option {
	return func(e *Engine) { e.newID = next }
}

// New builds an engine at level 1 over bounds.
func New(cfg Config, bounds Rect, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg.normalized(),
		bounds: bounds,
		bus:    NewEventBus(),
		log:    NewSimLog(false),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	e.startRun()
	return e
}

// Config returns the normalised configuration.
func (e *Engine) Config() Config { return e.cfg }

// Events returns the bus engine events are emitted on.
func (e *Engine) Events() *EventBus { return e.bus }

// Log returns the structured event log.
func (e *Engine) Log() *SimLog { return e.log }

// Grid returns the current level's grid.
func (e *Engine) Grid() Grid { return e.grid }

// Level returns the HUD-facing level state.
func (e *Engine) Level() LevelState { return e.level }

// CurrentTick returns the number of ticks simulated this run.
func (e *Engine) CurrentTick() int { return e.tick }

// RunID identifies the current run.
func (e *Engine) RunID() string { return e.runID }

// SetBounds changes the play area used by the next level build.
func (e *Engine) SetBounds(b Rect) { e.bounds = b }

// Restart discards the run and starts again at level 1.
func (e *Engine) Restart() {
	e.startRun()
}

// AdvanceLevel moves from a completed level to the next one. It does nothing
// unless the current level is complete.
func (e *Engine) AdvanceLevel() bool {
	if e.level.Phase != PhaseLevelComplete {
		return false
	}
	dirX, dirY := e.enemy.VX, e.enemy.VY
	speed := e.enemy.Speed + e.cfg.EnemySpeedIncrement
	e.level.Level++
	e.level.TargetCoverage = nextTargetCoverage(e.level.TargetCoverage, e.cfg.TargetCoverageIncrement, e.cfg.MaxTargetCoverage)
	e.buildLevel(speed, dirX, dirY)
	e.log.Add(e.tick, CatLevel, "advance",
		fmt.Sprintf("level=%d target=%.1f speed=%.1f", e.level.Level, e.level.TargetCoverage, speed),
		float64(e.level.Level))
	return true
}

func (e *Engine) startRun() {
	e.tick = 0
	e.runID = e.newID()
	e.level = LevelState{
		Level:          1,
		TargetCoverage: e.cfg.InitialTargetCoverage,
	}
	if e.store != nil {
		best, err := e.store.LoadBestScore()
		if err != nil {
			e.log.Add(e.tick, CatStore, "load_failed", err.Error(), 0)
		} else if best > 0 {
			e.level.BestScore = best
		}
	}
	e.buildLevel(e.cfg.EnemySpeed, 1, -1)
	e.log.Add(e.tick, CatLevel, "start",
		fmt.Sprintf("run=%s grid=%dx%d target=%.1f best=%d", e.runID, e.grid.Cols, e.grid.Rows, e.level.TargetCoverage, e.level.BestScore),
		1)
}

// buildLevel rebuilds the grid, masks and both tokens from scratch.
func (e *Engine) buildLevel(enemySpeed, dirX, dirY float64) {
	e.grid = NewGrid(e.bounds, e.cfg.CellSize)
	e.masks = NewMasks(e.grid)
	e.reach = NewMask(e.grid)
	e.queue = newCellQueue(e.grid.Cells())

	start := Cell{Col: e.grid.Cols / 2, Row: e.grid.Rows - 1}
	e.player = Player{Radius: e.cfg.PlayerRadius}
	e.player.snapTo(e.grid, start)

	ex, ey := e.grid.CellCenter(e.grid.Cols/2, e.grid.Rows/2)
	e.enemy = newEnemy(ex, ey, e.cfg.EnemyRadius, enemySpeed, dirX, dirY)

	e.level.Coverage = 0
	e.level.Captures = 0
	e.level.Phase = PhasePlaying
}

// Tick advances the simulation by deltaSeconds with dir as this tick's
// direction signal. Nothing happens once the level is complete or over.
func (e *Engine) Tick(dir Direction, deltaSeconds float64) TickResult {
	res := TickResult{Phase: e.level.Phase}
	if e.level.Phase != PhasePlaying {
		return res
	}
	dt := ClampDelta(deltaSeconds, 0)
	e.tick++

	e.player.Steer(dir)
	out := movePlayer(e.grid, &e.player, e.masks, e.cfg.PlayerSpeed, e.cfg.MaxStepsPerTick, dt)
	e.logMove(out)

	if out.ClosedLoop {
		res.Captured = true
		res.Capture, res.Points = e.commitCapture()
		if e.level.Phase == PhaseLevelComplete {
			res.LevelComplete = true
		}
	}

	if e.level.Phase == PhasePlaying {
		if UpdateEnemy(e.grid, &e.enemy, e.masks.Filled, e.masks.Wall, dt) {
			e.endRun()
			res.GameOver = true
		}
	}

	res.Phase = e.level.Phase
	return res
}

func (e *Engine) logMove(out moveOutcome) {
	if out.StartedDrawing {
		c := e.player.PathCells[0]
		e.log.Add(e.tick, CatDraw, "start", fmt.Sprintf("from (%d,%d) %s", c.Col, c.Row, e.player.Dir), 0)
	}
	switch out.Halt {
	case haltBlocked, haltJunction:
		e.log.Add(e.tick, CatMove, "halt_"+out.Halt.String(),
			fmt.Sprintf("at (%d,%d)", out.HaltCell.Col, out.HaltCell.Row), 0)
	}
	if out.Steps > 0 {
		c := e.player.Cell(e.grid)
		e.log.AddVerbose(e.tick, CatMove, "position", fmt.Sprintf("(%d,%d)", c.Col, c.Row), float64(out.Steps))
	}
}

// commitCapture resolves the closed loop, re-derives the border, re-snaps
// the player and scores the capture.
func (e *Engine) commitCapture() (CaptureResult, int) {
	pathLen := len(e.player.PathCells)
	cr := resolveCapture(e.grid, e.masks.Filled, e.masks.Wall, e.enemy.Cell(e.grid), e.reach, e.queue)
	e.masks.Border = ComputeBorderMask(e.grid, e.masks.Filled)

	here := e.player.Cell(e.grid)
	e.player.finishDrawing()
	if c, ok := FindNearestBorderCell(e.grid, e.masks.Border, here); ok {
		e.player.snapTo(e.grid, c)
	}

	points, improved := e.level.recordCapture(cr, e.masks.Filled, e.cfg)
	e.log.Add(e.tick, CatCapture, "commit",
		fmt.Sprintf("new=%d wall=%d path=%d points=%d coverage=%.2f", cr.NewlyFilled, cr.WallFilled, pathLen, points, e.level.Coverage),
		float64(cr.NewlyFilled))
	e.bus.Emit(Event{
		Type:     EventCapture,
		Tick:     e.tick,
		Level:    e.level.Level,
		Score:    e.level.Score,
		Coverage: e.level.Coverage,
		Capture:  cr,
		Points:   points,
	})
	if improved {
		e.persistBest()
	}

	if e.level.Phase == PhaseLevelComplete {
		e.log.Add(e.tick, CatLevel, "complete",
			fmt.Sprintf("level=%d coverage=%.2f target=%.2f score=%d", e.level.Level, e.level.Coverage, e.level.TargetCoverage, e.level.Score),
			e.level.Coverage)
		e.bus.Emit(Event{
			Type:     EventLevelComplete,
			Tick:     e.tick,
			Level:    e.level.Level,
			Score:    e.level.Score,
			Coverage: e.level.Coverage,
		})
	}
	return cr, points
}

// endRun handles enemy contact with the live wall.
func (e *Engine) endRun() {
	e.level.Phase = PhaseGameOver
	ec := e.enemy.Cell(e.grid)
	e.log.Add(e.tick, CatEnemy, "wall_hit", fmt.Sprintf("at (%d,%d)", ec.Col, ec.Row), 0)
	if e.level.raiseBest() {
		e.persistBest()
	}
	over := GameOver{
		GameID:    e.cfg.GameID,
		RunID:     e.runID,
		Score:     e.level.Score,
		Level:     e.level.Level,
		Timestamp: e.now(),
	}
	e.log.Add(e.tick, CatLevel, "game_over",
		fmt.Sprintf("level=%d score=%d best=%d", e.level.Level, e.level.Score, e.level.BestScore),
		float64(e.level.Score))
	e.bus.Emit(Event{
		Type:     EventGameOver,
		Tick:     e.tick,
		Level:    e.level.Level,
		Score:    e.level.Score,
		Coverage: e.level.Coverage,
		GameOver: over,
	})
}

func (e *Engine) persistBest() {
	e.bus.Emit(Event{
		Type:  EventBestScore,
		Tick:  e.tick,
		Level: e.level.Level,
		Score: e.level.BestScore,
	})
	if e.store == nil {
		return
	}
	if err := e.store.SaveBestScore(e.level.BestScore); err != nil {
		e.log.Add(e.tick, CatStore, "save_failed", err.Error(), float64(e.level.BestScore))
	}
}
