package game

import (
	"strconv"
	"time"
)

// TestSim is a headless harness around Engine used by tests and the headless
// report. Its default tick length is exactly one player step, so every Tick
// moves a moving player by one cell.
type TestSim struct {
	Engine *Engine
	SimLog *SimLog
	Bus    *EventBus
	Store  *MemoryBestScore
	Events []Event
	Dt     float64

	cfg       Config
	cols      int
	rows      int
	seed      int64
	autopilot *Autopilot
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra     simOptionKind = iota // config, grid size, seed, verbose: applied first
	simOptPlacement                      // token and territory setup: applied after the engine exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the grid to cols x rows cells.
func WithGridSize(cols, rows int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cols = cols
		ts.rows = rows
	}}
}

// WithConfig edits the engine config before the engine is built.
func WithConfig(edit func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.cfg)
	}}
}

// WithSeed seeds the autopilot.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-step verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithBestScore preloads the in-memory best-score store.
func WithBestScore(best int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Store.Best = best
	}}
}

// WithPlayerAt moves the player to the centre of (col, row).
func WithPlayerAt(col, row int) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		ts.Engine.player.snapTo(ts.Engine.grid, Cell{Col: col, Row: row})
	}}
}

// WithEnemyAt moves the enemy to the centre of (col, row).
func WithEnemyAt(col, row int) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		e := ts.Engine
		e.enemy.X, e.enemy.Y = e.grid.CellCenter(col, row)
	}}
}

// WithEnemyVelocity overrides the enemy velocity. Zero freezes it.
func WithEnemyVelocity(vx, vy float64) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		ts.Engine.enemy.VX = vx
		ts.Engine.enemy.VY = vy
	}}
}

// WithFilledRect marks a block of cells as already captured.
func WithFilledRect(col, row, w, h int) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		e := ts.Engine
		for r := row; r < row+h; r++ {
			for c := col; c < col+w; c++ {
				e.masks.Filled.Set(e.grid, c, r, true)
			}
		}
		e.masks.Border = ComputeBorderMask(e.grid, e.masks.Filled)
		e.level.Coverage = CoveragePercent(e.masks.Filled)
		if c, ok := FindNearestBorderCell(e.grid, e.masks.Border, e.player.Cell(e.grid)); ok {
			e.player.snapTo(e.grid, c)
		}
	}}
}

// WithTargetCoverage overrides the current level's coverage target.
func WithTargetCoverage(pct float64) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		ts.Engine.level.TargetCoverage = pct
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (config, grid size, seed, verbose)
//  2. Build the Engine
//  3. Placement (tokens, pre-filled territory, targets)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		Bus:    NewEventBus(),
		Store:  &MemoryBestScore{},
		cfg:    DefaultConfig(),
		cols:   20,
		rows:   20,
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	bounds := Rect{W: float64(ts.cols) * ts.cfg.CellSize, H: float64(ts.rows) * ts.cfg.CellSize}
	for _, t := range []EventType{EventCapture, EventLevelComplete, EventGameOver, EventBestScore} {
		ts.Bus.Subscribe(t, func(ev Event) { ts.Events = append(ts.Events, ev) })
	}
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	runs := 0
	ts.Engine = New(ts.cfg, bounds,
		WithSimLog(ts.SimLog),
		WithEventBus(ts.Bus),
		WithBestScoreStore(ts.Store),
		WithClock(func() time.Time { return fixed }),
		WithRunIDs(func() string {
			runs++
			return "run-" + strconv.Itoa(runs)
		}),
	)
	ts.Dt = ts.Engine.cfg.CellSize / ts.Engine.cfg.PlayerSpeed

	for _, o := range opts {
		if o.kind == simOptPlacement {
			o.fn(ts)
		}
	}
	ts.autopilot = NewAutopilot(ts.seed)
	return ts
}

// Step runs one tick with dir.
func (ts *TestSim) Step(dir Direction) TickResult {
	return ts.Engine.Tick(dir, ts.Dt)
}

// Walk re-asserts dir every tick until the player has taken n steps, stopped
// or the phase changed. It returns the last tick's result.
func (ts *TestSim) Walk(dir Direction, n int) TickResult {
	var res TickResult
	for i := 0; i < n; i++ {
		res = ts.Step(dir)
		if res.Phase != PhasePlaying || res.Captured || ts.Engine.player.Dir == DirNone {
			return res
		}
	}
	return res
}

// RunTicks advances n ticks with no new direction signal.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step(DirNone)
	}
}

// RunAutopilot lets the seeded autopilot play for up to n ticks and stops
// early when the level ends. It returns the ticks actually run.
func (ts *TestSim) RunAutopilot(n int) int {
	for i := 0; i < n; i++ {
		snap := ts.Engine.Snapshot()
		if snap.Level.Phase != PhasePlaying {
			return i
		}
		ts.Step(ts.autopilot.Next(&snap))
	}
	return n
}

// PlayerCell returns the cell under the player.
func (ts *TestSim) PlayerCell() Cell { return ts.Engine.player.Cell(ts.Engine.grid) }

// EnemyCell returns the cell under the enemy.
func (ts *TestSim) EnemyCell() Cell { return ts.Engine.enemy.Cell(ts.Engine.grid) }

// Masks exposes the live masks to tests.
func (ts *TestSim) Masks() Masks { return ts.Engine.masks }

// Player exposes the live player token to tests.
func (ts *TestSim) Player() *Player { return &ts.Engine.player }

// Enemy exposes the live enemy token to tests.
func (ts *TestSim) Enemy() *Enemy { return &ts.Engine.enemy }

// CurrentTick returns the engine tick counter.
func (ts *TestSim) CurrentTick() int { return ts.Engine.tick }

// CountEvents returns how many bus events of type t were seen.
func (ts *TestSim) CountEvents(t EventType) int {
	n := 0
	for _, e := range ts.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// MemoryBestScore is an in-process BestScoreStore.
type MemoryBestScore struct {
	Best  int
	Saves int
	Err   error
}

func (m *MemoryBestScore) LoadBestScore() (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Best, nil
}

func (m *MemoryBestScore) SaveBestScore(score int) error {
	if m.Err != nil {
		return m.Err
	}
	m.Best = score
	m.Saves++
	return nil
}
