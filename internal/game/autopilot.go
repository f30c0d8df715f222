package game

import "math/rand"

// autoLeg is one straight run of an autopilot plan. steps < 0 runs until the
// engine stops the player.
type autoLeg struct {
	dir   Direction
	steps int
}

// Autopilot is a seeded bot that plays by cutting rectangular notches out of
// the playfield: inward from the border, sideways, then back out. It only
// reads Snapshots and emits Directions, so the engine stays deterministic for
// a given seed.
type Autopilot struct {
	rng      *rand.Rand
	legs     []autoLeg
	leg      int
	lastCell Cell
	drawing  bool
	stalled  int

	MaxDepth  int // deepest inward leg in cells
	MaxLength int // longest sideways leg in cells
	SafeCells int // minimum Manhattan distance to the enemy before cutting
}

// NewAutopilot returns a bot seeded for reproducible runs.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay bot, not security
		MaxDepth:  10,
		MaxLength: 16,
		SafeCells: 8,
	}
}

// Next picks the direction signal for the coming tick.
func (a *Autopilot) Next(s *Snapshot) Direction {
	if s.Level.Phase != PhasePlaying {
		a.legs = nil
		return DirNone
	}

	cur := s.PlayerCell()
	moved := absInt(cur.Col-a.lastCell.Col) + absInt(cur.Row-a.lastCell.Row)
	a.lastCell = cur

	// A finished line (captured) ends the plan.
	if a.drawing && !s.Player.Drawing {
		a.legs = nil
	}
	a.drawing = s.Player.Drawing

	if moved > 0 {
		a.stalled = 0
		a.consume(moved)
	} else if s.Player.Dir == DirNone {
		a.stalled++
	}

	if a.stalled >= 2 {
		a.stalled = 0
		if s.Player.Drawing {
			a.skipLeg(s, cur)
		} else {
			a.legs = nil
		}
	}

	if a.leg >= len(a.legs) {
		if s.Player.Drawing {
			// Lost the plan mid-line; head for the nearest edge.
			a.legs = []autoLeg{{dir: nearestEdgeDir(s.Grid, cur), steps: -1}}
		} else {
			a.plan(s, cur)
		}
		a.leg = 0
	}
	if len(a.legs) == 0 {
		return DirNone
	}
	return a.legs[a.leg].dir
}

func (a *Autopilot) consume(n int) {
	for n > 0 && a.leg < len(a.legs) {
		l := &a.legs[a.leg]
		if l.steps < 0 {
			return
		}
		take := min(n, l.steps)
		l.steps -= take
		n -= take
		if l.steps == 0 {
			a.leg++
		}
	}
}

// skipLeg abandons a blocked leg while drawing and turns toward open space.
func (a *Autopilot) skipLeg(s *Snapshot, cur Cell) {
	a.leg++
	if a.leg < len(a.legs) {
		return
	}
	for _, d := range a.shuffledDirs() {
		dc, dr := d.Delta()
		n := cur.Add(dc, dr)
		if s.Passable(n) && !s.Wall.At(s.Grid, n.Col, n.Row) {
			a.legs = []autoLeg{{dir: d, steps: -1}}
			a.leg = 0
			return
		}
	}
}

func (a *Autopilot) plan(s *Snapshot, cur Cell) {
	a.legs = a.legs[:0]
	a.leg = 0

	var inward, along []Direction
	for _, d := range a.shuffledDirs() {
		dc, dr := d.Delta()
		n := cur.Add(dc, dr)
		if !s.Passable(n) {
			continue
		}
		if s.IsBorder(n) {
			along = append(along, d)
		} else {
			inward = append(inward, d)
		}
	}

	ec := s.EnemyCell()
	enemyDist := absInt(ec.Col-cur.Col) + absInt(ec.Row-cur.Row)
	if len(inward) > 0 && enemyDist > a.SafeCells && a.rng.Float64() < 0.7 {
		in := inward[0]
		side := perpendicular(in, a.rng.Intn(2) == 0)
		a.legs = append(a.legs,
			autoLeg{dir: in, steps: 2 + a.rng.Intn(max(1, a.MaxDepth-1))},
			autoLeg{dir: side, steps: 2 + a.rng.Intn(max(1, a.MaxLength-1))},
			autoLeg{dir: in.Opposite(), steps: -1},
		)
		return
	}
	if len(along) > 0 {
		a.legs = append(a.legs, autoLeg{dir: along[0], steps: 3 + a.rng.Intn(8)})
	}
}

func (a *Autopilot) shuffledDirs() []Direction {
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}
	a.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	return dirs
}

func perpendicular(d Direction, clockwise bool) Direction {
	switch d {
	case DirUp, DirDown:
		if clockwise {
			return DirRight
		}
		return DirLeft
	default:
		if clockwise {
			return DirDown
		}
		return DirUp
	}
}

// nearestEdgeDir points from c toward the closest outer edge.
func nearestEdgeDir(g Grid, c Cell) Direction {
	best, dist := DirUp, c.Row
	if d := g.Rows - 1 - c.Row; d < dist {
		best, dist = DirDown, d
	}
	if d := c.Col; d < dist {
		best, dist = DirLeft, d
	}
	if d := g.Cols - 1 - c.Col; d < dist {
		best = DirRight
	}
	return best
}
