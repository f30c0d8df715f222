package game

import "math"

// Direction is the facing signal produced by the input collaborator.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Delta returns the (col, row) offset of one step in d.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse facing.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// PlayerState is the movement machine state.
type PlayerState uint8

const (
	PlayerIdle            PlayerState = iota // no active direction
	PlayerBorderFollowing                    // moving along the border
	PlayerDrawing                            // laying a live wall
)

func (s PlayerState) String() string {
	switch s {
	case PlayerBorderFollowing:
		return "border"
	case PlayerDrawing:
		return "drawing"
	default:
		return "idle"
	}
}

// Player is the line-drawing token.
type Player struct {
	X, Y      float64 // snapped to a cell centre after every step
	Radius    float64 // rendering only
	Drawing   bool
	PathCells []Cell  // cells of the live line, in order
	Carry     float64 // seconds accumulated toward the next step
	Dir       Direction
}

// State derives the movement state.
func (p *Player) State() PlayerState {
	if p.Drawing {
		return PlayerDrawing
	}
	if p.Dir == DirNone {
		return PlayerIdle
	}
	return PlayerBorderFollowing
}

// Cell returns the cell under the player.
func (p *Player) Cell(g Grid) Cell {
	return g.WorldToCell(p.X, p.Y)
}

// Steer applies a direction signal. Any real direction re-asserts the
// facing, including the one already held; DirNone leaves it unchanged.
func (p *Player) Steer(d Direction) {
	if d != DirNone {
		p.Dir = d
	}
}

func (p *Player) snapTo(g Grid, c Cell) {
	p.X, p.Y = g.CellCenter(c.Col, c.Row)
}

func (p *Player) stop() {
	p.Dir = DirNone
	p.Carry = 0
}

// finishDrawing leaves Drawing after a capture commit.
func (p *Player) finishDrawing() {
	p.Drawing = false
	p.PathCells = nil
	p.stop()
}

// haltReason says why a move ended early.
type haltReason uint8

const (
	haltNone     haltReason = iota
	haltBlocked             // off-grid or filled target cell
	haltJunction            // border junction or dead end
)

func (h haltReason) String() string {
	switch h {
	case haltBlocked:
		return "blocked"
	case haltJunction:
		return "junction"
	default:
		return "none"
	}
}

// moveOutcome summarises one tick of player movement.
type moveOutcome struct {
	Steps          int
	StartedDrawing bool
	ClosedLoop     bool // the line reached a border cell; caller commits the capture
	Halt           haltReason
	HaltCell       Cell
}

// movePlayer advances p by whole cells for dt seconds of travel at speed.
// It writes the live line into ms.Wall but never touches Filled or Border;
// a closed loop is reported to the caller, which resolves the capture.
func movePlayer(g Grid, p *Player, ms Masks, speed float64, maxSteps int, dt float64) moveOutcome {
	var out moveOutcome
	if p.Dir == DirNone {
		p.Carry = 0
		return out
	}
	if speed <= 0 || maxSteps <= 0 {
		return out
	}

	interval := g.CellSize / speed
	p.Carry += dt
	for p.Carry >= interval {
		if out.Steps >= maxSteps {
			// Drop the backlog rather than bank it for the next tick.
			p.Carry = math.Min(p.Carry, interval)
			break
		}
		p.Carry -= interval
		out.Steps++

		cur := p.Cell(g)
		dc, dr := p.Dir.Delta()
		next := cur.Add(dc, dr)
		if !g.InBounds(next.Col, next.Row) || ms.Filled.At(g, next.Col, next.Row) {
			p.stop()
			out.Halt = haltBlocked
			out.HaltCell = cur
			return out
		}

		if !p.Drawing {
			curBorder := ms.Border.At(g, cur.Col, cur.Row)
			nextBorder := ms.Border.At(g, next.Col, next.Row)
			if curBorder && !nextBorder {
				p.Drawing = true
				p.PathCells = append(p.PathCells[:0], cur, next)
				RasterizePolyline(g, p.PathCells, ms.Wall)
				p.snapTo(g, next)
				out.StartedDrawing = true
				continue
			}

			p.snapTo(g, next)
			if nextBorder && forwardBorderOptions(g, ms, next, cur) != 1 {
				p.stop()
				out.Halt = haltJunction
				out.HaltCell = next
				return out
			}
			continue
		}

		p.snapTo(g, next)
		last := p.PathCells[len(p.PathCells)-1]
		if last != next {
			p.PathCells = append(p.PathCells, next)
			RasterizePolyline(g, []Cell{last, next}, ms.Wall)
		}
		if ms.Border.At(g, next.Col, next.Row) && len(p.PathCells) >= 2 {
			out.ClosedLoop = true
			return out
		}
	}
	return out
}

// forwardBorderOptions counts the border cells the player could continue to
// from at, excluding the cell it just left.
func forwardBorderOptions(g Grid, ms Masks, at, from Cell) int {
	n := 0
	for _, d := range neighbours4 {
		c := at.Add(d[0], d[1])
		if c == from || !g.InBounds(c.Col, c.Row) {
			continue
		}
		idx := g.CellIndex(c.Col, c.Row)
		if !ms.Filled[idx] && ms.Border[idx] {
			n++
		}
	}
	return n
}
