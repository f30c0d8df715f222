package game

import "math"

const (
	// maxSubstepFraction caps each sub-step's travel as a fraction of a cell
	// so a one-cell-thick wall cannot be jumped in a single integration.
	maxSubstepFraction = 0.75
	minSubsteps        = 1
	maxSubsteps        = 30
)

// Enemy is the bouncing token that must not touch the live wall.
type Enemy struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Speed  float64 // per-axis velocity magnitude
}

// rimOffsets are unit offsets of the eight rim samples, every 45°.
var rimOffsets = func() [8][2]float64 {
	var out [8][2]float64
	for i := range out {
		a := float64(i) * math.Pi / 4
		out[i] = [2]float64{math.Cos(a), math.Sin(a)}
	}
	return out
}()

// newEnemy places an enemy at (x, y) moving with per-axis speed in the
// quadrant given by the signs of dirX and dirY.
func newEnemy(x, y, radius, speed, dirX, dirY float64) Enemy {
	return Enemy{
		X:      x,
		Y:      y,
		VX:     signOr(dirX, 1) * speed,
		VY:     signOr(dirY, 1) * speed,
		Radius: radius,
		Speed:  speed,
	}
}

// Cell returns the cell under the enemy's centre.
func (e *Enemy) Cell(g Grid) Cell {
	return g.WorldToCell(e.X, e.Y)
}

// substepCount returns how many integrations dt needs so that no single
// sub-step moves further than maxSubstepFraction of a cell.
func substepCount(g Grid, vx, vy, dt float64) int {
	dist := math.Hypot(vx*dt, vy*dt)
	limit := maxSubstepFraction * g.CellSize
	if limit <= 0 || dist <= 0 || math.IsNaN(dist) {
		return minSubsteps
	}
	n := int(math.Ceil(dist / limit))
	if n < minSubsteps {
		return minSubsteps
	}
	if n > maxSubsteps {
		return maxSubsteps
	}
	return n
}

// UpdateEnemy integrates e for dt seconds, bouncing off the grid bounds and
// filled territory. It returns true the moment the enemy overlaps the wall,
// which ends the game.
func UpdateEnemy(g Grid, e *Enemy, filled, wall Mask, dt float64) bool {
	if dt <= 0 || math.IsNaN(dt) {
		return circleOverlapsMask(g, wall, e.X, e.Y, e.Radius)
	}

	n := substepCount(g, e.VX, e.VY, dt)
	h := dt / float64(n)

	minX := g.OriginX + e.Radius
	maxX := g.OriginX + g.Width() - e.Radius
	minY := g.OriginY + e.Radius
	maxY := g.OriginY + g.Height() - e.Radius
	if minX > maxX {
		minX = g.OriginX + g.Width()/2
		maxX = minX
	}
	if minY > maxY {
		minY = g.OriginY + g.Height()/2
		maxY = minY
	}

	for i := 0; i < n; i++ {
		if circleOverlapsMask(g, wall, e.X, e.Y, e.Radius) {
			return true
		}

		// X axis.
		prevX := e.X
		e.X += e.VX * h
		if e.X < minX {
			e.X = minX
			e.VX = math.Abs(e.VX)
		} else if e.X > maxX {
			e.X = maxX
			e.VX = -math.Abs(e.VX)
		}
		if circleOverlapsMask(g, filled, e.X, e.Y, e.Radius) {
			e.X = prevX
			e.VX = -e.VX
		}

		// Y axis, with whatever VX/VY now hold.
		prevY := e.Y
		e.Y += e.VY * h
		if e.Y < minY {
			e.Y = minY
			e.VY = math.Abs(e.VY)
		} else if e.Y > maxY {
			e.Y = maxY
			e.VY = -math.Abs(e.VY)
		}
		if circleOverlapsMask(g, filled, e.X, e.Y, e.Radius) {
			e.Y = prevY
			e.VY = -e.VY
		}

		if circleOverlapsMask(g, wall, e.X, e.Y, e.Radius) {
			return true
		}
	}
	return false
}

// circleOverlapsMask samples the centre and eight rim points of a circle and
// reports whether any lands on a set cell. Samples outside the grid are
// ignored.
func circleOverlapsMask(g Grid, m Mask, x, y, r float64) bool {
	if sampleMask(g, m, x, y) {
		return true
	}
	for _, o := range rimOffsets {
		if sampleMask(g, m, x+o[0]*r, y+o[1]*r) {
			return true
		}
	}
	return false
}

func sampleMask(g Grid, m Mask, x, y float64) bool {
	col, row := g.rawCell(x, y)
	if !g.InBounds(col, row) {
		return false
	}
	return m[g.CellIndex(col, row)]
}

func signOr(v, fallback float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return fallback
	}
}
