package game

// CaptureResult reports how many cells one capture moved into filled.
type CaptureResult struct {
	NewlyFilled int // empty cells cut off from the enemy: the captured territory
	WallFilled  int // cells of the committed line itself
}

// Total returns every cell the capture filled.
func (r CaptureResult) Total() int {
	return r.NewlyFilled + r.WallFilled
}

// cellQueue is a fixed-capacity FIFO of flat cell indices. Each index is
// pushed at most once per search, so capacity equal to the cell count is
// enough and no search allocates after construction.
type cellQueue struct {
	items []int32
	head  int
	tail  int
}

func newCellQueue(capacity int) *cellQueue {
	return &cellQueue{items: make([]int32, capacity)}
}

func (q *cellQueue) reset() {
	q.head, q.tail = 0, 0
}

// push reports false once the queue is full.
func (q *cellQueue) push(idx int) bool {
	if q.tail >= len(q.items) {
		return false
	}
	q.items[q.tail] = int32(idx) // #nosec G115 -- grid cell counts fit in int32
	q.tail++
	return true
}

func (q *cellQueue) pop() (int, bool) {
	if q.head >= q.tail {
		return 0, false
	}
	idx := int(q.items[q.head])
	q.head++
	return idx, true
}

// floodReachable marks in reachable every cell 4-connected to start through
// cells that are neither filled nor wall. A blocked start reaches nothing.
// The search stops silently after g.Cells() pops.
func floodReachable(g Grid, filled, wall Mask, start Cell, reachable Mask, q *cellQueue) int {
	if !g.InBounds(start.Col, start.Row) {
		return 0
	}
	startIdx := g.CellIndex(start.Col, start.Row)
	if filled[startIdx] || wall[startIdx] {
		return 0
	}

	q.reset()
	reachable[startIdx] = true
	q.push(startIdx)
	visited := 1

	for iter := 0; iter < g.Cells(); iter++ {
		idx, ok := q.pop()
		if !ok {
			break
		}
		col, row := idx%g.Cols, idx/g.Cols
		for _, d := range neighbours4 {
			nc, nr := col+d[0], row+d[1]
			if !g.InBounds(nc, nr) {
				continue
			}
			ni := g.CellIndex(nc, nr)
			if reachable[ni] || filled[ni] || wall[ni] {
				continue
			}
			if !q.push(ni) {
				continue
			}
			reachable[ni] = true
			visited++
		}
	}
	return visited
}

// ApplyCapture commits the wall. Every wall cell becomes filled, every empty
// cell the enemy can no longer reach becomes filled, and the wall is cleared.
func ApplyCapture(g Grid, filled, wall Mask, enemy Cell) CaptureResult {
	return resolveCapture(g, filled, wall, enemy, NewMask(g), newCellQueue(g.Cells()))
}

// resolveCapture is ApplyCapture over caller-owned scratch space so the
// per-level engine does not allocate on every capture.
func resolveCapture(g Grid, filled, wall Mask, enemy Cell, reachable Mask, q *cellQueue) CaptureResult {
	reachable.Clear()
	floodReachable(g, filled, wall, enemy, reachable, q)
	return commitCapture(filled, wall, reachable)
}

func commitCapture(filled, wall, reachable Mask) CaptureResult {
	var res CaptureResult
	for i := range filled {
		switch {
		case filled[i]:
			// A wall cell already inside filled territory is simply absorbed.
		case wall[i]:
			filled[i] = true
			res.WallFilled++
		case !reachable[i]:
			filled[i] = true
			res.NewlyFilled++
		}
	}
	wall.Clear()
	return res
}

// FindNearestBorderCell searches outward from start (through any cell) for
// the closest border cell in 4-connected steps. The bool is false when the
// grid has no border cell left.
func FindNearestBorderCell(g Grid, border Mask, start Cell) (Cell, bool) {
	start = Cell{
		Col: clampInt(start.Col, 0, g.Cols-1),
		Row: clampInt(start.Row, 0, g.Rows-1),
	}
	startIdx := g.CellIndex(start.Col, start.Row)
	if border[startIdx] {
		return start, true
	}

	seen := NewMask(g)
	q := newCellQueue(g.Cells())
	seen[startIdx] = true
	q.push(startIdx)

	for iter := 0; iter < g.Cells(); iter++ {
		idx, ok := q.pop()
		if !ok {
			break
		}
		col, row := idx%g.Cols, idx/g.Cols
		for _, d := range neighbours4 {
			nc, nr := col+d[0], row+d[1]
			if !g.InBounds(nc, nr) {
				continue
			}
			ni := g.CellIndex(nc, nr)
			if seen[ni] {
				continue
			}
			if border[ni] {
				return Cell{Col: nc, Row: nr}, true
			}
			seen[ni] = true
			q.push(ni)
		}
	}
	return start, false
}
