package game

import "math"

// Rect is an axis-aligned play area in world units.
type Rect struct {
	X, Y float64
	W, H float64
}

// Cell addresses one grid square by column and row.
type Cell struct {
	Col int
	Row int
}

// Add returns the cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Grid is the fixed cell space laid over the play area. It never changes
// during a level; a new level builds a new Grid.
type Grid struct {
	OriginX  float64
	OriginY  float64
	Cols     int
	Rows     int
	CellSize float64
}

// neighbours4 lists the 4-connected offsets in a fixed order so every search
// over the grid visits cells in the same sequence.
var neighbours4 = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// NewGrid divides bounds into square cells of cellSize. Column and row counts
// are floored and never drop below 1.
func NewGrid(bounds Rect, cellSize float64) Grid {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		cellSize = 1
	}
	cols := int(math.Floor(bounds.W / cellSize))
	rows := int(math.Floor(bounds.H / cellSize))
	return Grid{
		OriginX:  bounds.X,
		OriginY:  bounds.Y,
		Cols:     max(1, cols),
		Rows:     max(1, rows),
		CellSize: cellSize,
	}
}

// Cells returns the total number of cells.
func (g Grid) Cells() int {
	return g.Cols * g.Rows
}

// Width returns the world-space width covered by the cells.
func (g Grid) Width() float64 {
	return float64(g.Cols) * g.CellSize
}

// Height returns the world-space height covered by the cells.
func (g Grid) Height() float64 {
	return float64(g.Rows) * g.CellSize
}

// CellIndex flattens (col, row) row-major. Callers check InBounds first.
func (g Grid) CellIndex(col, row int) int {
	return row*g.Cols + col
}

// CellAt is the inverse of CellIndex.
func (g Grid) CellAt(index int) Cell {
	return Cell{Col: index % g.Cols, Row: index / g.Cols}
}

// InBounds reports whether (col, row) lies inside the grid.
func (g Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// CellCenter returns the world position of the centre of (col, row).
func (g Grid) CellCenter(col, row int) (float64, float64) {
	return g.OriginX + (float64(col)+0.5)*g.CellSize,
		g.OriginY + (float64(row)+0.5)*g.CellSize
}

// WorldToCell floors a world position to a cell and clamps it into the grid.
func (g Grid) WorldToCell(x, y float64) Cell {
	col, row := g.rawCell(x, y)
	return Cell{
		Col: clampInt(col, 0, g.Cols-1),
		Row: clampInt(row, 0, g.Rows-1),
	}
}

// rawCell floors a world position without clamping. Points left of or above
// the origin land on negative indices.
func (g Grid) rawCell(x, y float64) (int, int) {
	return int(math.Floor((x - g.OriginX) / g.CellSize)),
		int(math.Floor((y - g.OriginY) / g.CellSize))
}

// onEdge reports whether (col, row) touches the outer boundary.
func (g Grid) onEdge(col, row int) bool {
	return col == 0 || row == 0 || col == g.Cols-1 || row == g.Rows-1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
