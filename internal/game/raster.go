package game

// rasterSlack bounds per-segment iteration beyond the cell count.
const rasterSlack = 4

// RasterizePolyline marks every cell on the Bresenham lines joining
// consecutive entries of cells. Fewer than two cells is a no-op. Cells
// outside the grid are skipped but the line is still walked through them.
func RasterizePolyline(g Grid, cells []Cell, mask Mask) {
	if len(cells) < 2 {
		return
	}
	for i := 1; i < len(cells); i++ {
		rasterizeSegment(g, cells[i-1], cells[i], mask)
	}
}

// rasterizeSegment walks the integer Bresenham line from a to b inclusive.
// The result is 8-connected, which is enough to stop a 4-connected flood.
func rasterizeSegment(g Grid, a, b Cell, mask Mask) {
	x0, y0 := a.Col, a.Row
	x1, y1 := b.Col, b.Row

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy

	limit := g.Cells() + rasterSlack
	for i := 0; i < limit; i++ {
		mask.Set(g, x0, y0, true)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
