package game

// ComputeBorderMask derives the border mask from filled. A cell is a border
// cell iff it is not filled and either lies on the outer edge of the grid or
// has a filled 4-neighbour.
func ComputeBorderMask(g Grid, filled Mask) Mask {
	border := NewMask(g)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.CellIndex(col, row)
			if filled[idx] {
				continue
			}
			if g.onEdge(col, row) || hasFilledNeighbour(g, filled, col, row) {
				border[idx] = true
			}
		}
	}
	return border
}

func hasFilledNeighbour(g Grid, filled Mask, col, row int) bool {
	for _, d := range neighbours4 {
		if filled.At(g, col+d[0], row+d[1]) {
			return true
		}
	}
	return false
}
