package game

// Mask holds one flag per grid cell, indexed by Grid.CellIndex.
type Mask []bool

// NewMask allocates an all-false mask sized for g.
func NewMask(g Grid) Mask {
	return make(Mask, g.Cells())
}

// At returns the flag at (col, row); out-of-grid reads are false.
func (m Mask) At(g Grid, col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return m[g.CellIndex(col, row)]
}

// Set writes the flag at (col, row); out-of-grid writes are ignored.
func (m Mask) Set(g Grid, col, row int, v bool) {
	if !g.InBounds(col, row) {
		return
	}
	m[g.CellIndex(col, row)] = v
}

// Count returns how many cells are set.
func (m Mask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Clear resets every cell.
func (m Mask) Clear() {
	for i := range m {
		m[i] = false
	}
}

// Clone returns an independent copy.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	copy(out, m)
	return out
}

// Equal reports whether both masks have the same length and contents.
func (m Mask) Equal(o Mask) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// Masks groups the three live masks of a level.
//
//	Filled: captured territory, permanently out of play.
//	Wall:   the live line being drawn; empty whenever no line is in progress.
//	Border: derived from Filled by ComputeBorderMask.
type Masks struct {
	Filled Mask
	Wall   Mask
	Border Mask
}

// NewMasks allocates empty masks for g with the border ring computed.
func NewMasks(g Grid) Masks {
	filled := NewMask(g)
	return Masks{
		Filled: filled,
		Wall:   NewMask(g),
		Border: ComputeBorderMask(g, filled),
	}
}

// Clone deep-copies all three masks.
func (ms Masks) Clone() Masks {
	return Masks{
		Filled: ms.Filled.Clone(),
		Wall:   ms.Wall.Clone(),
		Border: ms.Border.Clone(),
	}
}
