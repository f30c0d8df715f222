package game

import "testing"

func TestApplyCapture_VerticalWallSplitsGrid(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 80}, 8) // 10x10
	filled, wall := NewMask(g), NewMask(g)
	for row := 0; row < g.Rows; row++ {
		wall.Set(g, 4, row, true)
	}

	res := ApplyCapture(g, filled, wall, Cell{7, 5})
	if res.NewlyFilled != 40 || res.WallFilled != 10 {
		t.Fatalf("got %+v, want 40 newly filled and 10 wall", res)
	}
	if res.Total() != 50 || filled.Count() != 50 {
		t.Fatalf("total=%d filled=%d, want 50", res.Total(), filled.Count())
	}
	if wall.Count() != 0 {
		t.Fatal("wall must be empty after commit")
	}
	if !filled.At(g, 0, 0) || filled.At(g, 9, 9) {
		t.Fatal("wrong side captured")
	}
}

func TestApplyCapture_EnclosedPocket(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 80}, 8)
	filled, wall := NewMask(g), NewMask(g)
	// A 3x3 ring of wall around (5,5).
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			if dc != 0 || dr != 0 {
				wall.Set(g, 5+dc, 5+dr, true)
			}
		}
	}
	res := ApplyCapture(g, filled, wall, Cell{0, 0})
	if res.NewlyFilled != 1 || res.WallFilled != 8 {
		t.Fatalf("got %+v, want 1 newly filled and 8 wall", res)
	}
	if !filled.At(g, 5, 5) {
		t.Fatal("pocket cell should be filled")
	}
}

func TestApplyCapture_WallOverFilledIsAbsorbed(t *testing.T) {
	g := NewGrid(Rect{W: 40, H: 40}, 8)
	filled, wall := NewMask(g), NewMask(g)
	filled.Set(g, 0, 0, true)
	wall.Set(g, 0, 0, true)
	wall.Set(g, 1, 0, true)

	res := ApplyCapture(g, filled, wall, Cell{3, 3})
	if res.WallFilled != 1 || res.NewlyFilled != 0 {
		t.Fatalf("got %+v, want only the one empty wall cell counted", res)
	}
	for i := range filled {
		if filled[i] && wall[i] {
			t.Fatal("a cell is both filled and wall")
		}
	}
}

func TestApplyCapture_NoWallCapturesNothing(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 80}, 8)
	filled, wall := NewMask(g), NewMask(g)
	res := ApplyCapture(g, filled, wall, Cell{5, 5})
	if res.Total() != 0 || filled.Count() != 0 {
		t.Fatalf("empty wall captured %+v", res)
	}
}

func TestFindNearestBorderCell(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 80}, 8)
	filled := NewMask(g)
	border := ComputeBorderMask(g, filled)

	if c, ok := FindNearestBorderCell(g, border, Cell{0, 4}); !ok || c != (Cell{0, 4}) {
		t.Fatalf("a border start should return itself, got %v %v", c, ok)
	}
	if c, ok := FindNearestBorderCell(g, border, Cell{1, 4}); !ok || c != (Cell{0, 4}) {
		t.Fatalf("nearest from (1,4) = %v %v, want (0,4)", c, ok)
	}
	if c, ok := FindNearestBorderCell(g, border, Cell{-5, 40}); !ok || c != (Cell{0, 9}) {
		t.Fatalf("out-of-grid start should clamp, got %v %v", c, ok)
	}

	for i := range filled {
		filled[i] = true
	}
	border = ComputeBorderMask(g, filled)
	if _, ok := FindNearestBorderCell(g, border, Cell{5, 5}); ok {
		t.Fatal("a fully filled grid has no border cell")
	}
}
