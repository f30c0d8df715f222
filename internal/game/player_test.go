package game

import "testing"

// With cell size 8 and speed 64 one step takes exactly 0.125s.
const testStep = 0.125

func newMoveFixture(col, row int, dir Direction) (Grid, *Player, Masks) {
	g := NewGrid(Rect{W: 80, H: 80}, 8) // 10x10
	p := &Player{Dir: dir}
	p.snapTo(g, Cell{col, row})
	return g, p, NewMasks(g)
}

func TestMovePlayer_NoDirectionDoesNothing(t *testing.T) {
	g, p, ms := newMoveFixture(0, 0, DirNone)
	p.Carry = 0.1
	out := movePlayer(g, p, ms, 64, 4, 1)
	if out.Steps != 0 || p.Carry != 0 || p.Cell(g) != (Cell{0, 0}) {
		t.Fatalf("idle player moved: %+v carry=%v", out, p.Carry)
	}
}

func TestMovePlayer_FollowsBorder(t *testing.T) {
	g, p, ms := newMoveFixture(0, 0, DirRight)
	out := movePlayer(g, p, ms, 64, 4, 3*testStep)
	if out.Steps != 3 || p.Cell(g) != (Cell{3, 0}) {
		t.Fatalf("steps=%d cell=%v, want 3 steps to (3,0)", out.Steps, p.Cell(g))
	}
	if p.Drawing || ms.Wall.Count() != 0 {
		t.Fatal("moving along the border must not draw")
	}
	if p.State() != PlayerBorderFollowing {
		t.Fatalf("state=%s, want border", p.State())
	}
}

func TestMovePlayer_PartialStepCarries(t *testing.T) {
	g, p, ms := newMoveFixture(0, 0, DirRight)
	movePlayer(g, p, ms, 64, 4, testStep/2)
	if p.Cell(g) != (Cell{0, 0}) {
		t.Fatal("half a step should not move the player")
	}
	movePlayer(g, p, ms, 64, 4, testStep/2)
	if p.Cell(g) != (Cell{1, 0}) {
		t.Fatalf("two halves should make one step, at %v", p.Cell(g))
	}
}

func TestMovePlayer_StepCap(t *testing.T) {
	g, p, ms := newMoveFixture(0, 0, DirRight)
	out := movePlayer(g, p, ms, 64, 4, 10*testStep)
	if out.Steps != 4 {
		t.Fatalf("steps=%d, want cap of 4", out.Steps)
	}
	if p.Carry > testStep {
		t.Fatalf("carry %v exceeds one step interval after capping", p.Carry)
	}
}

func TestMovePlayer_BlockedAtEdge(t *testing.T) {
	g, p, ms := newMoveFixture(9, 0, DirUp)
	out := movePlayer(g, p, ms, 64, 4, testStep)
	if out.Halt != haltBlocked {
		t.Fatalf("halt=%s, want blocked", out.Halt)
	}
	if p.Dir != DirNone || p.Cell(g) != (Cell{9, 0}) {
		t.Fatalf("blocked player should stop in place, dir=%s cell=%v", p.Dir, p.Cell(g))
	}
}

func TestMovePlayer_BlockedByFilled(t *testing.T) {
	g, p, ms := newMoveFixture(0, 3, DirRight)
	ms.Filled.Set(g, 1, 3, true)
	ms.Border = ComputeBorderMask(g, ms.Filled)
	out := movePlayer(g, p, ms, 64, 4, testStep)
	if out.Halt != haltBlocked || p.Cell(g) != (Cell{0, 3}) {
		t.Fatalf("moving into filled should halt, got %+v at %v", out, p.Cell(g))
	}
}

func TestMovePlayer_StartsDrawingOffBorder(t *testing.T) {
	g, p, ms := newMoveFixture(5, 0, DirDown)
	out := movePlayer(g, p, ms, 64, 4, testStep)
	if !out.StartedDrawing || !p.Drawing {
		t.Fatal("leaving the border should start a line")
	}
	if len(p.PathCells) != 2 || p.PathCells[0] != (Cell{5, 0}) || p.PathCells[1] != (Cell{5, 1}) {
		t.Fatalf("path=%v", p.PathCells)
	}
	if !ms.Wall.At(g, 5, 0) || !ms.Wall.At(g, 5, 1) || ms.Wall.Count() != 2 {
		t.Fatalf("wall should hold the first segment, count=%d", ms.Wall.Count())
	}
	if p.State() != PlayerDrawing {
		t.Fatalf("state=%s, want drawing", p.State())
	}
}

func TestMovePlayer_ClosesLoopOnBorder(t *testing.T) {
	g, p, ms := newMoveFixture(5, 0, DirDown)
	out := movePlayer(g, p, ms, 64, 20, 12*testStep)
	if !out.ClosedLoop {
		t.Fatal("reaching the far border should close the loop")
	}
	if out.Steps != 9 || p.Cell(g) != (Cell{5, 9}) {
		t.Fatalf("steps=%d cell=%v, want 9 steps to (5,9)", out.Steps, p.Cell(g))
	}
	if len(p.PathCells) != 10 || ms.Wall.Count() != 10 {
		t.Fatalf("path=%d wall=%d, want 10 each", len(p.PathCells), ms.Wall.Count())
	}
	if ms.Filled.Count() != 0 {
		t.Fatal("movement must leave capture to the caller")
	}
}

func TestPlayer_SteerReassertsNeverToggles(t *testing.T) {
	p := &Player{}
	p.Steer(DirLeft)
	p.Steer(DirLeft)
	if p.Dir != DirLeft {
		t.Fatalf("re-asserting a direction changed it to %s", p.Dir)
	}
	p.Steer(DirNone)
	if p.Dir != DirLeft {
		t.Fatal("no signal should keep the held direction")
	}
	p.Steer(DirUp)
	if p.Dir != DirUp {
		t.Fatal("a new direction should replace the old one")
	}
}

func TestDirection_DeltaAndOpposite(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		dc, dr := d.Delta()
		oc, or := d.Opposite().Delta()
		if dc != -oc || dr != -or || absInt(dc)+absInt(dr) != 1 {
			t.Fatalf("%s delta=(%d,%d) opposite=(%d,%d)", d, dc, dr, oc, or)
		}
	}
	if dc, dr := DirNone.Delta(); dc != 0 || dr != 0 {
		t.Fatal("DirNone must not move")
	}
}
