package game

import "testing"

func TestAutopilot_IdleWhenNotPlaying(t *testing.T) {
	ts := NewTestSim()
	snap := ts.Engine.Snapshot()
	snap.Level.Phase = PhaseGameOver
	if d := NewAutopilot(1).Next(&snap); d != DirNone {
		t.Fatalf("autopilot steered %s after the game ended", d)
	}
}

func TestAutopilot_OnlyPicksPassableDirections(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		ts := NewTestSim(WithSeed(seed))
		snap := ts.Engine.Snapshot()
		d := NewAutopilot(seed).Next(&snap)
		if d == DirNone {
			continue
		}
		dc, dr := d.Delta()
		if !snap.Passable(snap.PlayerCell().Add(dc, dr)) {
			t.Fatalf("seed %d: first move %s leads off the grid", seed, d)
		}
	}
}

func TestAutopilot_MovesThePlayer(t *testing.T) {
	ts := NewTestSim(WithGridSize(40, 30), WithSeed(3), WithVerbose(true))
	ts.RunAutopilot(50)
	if ts.SimLog.Count("move", "position") == 0 {
		t.Fatal("autopilot never moved the player")
	}
}

func TestNearestEdgeDir(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 80}, 8)
	cases := []struct {
		c    Cell
		want Direction
	}{
		{Cell{5, 1}, DirUp},
		{Cell{5, 8}, DirDown},
		{Cell{1, 5}, DirLeft},
		{Cell{8, 4}, DirRight},
	}
	for _, tc := range cases {
		if got := nearestEdgeDir(g, tc.c); got != tc.want {
			t.Fatalf("nearestEdgeDir(%v)=%s, want %s", tc.c, got, tc.want)
		}
	}
}

func TestPerpendicular(t *testing.T) {
	if perpendicular(DirUp, true) != DirRight || perpendicular(DirLeft, false) != DirUp {
		t.Fatal("perpendicular turned the wrong way")
	}
}
