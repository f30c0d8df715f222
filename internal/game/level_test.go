package game

import (
	"math"
	"testing"
)

func TestCapturePoints(t *testing.T) {
	cases := []struct {
		area float64
		want int
	}{
		{0, 0},
		{-3, 0},
		{6.25, 70},
		{50, 1000},
	}
	for _, tc := range cases {
		if got := CapturePoints(tc.area, 10, 2); got != tc.want {
			t.Fatalf("CapturePoints(%v)=%d, want %d", tc.area, got, tc.want)
		}
	}
}

func TestCapturePoints_LargerCapturesWorthMorePerCell(t *testing.T) {
	small := float64(CapturePoints(5, 10, 2)) / 5
	large := float64(CapturePoints(40, 10, 2)) / 40
	if large <= small {
		t.Fatalf("per-percent value small=%v large=%v, large should be higher", small, large)
	}
}

func TestNextTargetCoverage_Caps(t *testing.T) {
	if got := nextTargetCoverage(75, 5, 95); got != 80 {
		t.Fatalf("got %v, want 80", got)
	}
	if got := nextTargetCoverage(92, 5, 95); got != 95 {
		t.Fatalf("got %v, want cap 95", got)
	}
	if got := nextTargetCoverage(95, 5, 95); got != 95 {
		t.Fatalf("got %v, want to stay at 95", got)
	}
}

func TestCoveragePercent(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 40}, 8) // 50 cells
	m := NewMask(g)
	for col := 0; col < g.Cols; col++ {
		m.Set(g, col, 0, true)
	}
	if got := CoveragePercent(m); math.Abs(got-20) > 1e-9 {
		t.Fatalf("coverage=%v, want 20", got)
	}
	if CoveragePercent(nil) != 0 {
		t.Fatal("empty mask should report 0")
	}
}

func TestLevelState_RecordCaptureCompletesAtTarget(t *testing.T) {
	g := NewGrid(Rect{W: 80, H: 80}, 8)
	filled := NewMask(g)
	for i := 0; i < 50; i++ {
		filled[i] = true
	}
	ls := LevelState{Level: 1, TargetCoverage: 50}
	points, improved := ls.recordCapture(CaptureResult{NewlyFilled: 40, WallFilled: 10}, filled, DefaultConfig())
	if points != CapturePoints(float64(40)/float64(100)*100, 10, 2) {
		t.Fatalf("points=%d", points)
	}
	if !improved || ls.BestScore != points {
		t.Fatal("first points should raise the best score")
	}
	if !ls.LevelComplete() || ls.GameOver() {
		t.Fatalf("phase=%s, want level_complete", ls.Phase)
	}
	if ls.Captures != 1 || ls.Coverage != 50 {
		t.Fatalf("captures=%d coverage=%v", ls.Captures, ls.Coverage)
	}
}

func TestLevelState_RaiseBestOnlyUpward(t *testing.T) {
	ls := LevelState{Score: 10, BestScore: 50}
	if ls.raiseBest() || ls.BestScore != 50 {
		t.Fatal("lower score must not replace the best")
	}
	ls.Score = 60
	if !ls.raiseBest() || ls.BestScore != 60 {
		t.Fatal("higher score should replace the best")
	}
}
