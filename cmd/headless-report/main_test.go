package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Garsondee/Box-Cutter/internal/game"
)

func smallReport() reportOptions {
	return reportOptions{
		runs:     2,
		ticks:    800,
		seedBase: 3,
		seedStep: 1,
		cols:     30,
		rows:     20,
		cfg:      game.DefaultConfig(),
	}
}

func TestOutcomeLabels(t *testing.T) {
	cases := []struct {
		rs   runStats
		want string
	}{
		{runStats{endedOnGameOver: true}, "game_over"},
		{runStats{endedOnGameOver: true, levelsCleared: 2}, "game_over_after_2_clears"},
		{runStats{}, "timeout"},
		{runStats{levelsCleared: 1}, "timeout_after_1_clears"},
	}
	for _, c := range cases {
		if got := outcome(c.rs); got != c.want {
			t.Fatalf("outcome(%+v) = %q, want %q", c.rs, got, c.want)
		}
	}
}

func TestCompletionRate(t *testing.T) {
	if got := completionRate(runStats{}); got != 0 {
		t.Fatalf("expected 0 with no lines started, got %.1f", got)
	}
	if got := completionRate(runStats{drawStarts: 4, captures: 3}); got != 75 {
		t.Fatalf("expected 75%%, got %.1f", got)
	}
}

func TestMedianInt(t *testing.T) {
	if got := medianInt(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
	vals := []int{50, 10, 30}
	if got := medianInt(vals); got != 30 {
		t.Fatalf("expected median 30, got %d", got)
	}
	if vals[0] != 50 {
		t.Fatalf("medianInt must not reorder its input, got %v", vals)
	}
}

func TestSummarize_PicksBestRunAndCountsOutcomes(t *testing.T) {
	all := []runStats{
		{runIndex: 1, finalScore: 120, captures: 3, levelReached: 1, endedOnGameOver: true, firstCaptureTick: 40, gameOverTick: 300},
		{runIndex: 2, finalScore: 900, captures: 7, levelReached: 2, levelsCleared: 1, firstCaptureTick: 60, gameOverTick: -1},
		{runIndex: 3, finalScore: 0, captures: 0, levelReached: 1, firstCaptureTick: -1, gameOverTick: -1},
	}
	ag := summarize(all)
	if ag.bestScore != 900 || ag.bestRun != 2 {
		t.Fatalf("expected best 900 from run 2, got %d from run %d", ag.bestScore, ag.bestRun)
	}
	if ag.gameOvers != 1 || ag.maxLevel != 2 || ag.totalCaptures != 10 {
		t.Fatalf("unexpected totals: %+v", ag)
	}
	if len(ag.firstCaptures) != 2 || len(ag.gameOverTicks) != 1 {
		t.Fatalf("markers: first_capture=%v game_over=%v", ag.firstCaptures, ag.gameOverTicks)
	}
	if ag.outcomeCounts["timeout"] != 1 || ag.outcomeCounts["game_over"] != 1 || ag.outcomeCounts["timeout_after_1_clears"] != 1 {
		t.Fatalf("unexpected outcome counts: %v", ag.outcomeCounts)
	}
}

func TestRunAutopilotGame_Deterministic(t *testing.T) {
	opts := smallReport()
	a := runAutopilotGame(1, 9, opts)
	b := runAutopilotGame(1, 9, opts)
	if a.ticks != b.ticks || a.captures != b.captures || a.cellsCaptured != b.cellsCaptured || a.finalScore != b.finalScore {
		t.Fatalf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
	if a.ticks > opts.ticks {
		t.Fatalf("run exceeded tick budget: %d > %d", a.ticks, opts.ticks)
	}
	if a.levelReached < 1 {
		t.Fatalf("expected level >= 1, got %d", a.levelReached)
	}
	if a.captures != len(a.pointsPerCapture) {
		t.Fatalf("SimLog captures %d disagree with bus captures %d", a.captures, len(a.pointsPerCapture))
	}
}

func TestWriteReport_ContainsEveryRun(t *testing.T) {
	var buf bytes.Buffer
	writeReport(&buf, smallReport())
	out := buf.String()
	for _, want := range []string{
		"=== Headless Capture Report ===",
		"--- Run 1 (seed=3) ---",
		"--- Run 2 (seed=4) ---",
		"=== Aggregate ===",
		"runs=2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
