package game

import (
	"strings"
	"testing"
)

func TestSimLog_FilterAndLookup(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "draw", "start", "from (0,0) up", 0)
	sl.Add(4, "capture", "commit", "new=25 wall=11", 25)
	sl.Add(9, "capture", "commit", "new=3 wall=4", 3)
	sl.AddVerbose(9, "move", "position", "(1,1)", 1)

	if sl.Count("capture", "commit") != 2 {
		t.Fatal("expected two commits")
	}
	if len(sl.Filter("", "")) != 3 {
		t.Fatal("verbose entry should be dropped when not verbose")
	}
	last, ok := sl.Last("capture", "commit")
	if !ok || last.NumVal != 3 {
		t.Fatalf("Last=%+v %v", last, ok)
	}
	if _, ok := sl.Last("level", "game_over"); ok {
		t.Fatal("Last should miss")
	}
	if !sl.HasEntry("capture", "", "wall=11") || sl.HasEntry("draw", "start", "down") {
		t.Fatal("HasEntry substring matching is wrong")
	}
	if n := len(sl.Between(2, 9)); n != 2 {
		t.Fatalf("tick range entries=%d, want 2", n)
	}
	if !strings.Contains(sl.FormatBetween(4, 4), "[T=0004] capture  commit") {
		t.Fatalf("unexpected format:\n%s", sl.FormatBetween(4, 4))
	}

	if got := sl.Sum(CatCapture, "commit"); got != 28 {
		t.Fatalf("captured cells=%v, want 28", got)
	}
	if got := sl.FirstTick(CatCapture, "commit"); got != 4 {
		t.Fatalf("first commit tick=%d, want 4", got)
	}
	if got := sl.FirstTick(CatLevel, "game_over"); got != -1 {
		t.Fatalf("missing entry should report -1, got %d", got)
	}

	sl.Reset()
	if len(sl.Entries()) != 0 {
		t.Fatal("Reset left entries")
	}
}

func TestSimLog_VerboseRecordsMovement(t *testing.T) {
	ts := NewTestSim(WithVerbose(true), WithEnemyVelocity(0, 0))
	ts.Walk(DirRight, 3)
	if n := ts.SimLog.Count("move", "position"); n != 3 {
		t.Fatalf("position entries=%d, want 3", n)
	}
}

func TestSimLog_Summary(t *testing.T) {
	ts := NewTestSim()
	s := ts.SimLog.Summary(ts.Engine.Snapshot())
	for _, want := range []string{"Level 1", "phase=playing", "Player (10,19) idle"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}
