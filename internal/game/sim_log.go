package game

import (
	"fmt"
	"strings"
)

// SimLog categories written by the engine.
const (
	CatMove    = "move"    // halts, and per-step positions when verbose
	CatDraw    = "draw"    // a live line was started
	CatCapture = "capture" // a loop was committed
	CatEnemy   = "enemy"   // wall contact
	CatLevel   = "level"   // start, advance, complete, game_over
	CatStore   = "store"   // best-score load/save failures
)

// SimLogEntry is one recorded engine event.
type SimLogEntry struct {
	Tick     int
	Category string
	Key      string
	Value    string  // human-readable detail
	NumVal   float64 // cells, points or level, depending on the key
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] capture  commit           new=25 wall=7
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-16s %s",
		e.Tick, e.Category, e.Key, e.Value)
}

// SimLog is the engine's unbounded, machine-readable event record. Tests,
// the headless report and the frontends' summaries read it back.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep per-step movement.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, category, key, value, numVal)
	}
}

func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

func (sl *SimLog) Reset() {
	sl.entries = sl.entries[:0]
}

func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries matching category and key. Empty matches anything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// Between returns entries with fromTick <= Tick <= toTick.
func (sl *SimLog) Between(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

func (sl *SimLog) Count(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// Sum adds up NumVal over matching entries, e.g. cells over capture/commit.
func (sl *SimLog) Sum(category, key string) float64 {
	total := 0.0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			total += e.NumVal
		}
	}
	return total
}

// FirstTick returns the tick of the earliest matching entry, or -1.
func (sl *SimLog) FirstTick(category, key string) int {
	for _, e := range sl.entries {
		if e.matches(category, key) {
			return e.Tick
		}
	}
	return -1
}

// Last returns the most recent matching entry.
func (sl *SimLog) Last(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether a matching entry's Value contains valueSubstr.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one line per entry.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatBetween renders the entries of a tick window.
func (sl *SimLog) FormatBetween(fromTick, toTick int) string {
	return formatEntries(sl.Between(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary describes a snapshot together with the log's running totals. It is
// what the frontends copy to the clipboard.
func (sl *SimLog) Summary(s Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", s.Tick)
	fmt.Fprintf(&sb, "Level %d  phase=%s  score=%d  best=%d\n",
		s.Level.Level, s.Level.Phase, s.Level.Score, s.Level.BestScore)
	fmt.Fprintf(&sb, "Coverage %.2f%% / target %.2f%%  captures=%d\n",
		s.Level.Coverage, s.Level.TargetCoverage, s.Level.Captures)
	pc := s.PlayerCell()
	ec := s.EnemyCell()
	fmt.Fprintf(&sb, "Player (%d,%d) %s facing %s  path=%d\n",
		pc.Col, pc.Row, s.Player.State(), s.Player.Dir, len(s.Player.PathCells))
	fmt.Fprintf(&sb, "Enemy (%d,%d) v=(%.1f,%.1f)\n", ec.Col, ec.Row, s.Enemy.VX, s.Enemy.VY)
	fmt.Fprintf(&sb, "Captures logged: %d (%d cells)  halts: blocked=%d junction=%d\n",
		sl.Count(CatCapture, "commit"),
		int(sl.Sum(CatCapture, "commit")),
		sl.Count(CatMove, "halt_blocked"),
		sl.Count(CatMove, "halt_junction"))
	return sb.String()
}
