package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/atotto/clipboard"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	firstCaptureTick int
	firstClearTick   int
	gameOverTick     int
	levelReached     int
	levelsCleared    int
	captures         int
	cellsCaptured    int
	wallCells        int
	largestCapture   int
	drawStarts       int
	haltsBlocked     int
	haltsJunction    int
	finalScore       int
	finalCoverage    float64
	clearedCoverages []float64
	pointsPerCapture []int
	storeFailures    int
	endedOnGameOver  bool
}

type reportOptions struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	cols     int
	rows     int
	cfg      game.Config
}

func main() {
	var runs, ticks, cols, rows int
	var seedBase, seedStep int64
	var configPath string
	var copyReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot games")
	flag.IntVar(&ticks, "ticks", 6000, "tick budget per game")
	flag.Int64Var(&seedBase, "seed-base", 42, "autopilot seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&cols, "cols", 60, "grid columns")
	flag.IntVar(&rows, "rows", 40, "grid rows")
	flag.StringVar(&configPath, "config", "", "JSON tuning file (defaults when empty)")
	flag.BoolVar(&copyReport, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if cols < 3 || rows < 3 {
		fmt.Println("error: -cols and -rows must be >= 3")
		return
	}

	cfg := game.DefaultConfig()
	if configPath != "" {
		loaded, err := game.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		cfg = loaded
	}

	var buf bytes.Buffer
	writeReport(io.MultiWriter(os.Stdout, &buf), reportOptions{
		runs:     runs,
		ticks:    ticks,
		seedBase: seedBase,
		seedStep: seedStep,
		cols:     cols,
		rows:     rows,
		cfg:      cfg,
	})

	if copyReport {
		if clipboard.Unsupported {
			fmt.Println("clipboard: unsupported on this platform")
			return
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			fmt.Printf("clipboard: %v\n", err)
			return
		}
		fmt.Println("clipboard: report copied")
	}
}

func writeReport(w io.Writer, opts reportOptions) {
	fmt.Fprintf(w, "=== Headless Capture Report ===\n")
	fmt.Fprintf(w, "runs=%d ticks=%d grid=%dx%d seed_base=%d seed_step=%d target=%.1f enemy_speed=%.1f\n\n",
		opts.runs, opts.ticks, opts.cols, opts.rows, opts.seedBase, opts.seedStep,
		opts.cfg.InitialTargetCoverage, opts.cfg.EnemySpeed)

	all := make([]runStats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		rs := runAutopilotGame(i+1, seed, opts)
		all = append(all, rs)
		printRun(w, rs)
	}
	printAggregate(w, all)
}

// runAutopilotGame plays one seeded game, advancing through cleared levels,
// until the enemy ends it or the tick budget runs out.
func runAutopilotGame(runIndex int, seed int64, opts reportOptions) runStats {
	cfg := opts.cfg
	ts := game.NewTestSim(
		game.WithGridSize(opts.cols, opts.rows),
		game.WithSeed(seed),
		game.WithConfig(func(c *game.Config) { *c = cfg }),
	)

	rs := runStats{runIndex: runIndex, seed: seed}
	for {
		lvl := ts.Engine.Level()
		if lvl.Phase == game.PhaseLevelComplete {
			rs.clearedCoverages = append(rs.clearedCoverages, lvl.Coverage)
			if ts.CurrentTick() >= opts.ticks {
				break
			}
			ts.Engine.AdvanceLevel()
			continue
		}
		if lvl.Phase != game.PhasePlaying || ts.CurrentTick() >= opts.ticks {
			break
		}
		ts.RunAutopilot(opts.ticks - ts.CurrentTick())
	}

	lvl := ts.Engine.Level()
	rs.ticks = ts.CurrentTick()
	rs.levelReached = lvl.Level
	rs.levelsCleared = len(rs.clearedCoverages)
	rs.finalScore = lvl.Score
	rs.finalCoverage = lvl.Coverage
	rs.endedOnGameOver = lvl.Phase == game.PhaseGameOver

	for _, ev := range ts.Events {
		if ev.Type != game.EventCapture {
			continue
		}
		rs.wallCells += ev.Capture.WallFilled
		rs.pointsPerCapture = append(rs.pointsPerCapture, ev.Points)
	}

	log := ts.SimLog
	for _, e := range log.Filter(game.CatCapture, "commit") {
		rs.largestCapture = max(rs.largestCapture, int(e.NumVal))
	}
	rs.captures = log.Count(game.CatCapture, "commit")
	rs.cellsCaptured = int(log.Sum(game.CatCapture, "commit"))
	rs.firstCaptureTick = log.FirstTick(game.CatCapture, "commit")
	rs.firstClearTick = log.FirstTick(game.CatLevel, "complete")
	rs.gameOverTick = log.FirstTick(game.CatLevel, "game_over")
	rs.drawStarts = log.Count(game.CatDraw, "start")
	rs.haltsBlocked = log.Count(game.CatMove, "halt_blocked")
	rs.haltsJunction = log.Count(game.CatMove, "halt_junction")
	rs.storeFailures = log.Count(game.CatStore, "save_failed") + log.Count(game.CatStore, "load_failed")
	return rs
}

// outcome labels how a run ended.
func outcome(rs runStats) string {
	switch {
	case rs.endedOnGameOver && rs.levelsCleared > 0:
		return fmt.Sprintf("game_over_after_%d_clears", rs.levelsCleared)
	case rs.endedOnGameOver:
		return "game_over"
	case rs.levelsCleared > 0:
		return fmt.Sprintf("timeout_after_%d_clears", rs.levelsCleared)
	default:
		return "timeout"
	}
}

// completionRate is the share of started lines that ended in a capture.
func completionRate(rs runStats) float64 {
	if rs.drawStarts == 0 {
		return 0
	}
	return float64(rs.captures) / float64(rs.drawStarts) * 100
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "outcome=%s ticks=%d level=%d score=%d coverage=%.2f\n",
		outcome(rs), rs.ticks, rs.levelReached, rs.finalScore, rs.finalCoverage)
	fmt.Fprintf(w, "phase_markers: first_capture=%d first_clear=%d game_over=%d\n",
		rs.firstCaptureTick, rs.firstClearTick, rs.gameOverTick)
	fmt.Fprintf(w, "captures: count=%d cells=%d wall=%d largest=%d median_points=%d\n",
		rs.captures, rs.cellsCaptured, rs.wallCells, rs.largestCapture, medianInt(rs.pointsPerCapture))
	fmt.Fprintf(w, "lines: started=%d completed=%.0f%% halt_blocked=%d halt_junction=%d\n",
		rs.drawStarts, completionRate(rs), rs.haltsBlocked, rs.haltsJunction)
	if len(rs.clearedCoverages) > 0 {
		fmt.Fprintf(w, "cleared_at:")
		for _, c := range rs.clearedCoverages {
			fmt.Fprintf(w, " %.1f%%", c)
		}
		fmt.Fprintln(w)
	}
	if rs.storeFailures > 0 {
		fmt.Fprintf(w, "store_failures=%d\n", rs.storeFailures)
	}
	fmt.Fprintln(w)
}

type aggregate struct {
	runs           int
	gameOvers      int
	totalCaptures  int
	totalCells     int
	totalScore     int
	bestScore      int
	bestRun        int
	maxLevel       int
	totalCleared   int
	firstCaptures  []int
	gameOverTicks  []int
	allPoints      []int
	outcomeCounts  map[string]int
	totalDrawStart int
}

func summarize(all []runStats) aggregate {
	ag := aggregate{runs: len(all), outcomeCounts: map[string]int{}}
	for _, rs := range all {
		if rs.endedOnGameOver {
			ag.gameOvers++
		}
		ag.totalCaptures += rs.captures
		ag.totalCells += rs.cellsCaptured
		ag.totalScore += rs.finalScore
		ag.totalCleared += rs.levelsCleared
		ag.totalDrawStart += rs.drawStarts
		if rs.finalScore > ag.bestScore || ag.bestRun == 0 {
			ag.bestScore = rs.finalScore
			ag.bestRun = rs.runIndex
		}
		if rs.levelReached > ag.maxLevel {
			ag.maxLevel = rs.levelReached
		}
		if rs.firstCaptureTick >= 0 {
			ag.firstCaptures = append(ag.firstCaptures, rs.firstCaptureTick)
		}
		if rs.gameOverTick >= 0 {
			ag.gameOverTicks = append(ag.gameOverTicks, rs.gameOverTick)
		}
		ag.allPoints = append(ag.allPoints, rs.pointsPerCapture...)
		ag.outcomeCounts[outcome(rs)]++
	}
	return ag
}

func printAggregate(w io.Writer, all []runStats) {
	ag := summarize(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d game_overs=%d max_level=%d levels_cleared=%d\n",
		ag.runs, ag.gameOvers, ag.maxLevel, ag.totalCleared)
	fmt.Fprintf(w, "avg_per_run: captures=%.1f cells=%.1f score=%.1f lines_started=%.1f\n",
		avg(ag.totalCaptures, ag.runs), avg(ag.totalCells, ag.runs), avg(ag.totalScore, ag.runs), avg(ag.totalDrawStart, ag.runs))
	fmt.Fprintf(w, "best_score=%d (run %d) median_points_per_capture=%d\n",
		ag.bestScore, ag.bestRun, medianInt(ag.allPoints))
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_capture=%s game_over=%s\n",
		avgTickString(ag.firstCaptures), avgTickString(ag.gameOverTicks))

	labels := make([]string, 0, len(ag.outcomeCounts))
	for k := range ag.outcomeCounts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	fmt.Fprint(w, "outcomes:")
	for _, k := range labels {
		fmt.Fprintf(w, " %s=%d", k, ag.outcomeCounts[k])
	}
	fmt.Fprintln(w)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func medianInt(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}
