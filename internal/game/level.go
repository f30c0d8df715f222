package game

import "math"

// Phase is the level state machine. LevelComplete and GameOver are terminal
// until the host advances or restarts.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "playing"
	}
}

// LevelState is the HUD-facing progress of a run.
type LevelState struct {
	Level          int
	Score          int
	BestScore      int
	Coverage       float64 // percent of cells filled
	TargetCoverage float64 // percent needed to clear the level
	Captures       int     // captures committed this level
	Phase          Phase
}

// GameOver reports whether the run ended on wall contact.
func (ls LevelState) GameOver() bool { return ls.Phase == PhaseGameOver }

// LevelComplete reports whether the coverage target was reached.
func (ls LevelState) LevelComplete() bool { return ls.Phase == PhaseLevelComplete }

// CapturePoints scores one capture of areaPct percent of the grid. Larger
// single captures earn disproportionately more.
func CapturePoints(areaPct, basePoints, comboMultiplier float64) int {
	if areaPct <= 0 {
		return 0
	}
	return int(math.Floor(areaPct * basePoints * (1 + areaPct/100*comboMultiplier)))
}

// CoveragePercent recomputes coverage from the filled mask.
func CoveragePercent(filled Mask) float64 {
	if len(filled) == 0 {
		return 0
	}
	return float64(filled.Count()) / float64(len(filled)) * 100
}

// nextTargetCoverage raises the target by inc, capped at limit.
func nextTargetCoverage(cur, inc, limit float64) float64 {
	return math.Min(cur+inc, limit)
}

// recordCapture folds one capture into the level state and reports the
// points awarded and whether the best score improved.
func (ls *LevelState) recordCapture(res CaptureResult, filled Mask, cfg Config) (int, bool) {
	areaPct := 0.0
	if len(filled) > 0 {
		areaPct = float64(res.NewlyFilled) / float64(len(filled)) * 100
	}
	points := CapturePoints(areaPct, cfg.BasePoints, cfg.ComboMultiplier)
	ls.Score += points
	ls.Captures++
	ls.Coverage = CoveragePercent(filled)
	if ls.Coverage >= ls.TargetCoverage {
		ls.Phase = PhaseLevelComplete
	}
	return points, ls.raiseBest()
}

// raiseBest lifts BestScore to Score and reports whether it moved.
func (ls *LevelState) raiseBest() bool {
	if ls.Score > ls.BestScore {
		ls.BestScore = ls.Score
		return true
	}
	return false
}
