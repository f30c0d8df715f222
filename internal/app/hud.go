package app

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudHeight = 44
	hudLineH  = 16
	hudPadX   = 6
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// hudLines is the text shown above the playfield.
func hudLines(ls game.LevelState, paused, autopilot bool) []string {
	status := "arrows/WASD or pad to move  P pause  Tab autopilot"
	switch {
	case ls.Phase == game.PhaseLevelComplete:
		status = "LEVEL CLEAR  Enter/tap for the next level"
	case ls.Phase == game.PhaseGameOver:
		status = "GAME OVER  Enter/tap or R to play again"
	case paused:
		status = "PAUSED  P to resume"
	case autopilot:
		status = "AUTOPILOT  Tab to take over"
	}
	return []string{
		fmt.Sprintf("LEVEL %d   SCORE %d   BEST %d   COVERAGE %.1f%% / %.0f%%",
			ls.Level, ls.Score, ls.BestScore, ls.Coverage, ls.TargetCoverage),
		status,
	}
}

// drawHUD renders the status strip at the top of the window.
func drawHUD(screen *ebiten.Image, lines []string, width int) {
	vector.FillRect(screen, 0, 0, float32(width), hudHeight, color.RGBA{R: 8, G: 10, B: 14, A: 255}, false)
	vector.StrokeLine(screen, 0, hudHeight, float32(width), hudHeight, 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudPadX, float64(6+i*hudLineH))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 220, G: 225, B: 235, A: 255})
		text.Draw(screen, line, hudFace, op)
	}
}

// drawBanner centres a message over the playfield.
func drawBanner(screen *ebiten.Image, msg string, v viewport) {
	w, h := text.Measure(msg, hudFace, 0)
	pw, ph := v.size()
	cx := float64(v.offX) + float64(pw)/2
	cy := float64(v.offY) + float64(ph)/2
	vector.FillRect(screen, float32(cx-w/2-12), float32(cy-h/2-8), float32(w+24), float32(h+16), color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-w/2, cy-h/2)
	text.Draw(screen, msg, hudFace, op)
}
