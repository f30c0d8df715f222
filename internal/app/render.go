package app

import (
	"image/color"

	"github.com/Garsondee/Box-Cutter/internal/game"
)

var (
	colEmpty  = color.RGBA{R: 14, G: 16, B: 22, A: 255}
	colBorder = color.RGBA{R: 70, G: 90, B: 120, A: 255}
	colFilled = color.RGBA{R: 30, G: 120, B: 110, A: 255}
	colWall   = color.RGBA{R: 250, G: 210, B: 60, A: 255}
	colPlayer = color.RGBA{R: 240, G: 240, B: 250, A: 255}
	colEnemy  = color.RGBA{R: 230, G: 70, B: 80, A: 255}
)

// cellColor picks the colour of one cell. The live wall draws over
// everything, then territory, then the border.
func cellColor(s *game.Snapshot, idx int) color.RGBA {
	switch {
	case s.Wall[idx]:
		return colWall
	case s.Filled[idx]:
		return colFilled
	case s.Border[idx]:
		return colBorder
	default:
		return colEmpty
	}
}

// renderCells writes one RGBA pixel per cell into pix, row-major, and
// returns pix resized to fit.
func renderCells(s *game.Snapshot, pix []byte) []byte {
	n := s.Grid.Cells() * 4
	if cap(pix) < n {
		pix = make([]byte, n)
	}
	pix = pix[:n]
	for i := 0; i < s.Grid.Cells(); i++ {
		c := cellColor(s, i)
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	return pix
}

// viewport maps engine world coordinates onto the screen.
type viewport struct {
	offX, offY float64
	scale      float64
	grid       game.Grid
}

func (v viewport) toScreen(x, y float64) (float32, float32) {
	return float32(v.offX + (x-v.grid.OriginX)*v.scale), float32(v.offY + (y-v.grid.OriginY)*v.scale)
}

func (v viewport) size() (float32, float32) {
	return float32(v.grid.Width() * v.scale), float32(v.grid.Height() * v.scale)
}
