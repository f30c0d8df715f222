package app

import (
	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Actions is everything the player asked for in one frame.
type Actions struct {
	Dir       game.Direction // DirNone when no direction was pressed this frame
	Confirm   bool           // advance after a clear, restart after a game over
	Restart   bool
	Pause     bool
	Copy      bool
	Autopilot bool
	Mute      bool
}

type keyDir struct {
	key ebiten.Key
	dir game.Direction
}

// keyDirs is checked in order; the last match in a frame wins.
var keyDirs = []keyDir{
	{ebiten.KeyArrowUp, game.DirUp},
	{ebiten.KeyW, game.DirUp},
	{ebiten.KeyArrowDown, game.DirDown},
	{ebiten.KeyS, game.DirDown},
	{ebiten.KeyArrowLeft, game.DirLeft},
	{ebiten.KeyA, game.DirLeft},
	{ebiten.KeyArrowRight, game.DirRight},
	{ebiten.KeyD, game.DirRight},
}

// dpad is the on-screen direction pad. Buttons are square, size pixels wide,
// arranged in a plus around (cx, cy).
type dpad struct {
	cx, cy float64
	size   float64
}

type padButton struct {
	dir        game.Direction
	x, y, w, h float64
}

func (p dpad) buttons() [4]padButton {
	s := p.size
	return [4]padButton{
		{game.DirUp, p.cx - s/2, p.cy - s*3/2, s, s},
		{game.DirDown, p.cx - s/2, p.cy + s/2, s, s},
		{game.DirLeft, p.cx - s*3/2, p.cy - s/2, s, s},
		{game.DirRight, p.cx + s/2, p.cy - s/2, s, s},
	}
}

// hit returns the direction of the button under (x, y), or DirNone.
func (p dpad) hit(x, y float64) game.Direction {
	for _, b := range p.buttons() {
		if x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h {
			return b.dir
		}
	}
	return game.DirNone
}

// Input turns keyboard, mouse and touch presses into Actions. Every press is
// edge-triggered: a direction is sent once per press and the engine keeps it,
// so pressing the held direction again re-asserts it rather than stopping.
type Input struct {
	pad dpad
}

func NewInput(pad dpad) *Input {
	return &Input{pad: pad}
}

// Poll reads this frame's presses.
func (in *Input) Poll() Actions {
	var a Actions
	for _, kd := range keyDirs {
		if inpututil.IsKeyJustPressed(kd.key) {
			a.Dir = kd.dir
		}
	}
	a.Confirm = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	a.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	a.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP)
	a.Copy = inpututil.IsKeyJustPressed(ebiten.KeyC)
	a.Autopilot = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	a.Mute = inpututil.IsKeyJustPressed(ebiten.KeyM)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.press(&a, float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		in.press(&a, float64(x), float64(y))
	}
	return a
}

// press handles a click or tap: a D-pad button steers, anything else
// confirms.
func (in *Input) press(a *Actions, x, y float64) {
	if d := in.pad.hit(x, y); d != game.DirNone {
		a.Dir = d
		return
	}
	a.Confirm = true
}
