package game

// Snapshot is a read-only copy of the simulation for renderers and HUDs.
// Nothing in it aliases engine state.
type Snapshot struct {
	Tick   int
	RunID  string
	Grid   Grid
	Filled Mask
	Wall   Mask
	Border Mask
	Player Player
	Enemy  Enemy
	Level  LevelState
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	p := e.player
	p.PathCells = append([]Cell(nil), e.player.PathCells...)
	return Snapshot{
		Tick:   e.tick,
		RunID:  e.runID,
		Grid:   e.grid,
		Filled: e.masks.Filled.Clone(),
		Wall:   e.masks.Wall.Clone(),
		Border: e.masks.Border.Clone(),
		Player: p,
		Enemy:  e.enemy,
		Level:  e.level,
	}
}

// PlayerCell returns the cell under the player.
func (s *Snapshot) PlayerCell() Cell {
	return s.Grid.WorldToCell(s.Player.X, s.Player.Y)
}

// EnemyCell returns the cell under the enemy's centre.
func (s *Snapshot) EnemyCell() Cell {
	return s.Grid.WorldToCell(s.Enemy.X, s.Enemy.Y)
}

// Passable reports whether c is inside the grid and not filled.
func (s *Snapshot) Passable(c Cell) bool {
	return s.Grid.InBounds(c.Col, c.Row) && !s.Filled.At(s.Grid, c.Col, c.Row)
}

// IsBorder reports whether c is a border cell.
func (s *Snapshot) IsBorder(c Cell) bool {
	return s.Border.At(s.Grid, c.Col, c.Row)
}
