package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultGameID identifies this game to score-submission collaborators.
const DefaultGameID = "box-cutter"

// Config holds the tunables for one run. Zero fields fall back to defaults.
type Config struct {
	GameID string `json:"game_id"`

	// Grid.
	CellSize float64 `json:"cell_size"` // world units per cell

	// Player.
	PlayerSpeed     float64 `json:"player_speed"`       // world units per second
	PlayerRadius    float64 `json:"player_radius"`      // rendering only
	MaxStepsPerTick int     `json:"max_steps_per_tick"` // caps catch-up on long ticks

	// Enemy.
	EnemyRadius         float64 `json:"enemy_radius"`
	EnemySpeed          float64 `json:"enemy_speed"`           // per-axis velocity magnitude at level 1
	EnemySpeedIncrement float64 `json:"enemy_speed_increment"` // added per level

	// Level targets (percent of grid cells).
	InitialTargetCoverage   float64 `json:"initial_target_coverage"`
	TargetCoverageIncrement float64 `json:"target_coverage_increment"`
	MaxTargetCoverage       float64 `json:"max_target_coverage"`

	// Scoring.
	BasePoints      float64 `json:"base_points"`
	ComboMultiplier float64 `json:"combo_multiplier"`

	// Hosts clamp their frame delta to this before calling Tick.
	MaxDeltaSeconds float64 `json:"max_delta_seconds"`
}

// DefaultConfig returns the arcade tuning.
func DefaultConfig() Config {
	return Config{
		GameID:                  DefaultGameID,
		CellSize:                8,
		PlayerSpeed:             96,
		PlayerRadius:            5,
		MaxStepsPerTick:         4,
		EnemyRadius:             5,
		EnemySpeed:              90,
		EnemySpeedIncrement:     15,
		InitialTargetCoverage:   75,
		TargetCoverageIncrement: 5,
		MaxTargetCoverage:       95,
		BasePoints:              10,
		ComboMultiplier:         2,
		MaxDeltaSeconds:         1.0 / 30.0,
	}
}

// LoadConfig reads a JSON config over the defaults. A missing file is not an
// error: the defaults are returned.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// normalized replaces non-positive fields with their defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.GameID == "" {
		c.GameID = d.GameID
	}
	if c.CellSize <= 0 {
		c.CellSize = d.CellSize
	}
	if c.PlayerSpeed <= 0 {
		c.PlayerSpeed = d.PlayerSpeed
	}
	if c.PlayerRadius <= 0 {
		c.PlayerRadius = d.PlayerRadius
	}
	if c.MaxStepsPerTick <= 0 {
		c.MaxStepsPerTick = d.MaxStepsPerTick
	}
	if c.EnemyRadius <= 0 {
		c.EnemyRadius = d.EnemyRadius
	}
	if c.EnemySpeed <= 0 {
		c.EnemySpeed = d.EnemySpeed
	}
	if c.EnemySpeedIncrement < 0 {
		c.EnemySpeedIncrement = d.EnemySpeedIncrement
	}
	if c.InitialTargetCoverage <= 0 {
		c.InitialTargetCoverage = d.InitialTargetCoverage
	}
	if c.TargetCoverageIncrement < 0 {
		c.TargetCoverageIncrement = d.TargetCoverageIncrement
	}
	if c.MaxTargetCoverage <= 0 || c.MaxTargetCoverage > d.MaxTargetCoverage {
		c.MaxTargetCoverage = d.MaxTargetCoverage
	}
	if c.BasePoints <= 0 {
		c.BasePoints = d.BasePoints
	}
	if c.ComboMultiplier < 0 {
		c.ComboMultiplier = d.ComboMultiplier
	}
	if c.MaxDeltaSeconds <= 0 {
		c.MaxDeltaSeconds = d.MaxDeltaSeconds
	}
	return c
}

// ClampDelta bounds a host frame delta to [0, maxDelta].
func ClampDelta(dt, maxDelta float64) float64 {
	if dt < 0 || dt != dt {
		return 0
	}
	if maxDelta > 0 && dt > maxDelta {
		return maxDelta
	}
	return dt
}
