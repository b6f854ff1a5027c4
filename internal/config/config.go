// Package config provides YAML/TOML game configuration loading and
// difficulty presets for the rabbit hunt.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/rabbit-hunt/internal/games/rabbits/engine"
)

// RabbitsConfig contains all configuration for one variant of the game.
type RabbitsConfig struct {
	Hero       HeroConfig       `yaml:"hero" toml:"hero"`
	Bullets    BulletConfig     `yaml:"bullets" toml:"bullets"`
	Targets    TargetConfig     `yaml:"targets" toml:"targets"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Display    DisplayConfig    `yaml:"display" toml:"display"`
	Input      InputConfig      `yaml:"input" toml:"input"`

	// Source names where the config came from ("embedded" or a file path).
	Source string `yaml:"-" toml:"-"`
}

// HeroConfig defines the player sprite.
type HeroConfig struct {
	StartX float64 `yaml:"start_x" toml:"start_x"`
	StartY float64 `yaml:"start_y" toml:"start_y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Speed  float64 `yaml:"speed" toml:"speed"`
}

// BulletConfig defines projectiles.
type BulletConfig struct {
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	OffsetX  float64 `yaml:"offset_x" toml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y" toml:"offset_y"`
	Speed    float64 `yaml:"speed" toml:"speed"`
	MinSpeed float64 `yaml:"min_speed" toml:"min_speed"`
}

// TargetConfig defines the rabbits.
type TargetConfig struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	Speed      float64 `yaml:"speed" toml:"speed"`
	MinCount   int     `yaml:"min_count" toml:"min_count"`
	SpawnSignX float64 `yaml:"spawn_sign_x" toml:"spawn_sign_x"`
	SpawnSignY float64 `yaml:"spawn_sign_y" toml:"spawn_sign_y"`
}

// DifficultyConfig defines the score-driven difficulty schedule.
type DifficultyConfig struct {
	Enabled         bool              `yaml:"enabled" toml:"enabled"`
	TargetSpeedStep float64           `yaml:"target_speed_step" toml:"target_speed_step"`
	BulletSpeedStep float64           `yaml:"bullet_speed_step" toml:"bullet_speed_step"`
	Thresholds      []ThresholdConfig `yaml:"thresholds" toml:"thresholds"`
	WinScore        int               `yaml:"win_score" toml:"win_score"` // 0 = endless
}

// ThresholdConfig is one row of the schedule.
type ThresholdConfig struct {
	Score      int `yaml:"score" toml:"score"`
	MinTargets int `yaml:"min_targets" toml:"min_targets"`
}

// DisplayConfig maps playfield units onto terminal cells.
type DisplayConfig struct {
	UnitsPerCellX float64 `yaml:"units_per_cell_x" toml:"units_per_cell_x"`
	UnitsPerCellY float64 `yaml:"units_per_cell_y" toml:"units_per_cell_y"`
}

// InputConfig tunes keyboard handling.
type InputConfig struct {
	// ReleaseAfterTicks stops the hero after this many ticks without a key
	// repeat. Terminals do not report key releases. 0 disables it.
	ReleaseAfterTicks int `yaml:"release_after_ticks" toml:"release_after_ticks"`
}

// Tuning converts the config into engine tuning. A disabled schedule keeps
// the win score but never changes speeds.
func (c RabbitsConfig) Tuning() engine.Tuning {
	t := engine.Tuning{
		HeroStartX: c.Hero.StartX,
		HeroStartY: c.Hero.StartY,
		HeroWidth:  c.Hero.Width,
		HeroHeight: c.Hero.Height,
		HeroSpeed:  c.Hero.Speed,

		BulletWidth:    c.Bullets.Width,
		BulletHeight:   c.Bullets.Height,
		BulletOffsetX:  c.Bullets.OffsetX,
		BulletOffsetY:  c.Bullets.OffsetY,
		BulletSpeed:    c.Bullets.Speed,
		MinBulletSpeed: c.Bullets.MinSpeed,

		TargetWidth:  c.Targets.Width,
		TargetHeight: c.Targets.Height,
		TargetSpeed:  c.Targets.Speed,
		MinTargets:   c.Targets.MinCount,
		SpawnSignX:   c.Targets.SpawnSignX,
		SpawnSignY:   c.Targets.SpawnSignY,

		WinScore: c.Difficulty.WinScore,
	}

	if c.Difficulty.Enabled {
		t.TargetSpeedStep = c.Difficulty.TargetSpeedStep
		t.BulletSpeedStep = c.Difficulty.BulletSpeedStep
		for _, th := range c.Difficulty.Thresholds {
			t.Schedule = append(t.Schedule, engine.Threshold{Score: th.Score, MinTargets: th.MinTargets})
		}
	}
	return t
}

// Validate reports every value the engine cannot work with.
func (c RabbitsConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("hero.width", c.Hero.Width)
	positive("hero.height", c.Hero.Height)
	positive("hero.speed", c.Hero.Speed)
	positive("bullets.width", c.Bullets.Width)
	positive("bullets.height", c.Bullets.Height)
	positive("bullets.speed", c.Bullets.Speed)
	positive("bullets.min_speed", c.Bullets.MinSpeed)
	positive("targets.width", c.Targets.Width)
	positive("targets.height", c.Targets.Height)
	positive("targets.speed", c.Targets.Speed)
	positive("display.units_per_cell_x", c.Display.UnitsPerCellX)
	positive("display.units_per_cell_y", c.Display.UnitsPerCellY)

	if c.Targets.MinCount < 0 {
		errs = append(errs, fmt.Errorf("targets.min_count must not be negative, got %d", c.Targets.MinCount))
	}
	if c.Difficulty.WinScore < 0 {
		errs = append(errs, fmt.Errorf("difficulty.win_score must not be negative, got %d", c.Difficulty.WinScore))
	}
	if c.Input.ReleaseAfterTicks < 0 {
		errs = append(errs, fmt.Errorf("input.release_after_ticks must not be negative, got %d", c.Input.ReleaseAfterTicks))
	}

	prev := 0
	for i, th := range c.Difficulty.Thresholds {
		if th.Score <= prev {
			errs = append(errs, fmt.Errorf("difficulty.thresholds[%d]: score %d must be greater than %d", i, th.Score, prev))
		}
		if th.MinTargets < 0 {
			errs = append(errs, fmt.Errorf("difficulty.thresholds[%d]: min_targets must not be negative", i))
		}
		prev = th.Score
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid %s: %w", c.sourceName(), errors.Join(errs...))
	}
	return nil
}

func (c RabbitsConfig) sourceName() string {
	if c.Source == "" {
		return "config"
	}
	return c.Source
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty means "use config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RabbitsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Targets.Speed = max(cfg.Targets.Speed-2, 1)
		cfg.Bullets.Speed += 2
		cfg.Difficulty.TargetSpeedStep = min(cfg.Difficulty.TargetSpeedStep, 1)
	case DifficultyHard:
		cfg.Targets.Speed += 2
		cfg.Bullets.Speed = max(cfg.Bullets.Speed-2, cfg.Bullets.MinSpeed)
		cfg.Targets.MinCount++
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}
