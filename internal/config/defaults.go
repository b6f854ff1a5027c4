package config

import (
	_ "embed"
	"fmt"
)

//go:embed defaults/hunt.yaml
var defaultHuntYAML []byte

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

// DefaultHuntConfig returns the default configuration of the full game.
func DefaultHuntConfig() RabbitsConfig {
	return RabbitsConfig{
		Hero: HeroConfig{
			StartX: 10,
			StartY: 140,
			Width:  100,
			Height: 100,
			Speed:  5,
		},
		Bullets: BulletConfig{
			Width:    50,
			Height:   50,
			OffsetX:  55,
			OffsetY:  55,
			Speed:    10,
			MinSpeed: 1,
		},
		Targets: TargetConfig{
			Width:      100,
			Height:     100,
			Speed:      5,
			MinCount:   4,
			SpawnSignX: 1,
			SpawnSignY: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			TargetSpeedStep: 2,
			BulletSpeedStep: 1,
			Thresholds: []ThresholdConfig{
				{Score: 5, MinTargets: 3},
				{Score: 10, MinTargets: 2},
				{Score: 15, MinTargets: 1},
				{Score: 20, MinTargets: 0},
			},
			WinScore: 30,
		},
		Display: DisplayConfig{
			UnitsPerCellX: 10,
			UnitsPerCellY: 20,
		},
		Input: InputConfig{
			ReleaseAfterTicks: 30,
		},
		Source: SourceEmbedded,
	}
}

// DefaultClassicConfig returns the configuration of the first version of
// the game: fixed speeds, three rabbits minimum, no schedule, no win.
func DefaultClassicConfig() RabbitsConfig {
	cfg := DefaultHuntConfig()
	cfg.Bullets.Speed = 5
	cfg.Targets.Speed = 1
	cfg.Targets.MinCount = 3
	cfg.Targets.SpawnSignX = -1
	cfg.Targets.SpawnSignY = -1
	cfg.Difficulty = DifficultyConfig{}
	return cfg
}

// Default returns the hardcoded defaults for a variant.
func Default(variant string) (RabbitsConfig, error) {
	switch variant {
	case VariantHunt:
		return DefaultHuntConfig(), nil
	case VariantClassic:
		return DefaultClassicConfig(), nil
	default:
		return RabbitsConfig{}, fmt.Errorf("config: unknown variant %q", variant)
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantHunt:
		return defaultHuntYAML
	case VariantClassic:
		return defaultClassicYAML
	default:
		return nil
	}
}
