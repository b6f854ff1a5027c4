package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/rabbit-hunt/internal/games/rabbits/engine"
)

// isolate points the user config directory at an empty temp dir so a real
// ~/.rabbits on the machine cannot leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestEmbeddedMatchesDefaults(t *testing.T) {
	isolate(t)

	tests := []struct {
		variant string
		want    RabbitsConfig
	}{
		{VariantHunt, DefaultHuntConfig()},
		{VariantClassic, DefaultClassicConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			got, err := Load(tt.variant, "")
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if got.Source != SourceEmbedded {
				t.Errorf("Source = %q, want %q", got.Source, SourceEmbedded)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("embedded config differs from defaults:\n got  %+v\n want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	for _, variant := range Variants() {
		cfg, err := Default(variant)
		if err != nil {
			t.Fatalf("Default(%q) failed: %v", variant, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Default(%q).Validate() = %v", variant, err)
		}
	}
}

func TestTuningMatchesEngine(t *testing.T) {
	if got := DefaultHuntConfig().Tuning(); !reflect.DeepEqual(got, engine.HuntTuning()) {
		t.Errorf("hunt tuning:\n got  %+v\n want %+v", got, engine.HuntTuning())
	}
	if got := DefaultClassicConfig().Tuning(); !reflect.DeepEqual(got, engine.ClassicTuning()) {
		t.Errorf("classic tuning:\n got  %+v\n want %+v", got, engine.ClassicTuning())
	}
}

func TestUnknownVariant(t *testing.T) {
	if _, err := Default("pong"); err == nil {
		t.Error("Default(pong) should fail")
	}
	if _, err := Load("pong", ""); err == nil {
		t.Error("Load(pong) should fail")
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("GetDefaultYAML(pong) should be nil")
	}
}

func TestLoadCustomYAMLOverlay(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "targets:\n  speed: 8\ndifficulty:\n  win_score: 12\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(VariantHunt, path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Targets.Speed != 8 {
		t.Errorf("Targets.Speed = %v, want 8", cfg.Targets.Speed)
	}
	if cfg.Difficulty.WinScore != 12 {
		t.Errorf("WinScore = %d, want 12", cfg.Difficulty.WinScore)
	}
	// Untouched values keep their defaults.
	if cfg.Hero.Speed != 5 || cfg.Bullets.Speed != 10 || cfg.Targets.MinCount != 4 {
		t.Errorf("defaults lost: hero %v bullets %v min %d", cfg.Hero.Speed, cfg.Bullets.Speed, cfg.Targets.MinCount)
	}
	if len(cfg.Difficulty.Thresholds) != 4 {
		t.Errorf("Thresholds = %d rows, want 4", len(cfg.Difficulty.Thresholds))
	}
}

func TestLoadCustomTOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := `
[bullets]
speed = 7.0

[difficulty]
enabled = true
win_score = 3

[[difficulty.thresholds]]
score = 2
min_targets = 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(VariantClassic, path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Bullets.Speed != 7 {
		t.Errorf("Bullets.Speed = %v, want 7", cfg.Bullets.Speed)
	}
	if cfg.Targets.Speed != 1 {
		t.Errorf("Targets.Speed = %v, want classic default 1", cfg.Targets.Speed)
	}
	want := []ThresholdConfig{{Score: 2, MinTargets: 1}}
	if !reflect.DeepEqual(cfg.Difficulty.Thresholds, want) {
		t.Errorf("Thresholds = %+v, want %+v", cfg.Difficulty.Thresholds, want)
	}

	tun := cfg.Tuning()
	if tun.WinScore != 3 || len(tun.Schedule) != 1 {
		t.Errorf("Tuning() = win %d schedule %v", tun.WinScore, tun.Schedule)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".rabbits", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "hunt.yaml")
	if err := os.WriteFile(path, []byte("hero:\n  speed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(VariantHunt, "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Hero.Speed != 9 {
		t.Errorf("Hero.Speed = %v, want 9", cfg.Hero.Speed)
	}

	// The classic variant does not read hunt.yaml.
	classic, err := Load(VariantClassic, "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if classic.Source != SourceEmbedded {
		t.Errorf("classic Source = %q, want embedded", classic.Source)
	}
}

func TestLoadSkipsInvalidUserConfig(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".rabbits", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hunt.yaml"), []byte("hero: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(VariantHunt, "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != SourceEmbedded {
		t.Errorf("Source = %q, want embedded fallback", cfg.Source)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := Load(VariantHunt, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("targets: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(VariantHunt, bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("hero:\n  speed: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(VariantHunt, invalid)
	if err == nil {
		t.Fatal("invalid custom config should fail validation")
	}
	if !strings.Contains(err.Error(), "hero.speed") || !strings.Contains(err.Error(), invalid) {
		t.Errorf("error should name the field and file: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RabbitsConfig)
		field  string
	}{
		{"zero hero width", func(c *RabbitsConfig) { c.Hero.Width = 0 }, "hero.width"},
		{"negative bullet speed", func(c *RabbitsConfig) { c.Bullets.Speed = -1 }, "bullets.speed"},
		{"negative min count", func(c *RabbitsConfig) { c.Targets.MinCount = -1 }, "targets.min_count"},
		{"negative win score", func(c *RabbitsConfig) { c.Difficulty.WinScore = -5 }, "difficulty.win_score"},
		{"zero cell size", func(c *RabbitsConfig) { c.Display.UnitsPerCellY = 0 }, "display.units_per_cell_y"},
		{"negative release", func(c *RabbitsConfig) { c.Input.ReleaseAfterTicks = -1 }, "input.release_after_ticks"},
		{"unordered thresholds", func(c *RabbitsConfig) {
			c.Difficulty.Thresholds = []ThresholdConfig{{Score: 10}, {Score: 5}}
		}, "difficulty.thresholds[1]"},
		{"negative threshold floor", func(c *RabbitsConfig) {
			c.Difficulty.Thresholds = []ThresholdConfig{{Score: 3, MinTargets: -1}}
		}, "difficulty.thresholds[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultHuntConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %s", err, tt.field)
			}
		})
	}
}

func TestDisabledDifficultyKeepsWin(t *testing.T) {
	cfg := DefaultHuntConfig()
	cfg.Difficulty.Enabled = false

	tun := cfg.Tuning()
	if tun.Schedule != nil || tun.TargetSpeedStep != 0 || tun.BulletSpeedStep != 0 {
		t.Errorf("disabled schedule leaked into tuning: %+v", tun)
	}
	if tun.WinScore != 30 {
		t.Errorf("WinScore = %d, want 30", tun.WinScore)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultHuntConfig()

	normal := DefaultHuntConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultHuntConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Targets.Speed != 3 || easy.Bullets.Speed != 12 || easy.Difficulty.TargetSpeedStep != 1 {
		t.Errorf("easy: targets %v bullets %v step %v", easy.Targets.Speed, easy.Bullets.Speed, easy.Difficulty.TargetSpeedStep)
	}

	hard := DefaultHuntConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Targets.Speed != 7 || hard.Bullets.Speed != 8 || hard.Targets.MinCount != 5 {
		t.Errorf("hard: targets %v bullets %v min %d", hard.Targets.Speed, hard.Bullets.Speed, hard.Targets.MinCount)
	}

	fixed := DefaultHuntConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable the schedule")
	}

	// Presets never produce an invalid config.
	classic := DefaultClassicConfig()
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyHard, DifficultyFixed} {
		cfg := classic
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("classic + %s: %v", p, err)
		}
	}
}
