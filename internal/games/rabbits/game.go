// Package rabbits implements the rabbit hunt arcade game.
// The hero walks around the field shooting at bouncing rabbits; the full
// game speeds up as the score grows and is won at thirty hits, the classic
// variant never changes and never ends.
package rabbits

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/rabbit-hunt/internal/config"
	"github.com/vovakirdan/rabbit-hunt/internal/core"
	"github.com/vovakirdan/rabbit-hunt/internal/games/rabbits/engine"
	"github.com/vovakirdan/rabbit-hunt/internal/registry"
)

// Visual characters for rendering
const (
	HeroChar   = '@'
	BulletChar = '*'
	RabbitChar = 'R'
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// WinMessage is shown when the win score is reached.
const WinMessage = "Congratulations! You've won!"

var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = p
}

// LoadConfig loads the config of a variant with the current path and preset
// applied.
func LoadConfig(variant string) (config.RabbitsConfig, error) {
	settingsMu.RLock()
	path, preset := configPath, difficultyPreset
	settingsMu.RUnlock()

	cfg, err := config.Load(variant, path)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("rabbits: preset %s: %w", preset, err)
		}
	}
	return cfg, nil
}

// Game adapts the engine to the arcade platform.
type Game struct {
	variant string
	title   string

	cfg     config.RabbitsConfig
	loaded  bool
	eng     *engine.Engine
	world   *engine.World
	bounds  engine.Bounds
	runtime core.RuntimeConfig
	paused  bool
}

// New creates a game for a variant. The config is loaded on the first Reset.
func New(variant, title string) *Game {
	return &Game{variant: variant, title: title}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(variant, title string, cfg config.RabbitsConfig) *Game {
	return &Game{variant: variant, title: title, cfg: cfg, loaded: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Config returns the active configuration.
func (g *Game) Config() config.RabbitsConfig {
	return g.cfg
}

// ReleaseAfterTicks tells the platform when to synthesize a key release.
func (g *Game) ReleaseAfterTicks() int {
	g.ensureConfig()
	return g.cfg.Input.ReleaseAfterTicks
}

func (g *Game) ensureConfig() {
	if g.loaded {
		return
	}
	cfg, err := LoadConfig(g.variant)
	if err != nil {
		// Fall back to the hardcoded defaults, as the search path does.
		cfg, _ = config.Default(g.variant)
	}
	g.cfg = cfg
	g.loaded = true
}

// Reset starts a new session sized to the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ensureConfig()
	g.runtime = cfg

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	g.eng = engine.New(g.cfg.Tuning(), rand.New(rand.NewSource(seed)))
	g.world = g.eng.NewWorld()
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize changes the playfield without ending the session. Targets are
// pulled into the new bounds now; the hero is clamped on the next step.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	g.bounds = engine.Bounds{
		W: float64(max(screenW, 0)) * g.cfg.Display.UnitsPerCellX,
		H: float64(max(screenH-HUDRows, 0)) * g.cfg.Display.UnitsPerCellY,
	}
	if g.world != nil {
		engine.Fit(g.world, g.bounds)
	}
}

// Bounds returns the playfield size in world units.
func (g *Game) Bounds() engine.Bounds {
	return g.bounds
}

// World returns a copy of the current session.
func (g *Game) World() engine.World {
	return g.world.Snapshot()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.Intent) core.StepResult {
	if g.world.Won {
		if in.Restart {
			g.world = g.eng.NewWorld()
			g.paused = false
		}
		return core.StepResult{State: g.State()}
	}

	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.eng.Step(g.world, in, g.bounds)
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.world.Score,
		Level:  g.world.Level,
		Won:    g.world.Won,
		Paused: g.paused,
		Tick:   g.world.Tick,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w := g.world
	for _, t := range w.Targets {
		g.drawSprite(dst, t.Rect(), RabbitChar, core.ColorYellow)
	}
	for _, b := range w.Bullets {
		g.drawSprite(dst, b.Rect(), BulletChar, core.ColorBrightRed)
	}
	g.drawSprite(dst, w.Hero.Rect(), HeroChar, core.ColorCyan)

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorWhite)
	}
	if w.Won {
		g.drawCenteredMessage(dst, WinMessage, fmt.Sprintf("Score: %d  |  Press R to play again", w.Score), core.ColorBrightYellow)
	}
}

// drawSprite fills every cell the rectangle covers. A sprite always covers
// at least one cell.
func (g *Game) drawSprite(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	ux, uy := g.cfg.Display.UnitsPerCellX, g.cfg.Display.UnitsPerCellY
	x0 := int(r.X / ux)
	y0 := int(r.Y / uy)
	x1 := max(cellCeil(r.Right(), ux), x0+1)
	y1 := max(cellCeil(r.Bottom(), uy), y0+1)
	dst.FillRect(x0, y0+HUDRows, x1, y1+HUDRows, ch, c)
}

func cellCeil(v, unit float64) int {
	n := int(v / unit)
	if float64(n)*unit < v {
		n++
	}
	return n
}

// drawHUD draws the status line above the playfield.
func (g *Game) drawHUD(dst *core.Screen) {
	w := g.world
	text := fmt.Sprintf(" Count of rabbits: %d ", w.Score)
	if len(g.eng.Tuning().Schedule) > 0 || g.eng.Tuning().WinScore > 0 {
		text += fmt.Sprintf("| Level: %d ", w.Level)
	}
	text += fmt.Sprintf("| Rabbit speed: %g | Bullet speed: %g ", w.TargetSpeed, w.BulletSpeed)
	if goal := g.eng.Tuning().WinScore; goal > 0 {
		text += fmt.Sprintf("| Goal: %d ", goal)
	}
	dst.FillRect(0, 0, dst.Width(), HUDRows, ' ', core.ColorDefault)
	dst.DrawText(0, 0, text, core.ColorGreen)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, c)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorWhite)
}

// Register both variants with the registry
func init() {
	registry.Register(config.VariantHunt, func() registry.Game {
		return New(config.VariantHunt, "Rabbit Hunt")
	})
	registry.Register(config.VariantClassic, func() registry.Game {
		return New(config.VariantClassic, "Rabbit Hunt (classic)")
	})
}
