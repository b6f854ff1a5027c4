package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rabbit-hunt/internal/core"
	"github.com/vovakirdan/rabbit-hunt/internal/registry"
	"github.com/vovakirdan/rabbit-hunt/internal/storage"
)

// FooterRows is the number of terminal rows below the game screen.
const FooterRows = 1

// UnknownKeyHint is shown briefly when a key without a binding is pressed.
const UnknownKeyHint = "Use the arrows or h/j/k/l to move and space to fire"

// EventSink receives the events of every simulation step.
// *audio.SoundManager satisfies it.
type EventSink interface {
	HandleEvents(events []core.Event)
}

// Options carries the optional collaborators of a Model.
type Options struct {
	Store  *storage.Store // nil disables score saving
	Sound  EventSink      // nil plays nothing
	Logger *log.Logger    // nil discards logs
}

// runRecord tracks the latest state of a session and whether it has been
// saved. It is shared by every copy of a Model, so the run can be finished
// after the program has exited.
type runRecord struct {
	mu    sync.Mutex
	state core.GameState
	saved bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	sound     EventSink
	logger    *log.Logger
	config    core.RuntimeConfig
	input     *core.IntentBuffer
	keys      KeyMap
	help      help.Model
	gameState core.GameState
	hint      string
	hintTicks int
	quitting  bool
	run       *runRecord
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg holds the full terminal size; the footer is taken off the game screen.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	cfg.ScreenH = max(cfg.ScreenH-FooterRows, 0)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	releaseAfter := 0
	if r, ok := game.(interface{ ReleaseAfterTicks() int }); ok {
		releaseAfter = r.ReleaseAfterTicks()
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  opts.Store,
		sound:  opts.Sound,
		logger: logger,
		config: cfg,
		input:  core.NewIntentBuffer(releaseAfter),
		keys:   DefaultKeyMap(),
		help:   h,
		run:    &runRecord{},
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started",
		"game", m.game.ID(),
		"width", m.config.ScreenW,
		"height", m.config.ScreenH,
		"seed", m.config.Seed,
	)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records keyboard input for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.saveRun("quit")
		m.quitting = true
		return m, tea.Quit
	case core.ActionUnknown:
		m.hint = UnknownKeyHint
		m.hintTicks = 2 * m.config.TickRate
		return m, nil
	case core.ActionRestart:
		if !m.gameState.Won {
			return m, nil
		}
	}

	m.input.Apply(action)
	return m, nil
}

// handleResize keeps the session when the game supports it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-FooterRows, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.Won {
		m.game.Reset(m.config)
	}

	m.logger.Debug("resized", "width", m.config.ScreenW, "height", m.config.ScreenH)
	return m, nil
}

// handleTick runs one simulation step on one input snapshot.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasWon := m.gameState.Won

	result := m.game.Step(m.input.Snapshot())
	m.gameState = result.State
	m.run.mu.Lock()
	m.run.state = result.State
	m.run.mu.Unlock()

	if len(result.Events) > 0 {
		m.dispatch(result.Events)
	}

	if m.gameState.Won && !wasWon {
		m.saveRun("win")
	}
	if wasWon && !m.gameState.Won {
		// Restarted after a win
		m.run.mu.Lock()
		m.run.saved = false
		m.run.mu.Unlock()
		m.input.Reset()
		m.logger.Info("session restarted", "game", m.game.ID())
	}

	if m.hintTicks > 0 {
		m.hintTicks--
		if m.hintTicks == 0 {
			m.hint = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// dispatch forwards step events to the sound sink and the log.
func (m Model) dispatch(events []core.Event) {
	if m.sound != nil {
		m.sound.HandleEvents(events)
	}
	for _, ev := range events {
		switch ev.Kind {
		case core.EventLevelUp, core.EventWin:
			m.logger.Info(ev.Kind.String(), "game", m.game.ID(), "score", ev.Score, "level", ev.Level)
		default:
			m.logger.Debug(ev.Kind.String(), "score", ev.Score, "x", ev.X, "y", ev.Y)
		}
	}
}

// saveRun records the current session once. Empty sessions are not saved.
func (m Model) saveRun(reason string) {
	m.run.mu.Lock()
	state := m.run.state
	if m.run.saved || state.Score <= 0 {
		m.run.mu.Unlock()
		return
	}
	m.run.saved = true
	m.run.mu.Unlock()

	if m.store == nil {
		return
	}
	run := storage.Run{
		GameID: m.game.ID(),
		Score:  state.Score,
		Won:    state.Won,
		Ticks:  state.Tick,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save score", "error", err)
		return
	}
	m.logger.Info("score saved", "game", run.GameID, "score", run.Score, "won", run.Won, "reason", reason)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".rabbits", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.hint != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, " "+m.hint+" ", core.ColorBrightYellow)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Finish saves the session if it has not been saved yet. Call it when the
// program exits without a quit key, such as a dropped SSH connection. Any
// copy of the model finishes the same session.
func (m Model) Finish() {
	m.saveRun("session end")
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	model.Finish()
	return err
}
