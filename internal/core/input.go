package core

import "sync"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveUp           // Up arrow, k
	ActionMoveDown         // Down arrow, j
	ActionMoveLeft         // Left arrow, h
	ActionMoveRight        // Right arrow, l
	ActionStop             // x - release movement
	ActionFire             // Space
	ActionPause            // P, Escape
	ActionRestart          // R key - new session after a win
	ActionQuit             // Q, Ctrl+C
	ActionUnknown          // Any key without a binding
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "Up"
	case ActionMoveDown:
		return "Down"
	case ActionMoveLeft:
		return "Left"
	case ActionMoveRight:
		return "Right"
	case ActionStop:
		return "Stop"
	case ActionFire:
		return "Fire"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction is a movement intent along one axis.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Direction returns the movement direction for a move action.
func (a Action) Direction() Direction {
	switch a {
	case ActionMoveUp:
		return DirUp
	case ActionMoveDown:
		return DirDown
	case ActionMoveLeft:
		return DirLeft
	case ActionMoveRight:
		return DirRight
	default:
		return DirNone
	}
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Intent is one consistent input snapshot consumed by a single simulation step.
type Intent struct {
	MoveX   Direction // Last of Left/Right pressed since the last snapshot
	MoveY   Direction // Last of Up/Down pressed since the last snapshot
	Release bool      // Movement released; applied before the moves
	Fire    bool      // Fire pressed since the last snapshot (edge, not level)
	Pause   bool      // Pause toggle pressed since the last snapshot
	Restart bool      // Restart requested since the last snapshot
}

// IntentBuffer collects key events between ticks and hands each step exactly
// one snapshot. It is safe for concurrent use.
//
// Terminals report key presses and auto-repeats but no key releases, so a held
// direction is released after releaseAfter snapshots without a repeat.
type IntentBuffer struct {
	mu           sync.Mutex
	pending      Intent
	held         bool
	idle         int
	releaseAfter int
}

// NewIntentBuffer creates a buffer. A releaseAfter of 0 disables the
// synthesized release; only an explicit Release stops movement.
func NewIntentBuffer(releaseAfter int) *IntentBuffer {
	return &IntentBuffer{releaseAfter: max(releaseAfter, 0)}
}

// Apply records a platform action. Actions without an intent are ignored.
func (b *IntentBuffer) Apply(a Action) {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight:
		b.Press(a.Direction())
	case ActionStop:
		b.Release()
	case ActionFire:
		b.Fire()
	case ActionPause:
		b.mu.Lock()
		b.pending.Pause = !b.pending.Pause
		b.mu.Unlock()
	case ActionRestart:
		b.mu.Lock()
		b.pending.Restart = true
		b.mu.Unlock()
	}
}

// Press records a key-down (or auto-repeat) for a direction.
func (b *IntentBuffer) Press(d Direction) {
	if d == DirNone {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if d.Horizontal() {
		b.pending.MoveX = d
	} else {
		b.pending.MoveY = d
	}
	b.held = true
	b.idle = 0
}

// Release records a movement key-up. A press arriving after it in the same
// tick still applies, because the step zeroes velocity before moving.
func (b *IntentBuffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending.Release = true
	b.pending.MoveX = DirNone
	b.pending.MoveY = DirNone
	b.held = false
	b.idle = 0
}

// Fire records one fire press. Several presses within one tick still fire once.
func (b *IntentBuffer) Fire() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending.Fire = true
}

// Snapshot returns the intent accumulated since the previous snapshot and
// starts a new accumulation window.
func (b *IntentBuffer) Snapshot() Intent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.held && b.pending.MoveX == DirNone && b.pending.MoveY == DirNone {
		b.idle++
		if b.releaseAfter > 0 && b.idle >= b.releaseAfter {
			b.pending.Release = true
			b.held = false
			b.idle = 0
		}
	}

	snap := b.pending
	b.pending = Intent{}
	return snap
}

// Reset drops any pending and held input.
func (b *IntentBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = Intent{}
	b.held = false
	b.idle = 0
}
