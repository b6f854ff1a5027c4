package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score  int  // Current score
	Level  int  // Difficulty level reached
	Won    bool // Whether the win condition was reached
	Paused bool // Whether the game is paused
	Tick   int  // Simulation steps taken this session
}

// EventKind identifies a discrete gameplay event the shell may react to.
type EventKind int

const (
	EventShot     EventKind = iota // A projectile was fired
	EventHit                       // A target was destroyed
	EventLevelUp                   // A difficulty threshold was crossed
	EventWin                       // The win condition was reached
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventHit:
		return "hit"
	case EventLevelUp:
		return "level-up"
	case EventWin:
		return "win"
	default:
		return "unknown"
	}
}

// Event is a single gameplay event emitted by a simulation step.
type Event struct {
	Kind  EventKind
	Score int     // Score after the event
	Level int     // Difficulty level after the event
	X, Y  float64 // World position where it happened, if any
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
