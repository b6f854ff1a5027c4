package engine

import "github.com/vovakirdan/rabbit-hunt/internal/core"

// Hero is the player-controlled sprite.
type Hero struct {
	X, Y           float64
	XDelta, YDelta float64
	Width, Height  float64
}

// Rect returns the hero's bounding box.
func (h Hero) Rect() core.Rect {
	return core.NewRect(h.X, h.Y, h.Width, h.Height)
}

// Bullet is a projectile fired by the hero. Bullets only move horizontally.
type Bullet struct {
	X, Y          float64
	XDelta        float64
	Width, Height float64
	dead          bool
}

// Rect returns the bullet's bounding box.
func (b Bullet) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// Target is a bouncing rabbit.
type Target struct {
	X, Y           float64
	XDelta, YDelta float64
	Width, Height  float64
	dead           bool
}

// Rect returns the target's bounding box.
func (t Target) Rect() core.Rect {
	return core.NewRect(t.X, t.Y, t.Width, t.Height)
}

// Bounds is the playfield size for one step.
type Bounds struct {
	W, H float64
}

// World is the complete mutable state of one session. It is created by
// Engine.NewWorld and replaced wholesale on restart.
type World struct {
	Hero    Hero
	Bullets []Bullet
	Targets []Target

	Score       int     // Targets destroyed this session
	Level       int     // Number of schedule thresholds applied
	TargetSpeed float64 // Current per-axis target speed
	BulletSpeed float64 // Current bullet velocity
	MinTargets  int     // Current population floor
	Won         bool    // Win condition reached; the world no longer advances
	Tick        int     // Steps taken

	nextThreshold int // Index of the first schedule row not yet applied
}

// Snapshot returns a deep copy of the world that the caller may keep or
// render without affecting the live session.
func (w *World) Snapshot() World {
	snap := *w
	snap.Bullets = append([]Bullet(nil), w.Bullets...)
	snap.Targets = append([]Target(nil), w.Targets...)
	return snap
}
