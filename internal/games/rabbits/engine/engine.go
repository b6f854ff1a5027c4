// Package engine implements the fixed-step simulation of the rabbit hunt:
// hero movement, bullets, bouncing targets, scoring and the difficulty
// schedule. It performs no I/O and never looks at a clock; one call to Step
// advances the world by exactly one tick.
package engine

import (
	"sort"

	"github.com/vovakirdan/rabbit-hunt/internal/core"
)

// Rand is the random source used for spawn positions.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Engine advances worlds according to a fixed tuning.
type Engine struct {
	tuning Tuning
	rng    Rand
}

// New creates an engine. The schedule is copied and sorted by score.
func New(t Tuning, rng Rand) *Engine {
	t.Schedule = append([]Threshold(nil), t.Schedule...)
	sort.SliceStable(t.Schedule, func(i, j int) bool {
		return t.Schedule[i].Score < t.Schedule[j].Score
	})
	return &Engine{tuning: t, rng: rng}
}

// Tuning returns the engine's tuning.
func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// NewWorld returns a fresh session: the hero at its start position, no
// bullets, no targets and the initial speeds.
func (e *Engine) NewWorld() *World {
	t := e.tuning
	return &World{
		Hero: Hero{
			X:      t.HeroStartX,
			Y:      t.HeroStartY,
			Width:  t.HeroWidth,
			Height: t.HeroHeight,
		},
		TargetSpeed: t.TargetSpeed,
		BulletSpeed: t.BulletSpeed,
		MinTargets:  t.MinTargets,
	}
}

// Intersect reports whether two rectangles collide. Edges are closed, so
// rectangles that merely touch collide.
func Intersect(a, b core.Rect) bool {
	return a.Touches(b)
}

// Step advances w by one tick under the given input and playfield bounds and
// returns the events it produced. A won world is frozen: Step returns nil
// until the caller replaces it with a new one.
func (e *Engine) Step(w *World, in core.Intent, b Bounds) []core.Event {
	if w.Won {
		return nil
	}

	var events []core.Event

	e.steer(w, in)
	if in.Fire {
		events = append(events, e.Fire(w))
	}

	e.moveHero(w, b)

	events = e.resolveCollisions(w, events)
	removeDead(w)

	if w.Won {
		w.Tick++
		return events
	}

	e.moveBullets(w, b)
	e.moveTargets(w, b)
	e.spawn(w, b)

	w.Tick++
	return events
}

// Fire appends one bullet at the hero's muzzle travelling at the current
// bullet speed.
func (e *Engine) Fire(w *World) core.Event {
	t := e.tuning
	bullet := Bullet{
		X:      w.Hero.X + t.BulletOffsetX,
		Y:      w.Hero.Y + t.BulletOffsetY,
		XDelta: w.BulletSpeed,
		Width:  t.BulletWidth,
		Height: t.BulletHeight,
	}
	w.Bullets = append(w.Bullets, bullet)

	return core.Event{
		Kind:  core.EventShot,
		Score: w.Score,
		Level: w.Level,
		X:     bullet.X,
		Y:     bullet.Y,
	}
}

// steer applies directional input to the hero's velocity. A release zeroes
// both axes; a direction then sets only its own axis.
func (e *Engine) steer(w *World, in core.Intent) {
	if in.Release {
		w.Hero.XDelta = 0
		w.Hero.YDelta = 0
	}

	speed := e.tuning.HeroSpeed
	switch in.MoveX {
	case core.DirRight:
		w.Hero.XDelta = speed
	case core.DirLeft:
		w.Hero.XDelta = -speed
	}
	switch in.MoveY {
	case core.DirUp:
		w.Hero.YDelta = -speed
	case core.DirDown:
		w.Hero.YDelta = speed
	}
}

func (e *Engine) moveHero(w *World, b Bounds) {
	h := &w.Hero
	h.X = core.Clamp(h.X+h.XDelta, 0, b.W-h.Width)
	h.Y = core.Clamp(h.Y+h.YDelta, 0, b.H-h.Height)
}

// resolveCollisions tests every live bullet against every live target. Each
// entity is consumed by its first hit.
func (e *Engine) resolveCollisions(w *World, events []core.Event) []core.Event {
	for i := range w.Bullets {
		bullet := &w.Bullets[i]
		for j := range w.Targets {
			target := &w.Targets[j]
			if bullet.dead {
				break
			}
			if target.dead || !Intersect(bullet.Rect(), target.Rect()) {
				continue
			}

			bullet.dead = true
			target.dead = true
			w.Score++
			events = append(events, core.Event{
				Kind:  core.EventHit,
				Score: w.Score,
				Level: w.Level,
				X:     target.X,
				Y:     target.Y,
			})

			events = e.advanceSchedule(w, events)

			if e.tuning.WinScore > 0 && w.Score >= e.tuning.WinScore {
				w.Won = true
				events = append(events, core.Event{
					Kind:  core.EventWin,
					Score: w.Score,
					Level: w.Level,
				})
				return events
			}
		}
	}
	return events
}

// advanceSchedule applies every threshold the score has reached that was not
// applied before. Each threshold fires at most once per world.
func (e *Engine) advanceSchedule(w *World, events []core.Event) []core.Event {
	t := e.tuning
	for w.nextThreshold < len(t.Schedule) && w.Score >= t.Schedule[w.nextThreshold].Score {
		th := t.Schedule[w.nextThreshold]
		w.nextThreshold++
		w.Level++

		w.TargetSpeed += t.TargetSpeedStep
		w.BulletSpeed = max(w.BulletSpeed-t.BulletSpeedStep, t.MinBulletSpeed)
		w.MinTargets = th.MinTargets

		for k := range w.Targets {
			target := &w.Targets[k]
			if target.dead {
				continue
			}
			target.XDelta = withSign(w.TargetSpeed, target.XDelta)
			target.YDelta = withSign(w.TargetSpeed, target.YDelta)
		}

		events = append(events, core.Event{
			Kind:  core.EventLevelUp,
			Score: w.Score,
			Level: w.Level,
		})
	}
	return events
}

// withSign returns speed moving in the direction of current. A stationary
// axis is sent in the negative direction.
func withSign(speed, current float64) float64 {
	if current > 0 {
		return speed
	}
	return -speed
}

func removeDead(w *World) {
	bullets := w.Bullets[:0]
	for _, b := range w.Bullets {
		if !b.dead {
			bullets = append(bullets, b)
		}
	}
	w.Bullets = bullets

	targets := w.Targets[:0]
	for _, t := range w.Targets {
		if !t.dead {
			targets = append(targets, t)
		}
	}
	w.Targets = targets
}

// moveBullets advances bullets and drops those that no longer overlap the
// playfield on any side.
func (e *Engine) moveBullets(w *World, b Bounds) {
	live := w.Bullets[:0]
	for _, bullet := range w.Bullets {
		bullet.X += bullet.XDelta
		if bullet.X+bullet.Width > 0 && bullet.X < b.W &&
			bullet.Y+bullet.Height > 0 && bullet.Y < b.H {
			live = append(live, bullet)
		}
	}
	w.Bullets = live
}

// moveTargets advances targets and reflects them off the playfield edges.
// A target resting on an edge reflects every step.
func (e *Engine) moveTargets(w *World, b Bounds) {
	for i := range w.Targets {
		t := &w.Targets[i]
		t.X += t.XDelta
		t.Y += t.YDelta

		if t.X <= 0 || t.X+t.Width >= b.W {
			t.XDelta = -t.XDelta
		}
		if t.Y <= 0 || t.Y+t.Height >= b.H {
			t.YDelta = -t.YDelta
		}
	}
}

// Fit moves targets left outside a shrunken playfield back onto its edge,
// heading inward. Without it a target past the edge would reflect in place
// every step.
func Fit(w *World, b Bounds) {
	for i := range w.Targets {
		t := &w.Targets[i]
		t.X, t.XDelta = fitAxis(t.X, t.XDelta, t.Width, b.W)
		t.Y, t.YDelta = fitAxis(t.Y, t.YDelta, t.Height, b.H)
	}
}

func fitAxis(pos, delta, size, limit float64) (float64, float64) {
	switch {
	case pos+size > limit:
		return max(limit-size, 0), -abs(delta)
	case pos < 0:
		return 0, abs(delta)
	}
	return pos, delta
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// spawn adds one target when the population is at or below the floor.
func (e *Engine) spawn(w *World, b Bounds) {
	if len(w.Targets) > w.MinTargets {
		return
	}

	t := e.tuning
	w.Targets = append(w.Targets, Target{
		X:      e.randomIn(b.W - t.TargetWidth),
		Y:      e.randomIn(b.H - t.TargetHeight),
		XDelta: sign(t.SpawnSignX) * w.TargetSpeed,
		YDelta: sign(t.SpawnSignY) * w.TargetSpeed,
		Width:  t.TargetWidth,
		Height: t.TargetHeight,
	})
}

// randomIn returns a uniform value in [0, span), or 0 when the playfield is
// too small for the sprite.
func (e *Engine) randomIn(span float64) float64 {
	if span <= 0 {
		return 0
	}
	return e.rng.Float64() * span
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
