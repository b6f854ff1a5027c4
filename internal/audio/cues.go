// Package audio synthesizes the game's sound cues with beep and plays them
// through a shared mixer. Nothing here is required for play: every
// operation is a no-op until the speaker is initialized.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/rabbit-hunt/internal/core"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Cue identifies one sound effect.
type Cue int

const (
	CueLaser   Cue = iota // Bullet fired
	CueStab               // Rabbit destroyed
	CueLevelUp            // Difficulty threshold crossed
	CueWin                // Win score reached
	cueCount
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueLaser:
		return "laser"
	case CueStab:
		return "stab"
	case CueLevelUp:
		return "level-up"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// Cue lengths and start offsets. The stab sample is played from 0.2s in,
// skipping its silent lead-in.
const (
	LaserDuration   = 250 * time.Millisecond
	StabDuration    = 600 * time.Millisecond
	StabOffset      = 200 * time.Millisecond
	LevelUpDuration = 240 * time.Millisecond
	WinNoteDuration = 180 * time.Millisecond
)

// CueFor maps a gameplay event to its cue.
func CueFor(kind core.EventKind) (Cue, bool) {
	switch kind {
	case core.EventShot:
		return CueLaser, true
	case core.EventHit:
		return CueStab, true
	case core.EventLevelUp:
		return CueLevelUp, true
	case core.EventWin:
		return CueWin, true
	default:
		return 0, false
	}
}

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave whose frequency glides linearly from
// freq to endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(from*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero
// volume is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// startAt discards the first n samples of s so playback begins mid-cue.
func startAt(s beep.Streamer, n int) beep.Streamer {
	buf := make([][2]float64, 512)
	for n > 0 {
		k, ok := s.Stream(buf[:min(n, len(buf))])
		n -= k
		if !ok {
			break
		}
	}
	return s
}

// NewLaser creates the fire cue: a falling saw sweep.
func NewLaser(volume float64) beep.Streamer {
	osc := NewSweep(1800, 300, LaserDuration, WaveSaw, SampleRate)
	shaped := NewEnvelope(osc, LaserDuration, 5*time.Millisecond, 120*time.Millisecond, SampleRate)
	return newVolume(shaped, volume*0.4)
}

// NewStab creates the hit cue: a noise burst over a low thump, started at
// StabOffset.
func NewStab(volume float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, StabDuration, WaveNoise, SampleRate),
		StabDuration, StabOffset, 250*time.Millisecond, SampleRate)
	thump := NewEnvelope(NewSweep(160, 50, StabDuration, WaveSine, SampleRate),
		StabDuration, StabOffset, 300*time.Millisecond, SampleRate)

	mixed := beep.Mix(newVolume(noise, 0.5), newVolume(thump, 0.8))
	return newVolume(startAt(mixed, SampleRate.N(StabOffset)), volume)
}

// NewLevelUp creates the threshold cue: two rising square notes.
func NewLevelUp(volume float64) beep.Streamer {
	half := LevelUpDuration / 2
	n1 := NewEnvelope(NewOscillator(659.25, half, WaveSquare, SampleRate), half, 5*time.Millisecond, 40*time.Millisecond, SampleRate)
	n2 := NewEnvelope(NewOscillator(987.77, half, WaveSquare, SampleRate), half, 5*time.Millisecond, 60*time.Millisecond, SampleRate)
	return newVolume(beep.Seq(n1, n2), volume*0.25)
}

// NewWin creates the win chime: an ascending major arpeggio.
func NewWin(volume float64) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.50}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		osc := NewOscillator(f, WinNoteDuration, WaveSine, SampleRate)
		parts = append(parts, NewEnvelope(osc, WinNoteDuration, 10*time.Millisecond, 90*time.Millisecond, SampleRate))
	}
	return newVolume(beep.Seq(parts...), volume*0.6)
}

// NewCue builds a fresh streamer for a cue.
func NewCue(c Cue, volume float64) beep.Streamer {
	switch c {
	case CueLaser:
		return NewLaser(volume)
	case CueStab:
		return NewStab(volume)
	case CueLevelUp:
		return NewLevelUp(volume)
	case CueWin:
		return NewWin(volume)
	default:
		return nil
	}
}
