package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/rabbit-hunt/internal/core"
)

// SoundManager plays cues through one mixer. Replaying a cue cuts off the
// instance still playing, so rapid fire restarts the laser instead of
// stacking copies.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	playing     [cueCount]*beep.Ctrl
	volume      float64
	initialized bool

	// lock and unlock guard streamers the speaker goroutine is reading.
	lock, unlock func()
}

// NewSoundManager creates a sound manager. Volume is clamped to [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: core.Clamp(volume, 0, 1),
		lock:   func() {},
		unlock: func() {},
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.lock, sm.unlock = speaker.Lock, speaker.Unlock
	sm.initialized = true
	return nil
}

// Enabled reports whether cues are audible.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play starts a cue, stopping the previous instance of the same cue.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c < 0 || c >= cueCount {
		return
	}

	ctrl := &beep.Ctrl{Streamer: NewCue(c, sm.volume)}

	sm.lock()
	if prev := sm.playing[c]; prev != nil {
		// A Ctrl without a streamer reports drained and the mixer drops it.
		prev.Streamer = nil
	}
	sm.mixer.Add(ctrl)
	sm.unlock()

	sm.playing[c] = ctrl
}

// HandleEvents plays the cue of every event in order.
func (sm *SoundManager) HandleEvents(events []core.Event) {
	for _, ev := range events {
		if c, ok := CueFor(ev.Kind); ok {
			sm.Play(c)
		}
	}
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	sm.mixer.Clear()
	sm.unlock()
	sm.playing = [cueCount]*beep.Ctrl{}

	speaker.Close()
	sm.lock, sm.unlock = func() {}, func() {}
	sm.initialized = false
}
