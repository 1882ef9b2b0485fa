package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Player plays named cues
type Player interface {
	Play(cue string, volume float64, loop bool)
}

// bufferStreamer streams a mono buffer as stereo, optionally wrapping at the end
type bufferStreamer struct {
	buf  floatBuffer
	pos  int
	loop bool
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if len(b.buf) == 0 {
		return 0, false
	}
	for n < len(samples) {
		if b.pos >= len(b.buf) {
			if !b.loop {
				break
			}
			b.pos = 0
		}
		v := b.buf[b.pos]
		samples[n][0] = v
		samples[n][1] = v
		b.pos++
		n++
	}
	return n, n > 0
}

func (b *bufferStreamer) Err() error { return nil }

// newVolume wraps a streamer with linear gain vol
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// SoundManager synthesizes and mixes game cues through the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       *soundCache
	loops       map[string]*beep.Ctrl
	logger      *zap.Logger
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(logger *zap.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		cache:  newSoundCache(),
		loops:  make(map[string]*beep.Ctrl),
		logger: logger,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.cache.preload()
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Ready reports whether the speaker is running
func (sm *SoundManager) Ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play mixes a cue in, a looping cue replaces a running loop of the same cue
func (sm *SoundManager) Play(cue string, volume float64, loop bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	buf, ok := sm.cache.get(cue)
	if !ok {
		sm.logger.Warn("audio cue dropped", zap.String("cue", cue), zap.Error(ErrUnknownCue))
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(&bufferStreamer{buf: buf, loop: loop}, volume)}

	speaker.Lock()
	if loop {
		if prev := sm.loops[cue]; prev != nil {
			prev.Paused = true
			prev.Streamer = nil
		}
		sm.loops[cue] = ctrl
	}
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// Stop silences a looping cue
func (sm *SoundManager) Stop(cue string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl := sm.loops[cue]
	if ctrl == nil {
		return
	}
	delete(sm.loops, cue)
	if !sm.initialized {
		return
	}
	speaker.Lock()
	ctrl.Paused = true
	ctrl.Streamer = nil
	speaker.Unlock()
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	for _, ctrl := range sm.loops {
		ctrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	clear(sm.loops)
	sm.initialized = false
}

// Silent discards every cue, used when audio is muted or unavailable
type Silent struct{}

func (Silent) Play(string, float64, bool) {}
