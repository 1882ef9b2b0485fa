package audio

import (
	"sync"

	"github.com/lixenwraith/oasis/core"
)

// soundCache stores pre-generated unity-gain float buffers
type soundCache struct {
	mu    sync.RWMutex
	store [cueCount]floatBuffer
	ready [cueCount]bool
}

func newSoundCache() *soundCache {
	return &soundCache{}
}

// get returns cached buffer or generates on demand
func (c *soundCache) get(cue string) (floatBuffer, bool) {
	idx, ok := cueIndex[cue]
	if !ok {
		return nil, false
	}

	c.mu.RLock()
	if c.ready[idx] {
		buf := c.store[idx]
		c.mu.RUnlock()
		return buf, true
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.ready[idx] {
		return c.store[idx], true
	}

	buf := generateCue(cue)
	c.store[idx] = buf
	c.ready[idx] = true
	return buf, true
}

// preload generates the cues played most often
func (c *soundCache) preload() {
	c.get(core.CueStep)
	c.get(core.CueCollision)
}
