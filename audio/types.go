package audio

import (
	"errors"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/oasis/core"
)

const sampleRate = beep.SampleRate(44100)

// Sentinel errors
var (
	ErrUnknownCue = errors.New("unknown audio cue")
	ErrNotReady   = errors.New("audio not initialized")
)

// Cue synthesis timings
const (
	stepDuration      = 40 * time.Millisecond
	collisionDuration = 180 * time.Millisecond
	collisionAttack   = 5 * time.Millisecond
	collisionRelease  = 60 * time.Millisecond
	whooshDuration    = 250 * time.Millisecond
	whooshAttack      = 80 * time.Millisecond
	whooshRelease     = 150 * time.Millisecond
	targetDuration    = 600 * time.Millisecond
	targetAttack      = 5 * time.Millisecond
	finishNote        = 120 * time.Millisecond
	themeNote         = 300 * time.Millisecond
)

// cueIndex maps cue names to cache slots
var cueIndex = map[string]int{
	core.CueTheme:     0,
	core.CueStep:      1,
	core.CueCollision: 2,
	core.CueWhoosh:    3,
	core.CueTarget:    4,
	core.CueFinish:    5,
}

const cueCount = 6
