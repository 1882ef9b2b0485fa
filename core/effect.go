package core

// EffectKind discriminates effect requests emitted by a simulation step
type EffectKind uint8

const (
	EffectAudio EffectKind = iota
	EffectVisibility
	EffectAssetSet
	EffectTerminal
)

// Audio cue names understood by the audio collaborator
const (
	CueTheme     = "theme"
	CueStep      = "step"
	CueCollision = "collision"
	CueWhoosh    = "whoosh"
	CueTarget    = "target"
	CueFinish    = "finish"
)

// Effect is a side-effect request produced after the state update commits
// Only the fields relevant to Kind are set
type Effect struct {
	Kind     EffectKind
	Cue      string
	Volume   float64
	Loop     bool
	EntityID string
	Visible  bool
	Zone     Zone
	Terminal Terminal
}

// PlayCue requests a fire-and-forget audio cue
func PlayCue(cue string, volume float64) Effect {
	return Effect{Kind: EffectAudio, Cue: cue, Volume: volume}
}

// SetVisibility reports an entity visibility change to the renderer
func SetVisibility(id string, visible bool) Effect {
	return Effect{Kind: EffectVisibility, EntityID: id, Visible: visible}
}

// SwapAssets requests the asset set of zone z
func SwapAssets(z Zone) Effect {
	return Effect{Kind: EffectAssetSet, Zone: z}
}

// ReachTerminal reports the one-time terminal transition
func ReachTerminal(t Terminal) Effect {
	return Effect{Kind: EffectTerminal, Terminal: t}
}
