// Package interaction evaluates player contact with obstacles, collectibles and
// zone regions, mutating the session and emitting effect requests.
package interaction

import (
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/physics"
	"github.com/lixenwraith/oasis/placement"
	"github.com/lixenwraith/oasis/vmath"
)

// Mode selects the detection strategy
type Mode uint8

const (
	// ModeDistance tests dynamically placed entities by sphere distance
	ModeDistance Mode = iota
	// ModeRegion tests the player position against the region table
	ModeRegion
)

func (m Mode) String() string {
	if m == ModeRegion {
		return "region"
	}
	return "distance"
}

// ModeFor maps the session zone to its detection strategy
func ModeFor(z core.Zone) Mode {
	if z == core.ZoneCave {
		return ModeRegion
	}
	return ModeDistance
}

// State is the interaction bookkeeping carried by the world context
type State struct {
	fired   map[string]bool // one-shot regions, persistent for the session
	handled map[string]bool // pickups already resolved in the current tick
}

// NewState creates empty bookkeeping
func NewState() *State {
	return &State{
		fired:   make(map[string]bool),
		handled: make(map[string]bool),
	}
}

// BeginTick clears the transient same-tick guard
func (s *State) BeginTick() {
	clear(s.handled)
}

// Fired reports whether a one-shot region already triggered
func (s *State) Fired(name string) bool {
	return s.fired[name]
}

// Scene is the view of the world context the engine operates on
type Scene struct {
	Player   *core.Entity
	Entities placement.Population
	Session  *core.Session
	State    *State
}

// Outcome summarizes one per-tick evaluation
type Outcome struct {
	Effects     []core.Effect
	Pickups     int
	ZoneEntered bool
	Finished    bool
}

// Engine holds the static interaction configuration
type Engine struct {
	Margins   map[core.Category]float64 // forgiveness subtracted from the contact distance
	Regions   []Region
	Volumes   map[string]float64 // cue volume by cue name
	Obstacles []core.Category    // categories that block movement in distance mode
}

// New creates an engine with the default obstacle categories
func New(margins map[core.Category]float64, regions []Region, volumes map[string]float64) *Engine {
	return &Engine{
		Margins:   margins,
		Regions:   regions,
		Volumes:   volumes,
		Obstacles: []core.Category{core.CategoryEnemy, core.CategoryObstacle},
	}
}

func (g *Engine) cue(name string) core.Effect {
	vol, ok := g.Volumes[name]
	if !ok {
		vol = 0.5
	}
	return core.PlayCue(name, vol)
}

// Obstacle reports whether moving the player to pos collides with anything blocking
// It runs before the player moves. On collision the score drops by one and a
// collision cue is appended to effects
func (g *Engine) Obstacle(sc Scene, pos vmath.Vec3, effects *[]core.Effect) bool {
	var hit bool
	switch ModeFor(sc.Session.Zone) {
	case ModeDistance:
		hit = g.distanceObstacle(sc, pos)
	case ModeRegion:
		hit = g.regionObstacle(sc, pos)
	}
	if hit {
		sc.Session.Score--
		*effects = append(*effects, g.cue(core.CueCollision))
	}
	return hit
}

func (g *Engine) distanceObstacle(sc Scene, pos vmath.Vec3) bool {
	zone := sc.Session.Zone
	for _, cat := range g.Obstacles {
		margin := g.Margins[cat]
		for _, e := range sc.Entities[cat] {
			if e.Zone != zone || !e.Visible {
				continue
			}
			if physics.EntityOverlaps(pos, sc.Player.CollisionRadius, e, margin) {
				return true
			}
		}
	}
	return false
}

// regionObstacle blocks only moves entering a damage region, a player already inside
// one (landed from a jump) can turn and walk out
func (g *Engine) regionObstacle(sc Scene, pos vmath.Vec3) bool {
	target := *sc.Player
	target.Position = pos
	for i := range g.Regions {
		r := &g.Regions[i]
		if r.Effect != EffectDamage || r.Zone != sc.Session.Zone {
			continue
		}
		if r.Matches(&target) && !r.Matches(sc.Player) {
			return true
		}
	}
	return false
}

// Evaluate resolves pickups, zone entry and finish for the current player position
func (g *Engine) Evaluate(sc Scene) Outcome {
	var out Outcome
	if ModeFor(sc.Session.Zone) == ModeDistance {
		g.distancePickups(sc, &out)
	}
	g.regions(sc, &out)
	return out
}

func (g *Engine) distancePickups(sc Scene, out *Outcome) {
	margin := g.Margins[core.CategoryCollectible]
	for _, e := range sc.Entities[core.CategoryCollectible] {
		if e.Zone != sc.Session.Zone || !e.Visible || sc.State.handled[e.ID] {
			continue
		}
		if !physics.EntityOverlaps(sc.Player.Position, sc.Player.CollisionRadius, e, margin) {
			continue
		}
		sc.State.handled[e.ID] = true
		e.Hide()
		sc.Session.Score++
		out.Pickups++
		out.Effects = append(out.Effects, g.cue(core.CueWhoosh), core.SetVisibility(e.ID, false))
	}
}

func (g *Engine) regions(sc Scene, out *Outcome) {
	mode := ModeFor(sc.Session.Zone)
	for i := range g.Regions {
		r := &g.Regions[i]
		if r.Zone != sc.Session.Zone || r.Effect == EffectDamage {
			continue
		}
		if mode == ModeDistance && r.Effect == EffectCollectOnce {
			continue
		}
		if r.OneShot && sc.State.fired[r.Name] {
			continue
		}
		key := "region:" + r.Name
		if sc.State.handled[key] || !r.Matches(sc.Player) {
			continue
		}
		sc.State.handled[key] = true
		if r.OneShot {
			sc.State.fired[r.Name] = true
		}

		switch r.Effect {
		case EffectCollectOnce:
			sc.Session.Score++
			out.Pickups++
			out.Effects = append(out.Effects, g.cue(core.CueWhoosh))
			out.Effects = g.hideLinked(sc, r.Entity, out.Effects)
		case EffectFinish:
			sc.Session.Finished = true
			out.Finished = true
			out.Effects = append(out.Effects, g.cue(core.CueFinish))
			out.Effects = g.hideLinked(sc, r.Entity, out.Effects)
		case EffectEnterZone:
			if sc.Session.EnterZone(r.Target) {
				out.ZoneEntered = true
				out.Effects = append(out.Effects, g.cue(core.CueTarget), core.SwapAssets(r.Target))
			}
			// Later regions belong to the zone just left
			return
		}
	}
}

func (g *Engine) hideLinked(sc Scene, label string, effects []core.Effect) []core.Effect {
	if label == "" {
		return effects
	}
	for _, ents := range sc.Entities {
		for _, e := range ents {
			if e.Label == label && e.Visible {
				e.Hide()
				effects = append(effects, core.SetVisibility(e.ID, false))
			}
		}
	}
	return effects
}
