// Package engine runs the simulation: the world context, the per-tick update
// pipeline and the scheduler serializing ticks, countdown and input.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/oasis/camera"
	"github.com/lixenwraith/oasis/config"
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/interaction"
	"github.com/lixenwraith/oasis/physics"
	"github.com/lixenwraith/oasis/placement"
	"github.com/lixenwraith/oasis/status"
	"github.com/lixenwraith/oasis/vmath"
)

// Game owns the world and applies the update pipeline once per simulation tick
// All mutating methods must be called from a single goroutine, Snapshot is safe from any
type Game struct {
	cfg      *config.Config
	world    *World
	machine  *physics.Machine
	vertical *physics.Vertical
	interact *interaction.Engine
	camera   *camera.Controller
	logger   *zap.Logger
	metrics  *status.Registry

	pending []core.Action
	effects []core.Effect

	mu    sync.RWMutex
	front Frame
}

// NewGame builds the world from cfg and runs the initial placement pass
func NewGame(cfg *config.Config, rng *rand.Rand, logger *zap.Logger) (*Game, error) {
	table, err := physics.NewHeadingTable(cfg.World.Headings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	player := core.NewEntity(cfg.Player, cfg.World.Spawn)
	w := NewWorld(player, core.NewSession(cfg.Session.Countdown, cfg.Session.Score), rng)
	for _, s := range cfg.Statics {
		w.Add(core.NewEntity(s.Template, s.Position))
	}

	g := &Game{
		cfg:      cfg,
		world:    w,
		machine:  physics.NewMachine(table, cfg.World.Bounds),
		vertical: physics.NewVertical(cfg.World.Gravity, cfg.World.JumpVelocity),
		interact: interaction.New(cfg.Margins, cfg.Regions, cfg.Audio.Volumes),
		camera:   camera.NewController(cfg.Camera.ThirdPerson, cfg.Camera.FirstPerson),
		logger:   logger,
		metrics:  status.NewRegistry(),
	}
	g.machine.Reset(player)
	g.populate()

	g.emit(core.PlayCue(core.CueTheme, g.volume(core.CueTheme)), core.SwapAssets(w.Session.Zone))
	g.publish()
	return g, nil
}

// World exposes the simulation context, only valid on the simulation goroutine
func (g *Game) World() *World {
	return g.world
}

// Metrics exposes the run counters
func (g *Game) Metrics() *status.Registry {
	return g.metrics
}

// Enqueue queues an input action for the next simulation tick
func (g *Game) Enqueue(a core.Action) {
	g.pending = append(g.pending, a)
}

// CountdownTick decrements the countdown once, nothing changes after the session ends
func (g *Game) CountdownTick() {
	if g.world.Session.Over() {
		return
	}
	g.world.Session.Countdown--
}

// Step runs one simulation tick and returns the committed frame
func (g *Game) Step() Frame {
	w := g.world
	if w.Session.Over() {
		g.pending = g.pending[:0]
		return g.publish()
	}

	w.Tick++
	g.metrics.Counter(status.Ticks).Add(1)
	w.Interaction.BeginTick()
	g.populate()

	for _, a := range g.pending {
		g.apply(a)
	}
	g.pending = g.pending[:0]

	g.vertical.Step(w.Player)

	out := g.interact.Evaluate(w.scene())
	g.emit(out.Effects...)
	g.metrics.Counter(status.Pickups).Add(int64(out.Pickups))
	if out.ZoneEntered {
		g.logger.Info("zone entered",
			zap.Stringer("zone", w.Session.Zone),
			zap.Stringer("mode", interaction.ModeFor(w.Session.Zone)),
			zap.Uint64("tick", w.Tick))
	}

	if term, changed := w.Session.Evaluate(); changed {
		g.emit(core.ReachTerminal(term))
		g.logger.Info("session ended",
			zap.Stringer("terminal", term),
			zap.Int("score", w.Session.Score),
			zap.Int("countdown", w.Session.Countdown))
	}

	return g.publish()
}

// Snapshot returns the last committed frame
func (g *Game) Snapshot() Frame {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.front
}

func (g *Game) apply(a core.Action) {
	w := g.world
	switch a {
	case core.ActionJump:
		g.vertical.Jump(w.Player)
	case core.ActionToggleFirstPerson:
		g.camera.Toggle()
	default:
		if !a.IsMovement() {
			return
		}
		res := g.machine.Apply(a, w.Player, func(pos vmath.Vec3) bool {
			return g.interact.Obstacle(w.scene(), pos, &g.effects)
		})
		if a == core.ActionAdvance && res.Outcome != physics.OutcomeOutOfBounds {
			g.emit(core.PlayCue(core.CueStep, g.volume(core.CueStep)))
		}
		if res.Outcome == physics.OutcomeCollided {
			g.metrics.Counter(status.Collisions).Add(1)
			g.logger.Debug("movement reverted",
				zap.Stringer("action", a),
				zap.Int("score", w.Session.Score))
		}
	}
}

// populate tops every quota up, an exhausted quota keeps what it placed
func (g *Game) populate() {
	for _, q := range g.cfg.Quotas {
		placed, err := placement.EnsurePopulation(g.world.Rng, q, g.world.Entities)
		if err != nil {
			if !errors.Is(err, placement.ErrPlacementExhausted) {
				g.logger.Error("placement failed", zap.Error(err))
				continue
			}
			g.metrics.Counter(status.PlacementExhaust).Add(1)
			g.logger.Warn("placement fallback exhausted",
				zap.Stringer("category", q.Category()),
				zap.Int("placed", len(placed)),
				zap.Error(err))
			continue
		}
		if len(placed) > 0 {
			g.logger.Debug("entities placed",
				zap.Stringer("category", q.Category()),
				zap.Int("count", len(placed)))
		}
	}
}

func (g *Game) volume(cue string) float64 {
	if v, ok := g.cfg.Audio.Volumes[cue]; ok {
		return v
	}
	return 0.5
}

func (g *Game) emit(effects ...core.Effect) {
	g.effects = append(g.effects, effects...)
}

// publish builds the frame for the current state and swaps it to the front
// Pending effects are moved into the frame
func (g *Game) publish() Frame {
	w := g.world
	zone := w.Session.Zone

	f := Frame{
		Tick:        w.Tick,
		Player:      viewOf(w.Player),
		Camera:      g.camera.Follow(w.Player.Position, w.Player.Heading),
		FirstPerson: g.camera.FirstPersonOn(),
		HUD: HUD{
			Score:     w.Session.Score,
			Countdown: w.Session.Countdown,
			Zone:      zone,
			Mode:      interaction.ModeFor(zone),
			Terminal:  w.Session.Terminal,
		},
	}
	if set, err := g.cfg.Assets.For(zone); err == nil {
		f.Assets = set
	}
	for _, cat := range core.Categories() {
		if cat == core.CategoryPlayer {
			continue
		}
		for _, e := range w.Entities[cat] {
			if e.Visible && e.Zone == zone {
				f.Entities = append(f.Entities, viewOf(e))
			}
		}
	}
	if len(g.effects) > 0 {
		f.Effects = g.effects
		g.effects = nil
	}

	g.mu.Lock()
	g.front = f
	g.mu.Unlock()
	return f
}
