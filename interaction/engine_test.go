package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/placement"
	"github.com/lixenwraith/oasis/vmath"
)

func newScene(zone core.Zone) (Scene, *core.Session) {
	sess := core.NewSession(180, 0)
	sess.Zone = zone
	player := core.NewEntity(core.EntityTemplate{Label: "player", Category: core.CategoryPlayer, CollisionRadius: 1}, vmath.Vec3{})
	return Scene{
		Player:   player,
		Entities: placement.Population{core.CategoryPlayer: {player}},
		Session:  &sess,
		State:    NewState(),
	}, &sess
}

func add(sc Scene, tpl core.EntityTemplate, pos vmath.Vec3) *core.Entity {
	e := core.NewEntity(tpl, pos)
	sc.Entities[tpl.Category] = append(sc.Entities[tpl.Category], e)
	return e
}

func testEngine(regions ...Region) *Engine {
	return New(map[core.Category]float64{
		core.CategoryEnemy:       0.5,
		core.CategoryObstacle:    0.3,
		core.CategoryCollectible: 0.04,
	}, regions, map[string]float64{core.CueCollision: 0.5, core.CueWhoosh: 0.5})
}

var (
	snake = core.EntityTemplate{Label: "snake", Category: core.CategoryEnemy, CollisionRadius: 1}
	water = core.EntityTemplate{Label: "water", Category: core.CategoryCollectible, CollisionRadius: 1}
)

func cues(effects []core.Effect) []string {
	var out []string
	for _, e := range effects {
		if e.Kind == core.EffectAudio {
			out = append(out, e.Cue)
		}
	}
	return out
}

func TestModeFollowsZone(t *testing.T) {
	assert.Equal(t, ModeDistance, ModeFor(core.ZoneSurface))
	assert.Equal(t, ModeRegion, ModeFor(core.ZoneCave))
}

func TestDistanceObstacleAppliesMargin(t *testing.T) {
	sc, sess := newScene(core.ZoneSurface)
	add(sc, snake, vmath.V3(0, 0, 1.4))
	g := testEngine()

	var effects []core.Effect
	assert.True(t, g.Obstacle(sc, vmath.Vec3{}, &effects), "1.4 < 2 - 0.5")
	assert.Equal(t, -1, sess.Score)
	assert.Equal(t, []string{core.CueCollision}, cues(effects))

	effects = nil
	assert.False(t, g.Obstacle(sc, vmath.V3(0, 0, -0.2), &effects), "1.6 is outside the forgiven distance")
	assert.Equal(t, -1, sess.Score)
	assert.Empty(t, effects)
}

func TestDistanceObstacleSkipsHiddenAndOtherZone(t *testing.T) {
	sc, _ := newScene(core.ZoneSurface)
	add(sc, snake, vmath.V3(0, 0, 1)).Hide()
	ghost := snake
	ghost.Zone = core.ZoneCave
	add(sc, ghost, vmath.V3(0, 0, 1))

	var effects []core.Effect
	assert.False(t, testEngine().Obstacle(sc, vmath.Vec3{}, &effects))
}

func TestPickupIsIdempotentWithinTick(t *testing.T) {
	sc, sess := newScene(core.ZoneSurface)
	w := add(sc, water, vmath.V3(1, 0, 0))
	g := testEngine()

	out := g.Evaluate(sc)
	assert.Equal(t, 1, out.Pickups)
	assert.Equal(t, 1, sess.Score)
	assert.False(t, w.Visible)
	assert.Equal(t, []string{core.CueWhoosh}, cues(out.Effects))
	assert.Contains(t, out.Effects, core.SetVisibility(w.ID, false))

	// A second pass in the same tick must not count the same entity again
	w.Visible = true
	out = g.Evaluate(sc)
	assert.Zero(t, out.Pickups)
	assert.Equal(t, 1, sess.Score)

	sc.State.BeginTick()
	out = g.Evaluate(sc)
	assert.Equal(t, 1, out.Pickups)
	assert.Equal(t, 2, sess.Score)
}

func TestHiddenCollectibleIgnored(t *testing.T) {
	sc, sess := newScene(core.ZoneSurface)
	add(sc, water, vmath.Vec3{}).Hide()

	out := testEngine().Evaluate(sc)
	assert.Zero(t, out.Pickups)
	assert.Zero(t, sess.Score)
}

func TestZoneEntrySwitchesOnce(t *testing.T) {
	entrance := Region{
		Name:    "cave_entrance",
		Bounds:  vmath.R(28, 35, 28, 34),
		Effect:  EffectEnterZone,
		OneShot: true,
		Zone:    core.ZoneSurface,
		Target:  core.ZoneCave,
	}
	sc, sess := newScene(core.ZoneSurface)
	sc.Player.Position = vmath.V3(30, 0, 30)
	g := testEngine(entrance)

	out := g.Evaluate(sc)
	require.True(t, out.ZoneEntered)
	assert.Equal(t, core.ZoneCave, sess.Zone)
	assert.Equal(t, []string{core.CueTarget}, cues(out.Effects))
	assert.Contains(t, out.Effects, core.SwapAssets(core.ZoneCave))
	assert.True(t, sc.State.Fired("cave_entrance"))

	sc.State.BeginTick()
	out = g.Evaluate(sc)
	assert.False(t, out.ZoneEntered)
	assert.Empty(t, out.Effects)
	assert.Equal(t, ModeRegion, ModeFor(sess.Zone))
}

func TestRegionDamageGroundOnly(t *testing.T) {
	pit := Region{Name: "ghost", Bounds: vmath.R(8, 12, 38, 42), Effect: EffectDamage, GroundOnly: true, Zone: core.ZoneCave}
	sc, sess := newScene(core.ZoneCave)
	g := testEngine(pit)

	var effects []core.Effect
	assert.True(t, g.Obstacle(sc, vmath.V3(10, 0, 40), &effects))
	assert.Equal(t, -1, sess.Score)

	effects = nil
	assert.False(t, g.Obstacle(sc, vmath.V3(10, 1.7, 40), &effects), "airborne over a ground-only hazard")
	assert.False(t, g.Obstacle(sc, vmath.V3(13, 0, 40), &effects))
	assert.Equal(t, -1, sess.Score)
}

func TestRegionDamageOnlyBlocksEntering(t *testing.T) {
	pit := Region{Name: "ghost", Bounds: vmath.R(8, 12, 38, 42), Effect: EffectDamage, GroundOnly: true, Zone: core.ZoneCave}
	sc, sess := newScene(core.ZoneCave)
	sc.Player.Position = vmath.V3(10, 0, 38)
	g := testEngine(pit)

	var effects []core.Effect
	assert.False(t, g.Obstacle(sc, sc.Player.Position, &effects), "turning in place")
	assert.False(t, g.Obstacle(sc, vmath.V3(10, 0, 39), &effects), "walking inside")
	assert.False(t, g.Obstacle(sc, vmath.V3(10, 0, 37), &effects), "walking out")
	assert.Equal(t, 0, sess.Score)
	assert.Empty(t, effects)
}

func TestOpenRegionExcludesBoundary(t *testing.T) {
	r := Region{Name: "entrance", Bounds: vmath.R(28, 35, 28, 34), Open: true}
	at := func(x, z float64) *core.Entity {
		return &core.Entity{Position: vmath.V3(x, 0, z)}
	}
	assert.False(t, r.Matches(at(28, 30)))
	assert.False(t, r.Matches(at(30, 34)))
	assert.True(t, r.Matches(at(28.5, 33.9)))

	r.Open = false
	assert.True(t, r.Matches(at(28, 30)))
}

func TestRegionDamageIgnoredOnSurface(t *testing.T) {
	pit := Region{Name: "ghost", Bounds: vmath.R(8, 12, 38, 42), Effect: EffectDamage, Zone: core.ZoneCave}
	sc, _ := newScene(core.ZoneSurface)

	var effects []core.Effect
	assert.False(t, testEngine(pit).Obstacle(sc, vmath.V3(10, 0, 40), &effects))
}

func TestCollectOnceRegion(t *testing.T) {
	diamond := core.EntityTemplate{Label: "diamond1", Category: core.CategoryCollectible, Zone: core.ZoneCave}
	region := Region{
		Name: "diamond1", Bounds: vmath.R(16, 23, 16, 24), Effect: EffectCollectOnce,
		OneShot: true, GroundOnly: true, Zone: core.ZoneCave, Entity: "diamond1",
	}
	sc, sess := newScene(core.ZoneCave)
	d := add(sc, diamond, vmath.V3(20, 0, 20))
	sc.Player.Position = vmath.V3(20, 0, 18)
	g := testEngine(region)

	out := g.Evaluate(sc)
	assert.Equal(t, 1, out.Pickups)
	assert.Equal(t, 1, sess.Score)
	assert.False(t, d.Visible)

	for range 3 {
		sc.State.BeginTick()
		out = g.Evaluate(sc)
		assert.Zero(t, out.Pickups)
	}
	assert.Equal(t, 1, sess.Score)
}

func TestFinishRegionWins(t *testing.T) {
	treasure := core.EntityTemplate{Label: "treasure", Category: core.CategoryGoal, Zone: core.ZoneCave}
	finish := Region{
		Name: "finish", Bounds: vmath.R(15, 25, -52, -48), Effect: EffectFinish,
		OneShot: true, GroundOnly: true, Zone: core.ZoneCave, Entity: "treasure",
	}
	sc, sess := newScene(core.ZoneCave)
	box := add(sc, treasure, vmath.V3(20, 0, -50))
	sc.Player.Position = vmath.V3(20, 0, -49)

	out := testEngine(finish).Evaluate(sc)
	require.True(t, out.Finished)
	assert.True(t, sess.Finished)
	assert.False(t, box.Visible)
	assert.Equal(t, []string{core.CueFinish}, cues(out.Effects))

	term, changed := sess.Evaluate()
	assert.True(t, changed)
	assert.Equal(t, core.TerminalWon, term)
}

func TestRegionValidate(t *testing.T) {
	ok := Region{Name: "a", Bounds: vmath.R(0, 1, 0, 1)}
	assert.NoError(t, ok.Validate())

	inverted := Region{Name: "b", Bounds: vmath.R(1, 0, 0, 1)}
	assert.Error(t, inverted.Validate())

	backwards := Region{Name: "c", Bounds: vmath.R(0, 1, 0, 1), Effect: EffectEnterZone, Zone: core.ZoneCave, Target: core.ZoneSurface}
	assert.Error(t, backwards.Validate())

	assert.Error(t, (&Region{Bounds: vmath.R(0, 1, 0, 1)}).Validate())
}
