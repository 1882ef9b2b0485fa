package placement

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caveRect = vmath.R(28, 57, 28, 41)

func enemyQuota() Quota {
	return Quota{
		Template: core.EntityTemplate{
			Label:           "snake",
			Category:        core.CategoryEnemy,
			Scale:           0.03,
			CollisionRadius: 0.5,
			Model:           "models/snake/snake.3ds",
		},
		Target:        5,
		Bounds:        vmath.R(-48, 48, -48, 48),
		MinSeparation: 5,
		Forbidden:     []vmath.Rect{caveRect},
		SeparateFrom:  []core.Category{core.CategoryEnemy},
		Lattice:       true,
		MaxAttempts:   10000,
	}
}

func assertSeparated(t *testing.T, ents []*core.Entity, minSep float64) {
	t.Helper()
	for i := range ents {
		for j := i + 1; j < len(ents); j++ {
			d := vmath.Dist(ents[i].Position, ents[j].Position)
			assert.GreaterOrEqual(t, d, minSep, "entities %d and %d", i, j)
		}
	}
}

func TestEnsurePopulationScenario(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		pop := Population{}
		q := enemyQuota()

		placed, err := EnsurePopulation(rng, q, pop)
		require.NoError(t, err)
		require.Len(t, placed, 5)
		require.Len(t, pop[core.CategoryEnemy], 5)

		for _, e := range placed {
			assert.False(t, caveRect.Contains(e.Position), "seed %d: %+v inside forbidden", seed, e.Position)
			assert.True(t, q.Bounds.Contains(e.Position))
			assert.Equal(t, math.Trunc(e.Position.X), e.Position.X, "lattice x")
			assert.Equal(t, math.Trunc(e.Position.Z), e.Position.Z, "lattice z")
			assert.True(t, e.Visible)
			assert.Equal(t, core.CategoryEnemy, e.Category)
		}
		assertSeparated(t, placed, 5)
	}
}

func TestEnsurePopulationRespectsOtherCategories(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	pop := Population{}

	enemies := enemyQuota()
	_, err := EnsurePopulation(rng, enemies, pop)
	require.NoError(t, err)

	rocks := enemyQuota()
	rocks.Template.Category = core.CategoryObstacle
	rocks.SeparateFrom = []core.Category{core.CategoryEnemy, core.CategoryObstacle}
	_, err = EnsurePopulation(rng, rocks, pop)
	require.NoError(t, err)

	water := enemyQuota()
	water.Template.Category = core.CategoryCollectible
	water.SeparateFrom = []core.Category{core.CategoryEnemy, core.CategoryObstacle, core.CategoryCollectible}
	_, err = EnsurePopulation(rng, water, pop)
	require.NoError(t, err)

	var all []*core.Entity
	for _, c := range []core.Category{core.CategoryEnemy, core.CategoryObstacle, core.CategoryCollectible} {
		require.Len(t, pop[c], 5)
		all = append(all, pop[c]...)
	}
	assertSeparated(t, all, 5)
}

func TestEnsurePopulationNoopWhenFull(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pop := Population{}
	q := enemyQuota()
	_, err := EnsurePopulation(rng, q, pop)
	require.NoError(t, err)

	placed, err := EnsurePopulation(rng, q, pop)
	assert.NoError(t, err)
	assert.Empty(t, placed)
	assert.Len(t, pop[core.CategoryEnemy], 5)
}

func TestHiddenEntitiesKeepTheirSlotUnlessRespawn(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	pop := Population{}
	q := enemyQuota()
	_, err := EnsurePopulation(rng, q, pop)
	require.NoError(t, err)
	pop[core.CategoryEnemy][0].Hide()

	placed, err := EnsurePopulation(rng, q, pop)
	require.NoError(t, err)
	assert.Empty(t, placed)

	q.Respawn = true
	placed, err = EnsurePopulation(rng, q, pop)
	require.NoError(t, err)
	assert.Len(t, placed, 1)
	assert.Equal(t, 5, pop.Count(core.CategoryEnemy, core.ZoneSurface, true))
	assert.Equal(t, 6, pop.Count(core.CategoryEnemy, core.ZoneSurface, false))
}

func TestEnsurePopulationExhausted(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	pop := Population{}
	q := enemyQuota()
	q.Bounds = vmath.R(0, 0, 0, 0)
	q.Forbidden = nil
	q.Target = 2
	q.MaxAttempts = 25

	placed, err := EnsurePopulation(rng, q, pop)
	require.ErrorIs(t, err, ErrPlacementExhausted)
	assert.Len(t, placed, 1)
	assert.Len(t, pop[core.CategoryEnemy], 1, "partial progress stays in the population")
}

func TestEnsurePopulationRelaxFallback(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	pop := Population{}
	q := enemyQuota()
	q.Bounds = vmath.R(0, 1, 0, 0)
	q.Forbidden = nil
	q.Target = 2
	q.MinSeparation = 4
	q.MaxAttempts = 50
	q.Fallback = FallbackRelax
	q.RelaxSteps = 3

	placed, err := EnsurePopulation(rng, q, pop)
	require.NoError(t, err)
	require.Len(t, placed, 2)
	assert.InDelta(t, 1.0, vmath.Dist(placed[0].Position, placed[1].Position), 1e-12)
}

func TestEnsurePopulationRelaxStillBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 11))
	q := enemyQuota()
	q.Bounds = vmath.R(0, 0, 0, 0)
	q.Target = 2
	q.MaxAttempts = 10
	q.Fallback = FallbackRelax
	q.RelaxSteps = 2

	_, err := EnsurePopulation(rng, q, Population{})
	assert.ErrorIs(t, err, ErrPlacementExhausted)
}

func TestContinuousSamplingStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 13))
	q := enemyQuota()
	q.Lattice = false
	q.Bounds = vmath.R(-2.5, 2.5, 10, 11)
	q.MinSeparation = 0.1
	q.Forbidden = nil
	q.Target = 10
	q.Y = 1

	placed, err := EnsurePopulation(rng, q, Population{})
	require.NoError(t, err)
	for _, e := range placed {
		assert.True(t, q.Bounds.Contains(e.Position))
		assert.Equal(t, 1.0, e.Position.Y)
	}
}

func TestQuotaValidate(t *testing.T) {
	q := enemyQuota()
	assert.NoError(t, q.Validate())

	bad := q
	bad.Bounds = vmath.R(5, -5, 0, 1)
	assert.Error(t, bad.Validate())

	bad = q
	bad.Target = -1
	assert.Error(t, bad.Validate())

	bad = q
	bad.Bounds = vmath.R(0.2, 0.8, 0, 1)
	assert.Error(t, bad.Validate(), "no integer x inside bounds")
}

func TestOtherZoneDoesNotOccupySlots(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	ghost := core.NewEntity(core.EntityTemplate{Label: "ghost", Category: core.CategoryEnemy, Zone: core.ZoneCave}, vmath.V3(0, 0, 0))
	pop := Population{core.CategoryEnemy: {ghost}}

	q := enemyQuota()
	q.Bounds = vmath.R(0, 0, 0, 0)
	q.Forbidden = nil
	q.Target = 1
	q.MaxAttempts = 5

	placed, err := EnsurePopulation(rng, q, pop)
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, vmath.Vec3{}, placed[0].Position, "cave entity does not block the surface spot")
	assert.Len(t, pop[core.CategoryEnemy], 2)
}
