// Package placement populates entity categories by rejection sampling under
// spacing and forbidden-region constraints.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/vmath"
)

// ErrPlacementExhausted is returned when the retry ceiling is hit without a valid candidate
var ErrPlacementExhausted = errors.New("placement attempts exhausted")

// Fallback selects what happens when MaxAttempts is reached for one entity
type Fallback uint8

const (
	// FallbackFail stops the pass and reports ErrPlacementExhausted
	FallbackFail Fallback = iota
	// FallbackRelax halves the separation and retries, up to RelaxSteps times, then fails
	FallbackRelax
)

func (f Fallback) MarshalText() ([]byte, error) {
	if f == FallbackRelax {
		return []byte("relax"), nil
	}
	return []byte("fail"), nil
}

func (f *Fallback) UnmarshalText(b []byte) error {
	switch string(b) {
	case "fail", "":
		*f = FallbackFail
	case "relax":
		*f = FallbackRelax
	default:
		return fmt.Errorf("unknown placement fallback %q", b)
	}
	return nil
}

// Quota describes how one category is kept populated
type Quota struct {
	Template      core.EntityTemplate `yaml:"template"`
	Target        int                 `yaml:"target"`
	Bounds        vmath.Rect          `yaml:"bounds"`
	Y             float64             `yaml:"y"`
	MinSeparation float64             `yaml:"min_separation"`
	Forbidden     []vmath.Rect        `yaml:"forbidden"`
	SeparateFrom  []core.Category     `yaml:"separate_from"`
	Lattice       bool                `yaml:"lattice"`       // sample integer coordinates only
	Respawn       bool                `yaml:"respawn"`       // hidden entities free their slot
	MaxAttempts   int                 `yaml:"max_attempts"`  // per entity, 0 retries forever
	Fallback      Fallback            `yaml:"fallback"`
	RelaxSteps    int                 `yaml:"relax_steps"`
}

// Category is the category this quota fills
func (q *Quota) Category() core.Category {
	return q.Template.Category
}

// Validate rejects configurations that can never yield a candidate
func (q *Quota) Validate() error {
	if q.Target < 0 {
		return fmt.Errorf("quota %s: negative target %d", q.Category(), q.Target)
	}
	if !q.Bounds.Valid() {
		return fmt.Errorf("quota %s: inverted bounds %+v", q.Category(), q.Bounds)
	}
	if q.MinSeparation < 0 {
		return fmt.Errorf("quota %s: negative separation", q.Category())
	}
	if q.MaxAttempts < 0 || q.RelaxSteps < 0 {
		return fmt.Errorf("quota %s: negative retry limits", q.Category())
	}
	if q.Lattice && (math.Ceil(q.Bounds.MinX) > q.Bounds.MaxX || math.Ceil(q.Bounds.MinZ) > q.Bounds.MaxZ) {
		return fmt.Errorf("quota %s: bounds contain no lattice point", q.Category())
	}
	return nil
}

// Population is the live entity set per category
type Population map[core.Category][]*core.Entity

// Count returns the number of entities of category c in zone z occupying quota slots
func (p Population) Count(c core.Category, z core.Zone, visibleOnly bool) int {
	n := 0
	for _, e := range p[c] {
		if e.Zone == z && (e.Visible || !visibleOnly) {
			n++
		}
	}
	return n
}

// EnsurePopulation tops the quota's category up to its target
// Accepted entities are appended to pop as they are placed, so later candidates in the same pass
// are checked against them. On error the entities placed so far are returned and remain in pop.
func EnsurePopulation(rng *rand.Rand, q Quota, pop Population) ([]*core.Entity, error) {
	cat := q.Category()
	missing := q.Target - pop.Count(cat, q.Template.Zone, q.Respawn)
	if missing <= 0 {
		return nil, nil
	}

	placed := make([]*core.Entity, 0, missing)
	separation := q.MinSeparation
	relaxed := 0

	for len(placed) < missing {
		attempts := 0
		for {
			if q.MaxAttempts > 0 && attempts >= q.MaxAttempts {
				if q.Fallback == FallbackRelax && relaxed < q.RelaxSteps {
					separation /= 2
					relaxed++
					attempts = 0
					continue
				}
				return placed, fmt.Errorf("%w: %s %d/%d placed after %d attempts (separation %.3g)",
					ErrPlacementExhausted, cat, len(placed), missing, attempts, separation)
			}
			attempts++

			candidate := sample(rng, &q)
			if accept(candidate, &q, separation, pop) {
				e := core.NewEntity(q.Template, candidate)
				pop[cat] = append(pop[cat], e)
				placed = append(placed, e)
				break
			}
		}
	}
	return placed, nil
}

// sample draws a uniform candidate inside the quota bounds
func sample(rng *rand.Rand, q *Quota) vmath.Vec3 {
	b := q.Bounds
	if q.Lattice {
		return vmath.Vec3{X: latticeCoord(rng, b.MinX, b.MaxX), Y: q.Y, Z: latticeCoord(rng, b.MinZ, b.MaxZ)}
	}
	return vmath.Vec3{
		X: b.MinX + rng.Float64()*b.Width(),
		Y: q.Y,
		Z: b.MinZ + rng.Float64()*b.Depth(),
	}
}

// latticeCoord picks an integer in [ceil(lo), floor(hi)], both ends inclusive
func latticeCoord(rng *rand.Rand, lo, hi float64) float64 {
	l, h := int(math.Ceil(lo)), int(math.Floor(hi))
	return float64(l + rng.IntN(h-l+1))
}

func accept(p vmath.Vec3, q *Quota, separation float64, pop Population) bool {
	for _, r := range q.Forbidden {
		if r.Contains(p) {
			return false
		}
	}
	for _, c := range q.SeparateFrom {
		for _, other := range pop[c] {
			if other.Zone != q.Template.Zone {
				continue
			}
			if vmath.Dist(other.Position, p) < separation {
				return false
			}
		}
	}
	return true
}
