package interaction

import (
	"fmt"

	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/vmath"
)

// RegionEffect is what happens when the player stands inside a region
type RegionEffect uint8

const (
	EffectDamage RegionEffect = iota
	EffectCollectOnce
	EffectFinish
	EffectEnterZone
)

var regionEffectNames = map[RegionEffect]string{
	EffectDamage:      "damage",
	EffectCollectOnce: "collect_once",
	EffectFinish:      "finish",
	EffectEnterZone:   "enter_zone",
}

func (e RegionEffect) String() string {
	if s, ok := regionEffectNames[e]; ok {
		return s
	}
	return fmt.Sprintf("region_effect(%d)", e)
}

func (e RegionEffect) MarshalText() ([]byte, error) {
	s, ok := regionEffectNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown region effect %d", e)
	}
	return []byte(s), nil
}

func (e *RegionEffect) UnmarshalText(b []byte) error {
	for k, v := range regionEffectNames {
		if v == string(b) {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown region effect %q", b)
}

// Region is one record of the data-driven zone table
type Region struct {
	Name       string       `yaml:"name"`
	Bounds     vmath.Rect   `yaml:"bounds"`
	Effect     RegionEffect `yaml:"effect"`
	OneShot    bool         `yaml:"one_shot"`
	GroundOnly bool         `yaml:"ground_only"` // only while the player stands on the terrain
	Open       bool         `yaml:"open"`        // boundary excluded
	Zone       core.Zone    `yaml:"zone"`        // zone in which the region is live
	Entity     string       `yaml:"entity"`      // label of the entity hidden on trigger
	Target     core.Zone    `yaml:"target"`      // destination of enter_zone
}

// Matches tests the player against the region geometry and ground constraint
func (r *Region) Matches(player *core.Entity) bool {
	if r.GroundOnly && !player.OnGround() {
		return false
	}
	if r.Open {
		return r.Bounds.ContainsOpen(player.Position)
	}
	return r.Bounds.Contains(player.Position)
}

// Validate checks a region record
func (r *Region) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("region without name")
	}
	if !r.Bounds.Valid() {
		return fmt.Errorf("region %s: inverted bounds %+v", r.Name, r.Bounds)
	}
	if _, ok := regionEffectNames[r.Effect]; !ok {
		return fmt.Errorf("region %s: unknown effect %d", r.Name, r.Effect)
	}
	if r.Effect == EffectEnterZone && r.Target <= r.Zone {
		return fmt.Errorf("region %s: zone entry must lead deeper than %s", r.Name, r.Zone)
	}
	return nil
}
