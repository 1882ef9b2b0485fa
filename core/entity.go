package core

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lixenwraith/oasis/vmath"
)

// Category classifies world entities for placement, interaction and rendering
type Category uint8

const (
	CategoryPlayer Category = iota
	CategoryEnemy
	CategoryObstacle
	CategoryCollectible
	CategoryGoal
	CategoryZoneMarker
	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryPlayer:      "player",
	CategoryEnemy:       "enemy",
	CategoryObstacle:    "obstacle",
	CategoryCollectible: "collectible",
	CategoryGoal:        "goal",
	CategoryZoneMarker:  "zone_marker",
}

// Categories lists every category in declaration order
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

func (c Category) MarshalText() ([]byte, error) {
	if c >= categoryCount {
		return nil, fmt.Errorf("unknown category %d", c)
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	for i, name := range categoryNames {
		if name == string(b) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", b)
}

// Zone is the area of the world the player currently explores
// Entities belong to exactly one zone and only interact while their zone is active
type Zone uint8

const (
	ZoneSurface Zone = iota
	ZoneCave
)

func (z Zone) String() string {
	switch z {
	case ZoneSurface:
		return "surface"
	case ZoneCave:
		return "cave"
	default:
		return fmt.Sprintf("zone(%d)", z)
	}
}

func (z Zone) MarshalText() ([]byte, error) {
	if z > ZoneCave {
		return nil, fmt.Errorf("unknown zone %d", z)
	}
	return []byte(z.String()), nil
}

func (z *Zone) UnmarshalText(b []byte) error {
	switch string(b) {
	case "surface":
		*z = ZoneSurface
	case "cave":
		*z = ZoneCave
	default:
		return fmt.Errorf("unknown zone %q", b)
	}
	return nil
}

// Entity is a positioned, oriented, scaled world object
// Removed entities are hidden, never freed, so IDs referenced by regions stay valid
type Entity struct {
	ID              string
	Label           string
	Category        Category
	Zone            Zone
	Position        vmath.Vec3
	Heading         float64 // degrees
	Scale           float64
	CollisionRadius float64
	Visible         bool
	Model           string
}

// EntityTemplate carries the non-positional attributes shared by a family of entities
type EntityTemplate struct {
	Label           string   `yaml:"label"`
	Category        Category `yaml:"category"`
	Zone            Zone     `yaml:"zone"`
	Scale           float64  `yaml:"scale"`
	CollisionRadius float64  `yaml:"collision_radius"`
	Model           string   `yaml:"model"`
}

// NewEntity creates a visible entity from a template at pos
func NewEntity(tpl EntityTemplate, pos vmath.Vec3) *Entity {
	return &Entity{
		ID:              uuid.NewString(),
		Label:           tpl.Label,
		Category:        tpl.Category,
		Zone:            tpl.Zone,
		Position:        pos,
		Scale:           tpl.Scale,
		CollisionRadius: tpl.CollisionRadius,
		Visible:         true,
		Model:           tpl.Model,
	}
}

// Hide marks the entity removed from play
func (e *Entity) Hide() {
	e.Visible = false
}

// OnGround reports whether the entity rests on the terrain
func (e *Entity) OnGround() bool {
	return e.Position.Y == 0
}
