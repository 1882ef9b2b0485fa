package engine

import (
	"github.com/lixenwraith/oasis/asset"
	"github.com/lixenwraith/oasis/camera"
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/interaction"
	"github.com/lixenwraith/oasis/vmath"
)

// EntityView is the render-facing copy of an entity
type EntityView struct {
	ID       string        `msgpack:"id"`
	Label    string        `msgpack:"label"`
	Category core.Category `msgpack:"category"`
	Position vmath.Vec3    `msgpack:"position"`
	Heading  float64       `msgpack:"heading"`
	Scale    float64       `msgpack:"scale"`
	Model    string        `msgpack:"model"`
}

func viewOf(e *core.Entity) EntityView {
	return EntityView{
		ID:       e.ID,
		Label:    e.Label,
		Category: e.Category,
		Position: e.Position,
		Heading:  e.Heading,
		Scale:    e.Scale,
		Model:    e.Model,
	}
}

// HUD is the on-screen session status
type HUD struct {
	Score     int              `msgpack:"score"`
	Countdown int              `msgpack:"countdown"`
	Zone      core.Zone        `msgpack:"zone"`
	Mode      interaction.Mode `msgpack:"mode"`
	Terminal  core.Terminal    `msgpack:"terminal"`
}

// Frame is an immutable snapshot of one committed simulation tick
type Frame struct {
	Tick        uint64           `msgpack:"tick"`
	Player      EntityView       `msgpack:"player"`
	Entities    []EntityView     `msgpack:"entities"` // visible, active zone, player excluded
	Camera      camera.Transform `msgpack:"camera"`
	FirstPerson bool             `msgpack:"first_person"`
	HUD         HUD              `msgpack:"hud"`
	Assets      asset.Set        `msgpack:"assets"`
	Effects     []core.Effect    `msgpack:"-"`
}

// Renderer consumes committed frames
type Renderer interface {
	Render(f Frame) error
}

// AudioPlayer plays cue effects
type AudioPlayer interface {
	Play(cue string, volume float64, loop bool)
}
