package physics

import "github.com/lixenwraith/oasis/core"

// Vertical integrates jumps with constant gravity, one step per simulation tick
type Vertical struct {
	Gravity      float64 // per tick, negative pulls down
	JumpVelocity float64
	velocity     float64
}

// NewVertical creates a resting integrator
func NewVertical(gravity, jumpVelocity float64) *Vertical {
	return &Vertical{Gravity: gravity, JumpVelocity: jumpVelocity}
}

// Airborne reports an in-progress jump
func (v *Vertical) Airborne(e *core.Entity) bool {
	return !e.OnGround() || v.velocity != 0
}

// Jump launches e if it rests on the ground
func (v *Vertical) Jump(e *core.Entity) bool {
	if v.Airborne(e) {
		return false
	}
	v.velocity = v.JumpVelocity
	return true
}

// Step advances height by one tick, landing clamps to the ground
func (v *Vertical) Step(e *core.Entity) {
	if !v.Airborne(e) {
		return
	}
	e.Position.Y += v.velocity
	v.velocity += v.Gravity
	if e.Position.Y < 0 {
		e.Position.Y = 0
		v.velocity = 0
	}
}
