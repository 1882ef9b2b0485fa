// Package camera derives the follow camera transform from the player pose.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/oasis/vmath"
)

// Params is one camera rig: eye distance behind the target and eye height
// A negative distance places the eye ahead of the target
type Params struct {
	Distance   float64 `yaml:"distance"`
	Height     float64 `yaml:"height"`
	LookHeight float64 `yaml:"look_height"`
	// LookAhead scales the distance pushing the look-at point along the heading
	LookAhead float64 `yaml:"look_ahead"`
}

// ThirdPerson is the default chase rig
var ThirdPerson = Params{Distance: 17, Height: 10, LookHeight: 7}

// FirstPerson is the rig used while the first-person view is on
var FirstPerson = Params{Distance: -3, Height: 7, LookHeight: 7, LookAhead: 10}

// Transform is a resolved camera pose
type Transform struct {
	Eye    vmath.Vec3
	Center vmath.Vec3
	Up     vmath.Vec3
}

// View returns the right-handed view matrix for the pose
func (t Transform) View() mgl64.Mat4 {
	return mgl64.LookAtV(t.Eye.GL(), t.Center.GL(), t.Up.GL())
}

// Controller switches between rigs and recomputes the pose every frame with no smoothing
type Controller struct {
	Third       Params
	First       Params
	firstPerson bool
}

// NewController creates a controller in third-person mode
func NewController(third, first Params) *Controller {
	return &Controller{Third: third, First: first}
}

// Toggle flips the first-person flag and returns the new value
func (c *Controller) Toggle() bool {
	c.firstPerson = !c.firstPerson
	return c.firstPerson
}

// FirstPersonOn reports the current mode
func (c *Controller) FirstPersonOn() bool {
	return c.firstPerson
}

// Active returns the rig currently in use
func (c *Controller) Active() Params {
	if c.firstPerson {
		return c.First
	}
	return c.Third
}

// Follow computes the pose for a target at pos facing heading degrees
func (c *Controller) Follow(pos vmath.Vec3, heading float64) Transform {
	p := c.Active()
	dir := vmath.HeadingDir(heading)

	eye := pos.Sub(dir.Scale(p.Distance)).Add(vmath.V3(0, p.Height, 0))
	center := pos.Add(vmath.V3(0, p.LookHeight, 0))
	if p.LookAhead != 0 {
		center = center.Sub(dir.Scale(p.Distance * p.LookAhead))
	}
	return Transform{Eye: eye, Center: center, Up: vmath.V3(0, 1, 0)}
}
