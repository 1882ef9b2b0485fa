package physics

import (
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/vmath"
)

// Probe reports whether moving the player to pos collides with an obstacle
// It is called before the entity position changes and may record collision side
// effects, the machine only uses the verdict
type Probe func(pos vmath.Vec3) bool

// Outcome classifies a transition attempt
type Outcome uint8

const (
	OutcomeCommitted  Outcome = iota
	OutcomeOutOfBounds        // advance target outside world bounds, nothing changed
	OutcomeCollided           // probe failed, state restored
	OutcomeIgnored            // not a movement action
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	case OutcomeCollided:
		return "collided"
	default:
		return "ignored"
	}
}

// Result describes the effect of Apply
type Result struct {
	Outcome Outcome
	Moved   bool // position changed and stayed changed
}

// Machine is the discrete heading state machine driving the player
// Every transition either commits fully or leaves index, heading and position untouched
type Machine struct {
	table  *HeadingTable
	index  int
	bounds vmath.Rect
}

// NewMachine creates a machine at heading index 0
func NewMachine(table *HeadingTable, bounds vmath.Rect) *Machine {
	return &Machine{
		table:  table,
		bounds: bounds,
	}
}

// Index returns the current heading index
func (m *Machine) Index() int {
	return m.index
}

// Table returns the heading table in use
func (m *Machine) Table() *HeadingTable {
	return m.table
}

// Reset points the machine and the entity at index 0
func (m *Machine) Reset(e *core.Entity) {
	m.index = 0
	e.Heading = m.table.Step(0).Angle
}

// Apply runs a movement action against e, consulting probe for collisions
func (m *Machine) Apply(action core.Action, e *core.Entity, probe Probe) Result {
	switch action {
	case core.ActionAdvance:
		return m.advance(e, probe)
	case core.ActionReverse:
		return m.rotate(e, m.table.Len()/2, probe)
	case core.ActionTurnLeft:
		return m.rotate(e, -1, probe)
	case core.ActionTurnRight:
		return m.rotate(e, 1, probe)
	default:
		return Result{Outcome: OutcomeIgnored}
	}
}

func (m *Machine) advance(e *core.Entity, probe Probe) Result {
	step := m.table.Step(m.index)
	prev := e.Position
	next := vmath.Vec3{X: prev.X + step.DX, Y: prev.Y, Z: prev.Z + step.DZ}

	if !m.bounds.Contains(next) {
		return Result{Outcome: OutcomeOutOfBounds}
	}

	if probe != nil && probe(next) {
		return Result{Outcome: OutcomeCollided}
	}
	e.Position = next
	return Result{Outcome: OutcomeCommitted, Moved: true}
}

// rotate changes the heading index by delta, translating nothing
func (m *Machine) rotate(e *core.Entity, delta int, probe Probe) Result {
	prevIndex, prevHeading := m.index, e.Heading

	m.index = m.table.Wrap(m.index + delta)
	e.Heading = m.table.Step(m.index).Angle

	if probe != nil && probe(e.Position) {
		m.index, e.Heading = prevIndex, prevHeading
		return Result{Outcome: OutcomeCollided}
	}
	return Result{Outcome: OutcomeCommitted}
}
