package physics

import (
	"fmt"
	"math"
)

// Step is one heading table entry: unit ground-plane step and absolute heading in degrees
type Step struct {
	DX, DZ float64
	Angle  float64
}

// HeadingTable maps a discrete heading index to its step and angle
// Index 0 faces +Z, increasing index turns clockwise seen from above
type HeadingTable struct {
	steps []Step
}

var rh = math.Sqrt(0.5)

var (
	table4 = []Step{
		{DX: 0, DZ: 1, Angle: 0},
		{DX: -1, DZ: 0, Angle: 270},
		{DX: 0, DZ: -1, Angle: 180},
		{DX: 1, DZ: 0, Angle: 90},
	}
	table8 = []Step{
		{DX: 0, DZ: 1, Angle: 0},
		{DX: -rh, DZ: rh, Angle: 315},
		{DX: -1, DZ: 0, Angle: 270},
		{DX: -rh, DZ: -rh, Angle: 225},
		{DX: 0, DZ: -1, Angle: 180},
		{DX: rh, DZ: -rh, Angle: 135},
		{DX: 1, DZ: 0, Angle: 90},
		{DX: rh, DZ: rh, Angle: 45},
	}
)

// NewHeadingTable returns the 4- or 8-direction table
func NewHeadingTable(n int) (*HeadingTable, error) {
	switch n {
	case 4:
		return &HeadingTable{steps: table4}, nil
	case 8:
		return &HeadingTable{steps: table8}, nil
	default:
		return nil, fmt.Errorf("heading table size %d: want 4 or 8", n)
	}
}

// Len is the number of discrete headings
func (t *HeadingTable) Len() int {
	return len(t.steps)
}

// Step returns the entry for index, taken modulo the table length
func (t *HeadingTable) Step(index int) Step {
	return t.steps[t.Wrap(index)]
}

// Wrap folds any integer into [0, Len)
func (t *HeadingTable) Wrap(index int) int {
	n := len(t.steps)
	return ((index % n) + n) % n
}

// TurnAngle is the heading change of a single turn: 45 for 8 headings, 90 for 4
func (t *HeadingTable) TurnAngle() float64 {
	return 360 / float64(len(t.steps))
}
