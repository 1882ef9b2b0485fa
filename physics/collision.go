package physics

import (
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/vmath"
)

// Overlaps is the distance-based contact test between two spheres
// margin shrinks the contact distance, a positive margin forgives grazing contact
func Overlaps(p vmath.Vec3, rp float64, q vmath.Vec3, rq float64, margin float64) bool {
	return vmath.Dist(p, q) < rp+rq-margin
}

// EntityOverlaps applies Overlaps to a probe position against an entity
func EntityOverlaps(pos vmath.Vec3, radius float64, e *core.Entity, margin float64) bool {
	return Overlaps(pos, radius, e.Position, e.CollisionRadius, margin)
}
