package vmath

// Rect is a closed axis-aligned rectangle on the ground plane (X, Z)
type Rect struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

// R builds a Rect from x and z ranges
func R(minX, maxX, minZ, maxZ float64) Rect {
	return Rect{MinX: minX, MaxX: maxX, MinZ: minZ, MaxZ: maxZ}
}

// Contains tests the horizontal projection of p, bounds inclusive
func (r Rect) Contains(p Vec3) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// ContainsOpen is Contains with the boundary excluded
func (r Rect) ContainsOpen(p Vec3) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Z > r.MinZ && p.Z < r.MaxZ
}

// Valid reports non-inverted bounds
func (r Rect) Valid() bool {
	return r.MinX <= r.MaxX && r.MinZ <= r.MaxZ
}

func (r Rect) Width() float64 { return r.MaxX - r.MinX }
func (r Rect) Depth() float64 { return r.MaxZ - r.MinZ }

// Center returns the rectangle midpoint at height 0
func (r Rect) Center() Vec3 {
	return Vec3{X: (r.MinX + r.MaxX) / 2, Z: (r.MinZ + r.MaxZ) / 2}
}
