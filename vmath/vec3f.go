package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is an immutable float64 3D vector in world units
// Y is up, the ground plane is (X, Z)
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// FromGL converts an mgl64 vector
func FromGL(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// GL converts to an mgl64 vector for matrix work
func (v Vec3) GL() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div divides every component by s, s == 0 yields Inf/NaN components
func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.GL().Dot(o.GL())
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return FromGL(v.GL().Cross(o.GL()))
}

func (v Vec3) Len() float64 {
	return v.GL().Len()
}

// IsZero reports a zero-length vector, Unit must not be called on it
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Unit returns v scaled to length 1
// Zero-length input is undefined: components come back as NaN, guard with IsZero
func (v Vec3) Unit() Vec3 {
	return v.Div(v.Len())
}

// Dist is the 3D Euclidean distance between two points
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// DistXZ is the horizontal distance, ignoring height
func DistXZ(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// HeadingDir returns the forward unit vector on the ground plane for a heading in degrees
// Heading 0 faces +Z, positive angles turn toward +X
func HeadingDir(deg float64) Vec3 {
	rad := mgl64.DegToRad(deg)
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}

// WrapDegrees folds an angle into [0, 360)
func WrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
