// Package geom provides the small amount of 3D vector and rigid-transform
// algebra the turtle interpreter and forest composer need.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point or direction in tree-root space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross uses gonum's r3 vector package rather than hand-rolled arithmetic.
func (v Vec3) Cross(o Vec3) Vec3 {
	c := r3.Cross(r3.Vec{X: v.X, Y: v.Y, Z: v.Z}, r3.Vec{X: o.X, Y: o.Y, Z: o.Z})
	return Vec3{c.X, c.Y, c.Z}
}

func (v Vec3) Length() float64 {
	return r3.Norm(r3.Vec{X: v.X, Y: v.Y, Z: v.Z})
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs, since a degenerate turtle frame
// should not abort the walk.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length < 1e-12 {
		return v
	}
	u := r3.Unit(r3.Vec{X: v.X, Y: v.Y, Z: v.Z})
	return Vec3{u.X, u.Y, u.Z}
}

// RotateAround rotates v about the given unit axis by angle radians using
// Rodrigues' rotation formula.
func RotateAround(v, axis Vec3, angle float64) Vec3 {
	axis = axis.Normalize()
	cosT := math.Cos(angle)
	sinT := math.Sin(angle)
	term1 := v.Scale(cosT)
	term2 := axis.Cross(v).Scale(sinT)
	term3 := axis.Scale(axis.Dot(v) * (1 - cosT))
	return term1.Add(term2).Add(term3)
}
