package geom

// Transform is a rigid transform: an orthonormal rotation (stored as its
// three basis columns) plus a translation. Right/Heading/Up mirror the
// turtle's own frame so a turtle pose converts to a Transform directly.
type Transform struct {
	Right   Vec3
	Heading Vec3
	Up      Vec3
	Pos     Vec3
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{
		Right:   Vec3{1, 0, 0},
		Heading: Vec3{0, 1, 0},
		Up:      Vec3{0, 0, 1},
	}
}

func (t Transform) rotate(v Vec3) Vec3 {
	return t.Right.Scale(v.X).Add(t.Heading.Scale(v.Y)).Add(t.Up.Scale(v.Z))
}

// ApplyPoint maps a point from this transform's local frame into the space
// the transform is relative to.
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	return t.Pos.Add(t.rotate(p))
}

// ApplyDirection maps a direction (ignoring translation).
func (t Transform) ApplyDirection(d Vec3) Vec3 {
	return t.rotate(d)
}

// Compose returns the transform equivalent to applying other first, then t:
// for a point p, t.Compose(other).ApplyPoint(p) == t.ApplyPoint(other.ApplyPoint(p)).
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Right:   t.rotate(other.Right),
		Heading: t.rotate(other.Heading),
		Up:      t.rotate(other.Up),
		Pos:     t.ApplyPoint(other.Pos),
	}
}

// Inverse returns the rigid inverse: since the rotation is orthonormal its
// inverse is its transpose, so no general matrix inversion is needed.
func (t Transform) Inverse() Transform {
	inv := Transform{
		Right:   Vec3{t.Right.X, t.Heading.X, t.Up.X},
		Heading: Vec3{t.Right.Y, t.Heading.Y, t.Up.Y},
		Up:      Vec3{t.Right.Z, t.Heading.Z, t.Up.Z},
	}
	inv.Pos = inv.rotate(t.Pos).Scale(-1)
	return inv
}
