// Package geom provides the small amount of 2D vector and curve math
// the board engine needs.
package geom

import "math"

// Vec2 is a 2D point or direction in board space.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and w.
func (v Vec2) Dist(w Vec2) float64 {
	return v.Sub(w).Len()
}

// Normalized returns v scaled to unit length, or the zero vector if v
// has no length.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Angle returns the angle of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Lerp returns the linear interpolation between a and b at t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// QuadBezier evaluates the quadratic bezier defined by p0, p1, p2 at t.
func QuadBezier(p0, p1, p2 Vec2, t float64) Vec2 {
	u := 1 - t
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}

// QuadBezierTangent returns the (unnormalized) derivative of the
// quadratic bezier at t, pointing along the direction of travel.
func QuadBezierTangent(p0, p1, p2 Vec2, t float64) Vec2 {
	return p1.Sub(p0).Scale(2 * (1 - t)).Add(p2.Sub(p1).Scale(2 * t))
}

// RotateToward turns the direction vector from toward to, moving at most
// maxRad radians, and returns the new unit direction. A zero target
// leaves from unchanged.
func RotateToward(from, to Vec2, maxRad float64) Vec2 {
	if to.Len() == 0 {
		return from
	}
	if from.Len() == 0 {
		return to.Normalized()
	}
	a := from.Angle()
	b := to.Angle()
	diff := math.Atan2(math.Sin(b-a), math.Cos(b-a))
	if math.Abs(diff) <= maxRad {
		return to.Normalized()
	}
	if diff < 0 {
		maxRad = -maxRad
	}
	a += maxRad
	return Vec2{math.Cos(a), math.Sin(a)}
}
