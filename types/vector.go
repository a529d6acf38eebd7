package types

import "math"

// Vector3 is a three-dimensional cartesian vector.
//
// Hit positions, track states and cluster directions are all expressed as
// Vector3 values in the detector coordinate frame (millimetres).
type Vector3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add returns the component-wise sum v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns the component-wise difference v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v multiplied by the scalar s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the scalar product v . w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector product v x w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Magnitude returns the euclidean length of v.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// MagnitudeSquared returns the squared euclidean length of v.
func (v Vector3) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Unit returns v scaled to unit length. The zero vector is returned
// unchanged; callers that require a direction must check for it.
func (v Vector3) Unit() Vector3 {
	mag := v.Magnitude()
	if mag == 0 {
		return v
	}

	return v.Scale(1 / mag)
}
