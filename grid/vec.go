package grid

import "math"

// Vec3 is a position or direction in world space. Cell centers are
// unit-scale (on or near the unit sphere).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(k float64) Vec3 { return Vec3{a.X * k, a.Y * k, a.Z * k} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) LengthSq() float64 { return a.Dot(a) }

func (a Vec3) Length() float64 { return math.Sqrt(a.LengthSq()) }

// Normalize returns the unit vector in a's direction, or the zero vector
// if a has no length.
func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// DistSq returns the squared chord distance between two positions.
func DistSq(a, b Vec3) float64 { return a.Sub(b).LengthSq() }

// Dist returns the chord distance between two positions.
func Dist(a, b Vec3) float64 { return math.Sqrt(DistSq(a, b)) }
