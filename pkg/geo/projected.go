package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// XY is a point or offset in the projected (Web-Mercator) plane, in metres
type XY struct {
	X, Y float64
}

// NewXY creates a new projected point
func NewXY(x, y float64) XY {
	return XY{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v XY) Add(other XY) XY {
	return XY{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v XY) Sub(other XY) XY {
	return XY{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul multiplies the vector by a scalar
func (v XY) Mul(scalar float64) XY {
	return XY{X: v.X * scalar, Y: v.Y * scalar}
}

// Length returns the magnitude of the vector
func (v XY) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between two points
func (v XY) Distance(other XY) float64 {
	return v.Sub(other).Length()
}

// Point returns the vector as an orb point
func (v XY) Point() orb.Point {
	return orb.Point{v.X, v.Y}
}
