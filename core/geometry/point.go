// Package geometry shows two construction styles for the same value: plain
// constructor functions and a factory object grouping them.
package geometry

import (
	"fmt"
	"math"
)

// Point is a position in the cartesian plane.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("x: %s, y: %s", formatCoord(p.X), formatCoord(p.Y))
}

// NewCartesianPoint builds a point from its coordinates.
func NewCartesianPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NewPolarPoint builds a point from a distance to the origin and an angle in
// radians.
func NewPolarPoint(rho, theta float64) Point {
	return Point{X: rho * math.Cos(theta), Y: rho * math.Sin(theta)}
}

// PointFactory groups the point constructors behind a single value that can
// be passed around or replaced.
type PointFactory struct{}

// NewCartesianPoint builds a point from its coordinates.
func (PointFactory) NewCartesianPoint(x, y float64) Point { return NewCartesianPoint(x, y) }

// NewPolarPoint builds a point from polar coordinates.
func (PointFactory) NewPolarPoint(rho, theta float64) Point { return NewPolarPoint(rho, theta) }

// Factory is the shared PointFactory.
var Factory PointFactory

// Build dispatches on a coordinate system name: "cartesian" or "polar".
func (f PointFactory) Build(system string, a, b float64) (Point, error) {
	switch system {
	case "cartesian":
		return f.NewCartesianPoint(a, b), nil
	case "polar":
		return f.NewPolarPoint(a, b), nil
	default:
		return Point{}, fmt.Errorf("unknown coordinate system %q", system)
	}
}

// formatCoord trims floating point noise such as 6.123233995736766e-17.
func formatCoord(v float64) string {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		r = 0 // drop negative zero
	}
	return fmt.Sprintf("%g", r)
}
