// Package geom provides the small 2D helpers shared by the shape tables,
// the world engine and the renderers.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp bounds v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVec clamps each axis of v independently.
func ClampVec(v, lo, hi r2.Vec) r2.Vec {
	return r2.Vec{
		X: Clamp(v.X, lo.X, hi.X),
		Y: Clamp(v.Y, lo.Y, hi.Y),
	}
}

// Normalize returns the unit vector of v. When |v| < eps the fallback
// direction is returned instead, so callers never divide by zero.
func Normalize(v r2.Vec, eps float64, fallback r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < eps {
		return fallback
	}
	return r2.Scale(1/n, v)
}

// Rotate rotates v counterclockwise by angle radians about the origin.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	return r2.Rotate(v, angle, r2.Vec{})
}

// WrapAngle normalizes an angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, q))
}
