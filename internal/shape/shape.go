// Package shape defines the pushable shape kinds and their collision
// geometry. Every shape is a small, fixed set of axis-aligned rectangles in
// the shape's local unrotated frame; composite shapes (L, T) are two
// rectangles arranged to form the letter. The same geometry is used for
// collision queries and for rendering.
package shape

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind enumerates the supported shapes.
type Kind int

const (
	Box Kind = iota
	LShape
	TShape
)

func (k Kind) String() string {
	switch k {
	case Box:
		return "box"
	case LShape:
		return "L"
	case TShape:
		return "T"
	}
	return "box"
}

// MarshalText implements encoding.TextMarshaler for yaml/json config files.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "box":
		*k = Box
	case "L":
		*k = LShape
	case "T":
		*k = TShape
	default:
		return fmt.Errorf("unknown shape kind %q", string(text))
	}
	return nil
}

// CollisionRect is a rectangular collision primitive, offset from the
// parent shape's center. Immutable once built.
type CollisionRect struct {
	Offset r2.Vec
	Width  float64
	Height float64
}

// Rects returns the collision rectangles for a shape kind at the given base
// size, relative to the shape center. The mapping is deterministic: the same
// inputs always yield the same rectangles in the same order.
func Rects(kind Kind, size float64) []CollisionRect {
	bar := size * 0.4

	switch kind {
	case LShape:
		// Vertical bar on the left, horizontal bar along the bottom.
		return []CollisionRect{
			{Offset: r2.Vec{X: -size * 0.3, Y: -size * 0.3}, Width: bar, Height: size * 1.4},
			{Offset: r2.Vec{X: size * 0.2, Y: size * 0.4}, Width: size * 0.8, Height: bar},
		}
	case TShape:
		// Horizontal bar on top, stem down the center.
		return []CollisionRect{
			{Offset: r2.Vec{Y: -size * 0.4}, Width: size * 1.2, Height: bar},
			{Offset: r2.Vec{Y: size * 0.2}, Width: bar, Height: size * 0.8},
		}
	}
	return []CollisionRect{{Width: size, Height: size}}
}

// BoundingRadius returns a conservative broad-phase radius for the shape.
// It is always at least the true half-diagonal and is only used for cheap
// pairwise pre-filtering.
func BoundingRadius(kind Kind, size float64) float64 {
	if kind == Box {
		return size * 0.71 // sqrt(2)/2, rounded up
	}
	return size * 1.2
}
