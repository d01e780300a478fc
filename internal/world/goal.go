package world

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/shape"
)

// Owner says which player a goal zone credits.
type Owner int

const (
	Shared Owner = iota
	OwnedByHuman
	OwnedByAI
)

func (o Owner) String() string {
	switch o {
	case OwnedByHuman:
		return "human"
	case OwnedByAI:
		return "ai"
	}
	return "shared"
}

// MarshalText implements encoding.TextMarshaler for config files.
func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string means
// shared, matching unassigned zones in scenario files.
func (o *Owner) UnmarshalText(text []byte) error {
	switch string(text) {
	case "human":
		*o = OwnedByHuman
	case "ai":
		*o = OwnedByAI
	default:
		*o = Shared
	}
	return nil
}

const (
	// DefaultGoalSize is the side length of a standard goal zone.
	DefaultGoalSize = 100.0
)

// GoalZone is an axis-aligned rectangular scoring region. Zones never
// rotate. Membership is tracked by object name and recomputed every tick.
type GoalZone struct {
	Name   string
	Center r2.Vec
	Width  float64
	Height float64
	Owner  Owner

	// AcceptShapes restricts which shape kinds score here. Empty accepts
	// every kind.
	AcceptShapes []shape.Kind

	inside map[string]struct{}
}

// NewGoalZone creates a goal zone of the given extent.
func NewGoalZone(name string, center r2.Vec, width, height float64, owner Owner) *GoalZone {
	return &GoalZone{
		Name:   name,
		Center: center,
		Width:  width,
		Height: height,
		Owner:  owner,
		inside: make(map[string]struct{}),
	}
}

// ContainsPoint reports whether p is inside the zone rectangle.
func (g *GoalZone) ContainsPoint(p r2.Vec) bool {
	return p.X >= g.Center.X-g.Width/2 && p.X <= g.Center.X+g.Width/2 &&
		p.Y >= g.Center.Y-g.Height/2 && p.Y <= g.Center.Y+g.Height/2
}

// CheckObject tests the object's center against the zone, updates the
// membership set and returns the result. Center-only containment keeps the
// scoring check O(1) per object.
func (g *GoalZone) CheckObject(o *Object) bool {
	inside := g.ContainsPoint(o.Pos)
	if inside {
		g.inside[o.Name] = struct{}{}
	} else {
		delete(g.inside, o.Name)
	}
	return inside
}

// Accepts reports whether the zone's shape filter admits the kind.
func (g *GoalZone) Accepts(kind shape.Kind) bool {
	if len(g.AcceptShapes) == 0 {
		return true
	}
	for _, k := range g.AcceptShapes {
		if k == kind {
			return true
		}
	}
	return false
}

// Contains reports whether the named object was inside the zone at the last
// check.
func (g *GoalZone) Contains(name string) bool {
	_, ok := g.inside[name]
	return ok
}

// Inside returns the names of the contained objects in sorted order.
func (g *GoalZone) Inside() []string {
	names := make([]string, 0, len(g.inside))
	for name := range g.inside {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
