package world

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/shape"
)

// AgentState is a read-only agent snapshot.
type AgentState struct {
	Name   string
	Kind   AgentKind
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
}

// Moving reports whether the agent has meaningful velocity.
func (s AgentState) Moving() bool {
	return r2.Norm(s.Vel) > 0.1
}

// ObjectState is a read-only object snapshot. Goal names the zone currently
// containing the object's center, empty when in open play.
type ObjectState struct {
	Name string
	Kind shape.Kind
	Size float64
	Pos  r2.Vec
	Rot  float64
	Vel  r2.Vec
	Goal string
}

// GoalState is a read-only goal zone snapshot.
type GoalState struct {
	Name   string
	Center r2.Vec
	Width  float64
	Height float64
	Owner  Owner
	Inside []string
}

// Snapshot is a point-in-time copy of the full world state, safe to hand to
// renderers and observation layers.
type Snapshot struct {
	Tick    int
	Elapsed float64
	Width   float64
	Height  float64

	Agents  []AgentState
	Objects []ObjectState
	Goals   []GoalState

	HumanScore int
	AIScore    int
}

// Agent returns the snapshot of the agent with the given kind.
func (s Snapshot) Agent(kind AgentKind) (AgentState, bool) {
	for _, a := range s.Agents {
		if a.Kind == kind {
			return a, true
		}
	}
	return AgentState{}, false
}

// Object returns the snapshot of the named object.
func (s Snapshot) Object(name string) (ObjectState, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return ObjectState{}, false
}

// Goal returns the snapshot of the named goal zone.
func (s Snapshot) Goal(name string) (GoalState, bool) {
	for _, g := range s.Goals {
		if g.Name == name {
			return g, true
		}
	}
	return GoalState{}, false
}

// Describe renders the snapshot as a natural-language world description for
// the external decision layer.
func (s Snapshot) Describe() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== World State (tick %d, %.1fs) ===\n", s.Tick, s.Elapsed)
	fmt.Fprintf(&b, "Human Score: %d | AI Score: %d\n", s.HumanScore, s.AIScore)

	for _, a := range s.Agents {
		moving := "No"
		if a.Moving() {
			moving = "Yes"
		}
		label := "Human"
		if a.Kind == AI {
			label = "AI"
		}
		fmt.Fprintf(&b, "\n%s Agent '%s':\n", label, a.Name)
		fmt.Fprintf(&b, "  Position: (%.0f, %.0f)\n", a.Pos.X, a.Pos.Y)
		fmt.Fprintf(&b, "  Moving: %s\n", moving)
	}

	if len(s.Objects) > 0 {
		b.WriteString("\nObjects in play:\n")
		for _, o := range s.Objects {
			status := "in play"
			if o.Goal != "" {
				status = "in " + o.Goal
			}
			fmt.Fprintf(&b, "  - %s (%s): (%.0f, %.0f) - %s\n",
				o.Name, o.Kind, o.Pos.X, o.Pos.Y, status)
		}
	}

	if len(s.Goals) > 0 {
		b.WriteString("\nGoal Zones:\n")
		for _, g := range s.Goals {
			fmt.Fprintf(&b, "  - %s [%s]: (%.0f, %.0f)\n",
				g.Name, g.Owner, g.Center.X, g.Center.Y)
			if len(g.Inside) > 0 {
				fmt.Fprintf(&b, "    Contains: %s\n", strings.Join(g.Inside, ", "))
			}
		}
	}

	return b.String()
}
