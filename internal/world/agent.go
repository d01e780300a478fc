package world

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/geom"
)

// AgentKind distinguishes the two players.
type AgentKind int

const (
	Human AgentKind = iota
	AI
)

func (k AgentKind) String() string {
	if k == AI {
		return "ai"
	}
	return "human"
}

const (
	// DefaultAgentRadius is the collision radius of both agents.
	DefaultAgentRadius = 20.0
	// DefaultAgentSpeed is the maximum agent speed in units per frame.
	DefaultAgentSpeed = 5.0

	// frameRate normalizes dt-scaled agent motion so that speed constants
	// are expressed per 60Hz frame.
	frameRate = 60.0

	// DefaultArrival is the distance at which MoveTowards reports arrival.
	DefaultArrival = 10.0
)

// Agent is a circular player avatar driven by a normalized movement intent.
// Agents are owned by the World and mutated only through their own methods
// and the world tick.
type Agent struct {
	Name     string
	Kind     AgentKind
	Pos      r2.Vec
	Vel      r2.Vec
	Radius   float64
	MaxSpeed float64

	move r2.Vec
}

// NewAgent creates an agent at the given position with default radius and
// speed.
func NewAgent(name string, kind AgentKind, pos r2.Vec) *Agent {
	return &Agent{
		Name:     name,
		Kind:     kind,
		Pos:      pos,
		Radius:   DefaultAgentRadius,
		MaxSpeed: DefaultAgentSpeed,
	}
}

// SetMovement stores the movement intent. Vectors longer than one are
// normalized to unit length; shorter vectors pass through unchanged so
// callers can request partial-speed movement.
func (a *Agent) SetMovement(dx, dy float64) {
	v := r2.Vec{X: dx, Y: dy}
	if n := r2.Norm(v); n > 1 {
		v = r2.Scale(1/n, v)
	}
	a.move = v
}

// Stop zeroes both the movement intent and the current velocity.
func (a *Agent) Stop() {
	a.move = r2.Vec{}
	a.Vel = r2.Vec{}
}

// MoveTowards computes and sets a movement intent toward target. It returns
// true, and stops the agent, once the agent is within arrival distance.
// Callers drive this once per tick until it reports arrival.
func (a *Agent) MoveTowards(target r2.Vec, arrival float64) bool {
	if arrival <= 0 {
		arrival = DefaultArrival
	}
	delta := r2.Sub(target, a.Pos)
	dist := r2.Norm(delta)
	if dist <= arrival {
		a.Stop()
		return true
	}
	dir := r2.Scale(1/dist, delta)
	a.SetMovement(dir.X, dir.Y)
	return false
}

var cardinals = map[string]r2.Vec{
	"up":         {Y: -1},
	"down":       {Y: 1},
	"left":       {X: -1},
	"right":      {X: 1},
	"up_left":    {X: -0.707, Y: -0.707},
	"up_right":   {X: 0.707, Y: -0.707},
	"down_left":  {X: -0.707, Y: 0.707},
	"down_right": {X: 0.707, Y: 0.707},
}

// MoveDirection sets movement along a named cardinal direction scaled by
// magnitude in [0, 1]. Unknown directions stop the agent.
func (a *Agent) MoveDirection(direction string, magnitude float64) {
	dir, ok := cardinals[direction]
	if !ok {
		a.Stop()
		return
	}
	a.SetMovement(dir.X*magnitude, dir.Y*magnitude)
}

// update advances the agent one tick. Velocity follows the intent directly;
// position is dt-scaled and clamped per axis so the agent circle stays
// inside the world bounds.
func (a *Agent) update(dt float64, bounds r2.Vec) {
	a.Vel = r2.Scale(a.MaxSpeed, a.move)
	a.Pos = r2.Add(a.Pos, r2.Scale(dt*frameRate, a.Vel))
	a.Pos = geom.ClampVec(a.Pos,
		r2.Vec{X: a.Radius, Y: a.Radius},
		r2.Vec{X: bounds.X - a.Radius, Y: bounds.Y - a.Radius})
}

// State returns a read-only snapshot of the agent.
func (a *Agent) State() AgentState {
	return AgentState{
		Name:   a.Name,
		Kind:   a.Kind,
		Pos:    a.Pos,
		Vel:    a.Vel,
		Radius: a.Radius,
	}
}
