// Package driver contains per-tick movement policies for agents. Drivers
// are the in-process stand-in for the external decision layer: they read a
// world snapshot and emit a movement intent, translating high-level goals
// like "push that object over there" into one target per tick. The engine
// itself never sees a driver.
package driver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/world"
)

// Driver computes the movement intent for one agent each tick. A zero
// vector means stand still.
type Driver interface {
	Name() string
	Compute(snap world.Snapshot, self world.AgentState) r2.Vec
}

// Idle never moves.
type Idle struct{}

func NewIdle() *Idle { return &Idle{} }

func (*Idle) Name() string { return "idle" }

func (*Idle) Compute(world.Snapshot, world.AgentState) r2.Vec {
	return r2.Vec{}
}

func seek(from, to r2.Vec, arrival float64) r2.Vec {
	delta := r2.Sub(to, from)
	dist := r2.Norm(delta)
	if dist <= arrival {
		return r2.Vec{}
	}
	return r2.Scale(1/dist, delta)
}
