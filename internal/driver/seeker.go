package driver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/world"
)

const defaultArrival = 10.0

// Seeker moves straight toward a fixed target and stops on arrival.
type Seeker struct {
	Target  r2.Vec
	Arrival float64
}

// NewSeeker creates a seeker with the default arrival threshold.
func NewSeeker(target r2.Vec) *Seeker {
	return &Seeker{Target: target, Arrival: defaultArrival}
}

func (*Seeker) Name() string { return "seeker" }

func (s *Seeker) Compute(_ world.Snapshot, self world.AgentState) r2.Vec {
	arrival := s.Arrival
	if arrival <= 0 {
		arrival = defaultArrival
	}
	return seek(self.Pos, s.Target, arrival)
}

// Patrol cycles through a list of waypoints, advancing whenever the agent
// arrives at the current one.
type Patrol struct {
	Waypoints []r2.Vec
	Arrival   float64

	current int
}

// NewPatrol creates a patrol over the given waypoints.
func NewPatrol(waypoints ...r2.Vec) *Patrol {
	return &Patrol{Waypoints: waypoints, Arrival: defaultArrival}
}

func (*Patrol) Name() string { return "patrol" }

func (p *Patrol) Compute(_ world.Snapshot, self world.AgentState) r2.Vec {
	if len(p.Waypoints) == 0 {
		return r2.Vec{}
	}
	arrival := p.Arrival
	if arrival <= 0 {
		arrival = defaultArrival
	}

	target := p.Waypoints[p.current%len(p.Waypoints)]
	intent := seek(self.Pos, target, arrival)
	if intent == (r2.Vec{}) {
		p.current++
		target = p.Waypoints[p.current%len(p.Waypoints)]
		intent = seek(self.Pos, target, arrival)
	}
	return intent
}
