// Package metrics provides run statistics accumulated from world snapshots.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/world"
)

// AgentTravel sums the path length of one agent over the run.
type AgentTravel struct {
	kind  world.AgentKind
	last  r2.Vec
	seen  bool
	total float64
}

// NewAgentTravel tracks the given agent.
func NewAgentTravel(kind world.AgentKind) *AgentTravel {
	return &AgentTravel{kind: kind}
}

func (m *AgentTravel) Name() string {
	return m.kind.String() + "_travel"
}

func (m *AgentTravel) Observe(snap world.Snapshot) {
	a, ok := snap.Agent(m.kind)
	if !ok {
		return
	}
	if m.seen {
		m.total += r2.Norm(r2.Sub(a.Pos, m.last))
	}
	m.last = a.Pos
	m.seen = true
}

func (m *AgentTravel) Value() float64 { return m.total }

func (m *AgentTravel) Reset() {
	m.total = 0
	m.seen = false
}

// ObjectTravel sums the displacement of every object over the run. High
// values mean lots of pushing (or shoving matches).
type ObjectTravel struct {
	last  map[string]r2.Vec
	total float64
}

func NewObjectTravel() *ObjectTravel {
	return &ObjectTravel{last: make(map[string]r2.Vec)}
}

func (m *ObjectTravel) Name() string { return "object_travel" }

func (m *ObjectTravel) Observe(snap world.Snapshot) {
	for _, o := range snap.Objects {
		if prev, ok := m.last[o.Name]; ok {
			m.total += r2.Norm(r2.Sub(o.Pos, prev))
		}
		m.last[o.Name] = o.Pos
	}
}

func (m *ObjectTravel) Value() float64 { return m.total }

func (m *ObjectTravel) Reset() {
	m.total = 0
	m.last = make(map[string]r2.Vec)
}

// TimeToFirstScore records the simulated time when any points were first
// awarded. NaN when nothing scored.
type TimeToFirstScore struct {
	at     float64
	scored bool
}

func NewTimeToFirstScore() *TimeToFirstScore {
	return &TimeToFirstScore{at: math.NaN()}
}

func (m *TimeToFirstScore) Name() string { return "time_to_first_score" }

func (m *TimeToFirstScore) Observe(snap world.Snapshot) {
	if m.scored {
		return
	}
	if snap.HumanScore+snap.AIScore > 0 {
		m.at = snap.Elapsed
		m.scored = true
	}
}

func (m *TimeToFirstScore) Value() float64 { return m.at }

func (m *TimeToFirstScore) Reset() {
	m.at = math.NaN()
	m.scored = false
}

// FinalScore reports the combined score at the end of the run.
type FinalScore struct {
	human int
	ai    int
}

func NewFinalScore() *FinalScore { return &FinalScore{} }

func (m *FinalScore) Name() string { return "final_score" }

func (m *FinalScore) Observe(snap world.Snapshot) {
	m.human = snap.HumanScore
	m.ai = snap.AIScore
}

func (m *FinalScore) Value() float64 { return float64(m.human + m.ai) }

func (m *FinalScore) Reset() {
	m.human = 0
	m.ai = 0
}
