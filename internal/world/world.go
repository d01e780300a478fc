// Package world implements the compliant-contact physics core: circular
// agents push rigid composite shapes into goal zones over a deterministic
// fixed-order tick. The engine performs no I/O, takes no locks and never
// errors out of a tick; callers that share a World across goroutines must
// serialize access themselves.
package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/geom"
)

// Params tunes a World. Zero values are filled in by New from
// DefaultParams.
type Params struct {
	Width  float64
	Height float64

	// PushStrength is the base velocity an agent contact imparts.
	PushStrength float64
	// Separation is the fraction of agent-object overlap corrected by
	// direct displacement each tick.
	Separation float64
	// GoalPoints is awarded when an object first enters an accepting zone.
	GoalPoints int
}

// DefaultParams returns the standard arena tuning.
func DefaultParams() Params {
	return Params{
		Width:        1000,
		Height:       700,
		PushStrength: 2.5,
		Separation:   0.5,
		GoalPoints:   100,
	}
}

const contactEps = 0.01

// World owns the full simulation state. All per-session accumulators
// (scores, the scored-once set) are instance fields, so independent worlds
// can run side by side in one process.
type World struct {
	params Params

	tick    int
	elapsed float64

	// agents is kept in fixed order (human first) so collision
	// processing is deterministic.
	agents  []*Agent
	objects []*Object
	goals   []*GoalZone

	humanScore int
	aiScore    int
	scored     map[string]struct{}
}

// New creates a world with both agents at their default start poses.
func New(params Params) *World {
	def := DefaultParams()
	if params.Width <= 0 {
		params.Width = def.Width
	}
	if params.Height <= 0 {
		params.Height = def.Height
	}
	if params.PushStrength <= 0 {
		params.PushStrength = def.PushStrength
	}
	if params.Separation <= 0 {
		params.Separation = def.Separation
	}
	if params.GoalPoints <= 0 {
		params.GoalPoints = def.GoalPoints
	}

	w := &World{
		params: params,
		scored: make(map[string]struct{}),
	}
	w.agents = []*Agent{
		NewAgent("Human", Human, w.startPos(Human)),
		NewAgent("AI Assistant", AI, w.startPos(AI)),
	}
	return w
}

func (w *World) startPos(kind AgentKind) r2.Vec {
	x := w.params.Width * 0.15
	if kind == AI {
		x = w.params.Width * 0.85
	}
	return r2.Vec{X: x, Y: w.params.Height * 0.5}
}

func (w *World) bounds() r2.Vec {
	return r2.Vec{X: w.params.Width, Y: w.params.Height}
}

// Params returns the world tuning.
func (w *World) Params() Params { return w.params }

// Tick returns the tick counter.
func (w *World) Tick() int { return w.tick }

// Elapsed returns the accumulated simulated time in seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// Scores returns the human and AI scores.
func (w *World) Scores() (human, ai int) { return w.humanScore, w.aiScore }

// Agent returns the agent of the given kind.
func (w *World) Agent(kind AgentKind) *Agent {
	for _, a := range w.agents {
		if a.Kind == kind {
			return a
		}
	}
	return nil
}

// Human returns the human agent.
func (w *World) Human() *Agent { return w.Agent(Human) }

// AI returns the AI agent.
func (w *World) AI() *Agent { return w.Agent(AI) }

// AddObject adds a pushable object. A second object with the same name
// replaces the first; uniqueness is the setup layer's responsibility.
func (w *World) AddObject(o *Object) {
	for i, existing := range w.objects {
		if existing.Name == o.Name {
			w.objects[i] = o
			return
		}
	}
	w.objects = append(w.objects, o)
}

// AddGoal adds a goal zone.
func (w *World) AddGoal(g *GoalZone) {
	w.goals = append(w.goals, g)
}

// ObjectByName returns the named object, or nil when unknown.
func (w *World) ObjectByName(name string) *Object {
	for _, o := range w.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// GoalByName returns the named goal zone, or nil when unknown.
func (w *World) GoalByName(name string) *GoalZone {
	for _, g := range w.goals {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Update advances the simulation by exactly one tick. The step order is
// fixed: agents integrate, each agent pushes objects in turn, object pairs
// separate, objects integrate, then goal membership and scoring update.
func (w *World) Update(dt float64) {
	w.tick++
	w.elapsed += dt

	bounds := w.bounds()
	for _, a := range w.agents {
		a.update(dt, bounds)
	}

	for _, a := range w.agents {
		w.pushObjects(a)
	}

	w.separateObjects()

	for _, o := range w.objects {
		o.update(bounds)
	}

	w.checkGoals()
}

// pushObjects resolves contacts between one agent and every object.
func (w *World) pushObjects(a *Agent) {
	for _, o := range w.objects {
		contact, dist := o.ClosestSurfacePoint(a.Pos)
		if dist >= a.Radius {
			continue
		}

		var dir r2.Vec
		if dist > contactEps {
			dir = r2.Scale(1/dist, r2.Sub(contact, a.Pos))
		} else {
			// Agent center is on the surface: push away from the
			// object center, falling back to +x when coincident.
			dir = geom.Normalize(r2.Sub(a.Pos, o.Pos), contactEps, r2.Vec{X: 1})
		}

		strength := w.params.PushStrength
		if r2.Norm(a.Vel) > 0.1 {
			// Harder shove when the agent is actively moving into
			// the object.
			if dot := r2.Dot(a.Vel, dir); dot > 0 {
				strength *= 1 + dot*0.3
			}
		}

		o.ApplyPush(r2.Scale(strength, dir), contact)

		// Directly correct part of the interpenetration.
		if overlap := a.Radius - dist; overlap > 0 {
			o.Pos = r2.Add(o.Pos, r2.Scale(overlap*w.params.Separation, dir))
		}
	}
}

// objectOverlapTolerance loosens the bounding-circle test: the true shapes
// are not circles, so requiring full circle overlap would separate pieces
// that are nowhere near touching.
const objectOverlapTolerance = 0.8

// separateObjects pushes overlapping object pairs apart symmetrically.
func (w *World) separateObjects() {
	for i, a := range w.objects {
		for _, b := range w.objects[i+1:] {
			delta := r2.Sub(b.Pos, a.Pos)
			dist := r2.Norm(delta)
			minDist := (a.BoundingRadius() + b.BoundingRadius()) * objectOverlapTolerance
			if dist >= minDist {
				continue
			}

			normal := geom.Normalize(delta, contactEps, r2.Vec{X: 1})
			sep := (minDist - dist) * 0.3
			a.Pos = r2.Sub(a.Pos, r2.Scale(sep, normal))
			b.Pos = r2.Add(b.Pos, r2.Scale(sep, normal))
		}
	}
}

// checkGoals recomputes goal membership and credits first entries. An
// object scores at most once per session, no matter how many zones it
// visits afterwards.
func (w *World) checkGoals() {
	for _, g := range w.goals {
		for _, o := range w.objects {
			wasInside := g.Contains(o.Name)
			isInside := g.CheckObject(o)

			if !isInside || wasInside {
				continue
			}
			if _, done := w.scored[o.Name]; done {
				continue
			}
			if !g.Accepts(o.Kind) {
				continue
			}

			w.scored[o.Name] = struct{}{}
			points := w.params.GoalPoints
			switch g.Owner {
			case OwnedByHuman:
				w.humanScore += points
			case OwnedByAI:
				w.aiScore += points
			default:
				// Shared zone: split evenly, remainder dropped.
				w.humanScore += points / 2
				w.aiScore += points / 2
			}
		}
	}
}

// Reset restores the world to its initial state: agents back at their start
// poses and stopped, objects, goals, scores and the scored set cleared,
// tick and elapsed time zeroed.
func (w *World) Reset() {
	for _, a := range w.agents {
		a.Pos = w.startPos(a.Kind)
		a.Stop()
	}

	w.objects = nil
	w.goals = nil

	w.humanScore = 0
	w.aiScore = 0
	w.scored = make(map[string]struct{})

	w.tick = 0
	w.elapsed = 0
}

// Snapshot returns a read-only copy of the world state. It never mutates
// live state and is the only interface rendering and observation layers
// consume.
func (w *World) Snapshot() Snapshot {
	objectGoals := make(map[string]string)
	for _, g := range w.goals {
		for _, name := range g.Inside() {
			objectGoals[name] = g.Name
		}
	}

	snap := Snapshot{
		Tick:       w.tick,
		Elapsed:    w.elapsed,
		Width:      w.params.Width,
		Height:     w.params.Height,
		HumanScore: w.humanScore,
		AIScore:    w.aiScore,
	}
	for _, a := range w.agents {
		snap.Agents = append(snap.Agents, a.State())
	}
	for _, o := range w.objects {
		snap.Objects = append(snap.Objects, o.State(objectGoals[o.Name]))
	}
	for _, g := range w.goals {
		snap.Goals = append(snap.Goals, GoalState{
			Name:   g.Name,
			Center: g.Center,
			Width:  g.Width,
			Height: g.Height,
			Owner:  g.Owner,
			Inside: g.Inside(),
		})
	}
	return snap
}

// Dist returns the distance from an agent's center to an object's surface.
// Frontends use it to pick the nearest piece worth chasing; nil arguments
// give +Inf so callers can take the minimum without guarding.
func Dist(a *Agent, o *Object) float64 {
	if a == nil || o == nil {
		return math.Inf(1)
	}
	_, d := o.ClosestSurfacePoint(a.Pos)
	return d
}
