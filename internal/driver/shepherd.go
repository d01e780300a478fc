package driver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/geom"
	"github.com/coopsim/coopsim/internal/world"
)

const (
	// pushOffset is how far behind the object the shepherd lines up,
	// on the side opposite the goal.
	pushOffset = 35.0
	// pushThrough aims slightly past the object center toward the goal,
	// so the agent keeps driving into the contact.
	pushThrough = 20.0
	// lineUpSlack is how close to the line-up point counts as in position.
	lineUpSlack = 15.0
)

// Shepherd pushes a named object into a named goal zone. Each tick it
// either walks to the line-up point behind the object or drives through the
// object toward the goal; once the object's center is inside the goal it
// stands still. Unknown object or goal names degrade to standing still.
type Shepherd struct {
	Object string
	Goal   string
}

// NewShepherd creates a shepherd for the given object and goal.
func NewShepherd(object, goal string) *Shepherd {
	return &Shepherd{Object: object, Goal: goal}
}

func (*Shepherd) Name() string { return "shepherd" }

func (s *Shepherd) Compute(snap world.Snapshot, self world.AgentState) r2.Vec {
	obj, ok := snap.Object(s.Object)
	if !ok {
		return r2.Vec{}
	}
	goal, ok := snap.Goal(s.Goal)
	if !ok {
		return r2.Vec{}
	}
	if obj.Goal == goal.Name {
		return r2.Vec{}
	}

	// Direction the object still has to travel.
	toGoal := geom.Normalize(r2.Sub(goal.Center, obj.Pos), 1e-6, r2.Vec{X: 1})

	// Line up behind the object relative to the goal, then push through.
	lineUp := r2.Sub(obj.Pos, r2.Scale(pushOffset, toGoal))
	if geom.Dist(self.Pos, lineUp) > lineUpSlack && !s.behindObject(self.Pos, obj.Pos, toGoal) {
		return seek(self.Pos, lineUp, defaultArrival)
	}

	through := r2.Add(obj.Pos, r2.Scale(pushThrough, toGoal))
	return seek(self.Pos, through, 1)
}

// behindObject reports whether the agent already sits on the far side of
// the object from the goal, close enough to push.
func (s *Shepherd) behindObject(agent, obj r2.Vec, toGoal r2.Vec) bool {
	rel := r2.Sub(agent, obj)
	if r2.Norm(rel) > pushOffset*1.5 {
		return false
	}
	return r2.Dot(rel, toGoal) < 0
}
