package driver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/config"
	"github.com/coopsim/coopsim/internal/world"
)

func agentAt(x, y float64) world.AgentState {
	return world.AgentState{Name: "AI Assistant", Kind: world.AI,
		Pos: r2.Vec{X: x, Y: y}, Radius: 20}
}

func TestIdle(t *testing.T) {
	d := NewIdle()
	if got := d.Compute(world.Snapshot{}, agentAt(100, 100)); got != (r2.Vec{}) {
		t.Errorf("idle should never move, got %+v", got)
	}
}

func TestSeeker(t *testing.T) {
	d := NewSeeker(r2.Vec{X: 400, Y: 100})

	intent := d.Compute(world.Snapshot{}, agentAt(100, 100))
	if math.Abs(intent.X-1) > 1e-12 || intent.Y != 0 {
		t.Errorf("expected unit intent toward +x, got %+v", intent)
	}

	if got := d.Compute(world.Snapshot{}, agentAt(395, 100)); got != (r2.Vec{}) {
		t.Errorf("within arrival distance should stand still, got %+v", got)
	}
}

func TestPatrolAdvances(t *testing.T) {
	d := NewPatrol(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 500, Y: 100})

	// Standing on the first waypoint: patrol moves on to the second.
	intent := d.Compute(world.Snapshot{}, agentAt(100, 100))
	if intent.X <= 0 {
		t.Errorf("expected intent toward second waypoint, got %+v", intent)
	}
}

func TestPatrolEmpty(t *testing.T) {
	d := NewPatrol()
	if got := d.Compute(world.Snapshot{}, agentAt(100, 100)); got != (r2.Vec{}) {
		t.Errorf("empty patrol should stand still, got %+v", got)
	}
}

func TestShepherdLinesUpBehindObject(t *testing.T) {
	snap := world.Snapshot{
		Objects: []world.ObjectState{{Name: "Box-1", Pos: r2.Vec{X: 500, Y: 350}}},
		Goals:   []world.GoalState{{Name: "Zone", Center: r2.Vec{X: 800, Y: 350}, Width: 100, Height: 100}},
	}
	d := NewShepherd("Box-1", "Zone")

	// Agent on the goal side of the object: must move toward the line-up
	// point at (465, 350), i.e. leftward.
	intent := d.Compute(snap, agentAt(600, 350))
	if intent.X >= 0 {
		t.Errorf("expected leftward intent toward line-up point, got %+v", intent)
	}
}

func TestShepherdPushesThroughWhenBehind(t *testing.T) {
	snap := world.Snapshot{
		Objects: []world.ObjectState{{Name: "Box-1", Pos: r2.Vec{X: 500, Y: 350}}},
		Goals:   []world.GoalState{{Name: "Zone", Center: r2.Vec{X: 800, Y: 350}, Width: 100, Height: 100}},
	}
	d := NewShepherd("Box-1", "Zone")

	// Agent already behind the object relative to the goal: push through.
	intent := d.Compute(snap, agentAt(465, 350))
	if intent.X <= 0 {
		t.Errorf("expected rightward push intent, got %+v", intent)
	}
}

func TestShepherdStopsWhenDelivered(t *testing.T) {
	snap := world.Snapshot{
		Objects: []world.ObjectState{{Name: "Box-1", Pos: r2.Vec{X: 800, Y: 350}, Goal: "Zone"}},
		Goals:   []world.GoalState{{Name: "Zone", Center: r2.Vec{X: 800, Y: 350}, Width: 100, Height: 100}},
	}
	d := NewShepherd("Box-1", "Zone")

	if got := d.Compute(snap, agentAt(760, 350)); got != (r2.Vec{}) {
		t.Errorf("delivered object should stop the shepherd, got %+v", got)
	}
}

func TestShepherdUnknownNames(t *testing.T) {
	d := NewShepherd("ghost", "Zone")
	if got := d.Compute(world.Snapshot{}, agentAt(100, 100)); got != (r2.Vec{}) {
		t.Errorf("unknown object should degrade to standing still, got %+v", got)
	}
}

func TestShepherdDeliversBox(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "sorting"
	w, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}

	d := NewShepherd("T-1", "Green Zone")
	dt := 1.0 / 60
	for i := 0; i < 3600; i++ {
		snap := w.Snapshot()
		self, _ := snap.Agent(world.AI)
		intent := d.Compute(snap, self)
		w.AI().SetMovement(intent.X, intent.Y)
		w.Update(dt)

		if _, ai := w.Scores(); ai > 0 {
			return
		}
	}
	t.Fatal("shepherd failed to deliver T-1 to Green Zone within 60 simulated seconds")
}
