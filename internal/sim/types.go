package sim

import "github.com/coopsim/coopsim/internal/world"

// Metric accumulates a scalar over the run's snapshots.
type Metric interface {
	Name() string
	Observe(snap world.Snapshot)
	Value() float64
	Reset()
}

// Observer is notified after every tick, e.g. a live renderer.
type Observer interface {
	OnTick(snap world.Snapshot)
}

// Config controls one run.
type Config struct {
	Dt       float64
	Duration float64
}

// Result collects the run's time series and final metric values.
type Result struct {
	Snapshots []world.Snapshot
	Metrics   map[string]float64
}

// Final returns the last snapshot of the run.
func (r *Result) Final() world.Snapshot {
	if len(r.Snapshots) == 0 {
		return world.Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}
