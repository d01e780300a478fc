// Package sim drives a world at a fixed step, feeding drivers, metrics and
// observers. The engine itself stays synchronous and single-owner; all
// pacing and cancellation lives here.
package sim

import (
	"context"
	"fmt"

	"github.com/coopsim/coopsim/internal/driver"
	"github.com/coopsim/coopsim/internal/world"
)

// Runner owns one world and the policies driving its agents.
type Runner struct {
	world     *world.World
	drivers   map[world.AgentKind]driver.Driver
	metrics   []Metric
	observers []Observer
}

// New creates a runner around an already populated world.
func New(w *world.World) *Runner {
	return &Runner{
		world:   w,
		drivers: make(map[world.AgentKind]driver.Driver),
	}
}

// World returns the driven world.
func (r *Runner) World() *world.World { return r.world }

// SetDriver assigns a movement policy to one agent. Agents without a driver
// keep whatever intent was last set on them.
func (r *Runner) SetDriver(kind world.AgentKind, d driver.Driver) {
	r.drivers[kind] = d
}

// AddMetric registers a metric accumulated over every tick.
func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// AddObserver registers a per-tick observer.
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the world until the configured duration elapses or ctx is
// canceled. On cancellation the partial result is returned along with the
// context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Snapshots: make([]world.Snapshot, 0, steps+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result.Snapshots = append(result.Snapshots, r.world.Snapshot())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		r.Step(cfg.Dt)

		snap := r.world.Snapshot()
		result.Snapshots = append(result.Snapshots, snap)
		for _, m := range r.metrics {
			m.Observe(snap)
		}
		for _, o := range r.observers {
			o.OnTick(snap)
		}
	}

	r.finish(result)
	return result, nil
}

// Step advances the world by one tick, letting each driver set its agent's
// intent first. Interactive frontends call this directly.
func (r *Runner) Step(dt float64) {
	if len(r.drivers) > 0 {
		snap := r.world.Snapshot()
		for _, kind := range []world.AgentKind{world.Human, world.AI} {
			d, ok := r.drivers[kind]
			if !ok {
				continue
			}
			self, ok := snap.Agent(kind)
			if !ok {
				continue
			}
			intent := d.Compute(snap, self)
			r.world.Agent(kind).SetMovement(intent.X, intent.Y)
		}
	}
	r.world.Update(dt)
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
