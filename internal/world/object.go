package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/geom"
	"github.com/coopsim/coopsim/internal/shape"
)

const (
	// DefaultDamping is the per-tick exponential velocity decay.
	DefaultDamping = 0.85
	// DefaultPushCompliance scales how much a push moves the object.
	DefaultPushCompliance = 0.4
	// DefaultRotCompliance scales how much an off-center push rotates it.
	DefaultRotCompliance = 0.02

	linearEps  = 1e-3
	angularEps = 1e-4
)

// Object is a pushable rigid composite shape with compliant contact
// dynamics: pushes act directly on velocity and decay quickly, so objects
// move only while being pushed instead of flying off. Geometry is cached at
// construction and never recomputed; only pose and velocity fields mutate.
type Object struct {
	Name string
	Kind shape.Kind
	Size float64

	Pos    r2.Vec
	Rot    float64 // radians, kept in (-pi, pi]
	Vel    r2.Vec
	AngVel float64

	Damping        float64
	PushCompliance float64
	RotCompliance  float64

	rects []shape.CollisionRect
}

// WorldRect is a collision rectangle posed in world space.
type WorldRect struct {
	Center r2.Vec
	Width  float64
	Height float64
	Rot    float64
}

// NewObject creates a pushable object with default compliant-contact tuning.
func NewObject(name string, kind shape.Kind, pos r2.Vec, size float64) *Object {
	return &Object{
		Name:           name,
		Kind:           kind,
		Size:           size,
		Pos:            pos,
		Damping:        DefaultDamping,
		PushCompliance: DefaultPushCompliance,
		RotCompliance:  DefaultRotCompliance,
		rects:          shape.Rects(kind, size),
	}
}

// NewBox creates a box object. Size 40 is the standard playing piece.
func NewBox(name string, x, y, size float64) *Object {
	return NewObject(name, shape.Box, r2.Vec{X: x, Y: y}, size)
}

// NewLShape creates an L-shaped object.
func NewLShape(name string, x, y, size, rotation float64) *Object {
	o := NewObject(name, shape.LShape, r2.Vec{X: x, Y: y}, size)
	o.Rot = rotation
	return o
}

// NewTShape creates a T-shaped object.
func NewTShape(name string, x, y, size, rotation float64) *Object {
	o := NewObject(name, shape.TShape, r2.Vec{X: x, Y: y}, size)
	o.Rot = rotation
	return o
}

// WorldRects returns the cached collision rectangles posed at the object's
// current position and rotation.
func (o *Object) WorldRects() []WorldRect {
	out := make([]WorldRect, len(o.rects))
	for i, r := range o.rects {
		out[i] = WorldRect{
			Center: r2.Add(o.Pos, geom.Rotate(r.Offset, o.Rot)),
			Width:  r.Width,
			Height: r.Height,
			Rot:    o.Rot,
		}
	}
	return out
}

// BoundingRadius returns the broad-phase radius for this object.
func (o *Object) BoundingRadius() float64 {
	return shape.BoundingRadius(o.Kind, o.Size)
}

// PointInside reports whether p lies inside any collision rectangle.
func (o *Object) PointInside(p r2.Vec) bool {
	for _, r := range o.WorldRects() {
		local := geom.Rotate(r2.Sub(p, r.Center), -r.Rot)
		if math.Abs(local.X) <= r.Width/2 && math.Abs(local.Y) <= r.Height/2 {
			return true
		}
	}
	return false
}

// ClosestSurfacePoint returns the point on the object's surface closest to
// p, together with its distance. Used to locate push contacts and measure
// penetration depth.
func (o *Object) ClosestSurfacePoint(p r2.Vec) (r2.Vec, float64) {
	best := o.Pos
	bestDist := math.Inf(1)

	for _, r := range o.WorldRects() {
		local := geom.Rotate(r2.Sub(p, r.Center), -r.Rot)
		clamped := r2.Vec{
			X: geom.Clamp(local.X, -r.Width/2, r.Width/2),
			Y: geom.Clamp(local.Y, -r.Height/2, r.Height/2),
		}
		candidate := r2.Add(r.Center, geom.Rotate(clamped, r.Rot))
		if d := geom.Dist(p, candidate); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best, bestDist
}

// ApplyPush applies a compliant push along dir at the given world-space
// contact point. The response is velocity-level: linear velocity gains
// dir scaled by the push compliance, and the off-center lever arm adds
// angular velocity through the rotation compliance.
func (o *Object) ApplyPush(dir, contact r2.Vec) {
	o.Vel = r2.Add(o.Vel, r2.Scale(o.PushCompliance, dir))

	arm := r2.Sub(contact, o.Pos)
	torque := r2.Cross(arm, dir)
	o.AngVel += torque * o.RotCompliance
}

// update advances the object one tick and applies damping. Motion is a
// fixed per-tick increment: the compliance and damping constants are tuned
// for a fixed tick rate, unlike the dt-scaled agent integration.
func (o *Object) update(bounds r2.Vec) {
	o.Pos = r2.Add(o.Pos, o.Vel)
	o.Rot += o.AngVel

	decay := 1 - o.Damping
	o.Vel = r2.Scale(decay, o.Vel)
	o.AngVel *= decay

	if math.Abs(o.Vel.X) < linearEps {
		o.Vel.X = 0
	}
	if math.Abs(o.Vel.Y) < linearEps {
		o.Vel.Y = 0
	}
	if math.Abs(o.AngVel) < angularEps {
		o.AngVel = 0
	}

	o.Rot = geom.WrapAngle(o.Rot)

	radius := o.BoundingRadius()
	o.Pos = geom.ClampVec(o.Pos,
		r2.Vec{X: radius, Y: radius},
		r2.Vec{X: bounds.X - radius, Y: bounds.Y - radius})
}

// State returns a read-only snapshot of the object.
func (o *Object) State(goal string) ObjectState {
	return ObjectState{
		Name: o.Name,
		Kind: o.Kind,
		Size: o.Size,
		Pos:  o.Pos,
		Rot:  o.Rot,
		Vel:  o.Vel,
		Goal: goal,
	}
}
