package world

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/shape"
)

func TestPointInsideOwnCenter(t *testing.T) {
	objects := []*Object{
		NewBox("b", 500, 350, 40),
		NewLShape("l", 500, 350, 50, 0),
		NewTShape("t", 500, 350, 50, 0),
	}
	for _, o := range objects {
		if !o.PointInside(o.Pos) {
			t.Errorf("%s: own center should be inside", o.Name)
		}
	}
}

func TestPointInsideRespectsRotation(t *testing.T) {
	o := NewBox("b", 0, 0, 40)
	o.Pos = r2.Vec{X: 500, Y: 350}
	// A point just outside the box corner moves inside when the box is
	// rotated 45 degrees (the diagonal reaches further along the axis).
	p := r2.Vec{X: 500 + 25, Y: 350}
	if o.PointInside(p) {
		t.Fatal("point should be outside the unrotated box")
	}
	o.Rot = math.Pi / 4
	if !o.PointInside(p) {
		t.Error("point should be inside the rotated box")
	}
}

func TestWorldRectsRotationRoundTrip(t *testing.T) {
	o := NewTShape("t", 300, 200, 50, 0)
	before := o.WorldRects()

	o.Rot = geomWrap(o.Rot + 1.3)
	o.Rot = geomWrap(o.Rot - 1.3)
	after := o.WorldRects()

	for i := range before {
		dx := before[i].Center.X - after[i].Center.X
		dy := before[i].Center.Y - after[i].Center.Y
		if math.Abs(dx) > 1e-9 || math.Abs(dy) > 1e-9 {
			t.Errorf("rect %d drifted after rotate round trip: (%g, %g)", i, dx, dy)
		}
	}
}

// geomWrap mirrors the wrap applied during integration so the round-trip
// test exercises the same path.
func geomWrap(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func TestClosestSurfacePoint(t *testing.T) {
	o := NewBox("b", 500, 350, 40)
	p := r2.Vec{X: 600, Y: 350}

	closest, dist := o.ClosestSurfacePoint(p)
	if math.Abs(closest.X-520) > 1e-9 || math.Abs(closest.Y-350) > 1e-9 {
		t.Errorf("expected surface point (520, 350), got %+v", closest)
	}
	if math.Abs(dist-80) > 1e-9 {
		t.Errorf("expected distance 80, got %f", dist)
	}
}

func TestClosestSurfacePointInterior(t *testing.T) {
	o := NewBox("b", 500, 350, 40)
	// Interior query clamps to itself: distance zero.
	_, dist := o.ClosestSurfacePoint(r2.Vec{X: 505, Y: 352})
	if dist != 0 {
		t.Errorf("interior point should clamp to itself, got distance %f", dist)
	}
}

func TestApplyPushLinear(t *testing.T) {
	o := NewBox("b", 500, 350, 40)
	o.ApplyPush(r2.Vec{X: 1}, o.Pos)

	if math.Abs(o.Vel.X-o.PushCompliance) > 1e-12 {
		t.Errorf("expected vx=%f, got %f", o.PushCompliance, o.Vel.X)
	}
	if o.Vel.Y != 0 {
		t.Errorf("centered push should add no vy, got %f", o.Vel.Y)
	}
	if o.AngVel != 0 {
		t.Errorf("centered push should add no spin, got %f", o.AngVel)
	}
}

func TestApplyPushOffCenterTorque(t *testing.T) {
	o := NewBox("b", 500, 350, 40)
	// Contact above center, push along +x: lever arm (0,-20) x (1,0)
	// gives positive cross, so angular velocity must be positive.
	o.ApplyPush(r2.Vec{X: 1}, r2.Vec{X: 500, Y: 330})
	if o.AngVel <= 0 {
		t.Errorf("expected positive angular velocity, got %f", o.AngVel)
	}

	o2 := NewBox("b2", 500, 350, 40)
	o2.ApplyPush(r2.Vec{X: 1}, r2.Vec{X: 500, Y: 370})
	if o2.AngVel >= 0 {
		t.Errorf("expected negative angular velocity, got %f", o2.AngVel)
	}
}

func TestVelocityDecaysToExactZero(t *testing.T) {
	bounds := r2.Vec{X: 1000, Y: 700}
	o := NewBox("b", 500, 350, 40)
	o.Vel = r2.Vec{X: 3, Y: -2}
	o.AngVel = 0.5

	prev := r2.Norm(o.Vel)
	for i := 0; i < 100; i++ {
		o.update(bounds)
		n := r2.Norm(o.Vel)
		if n > prev {
			t.Fatalf("tick %d: speed grew from %f to %f", i, prev, n)
		}
		prev = n
		if o.Vel == (r2.Vec{}) && o.AngVel == 0 {
			return
		}
	}
	t.Errorf("velocity never reached exactly zero: %+v, %f", o.Vel, o.AngVel)
}

func TestUpdateWrapsRotation(t *testing.T) {
	o := NewBox("b", 500, 350, 40)
	o.Rot = math.Pi - 0.01
	o.AngVel = 0.1
	o.update(r2.Vec{X: 1000, Y: 700})

	if o.Rot > math.Pi || o.Rot <= -math.Pi {
		t.Errorf("rotation %f outside (-pi, pi]", o.Rot)
	}
}

func TestUpdateClampsToBounds(t *testing.T) {
	o := NewBox("b", 30, 350, 40)
	o.Vel = r2.Vec{X: -50}
	o.update(r2.Vec{X: 1000, Y: 700})

	if o.Pos.X < o.BoundingRadius() {
		t.Errorf("object escaped left bound: %f", o.Pos.X)
	}
}

func TestGeometryCachedAtConstruction(t *testing.T) {
	o := NewLShape("l", 100, 100, 50, 0)
	rects := o.WorldRects()
	// Mutating size after construction must not change collision geometry.
	o.Size = 500
	after := o.WorldRects()
	for i := range rects {
		if rects[i].Width != after[i].Width || rects[i].Height != after[i].Height {
			t.Error("collision geometry must stay fixed after construction")
		}
	}
}

func TestConstructorsShapeKinds(t *testing.T) {
	if NewBox("b", 0, 0, 40).Kind != shape.Box {
		t.Error("NewBox kind")
	}
	if NewLShape("l", 0, 0, 50, 0).Kind != shape.LShape {
		t.Error("NewLShape kind")
	}
	if NewTShape("t", 0, 0, 50, 1.2).Rot != 1.2 {
		t.Error("NewTShape rotation")
	}
}
