package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("expected 3, got %f", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
	if got := Clamp(1.5, 0, 3); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize(r2.Vec{X: 3, Y: 4}, 1e-9, r2.Vec{X: 1})
	if math.Abs(r2.Norm(v)-1) > 1e-12 {
		t.Errorf("expected unit vector, got norm %f", r2.Norm(v))
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("wrong direction: %+v", v)
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	fallback := r2.Vec{X: 1}
	v := Normalize(r2.Vec{}, 1e-9, fallback)
	if v != fallback {
		t.Errorf("expected fallback direction, got %+v", v)
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{math.Pi + 0.1, -math.Pi + 0.1},
		{-math.Pi - 0.1, math.Pi - 0.1},
	}
	for _, c := range cases {
		got := WrapAngle(c.in)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("WrapAngle(%f) = %f, want %f", c.in, got, c.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("WrapAngle(%f) = %f outside (-pi, pi]", c.in, got)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	v := r2.Vec{X: 2, Y: -1}
	back := Rotate(Rotate(v, 0.7), -0.7)
	if math.Abs(back.X-v.X) > 1e-12 || math.Abs(back.Y-v.Y) > 1e-12 {
		t.Errorf("rotation round trip drifted: %+v", back)
	}
}
