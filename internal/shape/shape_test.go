package shape

import (
	"math"
	"testing"
)

func TestBoxRects(t *testing.T) {
	rects := Rects(Box, 40)
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	r := rects[0]
	if r.Width != 40 || r.Height != 40 {
		t.Errorf("expected 40x40, got %fx%f", r.Width, r.Height)
	}
	if r.Offset.X != 0 || r.Offset.Y != 0 {
		t.Errorf("expected rect at origin, got %+v", r.Offset)
	}
}

func TestLShapeRects(t *testing.T) {
	size := 50.0
	rects := Rects(LShape, size)
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
	vert, horiz := rects[0], rects[1]
	if vert.Width != size*0.4 || vert.Height != size*1.4 {
		t.Errorf("vertical bar dimensions wrong: %fx%f", vert.Width, vert.Height)
	}
	if horiz.Width != size*0.8 || horiz.Height != size*0.4 {
		t.Errorf("horizontal bar dimensions wrong: %fx%f", horiz.Width, horiz.Height)
	}
}

func TestTShapeRects(t *testing.T) {
	size := 50.0
	rects := Rects(TShape, size)
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
	top, stem := rects[0], rects[1]
	if top.Width != size*1.2 || top.Height != size*0.4 {
		t.Errorf("top bar dimensions wrong: %fx%f", top.Width, top.Height)
	}
	if stem.Width != size*0.4 || stem.Height != size*0.8 {
		t.Errorf("stem dimensions wrong: %fx%f", stem.Width, stem.Height)
	}
	if top.Offset.X != 0 || stem.Offset.X != 0 {
		t.Error("T-shape bars should be horizontally centered")
	}
}

func TestRectsDeterministic(t *testing.T) {
	for _, k := range []Kind{Box, LShape, TShape} {
		a := Rects(k, 47.5)
		b := Rects(k, 47.5)
		if len(a) != len(b) {
			t.Fatalf("%v: rect count changed between calls", k)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("%v: rect %d not reproducible: %+v vs %+v", k, i, a[i], b[i])
			}
		}
	}
}

func TestBoundingRadiusCoversRects(t *testing.T) {
	size := 50.0
	for _, k := range []Kind{Box, LShape, TShape} {
		radius := BoundingRadius(k, size)
		for _, r := range Rects(k, size) {
			for _, sx := range []float64{-1, 1} {
				for _, sy := range []float64{-1, 1} {
					cx := r.Offset.X + sx*r.Width/2
					cy := r.Offset.Y + sy*r.Height/2
					if d := math.Hypot(cx, cy); d > radius {
						t.Errorf("%v: corner (%f,%f) outside bounding radius %f", k, cx, cy, radius)
					}
				}
			}
		}
	}
}

func TestKindTextRoundTrip(t *testing.T) {
	for _, k := range []Kind{Box, LShape, TShape} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != k {
			t.Errorf("round trip changed %v to %v", k, back)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("hexagon")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
