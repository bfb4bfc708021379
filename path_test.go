package vg

import (
	"errors"
	"math"
	"testing"
)

func TestBezPathBuilder(t *testing.T) {
	p := NewBezPath()
	p.MoveTo(Pt(0, 0)).LineTo(Pt(10, 0)).LineTo(Pt(10, 10)).ClosePath()
	if got := len(p.Segments()); got != 4 {
		t.Fatalf("segment count = %d, want 4", got)
	}
	if p.Current() != (Pt(0, 0)) {
		t.Errorf("Current() after close = %v, want subpath start", p.Current())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestBezPathImplicitMoveTo(t *testing.T) {
	p := NewBezPath()
	p.LineTo(Pt(5, 5))
	segs := p.Segments()
	if len(segs) != 2 {
		t.Fatalf("segment count = %d, want implicit MoveTo + LineTo", len(segs))
	}
	if mv, ok := segs[0].(MoveTo); !ok || mv.P != (Pt(0, 0)) {
		t.Errorf("first segment = %#v, want MoveTo at origin", segs[0])
	}
}

func TestBezPathCloseWithoutSubpath(t *testing.T) {
	p := NewBezPath()
	p.ClosePath()
	if got := len(p.Segments()); got != 0 {
		t.Errorf("stray close appended %d segments", got)
	}
	if err := p.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Validate() = %v, want ErrInvalidInput", err)
	}
}

func TestBezPathArea(t *testing.T) {
	tests := []struct {
		name string
		path *BezPath
		want float64
		eps  float64
	}{
		{
			"unit square ccw",
			NewBezPath().MoveTo(Pt(0, 0)).LineTo(Pt(1, 0)).LineTo(Pt(1, 1)).LineTo(Pt(0, 1)).ClosePath(),
			1, 1e-12,
		},
		{
			"unit square cw",
			NewBezPath().MoveTo(Pt(0, 0)).LineTo(Pt(0, 1)).LineTo(Pt(1, 1)).LineTo(Pt(1, 0)).ClosePath(),
			-1, 1e-12,
		},
		{
			"circle r=10",
			NewBezPath().Ellipse(Pt(0, 0), 10, 10),
			math.Pi * 100, 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.Area(); math.Abs(got-tt.want) > tt.eps {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Two nested squares wound the same way: winding 2 inside the inner one,
// so NonZero fills it and EvenOdd treats it as a hole.
func selfIntersecting() *BezPath {
	p := NewBezPath()
	// Outer square ccw.
	p.MoveTo(Pt(0, 0)).LineTo(Pt(4, 0)).LineTo(Pt(4, 4)).LineTo(Pt(0, 4)).ClosePath()
	// Inner square also ccw: winding 2 inside it.
	p.MoveTo(Pt(1, 1)).LineTo(Pt(3, 1)).LineTo(Pt(3, 3)).LineTo(Pt(1, 3)).ClosePath()
	return p
}

func TestContainsFillRules(t *testing.T) {
	p := selfIntersecting()
	tests := []struct {
		name    string
		pt      Point
		rule    FillRule
		want    bool
		winding int
	}{
		{"ring nonzero", Pt(0.5, 2), NonZero, true, 1},
		{"ring evenodd", Pt(0.5, 2), EvenOdd, true, 1},
		{"center nonzero", Pt(2, 2), NonZero, true, 2},
		{"center evenodd", Pt(2, 2), EvenOdd, false, 2},
		{"outside", Pt(10, 10), NonZero, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Winding(tt.pt); got != tt.winding {
				t.Errorf("Winding(%v) = %d, want %d", tt.pt, got, tt.winding)
			}
			if got := p.ContainsRule(tt.pt, tt.rule); got != tt.want {
				t.Errorf("ContainsRule(%v, %v) = %v, want %v", tt.pt, tt.rule, got, tt.want)
			}
		})
	}
}

func TestBezPathBoundingBox(t *testing.T) {
	p := NewBezPath().Ellipse(Pt(5, 5), 3, 2)
	bb := p.BoundingBox()
	want := NewRect(2, 3, 8, 7)
	if math.Abs(bb.Min.X-want.Min.X) > 1e-9 || math.Abs(bb.Max.X-want.Max.X) > 1e-9 ||
		math.Abs(bb.Min.Y-want.Min.Y) > 1e-9 || math.Abs(bb.Max.Y-want.Max.Y) > 1e-9 {
		t.Errorf("BoundingBox = %+v, want %+v", bb, want)
	}
}

func TestBezPathTransform(t *testing.T) {
	p := NewBezPath().MoveTo(Pt(1, 1)).CurveTo(Pt(2, 2), Pt(3, 3), Pt(4, 4))
	q := p.Transform(Translate(10, 0))
	if seg, ok := q.Segments()[1].(CurveTo); !ok || seg.P3 != (Pt(14, 4)) {
		t.Errorf("transformed curve endpoint = %#v", q.Segments()[1])
	}
	// Original unchanged.
	if seg := p.Segments()[1].(CurveTo); seg.P3 != (Pt(4, 4)) {
		t.Errorf("Transform mutated the receiver: %+v", seg)
	}
}

func TestBezPathFlattenSubpaths(t *testing.T) {
	p := NewBezPath()
	p.MoveTo(Pt(0, 0)).LineTo(Pt(1, 0)).ClosePath()
	p.MoveTo(Pt(5, 5)).LineTo(Pt(6, 5))
	subs := p.Flatten(DefaultTolerance)
	if len(subs) != 2 {
		t.Fatalf("subpath count = %d, want 2", len(subs))
	}
	if !subs[0].Closed || subs[1].Closed {
		t.Errorf("closed flags = %v, %v; want true, false", subs[0].Closed, subs[1].Closed)
	}
}

func TestBezPathFlattenCurveWithinTolerance(t *testing.T) {
	tol := 0.05
	c := CubicBez{Pt(0, 0), Pt(40, 80), Pt(80, 80), Pt(120, 0)}
	p := NewBezPath().MoveTo(c.P0).CurveTo(c.P1, c.P2, c.P3)
	subs := p.Flatten(tol)
	if len(subs) != 1 {
		t.Fatalf("subpath count = %d, want 1", len(subs))
	}
	if dev := maxDeviation(c.Eval, subs[0].Points); dev > tol {
		t.Errorf("max deviation %v exceeds tolerance %v", dev, tol)
	}
}

func TestArcEndpoints(t *testing.T) {
	p := NewBezPath().Arc(Pt(0, 0), 10, 0, math.Pi)
	subs := p.Flatten(0.01)
	if len(subs) != 1 {
		t.Fatalf("subpath count = %d", len(subs))
	}
	pts := subs[0].Points
	if !pointsNear(pts[0], Pt(10, 0), 1e-9) {
		t.Errorf("arc start = %v, want (10, 0)", pts[0])
	}
	if !pointsNear(pts[len(pts)-1], Pt(-10, 0), 1e-6) {
		t.Errorf("arc end = %v, want (-10, 0)", pts[len(pts)-1])
	}
}
