package vg

import (
	"errors"
	"math"
	"testing"
)

func TestGradientStopValidation(t *testing.T) {
	tests := []struct {
		name    string
		stops   []GradientStop
		wantErr bool
	}{
		{"valid pair", []GradientStop{{0, Black}, {1, White}}, false},
		{"valid triple", []GradientStop{{0, Black}, {0.5, Red}, {1, White}}, false},
		{"single stop", []GradientStop{{0.5, Red}}, false},
		{"coincident", []GradientStop{{0.5, Red}, {0.5, Blue}}, false},
		{"empty", nil, true},
		{"decreasing", []GradientStop{{0.5, Red}, {0.2, Blue}}, true},
		{"below range", []GradientStop{{-0.1, Red}}, true},
		{"above range", []GradientStop{{1.1, Red}}, true},
		{"nan offset", []GradientStop{{math.NaN(), Red}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinearGradient(Pt(0, 0), Pt(1, 0), tt.stops...)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("NewLinearGradient error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewLinearGradient error = %v, want nil", err)
			}
		})
	}
}

func TestRadialGradientValidation(t *testing.T) {
	if _, err := NewRadialGradient(Pt(0, 0), 0, GradientStop{0, Red}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero radius error = %v, want ErrInvalidInput", err)
	}
	if _, err := NewRadialGradient(Pt(0, 0), 5, GradientStop{0, Red}, GradientStop{1, Blue}); err != nil {
		t.Errorf("valid radial error = %v", err)
	}
}

func colorsNear(a, b Color, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestLinearGradientColorAt(t *testing.T) {
	g, err := NewLinearGradient(Pt(0, 0), Pt(100, 0),
		GradientStop{0, Black}, GradientStop{1, White})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		p    Point
		want Color
	}{
		{"start", Pt(0, 0), Black},
		{"mid", Pt(50, 42), RGB(0.5, 0.5, 0.5)},
		{"end", Pt(100, 0), White},
		{"pad before", Pt(-50, 0), Black},
		{"pad after", Pt(150, 0), White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ColorAt(tt.p); !colorsNear(got, tt.want, 1e-9) {
				t.Errorf("ColorAt(%v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestGradientCoincidentStops(t *testing.T) {
	g, err := NewLinearGradient(Pt(0, 0), Pt(10, 0),
		GradientStop{0, Black}, GradientStop{0.5, Red}, GradientStop{0.5, Blue}, GradientStop{1, White})
	if err != nil {
		t.Fatal(err)
	}
	// Just past the shared offset, the later stop's side wins.
	got := g.ColorAt(Pt(5.001, 0))
	if got.B < 0.9 {
		t.Errorf("ColorAt just past coincident stops = %+v, want blue side", got)
	}
}

func TestRadialGradientColorAt(t *testing.T) {
	g, err := NewRadialGradient(Pt(50, 50), 10,
		GradientStop{0, White}, GradientStop{1, Black})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.ColorAt(Pt(50, 50)); !colorsNear(got, White, 1e-9) {
		t.Errorf("center = %+v, want white", got)
	}
	if got := g.ColorAt(Pt(65, 50)); !colorsNear(got, Black, 1e-9) {
		t.Errorf("outside radius = %+v, want black (pad)", got)
	}
	if got := g.ColorAt(Pt(55, 50)); !colorsNear(got, RGB(0.5, 0.5, 0.5), 1e-9) {
		t.Errorf("half radius = %+v, want mid gray", got)
	}
}

func TestExtendModes(t *testing.T) {
	tests := []struct {
		name string
		mode ExtendMode
		pos  float64
		want float64
	}{
		{"pad clamps", ExtendPad, 1.5, 1},
		{"repeat wraps", ExtendRepeat, 1.25, 0.25},
		{"reflect mirrors", ExtendReflect, 1.25, 0.75},
		{"reflect second period", ExtendReflect, 2.25, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyExtend(tt.pos, tt.mode); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("applyExtend(%v, %v) = %v, want %v", tt.pos, tt.mode, got, tt.want)
			}
		})
	}
}
