package vg

import (
	"math"
	"testing"
)

func TestDefaultStrokeStyle(t *testing.T) {
	s := DefaultStrokeStyle()
	if s.Width != 1 || s.Cap != CapButt || s.Join != JoinMiter || s.MiterLimit != 4 {
		t.Errorf("DefaultStrokeStyle() = %+v", s)
	}
	if s.IsDashed() {
		t.Error("default style reports dashed")
	}
}

func TestWithDashNormalizes(t *testing.T) {
	s := DefaultStrokeStyle().WithDash(0, -5, 3)
	if !s.IsDashed() {
		t.Fatal("WithDash produced solid style")
	}
	if s.DashPattern[0] != 5 || s.DashPattern[1] != 3 {
		t.Errorf("DashPattern = %v, want [5 3]", s.DashPattern)
	}

	solid := DefaultStrokeStyle().WithDash(2, 0, 0)
	if solid.IsDashed() || solid.DashPattern != nil {
		t.Errorf("all-zero pattern should be solid, got %+v", solid)
	}
}

func TestEffectiveDash(t *testing.T) {
	tests := []struct {
		name       string
		style      StrokeStyle
		wantPat    []float64
		wantOffset float64
		wantOK     bool
	}{
		{"solid", DefaultStrokeStyle(), nil, 0, false},
		{"even", DefaultStrokeStyle().WithDash(1, 4, 2), []float64{4, 2}, 1, true},
		{"odd doubles", DefaultStrokeStyle().WithDash(0, 5), []float64{5, 5}, 0, true},
		{"offset wraps", DefaultStrokeStyle().WithDash(13, 4, 2), []float64{4, 2}, 1, true},
		{"negative offset", DefaultStrokeStyle().WithDash(-1, 4, 2), []float64{4, 2}, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pat, off, ok := tt.style.EffectiveDash()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if len(pat) != len(tt.wantPat) {
				t.Fatalf("pattern = %v, want %v", pat, tt.wantPat)
			}
			for i := range pat {
				if pat[i] != tt.wantPat[i] {
					t.Fatalf("pattern = %v, want %v", pat, tt.wantPat)
				}
			}
			if math.Abs(off-tt.wantOffset) > 1e-12 {
				t.Errorf("offset = %v, want %v", off, tt.wantOffset)
			}
		})
	}
}
