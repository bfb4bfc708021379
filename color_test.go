package vg

import (
	"image/color"
	"testing"
)

func TestNewColorClamps(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a float64
		want       Color
	}{
		{"in range", 0.25, 0.5, 0.75, 1, Color{0.25, 0.5, 0.75, 1}},
		{"above", 2, 1.5, 1.01, 3, Color{1, 1, 1, 1}},
		{"below", -1, -0.5, -0.01, -2, Color{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewColor(tt.r, tt.g, tt.b, tt.a); got != tt.want {
				t.Errorf("NewColor = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColorLerpStorageSpace(t *testing.T) {
	// Interpolation is per stored channel with no gamma conversion, so the
	// halfway point of black and white is exactly 0.5.
	got := Black.Lerp(White, 0.5)
	if got != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("Lerp = %+v, want mid gray 0.5", got)
	}
	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp t=0 = %+v, want first color", got)
	}
	if got := Red.Lerp(Blue, 1); got != Blue {
		t.Errorf("Lerp t=1 = %+v, want second color", got)
	}
	if got := Red.Lerp(Blue, 2); got != Blue {
		t.Errorf("Lerp t=2 = %+v, want clamped to second color", got)
	}
}

func TestColorConversions(t *testing.T) {
	c := Hex(0x4080C0)
	r, g, b, a := c.RGBA8()
	if r != 0x40 || g != 0x80 || b != 0xC0 || a != 255 {
		t.Errorf("RGBA8 = %d %d %d %d", r, g, b, a)
	}
	back := FromColor(c.NRGBA())
	if !colorsNear(back, c, 1.0/255) {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
	if got := FromColor(color.NRGBA{R: 255, A: 255}); got != Red {
		t.Errorf("FromColor = %+v, want red", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.5)
	if c.A != 0.5 || c.R != 1 {
		t.Errorf("WithAlpha = %+v", c)
	}
	if Red.WithAlpha(7).A != 1 {
		t.Error("WithAlpha did not clamp")
	}
}
