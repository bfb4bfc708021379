package vg

import (
	"image/color"
	"math"
)

// Color is a non-premultiplied RGBA color with float64 components in
// [0, 1]. All constructors clamp their inputs, so a Color built through
// them is always in range.
type Color struct {
	R, G, B, A float64
}

// NewColor returns the color with all four components clamped to [0, 1].
// NaN components clamp to 0.
func NewColor(r, g, b, a float64) Color {
	return Color{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// RGB returns the opaque color with the given components.
func RGB(r, g, b float64) Color {
	return NewColor(r, g, b, 1)
}

// RGB8 returns the opaque color with 8-bit components.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Hex returns the color for a packed 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return RGB8(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = Color{}
)

// Lerp linearly interpolates each stored channel between c and d.
// Interpolation happens in the storage color space with no gamma
// conversion, so all backends produce identical gradients.
func (c Color) Lerp(d Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// WithAlpha returns c with its alpha replaced by a, clamped.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// IsOpaque reports whether the color is fully opaque.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

// RGBA8 returns the 8-bit non-premultiplied components of c.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// NRGBA returns c as a standard-library color value.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard-library color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0 // negatives and NaN
}
