package vg

// Brush describes how filled or stroked geometry is painted. The interface
// is sealed: the implementations are SolidBrush, *LinearGradient and
// *RadialGradient. Brushes are immutable values and may be shared across
// contexts and goroutines.
type Brush interface {
	brushMarker()

	// ColorAt returns the brush color at a user-space point. Solid brushes
	// ignore the point.
	ColorAt(p Point) Color
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color Color
}

// Solid returns a solid brush for c.
func Solid(c Color) SolidBrush {
	return SolidBrush{Color: c}
}

// SolidRGB returns an opaque solid brush.
func SolidRGB(r, g, b float64) SolidBrush {
	return SolidBrush{Color: RGB(r, g, b)}
}

// WithAlpha returns a copy of the brush with its alpha replaced.
func (b SolidBrush) WithAlpha(a float64) SolidBrush {
	return SolidBrush{Color: b.Color.WithAlpha(a)}
}

func (SolidBrush) brushMarker() {}

// ColorAt returns the brush color; the point is ignored.
func (b SolidBrush) ColorAt(Point) Color {
	return b.Color
}

func (*LinearGradient) brushMarker() {}
func (*RadialGradient) brushMarker() {}
