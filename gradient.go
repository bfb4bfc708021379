package vg

import (
	"math"
	"sort"
)

// GradientStop pins a color at a normalized offset along a gradient axis.
type GradientStop struct {
	// Offset is the position of the stop in [0, 1].
	Offset float64
	// Color is the color at the stop.
	Color Color
}

// ExtendMode selects how a gradient behaves outside the [0, 1] range of
// its axis.
type ExtendMode uint8

const (
	// ExtendPad clamps to the terminal stop colors.
	ExtendPad ExtendMode = iota
	// ExtendRepeat tiles the gradient.
	ExtendRepeat
	// ExtendReflect mirrors the gradient on alternating tiles.
	ExtendReflect
)

// validateStops enforces the stop invariants: at least one stop, offsets
// within [0, 1], non-decreasing order.
func validateStops(stops []GradientStop) error {
	if len(stops) == 0 {
		return invalidInputf("gradient needs at least one stop")
	}
	prev := math.Inf(-1)
	for i, s := range stops {
		if s.Offset < 0 || s.Offset > 1 || !isFinite(s.Offset) {
			return invalidInputf("gradient stop %d offset %v outside [0, 1]", i, s.Offset)
		}
		if s.Offset < prev {
			return invalidInputf("gradient stop %d offset %v decreases", i, s.Offset)
		}
		prev = s.Offset
	}
	return nil
}

// colorAtOffset interpolates the stop list at offset t in [0, 1].
// Stops are assumed validated. Coincident stops produce a hard edge: the
// later stop wins at and after the shared offset.
func colorAtOffset(stops []GradientStop, t float64) Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	// First stop with offset > t; its predecessor starts the span.
	i := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset > t
	})
	lo, hi := stops[i-1], stops[i]
	span := hi.Offset - lo.Offset
	if span <= 0 {
		return hi.Color
	}
	return lo.Color.Lerp(hi.Color, (t-lo.Offset)/span)
}

// applyExtend maps an arbitrary axis position into [0, 1] per the extend
// mode.
func applyExtend(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t = t - math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Mod(t, 2)
		if period > 1 {
			period = 2 - period
		}
		t = period
	default:
		t = clamp01(t)
	}
	return t
}

// LinearGradient interpolates colors along the axis from Start to End, in
// user-space coordinates.
type LinearGradient struct {
	Start, End Point
	Stops      []GradientStop
	Extend     ExtendMode
}

// NewLinearGradient builds a linear gradient, validating the stop list.
func NewLinearGradient(start, end Point, stops ...GradientStop) (*LinearGradient, error) {
	if err := validateStops(stops); err != nil {
		return nil, err
	}
	s := make([]GradientStop, len(stops))
	copy(s, stops)
	return &LinearGradient{Start: start, End: end, Stops: s}, nil
}

// ColorAt returns the gradient color at the user-space point p.
// A degenerate axis (Start == End) yields the last stop everywhere.
func (g *LinearGradient) ColorAt(p Point) Color {
	d := g.End.Sub(g.Start)
	den := d.Dot(d)
	if den == 0 {
		return g.Stops[len(g.Stops)-1].Color
	}
	t := p.Sub(g.Start).Dot(d) / den
	return colorAtOffset(g.Stops, applyExtend(t, g.Extend))
}

// RadialGradient interpolates colors by distance from Center out to
// Radius, in user-space coordinates.
type RadialGradient struct {
	Center Point
	Radius float64
	Stops  []GradientStop
	Extend ExtendMode
}

// NewRadialGradient builds a radial gradient, validating the stop list and
// the radius.
func NewRadialGradient(center Point, radius float64, stops ...GradientStop) (*RadialGradient, error) {
	if radius <= 0 || !isFinite(radius) {
		return nil, invalidInputf("radial gradient radius %v must be positive", radius)
	}
	if err := validateStops(stops); err != nil {
		return nil, err
	}
	s := make([]GradientStop, len(stops))
	copy(s, stops)
	return &RadialGradient{Center: center, Radius: radius, Stops: s}, nil
}

// ColorAt returns the gradient color at the user-space point p.
func (g *RadialGradient) ColorAt(p Point) Color {
	t := g.Center.Distance(p) / g.Radius
	return colorAtOffset(g.Stops, applyExtend(t, g.Extend))
}
