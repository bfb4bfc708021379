package vg

import "math"

// LineCap selects the shape drawn at the open ends of stroked subpaths.
type LineCap uint8

const (
	// CapButt ends the stroke exactly at the endpoint.
	CapButt LineCap = iota
	// CapRound ends the stroke with a semicircle.
	CapRound
	// CapSquare extends the stroke by half its width.
	CapSquare
)

// LineJoin selects the shape drawn where stroked segments meet.
type LineJoin uint8

const (
	// JoinMiter extends the outer edges to a point, subject to MiterLimit.
	JoinMiter LineJoin = iota
	// JoinRound rounds the corner with a circular arc.
	JoinRound
	// JoinBevel cuts the corner with a straight edge.
	JoinBevel
)

// StrokeStyle describes how paths are stroked. The zero value is not
// useful; start from DefaultStrokeStyle and derive with the With methods.
type StrokeStyle struct {
	// Width is the stroke width in user-space units.
	Width float64
	// Cap is the end-cap style for open subpaths.
	Cap LineCap
	// Join is the corner style where segments meet.
	Join LineJoin
	// MiterLimit bounds the length of miter joins relative to the stroke
	// width; joins beyond it fall back to bevel.
	MiterLimit float64
	// DashPattern holds alternating dash and gap lengths. Empty means a
	// solid stroke. An odd-length pattern is logically doubled.
	DashPattern []float64
	// DashOffset is the starting distance into the dash pattern.
	DashOffset float64
}

// DefaultStrokeStyle returns the conventional defaults: width 1, butt
// caps, miter joins with limit 4, no dash.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
}

// WithWidth returns a copy with the stroke width replaced.
func (s StrokeStyle) WithWidth(w float64) StrokeStyle {
	s.Width = w
	return s
}

// WithCap returns a copy with the end-cap style replaced.
func (s StrokeStyle) WithCap(c LineCap) StrokeStyle {
	s.Cap = c
	return s
}

// WithJoin returns a copy with the join style replaced.
func (s StrokeStyle) WithJoin(j LineJoin) StrokeStyle {
	s.Join = j
	return s
}

// WithMiterLimit returns a copy with the miter limit replaced.
func (s StrokeStyle) WithMiterLimit(limit float64) StrokeStyle {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy with the dash pattern replaced. Lengths are
// normalized to their absolute values. An empty or all-zero pattern
// produces a solid stroke.
func (s StrokeStyle) WithDash(offset float64, lengths ...float64) StrokeStyle {
	pattern := make([]float64, len(lengths))
	any := false
	for i, l := range lengths {
		pattern[i] = math.Abs(l)
		if pattern[i] > 0 {
			any = true
		}
	}
	if !any {
		pattern = nil
		offset = 0
	}
	s.DashPattern = pattern
	s.DashOffset = offset
	return s
}

// IsDashed reports whether the style produces a dashed stroke.
func (s StrokeStyle) IsDashed() bool {
	for _, l := range s.DashPattern {
		if l > 0 {
			return true
		}
	}
	return false
}

// EffectiveDash returns the even-length dash pattern and the offset
// normalized into one pattern cycle. ok is false for solid strokes.
func (s StrokeStyle) EffectiveDash() (pattern []float64, offset float64, ok bool) {
	if !s.IsDashed() {
		return nil, 0, false
	}
	pattern = s.DashPattern
	if len(pattern)%2 != 0 {
		doubled := make([]float64, 0, len(pattern)*2)
		doubled = append(doubled, pattern...)
		pattern = append(doubled, s.DashPattern...)
	}
	var cycle float64
	for _, l := range pattern {
		cycle += l
	}
	offset = math.Mod(s.DashOffset, cycle)
	if offset < 0 {
		offset += cycle
	}
	return pattern, offset, true
}
