package raster

import (
	"math"

	"github.com/gogpu/vg"
)

// strokePolylines expands flattened subpaths into fill polygons realizing
// the stroke: one quad per segment plus join and cap polygons. All
// polygons share a positive orientation, so filling them together under
// NonZero yields their union in a single blend pass.
func strokePolylines(polys []vg.Polyline, style vg.StrokeStyle, tol float64) []vg.Polyline {
	hw := style.Width / 2
	if hw <= 0 {
		return nil
	}
	if pattern, offset, ok := style.EffectiveDash(); ok {
		polys = dashPolylines(polys, pattern, offset)
	}
	var out []vg.Polyline
	emit := func(pts []vg.Point) {
		if len(pts) < 3 {
			return
		}
		if signedArea(pts) < 0 {
			reversePoints(pts)
		}
		out = append(out, vg.Polyline{Points: pts, Closed: true})
	}
	for _, sub := range polys {
		strokeOne(sub, hw, style, tol, emit)
	}
	return out
}

func signedArea(pts []vg.Point) float64 {
	var a float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a += pts[i].Cross(pts[(i+1)%n])
	}
	return a / 2
}

func reversePoints(pts []vg.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// dedupe drops consecutive coincident points so segment directions are
// well defined.
func dedupe(pts []vg.Point) []vg.Point {
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) == 0 || out[len(out)-1].Distance(p) > 1e-12 {
			out = append(out, p)
		}
	}
	return out
}

func strokeOne(sub vg.Polyline, hw float64, style vg.StrokeStyle, tol float64, emit func([]vg.Point)) {
	pts := dedupe(sub.Points)
	if sub.Closed && len(pts) > 1 && pts[0].Distance(pts[len(pts)-1]) <= 1e-12 {
		pts = pts[:len(pts)-1]
	}
	n := len(pts)
	if n == 0 {
		return
	}
	if n == 1 {
		// Degenerate subpath: round and square caps still leave a mark.
		switch style.Cap {
		case vg.CapRound:
			emit(circlePolygon(pts[0], hw, tol))
		case vg.CapSquare:
			p := pts[0]
			emit([]vg.Point{
				{X: p.X - hw, Y: p.Y - hw}, {X: p.X + hw, Y: p.Y - hw},
				{X: p.X + hw, Y: p.Y + hw}, {X: p.X - hw, Y: p.Y + hw},
			})
		}
		return
	}

	segs := n - 1
	if sub.Closed {
		segs = n
	}
	// Segment quads.
	for i := 0; i < segs; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		d := b.Sub(a).Normalize()
		nrm := vg.Pt(-d.Y, d.X).Mul(hw)
		emit([]vg.Point{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)})
	}
	// Joins at interior vertices (every vertex when closed).
	first, last := 1, n-1
	if sub.Closed {
		first, last = 0, n
	}
	for i := first; i < last; i++ {
		v := pts[i%n]
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		emitJoin(v, prev, next, hw, style, tol, emit)
	}
	// Caps on open subpaths.
	if !sub.Closed {
		emitCap(pts[0], pts[1], hw, style.Cap, tol, emit)
		emitCap(pts[n-1], pts[n-2], hw, style.Cap, tol, emit)
	}
}

// emitJoin fills the wedge on the outer side of the corner at v.
func emitJoin(v, prev, next vg.Point, hw float64, style vg.StrokeStyle, tol float64, emit func([]vg.Point)) {
	d0 := v.Sub(prev).Normalize()
	d1 := next.Sub(v).Normalize()
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-12 {
		return // straight through, segment quads already overlap
	}
	// Outer side: opposite the turn direction.
	s := 1.0
	if cross > 0 {
		s = -1
	}
	n0 := vg.Pt(-d0.Y, d0.X).Mul(hw * s)
	n1 := vg.Pt(-d1.Y, d1.X).Mul(hw * s)
	o0 := v.Add(n0)
	o1 := v.Add(n1)

	switch style.Join {
	case vg.JoinRound:
		emit(arcWedge(v, o0, o1, hw, tol))
	case vg.JoinMiter:
		// Miter point where the two offset edges meet.
		u := n0.Add(n1)
		den := 1 + n0.Dot(n1)/(hw*hw)
		if den > 1e-9 {
			m := v.Add(u.Div(den))
			if m.Distance(v) <= style.MiterLimit*hw {
				emit([]vg.Point{v, o0, m, o1})
				return
			}
		}
		emit([]vg.Point{v, o0, o1})
	default: // bevel
		emit([]vg.Point{v, o0, o1})
	}
}

// emitCap fills the cap at endpoint e; inward points from e into the path.
func emitCap(e, inward vg.Point, hw float64, capStyle vg.LineCap, tol float64, emit func([]vg.Point)) {
	d := e.Sub(inward).Normalize() // points outward
	nrm := vg.Pt(-d.Y, d.X).Mul(hw)
	switch capStyle {
	case vg.CapSquare:
		ext := d.Mul(hw)
		emit([]vg.Point{
			e.Add(nrm),
			e.Add(nrm).Add(ext),
			e.Sub(nrm).Add(ext),
			e.Sub(nrm),
		})
	case vg.CapRound:
		emit(arcWedge(e, e.Add(nrm), e.Sub(nrm), hw, tol))
	}
}

// arcWedge builds the polygon center -> arc from a to b around center,
// taking the shorter way for joins and the outward semicircle for caps.
func arcWedge(center, a, b vg.Point, r, tol float64) []vg.Point {
	a0 := math.Atan2(a.Y-center.Y, a.X-center.X)
	a1 := math.Atan2(b.Y-center.Y, b.X-center.X)
	sweep := a1 - a0
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	// Semicircle caps land exactly on pi; keep the positive direction.
	if sweep == -math.Pi {
		sweep = math.Pi
	}
	steps := arcSteps(math.Abs(sweep), r, tol)
	pts := make([]vg.Point, 0, steps+2)
	pts = append(pts, center)
	for i := 0; i <= steps; i++ {
		ang := a0 + sweep*float64(i)/float64(steps)
		pts = append(pts, vg.Pt(center.X+r*math.Cos(ang), center.Y+r*math.Sin(ang)))
	}
	return pts
}

// arcSteps picks a segment count keeping the chord error under tol.
func arcSteps(sweep, r, tol float64) int {
	if tol <= 0 {
		tol = vg.DefaultTolerance
	}
	if tol >= r {
		return 2
	}
	step := 2 * math.Acos(1-tol/r)
	n := int(math.Ceil(sweep / step))
	if n < 2 {
		n = 2
	}
	return n
}

// circlePolygon approximates a full circle.
func circlePolygon(center vg.Point, r, tol float64) []vg.Point {
	steps := arcSteps(2*math.Pi, r, tol)
	pts := make([]vg.Point, 0, steps)
	for i := 0; i < steps; i++ {
		ang := 2 * math.Pi * float64(i) / float64(steps)
		pts = append(pts, vg.Pt(center.X+r*math.Cos(ang), center.Y+r*math.Sin(ang)))
	}
	return pts
}

// dashPolylines splits subpaths into open dash pieces per the pattern.
// Closed subpaths are opened; the pattern restarts on every subpath.
func dashPolylines(polys []vg.Polyline, pattern []float64, offset float64) []vg.Polyline {
	var out []vg.Polyline
	for _, sub := range polys {
		pts := sub.Points
		if sub.Closed && len(pts) > 1 {
			pts = append(append([]vg.Point{}, pts...), pts[0])
		}
		out = append(out, dashWalk(pts, pattern, offset)...)
	}
	return out
}

func dashWalk(pts []vg.Point, pattern []float64, offset float64) []vg.Polyline {
	if len(pts) < 2 {
		return nil
	}
	// Position the pattern cursor at offset.
	idx := 0
	remain := pattern[0]
	on := true
	for offset > 0 {
		if offset < remain {
			remain -= offset
			break
		}
		offset -= remain
		idx = (idx + 1) % len(pattern)
		remain = pattern[idx]
		on = idx%2 == 0
	}

	var out []vg.Polyline
	var cur []vg.Point
	if on {
		cur = append(cur, pts[0])
	}
	flush := func() {
		if len(cur) > 1 {
			out = append(out, vg.Polyline{Points: cur})
		}
		cur = nil
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen > 0 && segLen-pos > remain {
			pos += remain
			pt := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, pt)
				flush()
			} else {
				cur = append(cur, pt)
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
		}
		remain -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	flush()
	return out
}
