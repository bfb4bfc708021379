package vg

import "math"

// DefaultTolerance is the flattening tolerance used when callers do not
// supply one: the maximum distance, in user-space units, between a curve
// and its polyline approximation.
const DefaultTolerance = 0.1

// PathSegment is one element of a BezPath. The interface is sealed: the
// only implementations are MoveTo, LineTo, QuadTo, CurveTo and ClosePath.
type PathSegment interface {
	isPathSegment()
}

// MoveTo starts a new subpath at P.
type MoveTo struct {
	P Point
}

// LineTo draws a straight segment to P.
type LineTo struct {
	P Point
}

// QuadTo draws a quadratic Bezier with control point P1 ending at P2.
type QuadTo struct {
	P1, P2 Point
}

// CurveTo draws a cubic Bezier with control points P1, P2 ending at P3.
type CurveTo struct {
	P1, P2, P3 Point
}

// ClosePath closes the current subpath back to its starting point.
type ClosePath struct{}

func (MoveTo) isPathSegment()    {}
func (LineTo) isPathSegment()    {}
func (QuadTo) isPathSegment()    {}
func (CurveTo) isPathSegment()   {}
func (ClosePath) isPathSegment() {}

// BezPath is an ordered sequence of path segments describing zero or more
// subpaths. The zero value is an empty path ready for use.
type BezPath struct {
	segs    []PathSegment
	start   Point // first point of the current subpath
	current Point
	open    bool  // a subpath has been started and not closed
	defect  error // first structural defect, reported by Validate
}

// NewBezPath returns an empty path.
func NewBezPath() *BezPath {
	return &BezPath{}
}

// Segments returns the underlying segment slice. Callers must not modify it.
func (p *BezPath) Segments() []PathSegment {
	return p.segs
}

// IsEmpty reports whether the path has no segments.
func (p *BezPath) IsEmpty() bool {
	return len(p.segs) == 0
}

// Current returns the current point of the builder.
func (p *BezPath) Current() Point {
	return p.current
}

// MoveTo starts a new subpath at pt.
func (p *BezPath) MoveTo(pt Point) *BezPath {
	p.segs = append(p.segs, MoveTo{P: pt})
	p.start = pt
	p.current = pt
	p.open = true
	return p
}

// ensureSubpath starts an implicit subpath at the origin when a drawing
// segment arrives before any MoveTo.
func (p *BezPath) ensureSubpath() {
	if !p.open {
		p.MoveTo(p.current)
	}
}

// LineTo appends a straight segment to pt.
func (p *BezPath) LineTo(pt Point) *BezPath {
	p.ensureSubpath()
	p.segs = append(p.segs, LineTo{P: pt})
	p.current = pt
	return p
}

// QuadTo appends a quadratic Bezier segment.
func (p *BezPath) QuadTo(p1, p2 Point) *BezPath {
	p.ensureSubpath()
	p.segs = append(p.segs, QuadTo{P1: p1, P2: p2})
	p.current = p2
	return p
}

// CurveTo appends a cubic Bezier segment.
func (p *BezPath) CurveTo(p1, p2, p3 Point) *BezPath {
	p.ensureSubpath()
	p.segs = append(p.segs, CurveTo{P1: p1, P2: p2, P3: p3})
	p.current = p3
	return p
}

// ClosePath closes the current subpath. Closing with no open subpath is
// ignored; the defect is reported by Validate.
func (p *BezPath) ClosePath() *BezPath {
	if !p.open {
		if p.defect == nil {
			p.defect = invalidInputf("close without open subpath")
		}
		return p
	}
	p.segs = append(p.segs, ClosePath{})
	p.current = p.start
	p.open = false
	return p
}

// Validate reports the first structural defect recorded while building, or
// nil for a well-formed path.
func (p *BezPath) Validate() error {
	return p.defect
}

// Clone returns a deep copy of the path.
func (p *BezPath) Clone() *BezPath {
	out := &BezPath{
		segs:    make([]PathSegment, len(p.segs)),
		start:   p.start,
		current: p.current,
		open:    p.open,
		defect:  p.defect,
	}
	copy(out.segs, p.segs)
	return out
}

// Transform returns a copy of the path with a applied to every point.
func (p *BezPath) Transform(a Affine) *BezPath {
	out := &BezPath{
		segs:    make([]PathSegment, 0, len(p.segs)),
		start:   a.Apply(p.start),
		current: a.Apply(p.current),
		open:    p.open,
		defect:  p.defect,
	}
	for _, seg := range p.segs {
		switch s := seg.(type) {
		case MoveTo:
			out.segs = append(out.segs, MoveTo{P: a.Apply(s.P)})
		case LineTo:
			out.segs = append(out.segs, LineTo{P: a.Apply(s.P)})
		case QuadTo:
			out.segs = append(out.segs, QuadTo{P1: a.Apply(s.P1), P2: a.Apply(s.P2)})
		case CurveTo:
			out.segs = append(out.segs, CurveTo{P1: a.Apply(s.P1), P2: a.Apply(s.P2), P3: a.Apply(s.P3)})
		case ClosePath:
			out.segs = append(out.segs, s)
		}
	}
	return out
}

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten converts the path into polyline subpaths. Every vertex lies on
// the path and no chord deviates from the true curve by more than tol.
// Non-positive tolerances fall back to DefaultTolerance.
func (p *BezPath) Flatten(tol float64) []Polyline {
	if tol <= 0 || !isFinite(tol) {
		tol = DefaultTolerance
	}
	var out []Polyline
	var cur []Point
	var last Point
	flush := func(closed bool) {
		if len(cur) > 1 {
			out = append(out, Polyline{Points: cur, Closed: closed})
		}
		cur = nil
	}
	for _, seg := range p.segs {
		switch s := seg.(type) {
		case MoveTo:
			flush(false)
			cur = append(cur, s.P)
			last = s.P
		case LineTo:
			if cur == nil {
				cur = append(cur, last)
			}
			cur = append(cur, s.P)
			last = s.P
		case QuadTo:
			if cur == nil {
				cur = append(cur, last)
			}
			cur = QuadBez{last, s.P1, s.P2}.Flatten(tol, cur)
			last = s.P2
		case CurveTo:
			if cur == nil {
				cur = append(cur, last)
			}
			cur = CubicBez{last, s.P1, s.P2, s.P3}.Flatten(tol, cur)
			last = s.P3
		case ClosePath:
			if len(cur) > 0 {
				last = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return out
}

// areaTolerance is the flattening tolerance used for area and winding
// queries, fine enough that the polyline answer matches the analytic one
// to well below a pixel.
const areaTolerance = 1e-3

// Area returns the signed area enclosed by the path, computed with the
// shoelace formula over flattened subpaths. Counter-clockwise subpaths (in
// a y-up frame) contribute positive area; open subpaths are treated as
// implicitly closed.
func (p *BezPath) Area() float64 {
	var total float64
	for _, sub := range p.Flatten(areaTolerance) {
		pts := sub.Points
		n := len(pts)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			total += pts[i].Cross(pts[j])
		}
	}
	return total / 2
}

// Winding returns the winding number of the path around pt.
func (p *BezPath) Winding(pt Point) int {
	var w int
	for _, sub := range p.Flatten(areaTolerance) {
		pts := sub.Points
		n := len(pts)
		for i := 0; i < n; i++ {
			w += lineWinding(pts[i], pts[(i+1)%n], pt)
		}
	}
	return w
}

// lineWinding returns the winding contribution of edge a->b with respect
// to a rightward ray from p.
func lineWinding(a, b, p Point) int {
	if a.Y <= p.Y {
		if b.Y > p.Y && isLeft(a, b, p) > 0 {
			return 1
		}
	} else if b.Y <= p.Y && isLeft(a, b, p) < 0 {
		return -1
	}
	return 0
}

// isLeft returns >0 when p is left of the directed line a->b, <0 when
// right, 0 when collinear.
func isLeft(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// ContainsRule reports whether pt is inside the path under the given fill
// rule.
func (p *BezPath) ContainsRule(pt Point, rule FillRule) bool {
	w := p.Winding(pt)
	if rule == EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Contains reports whether pt is inside the path under the NonZero rule.
func (p *BezPath) Contains(pt Point) bool {
	return p.ContainsRule(pt, NonZero)
}

// BoundingBox returns the exact bounding box of the path, using curve
// extrema rather than control-point hulls.
func (p *BezPath) BoundingBox() Rect {
	var r Rect
	first := true
	add := func(q Rect) {
		if first {
			r = q
			first = false
		} else {
			r = Rect{Min: r.Min, Max: r.Max}.unionPoint(q.Min).unionPoint(q.Max)
		}
	}
	var last Point
	for _, seg := range p.segs {
		switch s := seg.(type) {
		case MoveTo:
			add(Rect{Min: s.P, Max: s.P})
			last = s.P
		case LineTo:
			add(NewRect(last.X, last.Y, s.P.X, s.P.Y))
			last = s.P
		case QuadTo:
			add(QuadBez{last, s.P1, s.P2}.BoundingBox())
			last = s.P2
		case CurveTo:
			add(CubicBez{last, s.P1, s.P2, s.P3}.BoundingBox())
			last = s.P3
		}
	}
	if first {
		return Rect{}
	}
	return r
}

// Path returns the path itself; *BezPath satisfies Shape directly.
func (p *BezPath) Path(tol float64) *BezPath {
	return p
}

// kappa is the control-point distance factor approximating a quarter
// circle with one cubic segment.
const kappa = 0.5522847498307936

// Rectangle appends r as a closed subpath.
func (p *BezPath) Rectangle(r Rect) *BezPath {
	p.MoveTo(r.Min)
	p.LineTo(Point{r.Max.X, r.Min.Y})
	p.LineTo(r.Max)
	p.LineTo(Point{r.Min.X, r.Max.Y})
	return p.ClosePath()
}

// Ellipse appends an axis-aligned ellipse as four cubic segments.
func (p *BezPath) Ellipse(center Point, rx, ry float64) *BezPath {
	cx, cy := center.X, center.Y
	ox, oy := rx*kappa, ry*kappa
	p.MoveTo(Point{cx + rx, cy})
	p.CurveTo(Point{cx + rx, cy + oy}, Point{cx + ox, cy + ry}, Point{cx, cy + ry})
	p.CurveTo(Point{cx - ox, cy + ry}, Point{cx - rx, cy + oy}, Point{cx - rx, cy})
	p.CurveTo(Point{cx - rx, cy - oy}, Point{cx - ox, cy - ry}, Point{cx, cy - ry})
	p.CurveTo(Point{cx + ox, cy - ry}, Point{cx + rx, cy - oy}, Point{cx + rx, cy})
	return p.ClosePath()
}

// Arc appends a circular arc from startAngle sweeping sweepAngle radians,
// split into cubic segments of at most a quarter turn. A MoveTo is emitted
// when no subpath is open; otherwise a line connects to the arc start.
func (p *BezPath) Arc(center Point, radius, startAngle, sweepAngle float64) *BezPath {
	if sweepAngle == 0 || radius <= 0 {
		return p
	}
	const maxSegAngle = math.Pi / 2
	n := int(math.Ceil(math.Abs(sweepAngle) / maxSegAngle))
	delta := sweepAngle / float64(n)
	// Control-point offset for one segment of angle delta.
	alpha := 4.0 / 3.0 * math.Tan(delta/4)
	angle := startAngle
	sin, cos := math.Sincos(angle)
	pt := Point{center.X + radius*cos, center.Y + radius*sin}
	if p.open {
		p.LineTo(pt)
	} else {
		p.MoveTo(pt)
	}
	for i := 0; i < n; i++ {
		next := angle + delta
		s0, c0 := math.Sincos(angle)
		s1, c1 := math.Sincos(next)
		p0 := Point{center.X + radius*c0, center.Y + radius*s0}
		p3 := Point{center.X + radius*c1, center.Y + radius*s1}
		c1p := Point{p0.X - alpha*radius*s0, p0.Y + alpha*radius*c0}
		c2p := Point{p3.X + alpha*radius*s1, p3.Y - alpha*radius*c1}
		p.CurveTo(c1p, c2p, p3)
		angle = next
	}
	return p
}

// RoundedRectangle appends r with corners rounded by radius, clamped to
// half the shorter side.
func (p *BezPath) RoundedRectangle(r Rect, radius float64) *BezPath {
	if radius <= 0 {
		return p.Rectangle(r)
	}
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	k := radius * kappa
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	p.MoveTo(Point{x0 + radius, y0})
	p.LineTo(Point{x1 - radius, y0})
	p.CurveTo(Point{x1 - radius + k, y0}, Point{x1, y0 + radius - k}, Point{x1, y0 + radius})
	p.LineTo(Point{x1, y1 - radius})
	p.CurveTo(Point{x1, y1 - radius + k}, Point{x1 - radius + k, y1}, Point{x1 - radius, y1})
	p.LineTo(Point{x0 + radius, y1})
	p.CurveTo(Point{x0 + radius - k, y1}, Point{x0, y1 - radius + k}, Point{x0, y1 - radius})
	p.LineTo(Point{x0, y0 + radius})
	p.CurveTo(Point{x0, y0 + radius - k}, Point{x0 + radius - k, y0}, Point{x0 + radius, y0})
	return p.ClosePath()
}
