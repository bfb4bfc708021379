package vg

import "math"

// Rect is an axis-aligned rectangle given by two corners, Min <= Max.
type Rect struct {
	Min, Max Point
}

// NewRect returns the rectangle spanning the two corner points, normalizing
// the corner order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// IsEmpty reports whether r has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Union returns the smallest rectangle containing both r and s.
// An empty rectangle acts as the identity.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)},
	}
}

// Intersect returns the overlap of r and s; the result may be empty.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Min: Point{math.Max(r.Min.X, s.Min.X), math.Max(r.Min.Y, s.Min.Y)},
		Max: Point{math.Min(r.Max.X, s.Max.X), math.Min(r.Max.Y, s.Max.Y)},
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Expand returns r grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: Point{r.Min.X - d, r.Min.Y - d},
		Max: Point{r.Max.X + d, r.Max.Y + d},
	}
}

// unionPoint grows r to include p; the zero Rect is treated as empty only
// when explicitly tracked by the caller.
func (r Rect) unionPoint(p Point) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Point{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Path returns r as a closed four-segment path. The tolerance is unused
// because rectangles flatten exactly.
func (r Rect) Path(tol float64) *BezPath {
	p := NewBezPath()
	p.MoveTo(r.Min)
	p.LineTo(Point{r.Max.X, r.Min.Y})
	p.LineTo(r.Max)
	p.LineTo(Point{r.Min.X, r.Max.Y})
	p.ClosePath()
	return p
}

// BoundingBox returns r itself.
func (r Rect) BoundingBox() Rect { return r }

// Area returns the signed area of r. The canonical orientation is positive.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Contains reports whether p lies inside r. Points on the Min edges are
// inside; points on the Max edges are outside, so adjacent rectangles do
// not double-claim their shared edge.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval returns the point at parameter t in [0, 1].
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// Path returns the segment as an open two-point path.
func (l Line) Path(tol float64) *BezPath {
	p := NewBezPath()
	p.MoveTo(l.P0)
	p.LineTo(l.P1)
	return p
}

// BoundingBox returns the smallest rectangle containing the segment.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0.X, l.P0.Y, l.P1.X, l.P1.Y)
}

// Area returns 0: a segment encloses nothing.
func (l Line) Area() float64 { return 0 }

// Contains returns false: a segment has no interior.
func (l Line) Contains(Point) bool { return false }

// QuadBez is a quadratic Bezier segment.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval returns the point at parameter t using de Casteljau subdivision.
func (q QuadBez) Eval(t float64) Point {
	a := q.P0.Lerp(q.P1, t)
	b := q.P1.Lerp(q.P2, t)
	return a.Lerp(b, t)
}

// Subdivide splits q at t=0.5 into two halves that join exactly.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	a := q.P0.Lerp(q.P1, 0.5)
	b := q.P1.Lerp(q.P2, 0.5)
	m := a.Lerp(b, 0.5)
	return QuadBez{q.P0, a, m}, QuadBez{m, b, q.P2}
}

// Extrema returns the parameters in (0, 1) where x or y reach a local
// extremum. Callers add the endpoints themselves.
func (q QuadBez) Extrema() []float64 {
	var out []float64
	// Derivative is linear: 2((P1-P0) + t((P2-P1)-(P1-P0))).
	for _, axis := range [2][3]float64{
		{q.P0.X, q.P1.X, q.P2.X},
		{q.P0.Y, q.P1.Y, q.P2.Y},
	} {
		d0 := axis[1] - axis[0]
		d1 := axis[2] - axis[1]
		denom := d0 - d1
		if denom != 0 {
			t := d0 / denom
			if t > 0 && t < 1 {
				out = append(out, t)
			}
		}
	}
	return out
}

// BoundingBox returns the exact bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	r := NewRect(q.P0.X, q.P0.Y, q.P2.X, q.P2.Y)
	for _, t := range q.Extrema() {
		r = r.unionPoint(q.Eval(t))
	}
	return r
}

// flatEnough reports whether the chord approximates q within tol.
// The control point's distance from the chord midpoint bounds the error.
func (q QuadBez) flatEnough(tol float64) bool {
	mid := q.P0.Lerp(q.P2, 0.5)
	return q.P1.Distance(mid) <= 2*tol
}

// Flatten appends a polyline approximation of q to pts, excluding P0.
// Every emitted vertex lies on the curve; no intermediate chord deviates
// from the curve by more than tol.
func (q QuadBez) Flatten(tol float64, pts []Point) []Point {
	if !q.P0.IsFinite() || !q.P1.IsFinite() || !q.P2.IsFinite() {
		return append(pts, q.P2)
	}
	return q.flatten(tol, pts, 0)
}

func (q QuadBez) flatten(tol float64, pts []Point, depth int) []Point {
	if depth >= maxFlattenDepth || q.flatEnough(tol) {
		return append(pts, q.P2)
	}
	left, right := q.Subdivide()
	pts = left.flatten(tol, pts, depth+1)
	return right.flatten(tol, pts, depth+1)
}

// Raise returns the equivalent cubic segment.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// CubicBez is a cubic Bezier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval returns the point at parameter t using de Casteljau subdivision.
func (c CubicBez) Eval(t float64) Point {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	return ab.Lerp(bd, t)
}

// Subdivide splits c at t=0.5 into two halves that join exactly.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	a := c.P0.Lerp(c.P1, 0.5)
	b := c.P1.Lerp(c.P2, 0.5)
	d := c.P2.Lerp(c.P3, 0.5)
	ab := a.Lerp(b, 0.5)
	bd := b.Lerp(d, 0.5)
	m := ab.Lerp(bd, 0.5)
	return CubicBez{c.P0, a, ab, m}, CubicBez{m, bd, d, c.P3}
}

// Extrema returns the parameters in (0, 1) where x or y reach a local
// extremum.
func (c CubicBez) Extrema() []float64 {
	var out []float64
	for _, axis := range [2][4]float64{
		{c.P0.X, c.P1.X, c.P2.X, c.P3.X},
		{c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y},
	} {
		// Derivative coefficients of the Bernstein form.
		d0 := axis[1] - axis[0]
		d1 := axis[2] - axis[1]
		d2 := axis[3] - axis[2]
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		for _, t := range solveQuadraticInUnitInterval(a, b, d0) {
			if t > 0 && t < 1 {
				out = append(out, t)
			}
		}
	}
	return out
}

// BoundingBox returns the exact bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	r := NewRect(c.P0.X, c.P0.Y, c.P3.X, c.P3.Y)
	for _, t := range c.Extrema() {
		r = r.unionPoint(c.Eval(t))
	}
	return r
}

// flatEnough reports whether the chord approximates c within tol.
// The metric bounds the distance of both control points from their
// positions on the chord.
func (c CubicBez) flatEnough(tol float64) bool {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - 2*c.P3.X - c.P0.X
	vy := 3*c.P2.Y - 2*c.P3.Y - c.P0.Y
	ux *= ux
	uy *= uy
	vx *= vx
	vy *= vy
	return math.Max(ux, vx)+math.Max(uy, vy) <= 16*tol*tol
}

// maxFlattenDepth caps recursive subdivision so that degenerate control
// polygons terminate.
const maxFlattenDepth = 24

// Flatten appends a polyline approximation of c to pts, excluding P0.
// Non-finite control points degrade to the chord.
func (c CubicBez) Flatten(tol float64, pts []Point) []Point {
	if !c.P0.IsFinite() || !c.P1.IsFinite() || !c.P2.IsFinite() || !c.P3.IsFinite() {
		return append(pts, c.P3)
	}
	return c.flatten(tol, pts, 0)
}

func (c CubicBez) flatten(tol float64, pts []Point, depth int) []Point {
	if depth >= maxFlattenDepth || c.flatEnough(tol) {
		return append(pts, c.P3)
	}
	left, right := c.Subdivide()
	pts = left.flatten(tol, pts, depth+1)
	return right.flatten(tol, pts, depth+1)
}

// Deriv returns the derivative curve as a quadratic.
func (c CubicBez) Deriv() QuadBez {
	return QuadBez{
		P0: c.P1.Sub(c.P0).Mul(3),
		P1: c.P2.Sub(c.P1).Mul(3),
		P2: c.P3.Sub(c.P2).Mul(3),
	}
}
