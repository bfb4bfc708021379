package vg

import "math"

// Shape is anything that can be rendered by a RenderContext. Concrete
// shapes (Rect, Circle, Line) answer the geometric queries exactly;
// arbitrary geometry goes through *BezPath, which satisfies Shape itself.
type Shape interface {
	// Path returns the shape's outline as a path. Shapes with curved
	// boundaries produce Bezier segments; tol bounds the error of any
	// approximation the conversion needs.
	Path(tol float64) *BezPath

	// BoundingBox returns the smallest axis-aligned rectangle containing
	// the shape.
	BoundingBox() Rect

	// Area returns the signed area of the shape.
	Area() float64

	// Contains reports whether the point is inside the shape.
	Contains(p Point) bool
}

// Circle is a circle given by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// Path returns the circle as four cubic segments.
func (c Circle) Path(tol float64) *BezPath {
	return NewBezPath().Ellipse(c.Center, c.Radius, c.Radius)
}

// BoundingBox returns the square bounding the circle.
func (c Circle) BoundingBox() Rect {
	return Rect{
		Min: Point{c.Center.X - c.Radius, c.Center.Y - c.Radius},
		Max: Point{c.Center.X + c.Radius, c.Center.Y + c.Radius},
	}
}

// Area returns the area of the circle. The canonical orientation is
// positive.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle) Contains(p Point) bool {
	return c.Center.Distance(p) < c.Radius
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Center Point
	RX, RY float64
}

// Path returns the ellipse as four cubic segments.
func (e Ellipse) Path(tol float64) *BezPath {
	return NewBezPath().Ellipse(e.Center, e.RX, e.RY)
}

// BoundingBox returns the rectangle bounding the ellipse.
func (e Ellipse) BoundingBox() Rect {
	return Rect{
		Min: Point{e.Center.X - e.RX, e.Center.Y - e.RY},
		Max: Point{e.Center.X + e.RX, e.Center.Y + e.RY},
	}
}

// Area returns the area of the ellipse.
func (e Ellipse) Area() float64 {
	return math.Pi * e.RX * e.RY
}

// Contains reports whether p lies strictly inside the ellipse.
func (e Ellipse) Contains(p Point) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx := (p.X - e.Center.X) / e.RX
	dy := (p.Y - e.Center.Y) / e.RY
	return dx*dx+dy*dy < 1
}
