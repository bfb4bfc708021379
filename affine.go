package vg

import "math"

// singularEps is the determinant threshold below which an affine transform
// is treated as non-invertible.
const singularEps = 1e-12

// Affine is a 2D affine transformation matrix:
//
//	| A  C  E |
//	| B  D  F |
//
// Transforming a point: x' = A*x + C*y + E, y' = B*x + D*y + F.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Affine {
	return Affine{A: 1, D: 1, E: x, F: y}
}

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Rotate returns a rotation by angle radians about the origin.
// Positive angles rotate from +x toward +y.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// RotateAbout returns a rotation by angle radians about (x, y).
func RotateAbout(angle, x, y float64) Affine {
	return Translate(x, y).Mul(Rotate(angle)).Mul(Translate(-x, -y))
}

// Shear returns a shear by (sx, sy).
func Shear(sx, sy float64) Affine {
	return Affine{A: 1, B: sy, C: sx, D: 1}
}

// Mul returns the composition a∘b: the transform that applies b first,
// then a.
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Apply transforms the point p.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.A*p.X + a.C*p.Y + a.E,
		Y: a.B*p.X + a.D*p.Y + a.F,
	}
}

// ApplyVector transforms p as a direction vector, ignoring translation.
func (a Affine) ApplyVector(p Point) Point {
	return Point{
		X: a.A*p.X + a.C*p.Y,
		Y: a.B*p.X + a.D*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (a Affine) Determinant() float64 {
	return a.A*a.D - a.B*a.C
}

// Invert returns the inverse transform. It returns ErrSingularMatrix when
// the determinant is within epsilon of zero.
func (a Affine) Invert() (Affine, error) {
	det := a.Determinant()
	if math.Abs(det) < singularEps || !isFinite(det) {
		return Affine{}, ErrSingularMatrix
	}
	inv := 1 / det
	return Affine{
		A: a.D * inv,
		B: -a.B * inv,
		C: -a.C * inv,
		D: a.A * inv,
		E: (a.C*a.F - a.D*a.E) * inv,
		F: (a.B*a.E - a.A*a.F) * inv,
	}, nil
}

// IsIdentity reports whether a is exactly the identity transform.
func (a Affine) IsIdentity() bool {
	return a.A == 1 && a.B == 0 && a.C == 0 && a.D == 1 && a.E == 0 && a.F == 0
}

// IsTranslation reports whether a is a pure translation.
func (a Affine) IsTranslation() bool {
	return a.A == 1 && a.B == 0 && a.C == 0 && a.D == 1
}

// Coefficients returns the six coefficients in (a b c d e f) order, the
// order used by SVG matrix() and PDF cm operators.
func (a Affine) Coefficients() [6]float64 {
	return [6]float64{a.A, a.B, a.C, a.D, a.E, a.F}
}

// MaxScale returns an upper bound on the factor by which a stretches
// distances. Backends use it to translate user-space flattening tolerances
// into device space.
func (a Affine) MaxScale() float64 {
	sx := math.Hypot(a.A, a.B)
	sy := math.Hypot(a.C, a.D)
	return math.Max(sx, sy)
}
