package vg

import "math"

// rootEps is the slack allowed when filtering roots to the unit interval,
// so that roots at 0 or 1 perturbed by floating-point noise are kept.
const rootEps = 1e-12

// solveQuadratic returns the real roots of a*t^2 + b*t + c = 0.
// Degenerate (linear or constant) equations are handled; coincident roots
// are returned once.
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < rootEps {
		if math.Abs(b) < rootEps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	// Citardauq form on one root avoids cancellation when b dominates.
	sq := math.Sqrt(disc)
	q := -0.5 * (b + math.Copysign(sq, b))
	r1 := q / a
	r2 := c / q
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2}
}

// solveQuadraticInUnitInterval returns the roots of a*t^2 + b*t + c = 0
// clamped-filtered to [0, 1].
func solveQuadraticInUnitInterval(a, b, c float64) []float64 {
	return filterUnitInterval(solveQuadratic(a, b, c))
}

// filterUnitInterval keeps roots in [0, 1], clamping values within rootEps
// of the boundary onto it.
func filterUnitInterval(roots []float64) []float64 {
	out := roots[:0]
	for _, t := range roots {
		switch {
		case t >= 0 && t <= 1:
			out = append(out, t)
		case t > -rootEps && t < 0:
			out = append(out, 0)
		case t > 1 && t < 1+rootEps:
			out = append(out, 1)
		}
	}
	return out
}
