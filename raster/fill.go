package raster

import (
	"math"
	"sort"

	"github.com/gogpu/vg"
)

// edge is one polygon edge prepared for scanline traversal, stored with
// y0 < y1 and dir carrying the original winding direction.
type edge struct {
	x0, y0, x1, y1 float64
	dir            int
}

// buildEdges collects the edges of all subpaths in device space. Open
// subpaths are implicitly closed, matching fill semantics.
func buildEdges(polys []vg.Polyline) []edge {
	var edges []edge
	for _, sub := range polys {
		pts := sub.Points
		n := len(pts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := pts[i]
			b := pts[(i+1)%n]
			if a.Y == b.Y {
				continue // horizontal edges never cross a scanline center
			}
			dir := 1
			if a.Y > b.Y {
				a, b = b, a
				dir = -1
			}
			edges = append(edges, edge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, dir: dir})
		}
	}
	return edges
}

type crossing struct {
	x   float64
	dir int
}

// spanPolylines rasterizes the fill area of polys, calling span for each
// covered pixel run [x0, x1) on row y. Pixel centers at (x+0.5, y+0.5)
// decide coverage.
func spanPolylines(polys []vg.Polyline, rule vg.FillRule, width, height int, span func(y, x0, x1 int)) {
	edges := buildEdges(polys)
	if len(edges) == 0 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, e := range edges {
		minY = math.Min(minY, e.y0)
		maxY = math.Max(maxY, e.y1)
	}
	y0 := int(math.Floor(minY - 0.5))
	y1 := int(math.Ceil(maxY + 0.5))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > height {
		y1 = height
	}

	var xs []crossing
	for y := y0; y < y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			if yc < e.y0 || yc >= e.y1 {
				continue
			}
			t := (yc - e.y0) / (e.y1 - e.y0)
			xs = append(xs, crossing{x: e.x0 + t*(e.x1-e.x0), dir: e.dir})
		}
		if len(xs) < 2 {
			continue
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })

		winding := 0
		inside := false
		var spanStart float64
		for _, c := range xs {
			winding += c.dir
			nowInside := winding != 0
			if rule == vg.EvenOdd {
				nowInside = winding%2 != 0
			}
			if nowInside && !inside {
				spanStart = c.x
				inside = true
			} else if !nowInside && inside {
				emitSpan(y, spanStart, c.x, width, span)
				inside = false
			}
		}
	}
}

// emitSpan converts the covered interval [xa, xb) to pixel indices whose
// centers fall inside it.
func emitSpan(y int, xa, xb float64, width int, span func(y, x0, x1 int)) {
	x0 := int(math.Ceil(xa - 0.5))
	x1 := int(math.Ceil(xb - 0.5))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if x0 < x1 {
		span(y, x0, x1)
	}
}

// paintFunc returns the brush color for the pixel whose center is at
// device coordinates (x+0.5, y+0.5).
type paintFunc func(x, y int) vg.Color

// fillPolylines composites the fill area of polys onto dst through the
// clip mask.
func fillPolylines(dst *Pixmap, polys []vg.Polyline, rule vg.FillRule, paint paintFunc, clip *clipMask) {
	spanPolylines(polys, rule, dst.Width(), dst.Height(), func(y, x0, x1 int) {
		for x := x0; x < x1; x++ {
			cov := clip.at(x, y)
			if cov <= 0 {
				continue
			}
			dst.BlendPixel(x, y, paint(x, y), cov)
		}
	})
}

// solidPaint returns a paint function for a constant color.
func solidPaint(c vg.Color) paintFunc {
	return func(int, int) vg.Color { return c }
}

// brushPaint returns a paint function evaluating brush in user space:
// inv maps device coordinates back through the transform the geometry was
// rendered under.
func brushPaint(brush vg.Brush, inv vg.Affine) paintFunc {
	if solid, ok := brush.(vg.SolidBrush); ok {
		return solidPaint(solid.Color)
	}
	return func(x, y int) vg.Color {
		device := vg.Pt(float64(x)+0.5, float64(y)+0.5)
		return brush.ColorAt(inv.Apply(device))
	}
}
