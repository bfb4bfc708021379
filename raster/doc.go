// Package raster implements the software rendering backend: a
// vg.RenderContext that paints into an in-memory RGBA surface.
//
// Paths are flattened to polylines and filled with a scanline algorithm
// supporting both winding rules. Strokes are expanded into fill polygons
// with caps, joins and dashing. Clipping is a per-pixel coverage mask.
// Images are composited through golang.org/x/image/draw. Text uses
// golang.org/x/image/font faces, with an embedded Latin Modern default and
// HarfBuzz-quality measurement via go-text/typesetting for loaded fonts.
package raster
