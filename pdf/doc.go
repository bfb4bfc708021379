// Package pdf implements a vg.RenderContext that renders into a
// single-page PDF document via gofpdf.
//
// Coordinates map one to one: one user-space unit is one PDF point, with
// the origin at the top-left corner. Fill paths are emitted with the
// current transform baked into their control points, which an affine map
// preserves exactly; strokes, text and images run inside a PDF transform
// block so line widths and glyphs scale with the transform the way the
// raster backend renders them.
//
// gofpdf keeps its own sticky internal error. It is folded into the
// context's deferred status, so callers observe backend failures through
// Status and Finish like on every other backend.
package pdf
