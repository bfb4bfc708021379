package vg

import "image"

// FillRule selects how self-intersecting paths classify interior points.
type FillRule uint8

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points crossed an odd number of times.
	EvenOdd
)

// InterpolationMode selects the filter used when drawing images.
type InterpolationMode uint8

const (
	// InterpNearest uses nearest-neighbor sampling.
	InterpNearest InterpolationMode = iota
	// InterpBilinear uses bilinear filtering.
	InterpBilinear
)

// Image is a backend-resident image created by RenderContext.MakeImage.
// A handle is only valid with the context that created it; other contexts
// reject it with ErrInvalidInput.
type Image interface {
	// Size returns the pixel dimensions of the image.
	Size() (width, height int)
}

// RenderContext is the drawing contract every backend implements. A
// context starts Idle, moves to Drawing on the first operation, and ends
// Finished after Finish; operations after Finish fail with
// ErrUnbalancedState.
//
// Drawing operations do not return errors. Failures detected during or
// after an operation accumulate in the context's deferred status and
// surface through Status or Finish; buffering backends additionally go
// inert (subsequent operations are dropped) so no partial output is
// produced.
type RenderContext interface {
	// Save pushes a snapshot of the transform, clip and stroke style.
	Save() error

	// Restore pops the most recent snapshot. Restoring with no matching
	// Save returns ErrUnbalancedState and leaves the state unchanged.
	Restore() error

	// Transform composes a with the current transform; the new transform
	// applies a in the previously established coordinate system.
	Transform(a Affine)

	// CurrentTransform returns the active transform.
	CurrentTransform() Affine

	// SetStrokeStyle replaces the current stroke style. The style is part
	// of the saved state.
	SetStrokeStyle(style StrokeStyle)

	// Clip intersects the clip region with the fill area of shape under
	// the NonZero rule and the current transform. Clips only shrink; the
	// only way to grow the region is Restore.
	Clip(shape Shape)

	// Clear fills the entire target with c, ignoring transform and clip.
	Clear(c Color)

	// Fill paints the interior of shape with brush under rule.
	Fill(shape Shape, brush Brush, rule FillRule)

	// Stroke outlines shape with brush using the current stroke style.
	Stroke(shape Shape, brush Brush)

	// Text returns the context's text engine. Layouts it produces are
	// bound to this context.
	Text() TextEngine

	// DrawText renders a layout with its text origin at pos. The painted
	// glyph positions reproduce the layout's computed placement.
	DrawText(layout TextLayout, pos Point)

	// MakeImage uploads img into a backend-resident image.
	MakeImage(img image.Image) (Image, error)

	// DrawImage draws img scaled into the user-space rectangle dst.
	DrawImage(img Image, dst Rect, mode InterpolationMode)

	// Status returns the accumulated deferred error, or nil, and clears
	// it.
	Status() error

	// Finish completes rendering, materializes buffered output, and moves
	// the context to Finished. It returns the final status, including
	// ErrUnbalancedState when saves are left unbalanced.
	Finish() error
}
