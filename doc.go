// Package vg defines a backend-agnostic 2D vector graphics API: one set of
// drawing primitives (paths, shapes, brushes, text layouts, images) that
// multiple renderers implement with identical semantics.
//
// The module is split into a core and a set of backend adapters:
//
//   - vg (this package): geometry kernel, brush and color model, the
//     RenderContext interface with its graphics-state machine, and the
//     text-layout interfaces.
//   - raster: software renderer targeting an in-memory RGBA surface.
//   - svg: vector-serialization renderer emitting SVG markup.
//   - pdf: vector-serialization renderer over gofpdf.
//   - backend: registry and factory selecting an adapter by name or
//     priority.
//
// # Drawing model
//
// A RenderContext owns a current transform, a clip region, and a stroke
// style, managed as a snapshot stack via Save and Restore. Fill and Stroke
// render a Shape under the current transform and clip using a Brush. Text is
// drawn from immutable TextLayout objects produced by the context's
// TextEngine, preserving the glyph placement the layout computed.
//
// Backends may buffer commands; errors detected late surface through Status
// and Finish rather than corrupting output. Once a buffering backend's
// status is non-clean, subsequent operations are inert.
//
// # Resource ownership
//
// Brushes are plain values and may be shared freely. Image and TextLayout
// handles are bound to the context that created them; using a handle against
// a different context is a checked error (ErrInvalidInput), never undefined
// behavior.
//
// # Concurrency
//
// A RenderContext is single-threaded. Independent contexts may run on
// separate goroutines as long as they do not share Image or TextLayout
// handles.
package vg
