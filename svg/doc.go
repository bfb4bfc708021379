// Package svg implements a vector-serialization backend: a
// vg.RenderContext that buffers drawing commands and writes them out as
// SVG markup on Finish.
//
// Commands serialize in call order. Transforms are emitted as
// matrix(a b c d e f) attributes; gradients and clip paths become defs
// referenced by id. Errors accumulate in the context's deferred status;
// once the status is non-clean the context goes inert and Finish writes
// nothing, so a failed render never produces partial output.
package svg
