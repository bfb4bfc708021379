package raster

import (
	"image"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend"
)

func init() {
	backend.Register("raster", 10, newTarget, nil)
}

// target adapts a Context to the backend.Target interface.
type target struct {
	ctx *Context
}

func newTarget(opts backend.Options) (backend.Target, error) {
	return &target{ctx: NewContext(int(opts.Width), int(opts.Height))}, nil
}

func (t *target) Context() vg.RenderContext {
	return t.ctx
}

func (t *target) Close() error {
	return t.ctx.Finish()
}

// Image returns the rendered surface. Call it after Close.
func (t *target) Image() *image.RGBA {
	return t.ctx.Image()
}

var _ backend.ImageTarget = (*target)(nil)
