package svg

import (
	"fmt"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend"
)

func init() {
	backend.Register("svg", 5, newTarget, nil)
}

// target adapts a Context to the backend.Target interface.
type target struct {
	ctx *Context
}

func newTarget(opts backend.Options) (backend.Target, error) {
	if opts.Writer == nil {
		return nil, fmt.Errorf("%w: svg backend requires a writer", vg.ErrInvalidInput)
	}
	return &target{ctx: NewContext(opts.Writer, opts.Width, opts.Height)}, nil
}

func (t *target) Context() vg.RenderContext {
	return t.ctx
}

func (t *target) Close() error {
	return t.ctx.Finish()
}
