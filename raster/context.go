package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/vg"
)

// Option configures a Context.
type Option func(*Context)

// WithTolerance sets the curve flattening tolerance in device pixels.
func WithTolerance(tol float64) Option {
	return func(c *Context) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithBackground fills the surface with c before drawing starts.
func WithBackground(c vg.Color) Option {
	return func(ctx *Context) {
		ctx.pixmap.Clear(c)
	}
}

// Context is the software implementation of vg.RenderContext. It renders
// into a Pixmap; after Finish the result is read with Image or EncodePNG.
type Context struct {
	vg.GraphicsState

	pixmap    *Pixmap
	clips     []*clipMask // intersected masks, one per active clip layer
	tolerance float64
	engine    *textEngine
}

var _ vg.RenderContext = (*Context)(nil)

// NewContext returns a context rendering into a transparent width x height
// surface.
func NewContext(width, height int, opts ...Option) *Context {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Context{
		GraphicsState: vg.NewGraphicsState(),
		pixmap:        NewPixmap(width, height),
		tolerance:     vg.DefaultTolerance,
	}
	c.engine = newTextEngine(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// clip returns the active clip mask, nil when unclipped.
func (c *Context) clip() *clipMask {
	if len(c.clips) == 0 {
		return nil
	}
	return c.clips[len(c.clips)-1]
}

// Restore pops the most recent snapshot, unwinding clip layers added
// since the matching Save.
func (c *Context) Restore() error {
	snap, err := c.GraphicsState.Restore()
	if err != nil {
		return err
	}
	if snap.ClipDepth < len(c.clips) {
		c.clips = c.clips[:snap.ClipDepth]
	}
	return nil
}

// Clip intersects the clip region with the fill area of shape under the
// NonZero rule and the current transform.
func (c *Context) Clip(shape vg.Shape) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	polys := c.devicePolylines(shape)
	mask := newClipMask(c.pixmap.Width(), c.pixmap.Height())
	spanPolylines(polys, vg.NonZero, mask.width, mask.height, mask.span)
	c.clips = append(c.clips, c.clip().intersect(mask))
	c.PushClip()
}

// Clear fills the entire surface with col, ignoring transform and clip.
func (c *Context) Clear(col vg.Color) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	c.pixmap.Clear(col)
}

// devicePolylines converts shape to flattened device-space subpaths.
func (c *Context) devicePolylines(shape vg.Shape) []vg.Polyline {
	path := shape.Path(c.tolerance)
	if err := path.Validate(); err != nil {
		c.SetError(err)
		return nil
	}
	return path.Transform(c.CurrentTransform()).Flatten(c.tolerance)
}

// paintFor builds the per-pixel paint function for brush, mapping device
// pixels back to user space for gradients.
func (c *Context) paintFor(brush vg.Brush) (paintFunc, bool) {
	if solid, ok := brush.(vg.SolidBrush); ok {
		return solidPaint(solid.Color), true
	}
	inv, err := c.CurrentTransform().Invert()
	if err != nil {
		c.SetError(err)
		return nil, false
	}
	return brushPaint(brush, inv), true
}

// Fill paints the interior of shape with brush under rule.
func (c *Context) Fill(shape vg.Shape, brush vg.Brush, rule vg.FillRule) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	paint, ok := c.paintFor(brush)
	if !ok {
		return
	}
	polys := c.devicePolylines(shape)
	if len(polys) == 0 {
		return
	}
	fillPolylines(c.pixmap, polys, rule, paint, c.clip())
}

// Stroke outlines shape with brush using the current stroke style. Stroke
// geometry (width, dashes) lives in user space and transforms with the
// path.
func (c *Context) Stroke(shape vg.Shape, brush vg.Brush) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	style := c.StrokeStyle()
	if style.Width <= 0 {
		return
	}
	paint, ok := c.paintFor(brush)
	if !ok {
		return
	}
	ctm := c.CurrentTransform()
	// Flatten in user space, tightened by the transform's magnification so
	// the device-space error stays within tolerance.
	userTol := c.tolerance
	if s := ctm.MaxScale(); s > 1 {
		userTol /= s
	}
	path := shape.Path(userTol)
	if err := path.Validate(); err != nil {
		c.SetError(err)
		return
	}
	outline := strokePolylines(path.Flatten(userTol), style, userTol)
	for i, poly := range outline {
		pts := make([]vg.Point, len(poly.Points))
		for j, p := range poly.Points {
			pts[j] = ctm.Apply(p)
		}
		outline[i].Points = pts
	}
	fillPolylines(c.pixmap, outline, vg.NonZero, paint, c.clip())
}

// Text returns the context's text engine.
func (c *Context) Text() vg.TextEngine {
	return c.engine
}

// DrawText renders layout with its origin at pos.
func (c *Context) DrawText(layout vg.TextLayout, pos vg.Point) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	tl, ok := layout.(*textLayout)
	if !ok || tl.engine != c.engine {
		c.SetError(invalidHandleError("text layout"))
		return
	}
	c.drawLayout(tl, pos)
}

// MakeImage uploads img into a context-owned image.
func (c *Context) MakeImage(img image.Image) (vg.Image, error) {
	if err := c.Begin(); err != nil {
		return nil, err
	}
	return makeImage(c, img), nil
}

// DrawImage draws img scaled into the user-space rectangle dst.
func (c *Context) DrawImage(img vg.Image, dst vg.Rect, mode vg.InterpolationMode) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	ri, ok := img.(*rasterImage)
	if !ok || ri.owner != c {
		c.SetError(invalidHandleError("image"))
		return
	}
	drawImage(c.pixmap, ri, dst, c.CurrentTransform(), mode, c.clip())
}

// Finish completes rendering. The surface stays readable afterwards.
func (c *Context) Finish() error {
	return c.FinishState()
}

// Image returns the rendered surface as a premultiplied RGBA image.
// Call it after Finish.
func (c *Context) Image() *image.RGBA {
	return c.pixmap.ToRGBA()
}

// EncodePNG writes the rendered surface as PNG.
func (c *Context) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.pixmap.NRGBA()); err != nil {
		return vg.BackendError(err)
	}
	return nil
}

func invalidHandleError(kind string) error {
	vg.Logger().Warn("foreign resource handle rejected", "kind", kind)
	return fmt.Errorf("%w: %s created by another context", vg.ErrInvalidInput, kind)
}
