package svg

import (
	"bytes"
	"fmt"
	"image"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/vg"
)

// command is one buffered drawing operation, serialized at Finish.
type command interface {
	emit(s *serializer) error
}

// Context is the SVG implementation of vg.RenderContext. Operations are
// buffered; Finish serializes them to the output writer. After the first
// deferred error the context goes inert and Finish writes nothing.
type Context struct {
	vg.GraphicsState

	out           io.Writer
	width, height float64
	cmds          []command
	engine        *textEngine
}

var _ vg.RenderContext = (*Context)(nil)

// NewContext returns a context that writes a width x height SVG document
// to w on Finish.
func NewContext(w io.Writer, width, height float64) *Context {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Context{
		GraphicsState: vg.NewGraphicsState(),
		out:           w,
		width:         width,
		height:        height,
	}
	c.engine = newTextEngine(c)
	return c
}

// record appends cmd unless the context is inert or finished.
func (c *Context) record(cmd command) {
	if c.Err() != nil {
		return
	}
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	c.cmds = append(c.cmds, cmd)
}

// snapshotPath validates shape and returns its path, detached from the
// caller's builder.
func (c *Context) snapshotPath(shape vg.Shape) (*vg.BezPath, bool) {
	path := shape.Path(vg.DefaultTolerance)
	if err := path.Validate(); err != nil {
		c.SetError(err)
		return nil, false
	}
	return path.Clone(), true
}

// checkBrush rejects gradients under a singular transform, matching the
// behavior of rasterizing backends.
func (c *Context) checkBrush(brush vg.Brush) bool {
	if _, ok := brush.(vg.SolidBrush); ok {
		return true
	}
	if _, err := c.CurrentTransform().Invert(); err != nil {
		c.SetError(err)
		return false
	}
	return true
}

// Restore pops the most recent snapshot, closing clip groups opened since
// the matching Save.
func (c *Context) Restore() error {
	before := c.ClipDepth()
	snap, err := c.GraphicsState.Restore()
	if err != nil {
		return err
	}
	if n := before - snap.ClipDepth; n > 0 {
		c.record(clipEndCmd{n: n})
	}
	return nil
}

// Clip intersects the clip region with the fill area of shape under the
// NonZero rule and the current transform.
func (c *Context) Clip(shape vg.Shape) {
	if c.Err() != nil {
		return
	}
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	path, ok := c.snapshotPath(shape)
	if !ok {
		return
	}
	c.cmds = append(c.cmds, &clipBeginCmd{path: path, transform: c.CurrentTransform()})
	c.PushClip()
}

// Clear fills the entire surface with col, ignoring transform and clip.
func (c *Context) Clear(col vg.Color) {
	c.record(clearCmd{color: col})
}

// Fill paints the interior of shape with brush under rule.
func (c *Context) Fill(shape vg.Shape, brush vg.Brush, rule vg.FillRule) {
	if c.Err() != nil {
		return
	}
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	if !c.checkBrush(brush) {
		return
	}
	path, ok := c.snapshotPath(shape)
	if !ok {
		return
	}
	c.cmds = append(c.cmds, &fillCmd{
		path:      path,
		transform: c.CurrentTransform(),
		brush:     brush,
		rule:      rule,
	})
}

// Stroke outlines shape with brush using the current stroke style. Stroke
// geometry lives in user space and transforms with the path.
func (c *Context) Stroke(shape vg.Shape, brush vg.Brush) {
	if c.Err() != nil {
		return
	}
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	style := c.StrokeStyle()
	if style.Width <= 0 {
		return
	}
	if !c.checkBrush(brush) {
		return
	}
	path, ok := c.snapshotPath(shape)
	if !ok {
		return
	}
	c.cmds = append(c.cmds, &strokeCmd{
		path:      path,
		transform: c.CurrentTransform(),
		brush:     brush,
		style:     style,
	})
}

// Text returns the context's text engine.
func (c *Context) Text() vg.TextEngine {
	return c.engine
}

// DrawText records layout with its origin at pos.
func (c *Context) DrawText(layout vg.TextLayout, pos vg.Point) {
	if c.Err() != nil {
		return
	}
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	tl, ok := layout.(*textLayout)
	if !ok || tl.engine != c.engine {
		c.SetError(invalidHandleError("text layout"))
		return
	}
	c.cmds = append(c.cmds, tl.command(pos, c.CurrentTransform()))
}

// MakeImage copies img into a context-owned image.
func (c *Context) MakeImage(img image.Image) (vg.Image, error) {
	if err := c.Begin(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	cp := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(cp, cp.Bounds(), img, b.Min, xdraw.Src)
	return &svgImage{owner: c, img: cp}, nil
}

// DrawImage records img scaled into the user-space rectangle dst.
func (c *Context) DrawImage(img vg.Image, dst vg.Rect, mode vg.InterpolationMode) {
	if c.Err() != nil {
		return
	}
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	si, ok := img.(*svgImage)
	if !ok || si.owner != c {
		c.SetError(invalidHandleError("image"))
		return
	}
	c.cmds = append(c.cmds, &imageCmd{
		img:       si.img,
		dst:       dst,
		transform: c.CurrentTransform(),
		mode:      mode,
	})
}

// Finish completes rendering. On a clean status the buffered commands are
// serialized to the output writer; on a non-clean status nothing is
// written and the status is returned.
func (c *Context) Finish() error {
	err := c.FinishState()
	if err != nil {
		return err
	}
	return c.serialize()
}

func (c *Context) serialize() error {
	s := &serializer{defs: &defs{}}
	for _, cmd := range c.cmds {
		if err := cmd.emit(s); err != nil {
			return err
		}
	}
	for range s.open {
		s.body.WriteString("</g>")
	}

	var doc bytes.Buffer
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width=%q height=%q viewBox="0 0 %s %s">`,
		ftoa(c.width), ftoa(c.height), ftoa(c.width), ftoa(c.height))
	doc.WriteString("\n")
	if s.defs.buf.Len() > 0 {
		doc.WriteString("<defs>")
		doc.Write(s.defs.buf.Bytes())
		doc.WriteString("</defs>\n")
	}
	doc.Write(s.body.Bytes())
	doc.WriteString("\n</svg>\n")

	if _, err := c.out.Write(doc.Bytes()); err != nil {
		return vg.BackendError(err)
	}
	return nil
}

// svgImage is a context-owned image handle.
type svgImage struct {
	owner *Context
	img   *image.NRGBA
}

func (i *svgImage) Size() (int, int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

func invalidHandleError(kind string) error {
	vg.Logger().Warn("foreign resource handle rejected", "kind", kind)
	return fmt.Errorf("%w: %s created by another context", vg.ErrInvalidInput, kind)
}
