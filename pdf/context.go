package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/vg"
)

// Context is the PDF implementation of vg.RenderContext. It renders into
// a one-page document written to the output writer on Finish.
type Context struct {
	vg.GraphicsState

	doc       *gofpdf.Fpdf
	out       io.Writer
	tolerance float64
	engine    *textEngine

	// clipStack holds the device-space polygons of active clip layers so
	// Clear can drop and re-establish them.
	clipStack [][][]gofpdf.PointType
	absorbed  bool
	images    int
}

var _ vg.RenderContext = (*Context)(nil)

// NewContext returns a context rendering a width x height page (in
// points) to w on Finish.
func NewContext(w io.Writer, width, height float64) *Context {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	c := &Context{
		GraphicsState: vg.NewGraphicsState(),
		doc:           doc,
		out:           w,
		tolerance:     vg.DefaultTolerance,
	}
	c.engine = newTextEngine(c)
	return c
}

// absorbDocError folds gofpdf's sticky internal error into the deferred
// status once.
func (c *Context) absorbDocError() {
	if c.absorbed || !c.doc.Err() {
		return
	}
	c.absorbed = true
	c.SetError(vg.BackendError(c.doc.Error()))
}

// Status returns the accumulated deferred error, including any pending
// document error, and clears it.
func (c *Context) Status() error {
	c.absorbDocError()
	return c.GraphicsState.Status()
}

// devicePath validates shape and returns its path with the current
// transform baked into the control points.
func (c *Context) devicePath(shape vg.Shape) (*vg.BezPath, bool) {
	path := shape.Path(c.tolerance)
	if err := path.Validate(); err != nil {
		c.SetError(err)
		return nil, false
	}
	return path.Transform(c.CurrentTransform()), true
}

// emitPath writes path into the document's current path buffer.
func (c *Context) emitPath(path *vg.BezPath) {
	for _, seg := range path.Segments() {
		switch s := seg.(type) {
		case vg.MoveTo:
			c.doc.MoveTo(s.P.X, s.P.Y)
		case vg.LineTo:
			c.doc.LineTo(s.P.X, s.P.Y)
		case vg.QuadTo:
			c.doc.CurveTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
		case vg.CurveTo:
			c.doc.CurveBezierCubicTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y)
		case vg.ClosePath:
			c.doc.ClosePath()
		}
	}
}

// checkBrush rejects gradients under a singular transform.
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

// Restore pops the most recent snapshot, closing clip regions opened
// since the matching Save.
func (c *Context) Restore() error {
	snap, err := c.GraphicsState.Restore()
	if err != nil {
		return err
	}
	c.popClipLayers(snap.ClipDepth)
	return nil
}

// clipPolygons flattens shape under the current transform into closed
// device-space polygons.
func (c *Context) clipPolygons(shape vg.Shape) ([][]gofpdf.PointType, bool) {
	path, ok := c.devicePath(shape)
	if !ok {
		return nil, false
	}
	var out [][]gofpdf.PointType
	for _, poly := range path.Flatten(c.tolerance) {
		if len(poly.Points) < 3 {
			continue
		}
		pts := make([]gofpdf.PointType, len(poly.Points))
		for i, p := range poly.Points {
			pts[i] = gofpdf.PointType{X: p.X, Y: p.Y}
		}
		out = append(out, pts)
	}
	return out, true
}

// applyClip establishes one clip layer from its polygons. Subpaths
// intersect, which loses holes; gofpdf exposes no even-odd region
// clipping.
func (c *Context) applyClip(polys [][]gofpdf.PointType) {
	for _, pts := range polys {
		c.doc.ClipPolygon(pts, false)
	}
	if len(polys) == 0 {
		// Empty region: clip everything out.
		c.doc.ClipRect(0, 0, 0, 0, false)
	}
}

// clipEndLayer closes the nested polygon clips of one layer.
func (c *Context) clipEndLayer(polys [][]gofpdf.PointType) {
	n := len(polys)
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		c.doc.ClipEnd()
	}
}

// Clip intersects the clip region with the fill area of shape under the
// NonZero rule and the current transform.
func (c *Context) Clip(shape vg.Shape) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	polys, ok := c.clipPolygons(shape)
	if !ok {
		return
	}
	c.applyClip(polys)
	c.clipStack = append(c.clipStack, polys)
	c.PushClip()
}

// popClipLayers closes clip layers down to toDepth. Each layer may hold
// several nested polygon clips, one ClipEnd each.
func (c *Context) popClipLayers(toDepth int) {
	for len(c.clipStack) > toDepth {
		layer := c.clipStack[len(c.clipStack)-1]
		c.clipEndLayer(layer)
		c.clipStack = c.clipStack[:len(c.clipStack)-1]
	}
}

// Clear fills the entire page with col, ignoring transform and clip.
// Active clip regions are dropped around the fill and re-established.
func (c *Context) Clear(col vg.Color) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	saved := c.clipStack
	for i := len(saved) - 1; i >= 0; i-- {
		c.clipEndLayer(saved[i])
	}
	w, h := c.doc.GetPageSize()
	c.setFill(col)
	c.doc.Rect(0, 0, w, h, "F")
	c.resetAlpha()
	for _, layer := range saved {
		c.applyClip(layer)
	}
}

func (c *Context) setFill(col vg.Color) {
	r, g, b, _ := col.RGBA8()
	c.doc.SetFillColor(int(r), int(g), int(b))
	c.doc.SetAlpha(col.A, "Normal")
}

func (c *Context) setDraw(col vg.Color) {
	r, g, b, _ := col.RGBA8()
	c.doc.SetDrawColor(int(r), int(g), int(b))
	c.doc.SetAlpha(col.A, "Normal")
}

func (c *Context) resetAlpha() {
	c.doc.SetAlpha(1, "Normal")
}

// Fill paints the interior of shape with brush under rule.
func (c *Context) Fill(shape vg.Shape, brush vg.Brush, rule vg.FillRule) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	if !c.checkBrush(brush) {
		return
	}
	if solid, ok := brush.(vg.SolidBrush); ok {
		path, ok := c.devicePath(shape)
		if !ok {
			return
		}
		c.setFill(solid.Color)
		c.emitPath(path)
		if rule == vg.EvenOdd {
			c.doc.DrawPath("F*")
		} else {
			c.doc.DrawPath("F")
		}
		c.resetAlpha()
		return
	}
	c.fillGradient(shape, brush)
}

// fillGradient paints a gradient brush by clipping to the shape's
// flattened subpaths and shading their bounding box. gofpdf shadings
// interpolate two colors, so interior stops collapse to the endpoints.
func (c *Context) fillGradient(shape vg.Shape, brush vg.Brush) {
	polys, ok := c.clipPolygons(shape)
	if !ok || len(polys) == 0 {
		return
	}
	ctm := c.CurrentTransform()
	for _, pts := range polys {
		minX, minY := pts[0].X, pts[0].Y
		maxX, maxY := minX, minY
		for _, p := range pts[1:] {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
		w, h := maxX-minX, maxY-minY
		if w <= 0 || h <= 0 {
			continue
		}
		c.doc.ClipPolygon(pts, false)
		switch g := brush.(type) {
		case *vg.LinearGradient:
			first, last := endpointColors(g.Stops)
			r1, g1, b1, _ := first.RGBA8()
			r2, g2, b2, _ := last.RGBA8()
			s := ctm.Apply(g.Start)
			e := ctm.Apply(g.End)
			c.doc.LinearGradient(minX, minY, w, h,
				int(r1), int(g1), int(b1), int(r2), int(g2), int(b2),
				(s.X-minX)/w, (s.Y-minY)/h, (e.X-minX)/w, (e.Y-minY)/h)
		case *vg.RadialGradient:
			first, last := endpointColors(g.Stops)
			r1, g1, b1, _ := first.RGBA8()
			r2, g2, b2, _ := last.RGBA8()
			ct := ctm.Apply(g.Center)
			radius := g.Radius * ctm.MaxScale()
			fx, fy := (ct.X-minX)/w, (ct.Y-minY)/h
			c.doc.RadialGradient(minX, minY, w, h,
				int(r1), int(g1), int(b1), int(r2), int(g2), int(b2),
				fx, fy, fx, fy, radius/max(w, h))
		}
		c.doc.ClipEnd()
	}
}

func endpointColors(stops []vg.GradientStop) (first, last vg.Color) {
	return stops[0].Color, stops[len(stops)-1].Color
}

// Stroke outlines shape with brush using the current stroke style. The
// path is emitted in user space inside a transform block so width and
// dashes scale with the transform.
func (c *Context) Stroke(shape vg.Shape, brush vg.Brush) {
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
	path := shape.Path(c.tolerance)
	if err := path.Validate(); err != nil {
		c.SetError(err)
		return
	}
	col := vg.Black
	if solid, ok := brush.(vg.SolidBrush); ok {
		col = solid.Color
	} else {
		// PDF shading cannot paint stroke geometry here; approximate with
		// the gradient's first stop.
		switch g := brush.(type) {
		case *vg.LinearGradient:
			col = g.Stops[0].Color
		case *vg.RadialGradient:
			col = g.Stops[0].Color
		}
	}
	c.setDraw(col)
	c.doc.SetLineWidth(style.Width)
	c.doc.SetLineCapStyle(capName(style.Cap))
	c.doc.SetLineJoinStyle(joinName(style.Join))
	if pattern, offset, ok := style.EffectiveDash(); ok {
		c.doc.SetDashPattern(pattern, offset)
	} else {
		c.doc.SetDashPattern(nil, 0)
	}
	c.doc.TransformBegin()
	c.doc.Transform(c.transformMatrix(c.CurrentTransform()))
	c.emitPath(path)
	c.doc.DrawPath("D")
	c.doc.TransformEnd()
	c.resetAlpha()
}

func capName(lc vg.LineCap) string {
	switch lc {
	case vg.CapRound:
		return "round"
	case vg.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(lj vg.LineJoin) string {
	switch lj {
	case vg.JoinRound:
		return "round"
	case vg.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// transformMatrix converts a top-left user-space affine into the
// bottom-left device matrix gofpdf's Transform expects, by conjugating
// with the page's vertical flip.
func (c *Context) transformMatrix(a vg.Affine) gofpdf.TransformMatrix {
	_, h := c.doc.GetPageSize()
	flip := vg.Affine{A: 1, D: -1, F: h}
	m := flip.Mul(a).Mul(flip)
	return gofpdf.TransformMatrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
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

// pdfImage is a context-owned image handle registered with the document.
type pdfImage struct {
	owner  *Context
	name   string
	width  int
	height int
}

func (i *pdfImage) Size() (int, int) {
	return i.width, i.height
}

// MakeImage registers img with the document as a PNG resource.
func (c *Context) MakeImage(img image.Image) (vg.Image, error) {
	if err := c.Begin(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	cp := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(cp, cp.Bounds(), img, b.Min, xdraw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, cp); err != nil {
		return nil, vg.BackendError(err)
	}
	c.images++
	name := fmt.Sprintf("img-%d", c.images)
	c.doc.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	return &pdfImage{owner: c, name: name, width: b.Dx(), height: b.Dy()}, nil
}

// DrawImage draws img scaled into the user-space rectangle dst. PDF
// viewers choose their own resampling; the interpolation mode is advisory
// and not encoded.
func (c *Context) DrawImage(img vg.Image, dst vg.Rect, _ vg.InterpolationMode) {
	if err := c.Begin(); err != nil {
		c.SetError(err)
		return
	}
	pi, ok := img.(*pdfImage)
	if !ok || pi.owner != c {
		c.SetError(invalidHandleError("image"))
		return
	}
	w, h := dst.Max.X-dst.Min.X, dst.Max.Y-dst.Min.Y
	if w <= 0 || h <= 0 {
		return
	}
	c.doc.TransformBegin()
	c.doc.Transform(c.transformMatrix(c.CurrentTransform()))
	c.doc.ImageOptions(pi.name, dst.Min.X, dst.Min.Y, w, h, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	c.doc.TransformEnd()
}

// Finish completes rendering. On a clean status the document is written
// to the output writer; on a non-clean status nothing is written and the
// status is returned.
func (c *Context) Finish() error {
	c.absorbDocError()
	if err := c.FinishState(); err != nil {
		return err
	}
	c.popClipLayers(0)
	if err := c.doc.Output(c.out); err != nil {
		return vg.BackendError(err)
	}
	return nil
}

func invalidHandleError(kind string) error {
	vg.Logger().Warn("foreign resource handle rejected", "kind", kind)
	return fmt.Errorf("%w: %s created by another context", vg.ErrInvalidInput, kind)
}
