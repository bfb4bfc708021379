package raster

import (
	"image"
	"image/color"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/textlayout"
)

// textLayout implements vg.TextLayout for the raster backend: shared line
// geometry plus the face and color needed for glyph rendering.
type textLayout struct {
	engine *textEngine
	face   font.Face
	color  vg.Color
	layout *textlayout.Layout
}

func f26(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// advances returns the per-rune advance widths of s. Outline fonts go
// through the HarfBuzz shaper; cluster advances (ligatures) are spread
// evenly over the cluster's runes so every rune boundary keeps a position.
func (e *textEngine) advances(res *fontResource, face font.Face, size float64, s string) []float64 {
	runes := []rune(s)
	out := make([]float64, len(runes))
	if len(runes) == 0 {
		return out
	}
	if res != nil {
		for _, cl := range e.shaper.measure(s, res.ts, size) {
			per := cl.advance / float64(cl.runeCount)
			for k := 0; k < cl.runeCount; k++ {
				if i := cl.runeStart + k; i < len(out) {
					out[i] = per
				}
			}
		}
		return out
	}
	prev := rune(-1)
	for i, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance(' ')
		}
		a := f26(adv)
		if prev >= 0 {
			a += f26(face.Kern(prev, r))
		}
		out[i] = a
		prev = r
	}
	return out
}

// buildLayout lays out the builder's text with metrics from face.
func buildLayout(b *layoutBuilder, res *fontResource, face font.Face) (*textLayout, error) {
	m := face.Metrics()
	ascent := f26(m.Ascent)
	descent := f26(m.Descent)
	lineHeight := f26(m.Height)
	if lineHeight < ascent+descent {
		lineHeight = ascent + descent
	}
	layout := textlayout.Build(b.text, textlayout.Options{
		MaxWidth:   b.maxWidth,
		Align:      b.align,
		Ascent:     ascent,
		LineHeight: lineHeight,
	}, func(para string) []float64 {
		return b.engine.advances(res, face, b.size, para)
	})
	return &textLayout{
		engine: b.engine,
		face:   face,
		color:  b.color,
		layout: layout,
	}, nil
}

func (tl *textLayout) Size() (float64, float64) { return tl.layout.Size() }
func (tl *textLayout) Text() string             { return tl.layout.Text }
func (tl *textLayout) LineCount() int           { return tl.layout.LineCount() }

func (tl *textLayout) LineText(i int) (string, bool) {
	return tl.layout.LineText(i)
}

func (tl *textLayout) LineMetric(i int) (vg.LineMetric, bool) {
	return tl.layout.Metric(i)
}

func (tl *textLayout) HitTestPoint(p vg.Point) vg.HitTestPoint {
	return tl.layout.HitTestPoint(p)
}

func (tl *textLayout) HitTestTextPosition(idx int) vg.HitTestPosition {
	return tl.layout.HitTestTextPosition(idx)
}

// drawLayout rasterizes the layout's glyphs with their origin at pos.
// Glyph rasters are upright; the transform positions pen origins.
func (c *Context) drawLayout(tl *textLayout, pos vg.Point) {
	ctm := c.CurrentTransform()
	clip := c.clip()
	for li := range tl.layout.Lines {
		l := &tl.layout.Lines[li]
		lineText, _ := tl.LineText(li)
		baseline := pos.Y + float64(li)*tl.layout.LineHeight + tl.layout.Ascent
		j := 0
		for _, r := range lineText {
			x := pos.X + l.AlignOffset + l.XS[j]
			j++
			if unicode.IsSpace(r) {
				continue
			}
			device := ctm.Apply(vg.Pt(x, baseline))
			c.drawGlyph(tl, r, device, clip)
		}
	}
}

// drawGlyph blends one glyph mask at the device-space pen position.
func (c *Context) drawGlyph(tl *textLayout, r rune, pen vg.Point, clip *clipMask) {
	dot := fixed.Point26_6{
		X: fixed.Int26_6(pen.X * 64),
		Y: fixed.Int26_6(pen.Y * 64),
	}
	dr, mask, maskp, _, ok := tl.face.Glyph(dot, r)
	if !ok {
		vg.Logger().Debug("glyph missing from face", "rune", string(r))
		return
	}
	alphaMask, _ := mask.(*image.Alpha)
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			var ma uint8
			mx, my := maskp.X+(x-dr.Min.X), maskp.Y+(y-dr.Min.Y)
			if alphaMask != nil {
				ma = alphaMask.Pix[(my-alphaMask.Rect.Min.Y)*alphaMask.Stride+(mx-alphaMask.Rect.Min.X)]
			} else {
				a := color.AlphaModel.Convert(mask.At(mx, my)).(color.Alpha)
				ma = a.A
			}
			if ma == 0 {
				continue
			}
			cov := float64(ma) / 255 * clip.at(x, y)
			if cov > 0 {
				c.pixmap.BlendPixel(x, y, tl.color, cov)
			}
		}
	}
}
