package pdf

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/opentype"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/textlayout"
)

// coreFonts maps generic families to the PDF base-14 fonts, which every
// viewer renders without embedding.
var coreFonts = map[vg.FontFamily]string{
	vg.FamilySerif:     "Times",
	vg.FamilySansSerif: "Helvetica",
	vg.FamilyMonospace: "Courier",
}

// textEngine builds layouts measured with the document's font metrics.
type textEngine struct {
	owner *Context

	mu     sync.Mutex
	nextID int
	loaded map[vg.FontFamily]string // registered UTF-8 fonts
}

func newTextEngine(owner *Context) *textEngine {
	return &textEngine{
		owner:  owner,
		loaded: map[vg.FontFamily]string{},
	}
}

// LoadFont embeds data as a UTF-8 TrueType font and registers a family
// name for it.
func (e *textEngine) LoadFont(data []byte) (vg.FontFamily, error) {
	if _, err := opentype.Parse(data); err != nil {
		return "", fmt.Errorf("%w: parse font: %v", vg.ErrInvalidInput, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	name := fmt.Sprintf("loaded-%d", e.nextID)
	e.owner.doc.AddUTF8FontFromBytes(name, "", data)
	family := vg.FontFamily(name)
	e.loaded[family] = name
	return family, nil
}

// resolve maps a family and weight to the document font name and style.
// Loaded fonts are registered in the regular style only.
func (e *textEngine) resolve(family vg.FontFamily, weight vg.FontWeight) (name, style string, err error) {
	if name, ok := coreFonts[family]; ok {
		if weight >= 600 {
			return name, "B", nil
		}
		return name, "", nil
	}
	e.mu.Lock()
	name, ok := e.loaded[family]
	e.mu.Unlock()
	if !ok {
		return "", "", fmt.Errorf("%w: unknown font family %q", vg.ErrInvalidInput, family)
	}
	return name, "", nil
}

func (e *textEngine) NewTextLayout(text string) vg.TextLayoutBuilder {
	return &layoutBuilder{
		engine: e,
		text:   text,
		family: vg.FamilySerif,
		size:   12,
		weight: vg.WeightNormal,
		color:  vg.Black,
		width:  vg.NoWrap,
	}
}

type layoutBuilder struct {
	engine *textEngine
	text   string
	family vg.FontFamily
	size   float64
	weight vg.FontWeight
	color  vg.Color
	width  float64
	align  vg.TextAlignment
}

func (b *layoutBuilder) Font(family vg.FontFamily, size float64) vg.TextLayoutBuilder {
	b.family = family
	b.size = size
	return b
}

func (b *layoutBuilder) Weight(w vg.FontWeight) vg.TextLayoutBuilder {
	b.weight = w
	return b
}

func (b *layoutBuilder) Color(c vg.Color) vg.TextLayoutBuilder {
	b.color = c
	return b
}

func (b *layoutBuilder) MaxWidth(width float64) vg.TextLayoutBuilder {
	b.width = width
	return b
}

func (b *layoutBuilder) Alignment(a vg.TextAlignment) vg.TextLayoutBuilder {
	b.align = a
	return b
}

func (b *layoutBuilder) Build() (vg.TextLayout, error) {
	if b.size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", vg.ErrInvalidInput, b.size)
	}
	e := b.engine
	name, style, err := e.resolve(b.family, b.weight)
	if err != nil {
		return nil, err
	}
	doc := e.owner.doc
	doc.SetFont(name, style, b.size)

	fd := doc.GetFontDesc(name, style)
	ascent := b.size * float64(fd.Ascent) / 1000
	descent := -b.size * float64(fd.Descent) / 1000
	if ascent <= 0 {
		ascent, descent = 0.8*b.size, 0.2*b.size
	}
	layout := textlayout.Build(b.text, textlayout.Options{
		MaxWidth:   b.width,
		Align:      b.align,
		Ascent:     ascent,
		LineHeight: 1.2 * (ascent + descent),
	}, func(para string) []float64 {
		out := make([]float64, 0, len(para))
		for _, r := range para {
			out = append(out, doc.GetStringWidth(string(r)))
		}
		return out
	})
	return &textLayout{
		engine: e,
		layout: layout,
		name:   name,
		style:  style,
		size:   b.size,
		color:  b.color,
	}, nil
}

// textLayout implements vg.TextLayout over the shared line geometry.
type textLayout struct {
	engine *textEngine
	layout *textlayout.Layout
	name   string
	style  string
	size   float64
	color  vg.Color
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

// drawLayout writes the layout's lines as PDF text with the origin at
// pos, inside a transform block.
func (c *Context) drawLayout(tl *textLayout, pos vg.Point) {
	doc := c.doc
	doc.SetFont(tl.name, tl.style, tl.size)
	r, g, b, _ := tl.color.RGBA8()
	doc.SetTextColor(int(r), int(g), int(b))
	doc.SetAlpha(tl.color.A, "Normal")
	doc.TransformBegin()
	doc.Transform(c.transformMatrix(c.CurrentTransform()))
	for i := range tl.layout.Lines {
		l := &tl.layout.Lines[i]
		text, _ := tl.layout.LineText(i)
		if text == "" {
			continue
		}
		x := pos.X + l.AlignOffset
		y := pos.Y + float64(i)*tl.layout.LineHeight + tl.layout.Ascent
		doc.Text(x, y, text)
	}
	doc.TransformEnd()
	c.resetAlpha()
}
