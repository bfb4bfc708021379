package svg

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/opentype"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/textlayout"
)

// Nominal metrics as fractions of the font size. SVG output delegates
// glyph rendering to the viewer, so layout uses a fixed-advance model;
// the serialized font-size and positions keep lines where the layout
// placed them.
const (
	advanceEm = 0.6
	ascentEm  = 0.8
	descentEm = 0.2
	leadingEm = 0.2
)

// textEngine builds layouts with fixed nominal metrics and serializes
// them as text elements.
type textEngine struct {
	owner *Context

	mu     sync.Mutex
	loaded int
	known  map[vg.FontFamily]bool
}

func newTextEngine(owner *Context) *textEngine {
	return &textEngine{
		owner: owner,
		known: map[vg.FontFamily]bool{
			vg.FamilySerif:     true,
			vg.FamilySansSerif: true,
			vg.FamilyMonospace: true,
		},
	}
}

// LoadFont validates data as an OpenType font and registers a family
// name for it. The font itself is not embedded in the output; viewers
// substitute by name.
func (e *textEngine) LoadFont(data []byte) (vg.FontFamily, error) {
	if _, err := opentype.Parse(data); err != nil {
		return "", fmt.Errorf("%w: parse font: %v", vg.ErrInvalidInput, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loaded++
	family := vg.FontFamily(fmt.Sprintf("loaded-%d", e.loaded))
	e.known[family] = true
	return family, nil
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
	e := b.engine
	e.mu.Lock()
	ok := e.known[b.family]
	e.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown font family %q", vg.ErrInvalidInput, b.family)
	}
	if b.size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", vg.ErrInvalidInput, b.size)
	}
	adv := advanceEm * b.size
	layout := textlayout.Build(b.text, textlayout.Options{
		MaxWidth:   b.width,
		Align:      b.align,
		Ascent:     ascentEm * b.size,
		LineHeight: (ascentEm + descentEm + leadingEm) * b.size,
	}, func(para string) []float64 {
		out := make([]float64, 0, len(para))
		for range para {
			out = append(out, adv)
		}
		return out
	})
	return &textLayout{
		engine: e,
		layout: layout,
		family: b.family,
		size:   b.size,
		weight: b.weight,
		color:  b.color,
	}, nil
}

// textLayout implements vg.TextLayout over the shared line geometry.
type textLayout struct {
	engine *textEngine
	layout *textlayout.Layout
	family vg.FontFamily
	size   float64
	weight vg.FontWeight
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

// command snapshots the layout as a serializable text command with its
// origin at pos.
func (tl *textLayout) command(pos vg.Point, ctm vg.Affine) *textCmd {
	cmd := &textCmd{
		transform: ctm,
		color:     tl.color,
		family:    cssFamily(tl.family),
		size:      tl.size,
		weight:    tl.weight,
	}
	for i := range tl.layout.Lines {
		l := &tl.layout.Lines[i]
		text, _ := tl.layout.LineText(i)
		cmd.spans = append(cmd.spans, textSpan{
			x:    pos.X + l.AlignOffset,
			y:    pos.Y + float64(i)*tl.layout.LineHeight + tl.layout.Ascent,
			text: text,
		})
	}
	return cmd
}

// cssFamily maps a family to its CSS font-family value. Loaded fonts
// keep their registered name.
func cssFamily(f vg.FontFamily) string {
	switch f {
	case vg.FamilySerif:
		return "serif"
	case vg.FamilySansSerif:
		return "sans-serif"
	case vg.FamilyMonospace:
		return "monospace"
	default:
		return string(f)
	}
}
