package raster

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	tsfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/vg"
)

// fontResource is one loaded font: the sfnt form for rasterization and the
// typesetting form for shaped measurement. Both are nil for the builtin
// bitmap face.
type fontResource struct {
	family vg.FontFamily
	sfnt   *sfnt.Font
	ts     *tsfont.Font
}

// builtinFonts maps the generic families to embedded font data.
// Monospace maps to nil: it uses the builtin bitmap face.
var builtinFonts = map[vg.FontFamily]map[vg.FontWeight][]byte{
	vg.FamilySerif: {
		vg.WeightNormal: lmroman10regular.TTF,
		vg.WeightBold:   lmroman10bold.TTF,
	},
	vg.FamilySansSerif: {
		vg.WeightNormal: lmsans10regular.TTF,
		vg.WeightBold:   lmsans10bold.TTF,
	},
	vg.FamilyMonospace: nil,
}

type resourceKey struct {
	family vg.FontFamily
	bold   bool
}

// textEngine implements vg.TextEngine for the raster backend.
type textEngine struct {
	owner  *Context
	shaper *shaper

	mu        sync.Mutex
	resources map[resourceKey]*fontResource
	loaded    int
}

func newTextEngine(owner *Context) *textEngine {
	return &textEngine{
		owner:     owner,
		shaper:    newShaper(),
		resources: make(map[resourceKey]*fontResource),
	}
}

// parseFont parses font data into both representations.
func parseFont(family vg.FontFamily, data []byte) (*fontResource, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing font: %v", vg.ErrInvalidInput, err)
	}
	tf, err := tsfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing font: %v", vg.ErrInvalidInput, err)
	}
	return &fontResource{family: family, sfnt: sf, ts: tf.Font}, nil
}

// LoadFont registers TTF/OTF data under a fresh family name.
func (e *textEngine) LoadFont(data []byte) (vg.FontFamily, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	family := vg.FontFamily(fmt.Sprintf("loaded-%d", e.loaded+1))
	res, err := parseFont(family, data)
	if err != nil {
		return "", err
	}
	e.loaded++
	e.resources[resourceKey{family: family}] = res
	return family, nil
}

// resolve returns the resource for a family and weight, parsing embedded
// defaults on first use. A nil resource with nil error means the builtin
// bitmap face.
func (e *textEngine) resolve(family vg.FontFamily, weight vg.FontWeight) (*fontResource, error) {
	bold := weight >= 600
	e.mu.Lock()
	defer e.mu.Unlock()
	if res, ok := e.resources[resourceKey{family: family, bold: bold}]; ok {
		return res, nil
	}
	// Loaded fonts carry a single weight.
	if res, ok := e.resources[resourceKey{family: family}]; ok {
		return res, nil
	}
	weights, ok := builtinFonts[family]
	if !ok {
		return nil, fmt.Errorf("%w: unknown font family %q", vg.ErrInvalidInput, family)
	}
	if weights == nil {
		return nil, nil // builtin bitmap face
	}
	data, ok := weights[vg.WeightNormal]
	if bold {
		if b, okB := weights[vg.WeightBold]; okB {
			data = b
		}
	} else if !ok {
		return nil, fmt.Errorf("%w: font family %q has no regular weight", vg.ErrInvalidInput, family)
	}
	res, err := parseFont(family, data)
	if err != nil {
		return nil, err
	}
	e.resources[resourceKey{family: family, bold: bold}] = res
	return res, nil
}

// face builds the drawing face for a resource at size. The builtin bitmap
// face has a fixed size; the requested size only affects outline fonts.
func (e *textEngine) face(res *fontResource, size float64) (font.Face, error) {
	if res == nil {
		return basicfont.Face7x13, nil
	}
	f, err := opentype.NewFace(res.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, vg.BackendError(err)
	}
	return f, nil
}

// NewTextLayout starts a layout builder with the defaults: serif at 12
// units, black, no wrapping.
func (e *textEngine) NewTextLayout(text string) vg.TextLayoutBuilder {
	return &layoutBuilder{
		engine:   e,
		text:     text,
		family:   vg.FamilySerif,
		size:     12,
		weight:   vg.WeightNormal,
		color:    vg.Black,
		maxWidth: vg.NoWrap,
	}
}

type layoutBuilder struct {
	engine   *textEngine
	text     string
	family   vg.FontFamily
	size     float64
	weight   vg.FontWeight
	color    vg.Color
	maxWidth float64
	align    vg.TextAlignment
}

func (b *layoutBuilder) Font(family vg.FontFamily, size float64) vg.TextLayoutBuilder {
	b.family = family
	if size > 0 {
		b.size = size
	}
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
	if width > 0 {
		b.maxWidth = width
	}
	return b
}

func (b *layoutBuilder) Alignment(a vg.TextAlignment) vg.TextLayoutBuilder {
	b.align = a
	return b
}

func (b *layoutBuilder) Build() (vg.TextLayout, error) {
	res, err := b.engine.resolve(b.family, b.weight)
	if err != nil {
		return nil, err
	}
	face, err := b.engine.face(res, b.size)
	if err != nil {
		return nil, err
	}
	return buildLayout(b, res, face)
}
