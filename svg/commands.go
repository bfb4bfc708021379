package svg

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gogpu/vg"
)

// serializer holds the in-progress document body and the clip groups
// currently open in it.
type serializer struct {
	body bytes.Buffer
	defs *defs
	open []string // clip ids of open <g> elements, innermost last
}

type fillCmd struct {
	path      *vg.BezPath
	transform vg.Affine
	brush     vg.Brush
	rule      vg.FillRule
}

func (f *fillCmd) emit(s *serializer) error {
	paint, opacity := s.defs.brushAttrs(f.brush)
	s.body.WriteString(`<path d="` + pathData(f.path) + `"`)
	if t := transformAttr(f.transform); t != "" {
		fmt.Fprintf(&s.body, " transform=%q", t)
	}
	fmt.Fprintf(&s.body, " fill=%q", paint)
	if f.rule == vg.EvenOdd {
		s.body.WriteString(` fill-rule="evenodd"`)
	}
	if opacity < 1 {
		fmt.Fprintf(&s.body, " fill-opacity=%q", ftoa(opacity))
	}
	s.body.WriteString("/>\n")
	return nil
}

type strokeCmd struct {
	path      *vg.BezPath
	transform vg.Affine
	brush     vg.Brush
	style     vg.StrokeStyle
}

func (st *strokeCmd) emit(s *serializer) error {
	paint, opacity := s.defs.brushAttrs(st.brush)
	s.body.WriteString(`<path d="` + pathData(st.path) + `"`)
	if t := transformAttr(st.transform); t != "" {
		fmt.Fprintf(&s.body, " transform=%q", t)
	}
	fmt.Fprintf(&s.body, ` fill="none" stroke=%q`, paint)
	if opacity < 1 {
		fmt.Fprintf(&s.body, " stroke-opacity=%q", ftoa(opacity))
	}
	s.body.WriteString(strokeAttrs(st.style))
	s.body.WriteString("/>\n")
	return nil
}

type clearCmd struct {
	color vg.Color
}

// emit paints the whole canvas. Open clip groups are closed around the
// rect and reopened so the clear is unclipped.
func (cl clearCmd) emit(s *serializer) error {
	for range s.open {
		s.body.WriteString("</g>")
	}
	col, opacity := colorAttr(cl.color)
	s.body.WriteString(`<rect x="0" y="0" width="100%" height="100%" fill=` + fmt.Sprintf("%q", col))
	if opacity < 1 {
		fmt.Fprintf(&s.body, " fill-opacity=%q", ftoa(opacity))
	}
	s.body.WriteString("/>\n")
	for _, id := range s.open {
		fmt.Fprintf(&s.body, `<g clip-path="url(#%s)">`, id)
	}
	return nil
}

type clipBeginCmd struct {
	path      *vg.BezPath
	transform vg.Affine
}

func (cb *clipBeginCmd) emit(s *serializer) error {
	id := s.defs.clipDef(cb.path, cb.transform)
	fmt.Fprintf(&s.body, "<g clip-path=\"url(#%s)\">\n", id)
	s.open = append(s.open, id)
	return nil
}

type clipEndCmd struct {
	n int
}

func (ce clipEndCmd) emit(s *serializer) error {
	for i := 0; i < ce.n && len(s.open) > 0; i++ {
		s.body.WriteString("</g>\n")
		s.open = s.open[:len(s.open)-1]
	}
	return nil
}

// textSpan is one positioned line of a recorded text command.
type textSpan struct {
	x, y float64
	text string
}

type textCmd struct {
	transform vg.Affine
	color     vg.Color
	family    string
	size      float64
	weight    vg.FontWeight
	spans     []textSpan
}

func (tc *textCmd) emit(s *serializer) error {
	col, opacity := colorAttr(tc.color)
	for _, span := range tc.spans {
		if span.text == "" {
			continue
		}
		fmt.Fprintf(&s.body, `<text x=%q y=%q font-family=%q font-size=%q`,
			ftoa(span.x), ftoa(span.y), tc.family, ftoa(tc.size))
		if tc.weight != vg.WeightNormal {
			fmt.Fprintf(&s.body, " font-weight=%q", fmt.Sprint(int(tc.weight)))
		}
		fmt.Fprintf(&s.body, " fill=%q", col)
		if opacity < 1 {
			fmt.Fprintf(&s.body, " fill-opacity=%q", ftoa(opacity))
		}
		if t := transformAttr(tc.transform); t != "" {
			fmt.Fprintf(&s.body, " transform=%q", t)
		}
		fmt.Fprintf(&s.body, ` xml:space="preserve">%s</text>`, escapeText(span.text))
		s.body.WriteString("\n")
	}
	return nil
}

type imageCmd struct {
	img       *image.NRGBA
	dst       vg.Rect
	transform vg.Affine
	mode      vg.InterpolationMode
}

func (ic *imageCmd) emit(s *serializer) error {
	uri, err := dataURI(ic.img)
	if err != nil {
		return err
	}
	fmt.Fprintf(&s.body, `<image x=%q y=%q width=%q height=%q preserveAspectRatio="none"`,
		ftoa(ic.dst.Min.X), ftoa(ic.dst.Min.Y),
		ftoa(ic.dst.Max.X-ic.dst.Min.X), ftoa(ic.dst.Max.Y-ic.dst.Min.Y))
	if ic.mode == vg.InterpNearest {
		s.body.WriteString(` image-rendering="pixelated"`)
	}
	if t := transformAttr(ic.transform); t != "" {
		fmt.Fprintf(&s.body, " transform=%q", t)
	}
	fmt.Fprintf(&s.body, " href=%q/>", uri)
	s.body.WriteString("\n")
	return nil
}
