package svg

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/gogpu/vg"
)

// ftoa formats a coordinate compactly.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

// transformAttr serializes a as an SVG matrix attribute value, six
// coefficients in (a b c d e f) order. Returns "" for the identity.
func transformAttr(a vg.Affine) string {
	if a.IsIdentity() {
		return ""
	}
	co := a.Coefficients()
	parts := make([]string, 6)
	for i, v := range co {
		parts[i] = ftoa(v)
	}
	return "matrix(" + strings.Join(parts, " ") + ")"
}

// pathData serializes a path as an SVG d attribute.
func pathData(p *vg.BezPath) string {
	var b strings.Builder
	for _, seg := range p.Segments() {
		switch s := seg.(type) {
		case vg.MoveTo:
			fmt.Fprintf(&b, "M%s %s", ftoa(s.P.X), ftoa(s.P.Y))
		case vg.LineTo:
			fmt.Fprintf(&b, "L%s %s", ftoa(s.P.X), ftoa(s.P.Y))
		case vg.QuadTo:
			fmt.Fprintf(&b, "Q%s %s %s %s", ftoa(s.P1.X), ftoa(s.P1.Y), ftoa(s.P2.X), ftoa(s.P2.Y))
		case vg.CurveTo:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s",
				ftoa(s.P1.X), ftoa(s.P1.Y), ftoa(s.P2.X), ftoa(s.P2.Y), ftoa(s.P3.X), ftoa(s.P3.Y))
		case vg.ClosePath:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// colorAttr returns the rgb() form of c and its separate opacity.
func colorAttr(c vg.Color) (string, float64) {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b), c.A
}

// defs accumulates gradient and clip-path definitions during
// serialization.
type defs struct {
	buf  bytes.Buffer
	next int
}

func (d *defs) id(prefix string) string {
	d.next++
	return fmt.Sprintf("%s%d", prefix, d.next)
}

// brushAttrs returns the attribute value painting with brush ("rgb(...)"
// or "url(#id)") plus its opacity, registering gradient defs as needed.
func (d *defs) brushAttrs(brush vg.Brush) (paint string, opacity float64) {
	switch b := brush.(type) {
	case vg.SolidBrush:
		return colorAttr(b.Color)
	case *vg.LinearGradient:
		id := d.id("grad")
		fmt.Fprintf(&d.buf, `<linearGradient id=%q gradientUnits="userSpaceOnUse" x1=%q y1=%q x2=%q y2=%q%s>`,
			id, ftoa(b.Start.X), ftoa(b.Start.Y), ftoa(b.End.X), ftoa(b.End.Y), spreadAttr(b.Extend))
		d.stops(b.Stops)
		d.buf.WriteString("</linearGradient>")
		return "url(#" + id + ")", 1
	case *vg.RadialGradient:
		id := d.id("grad")
		fmt.Fprintf(&d.buf, `<radialGradient id=%q gradientUnits="userSpaceOnUse" cx=%q cy=%q r=%q%s>`,
			id, ftoa(b.Center.X), ftoa(b.Center.Y), ftoa(b.Radius), spreadAttr(b.Extend))
		d.stops(b.Stops)
		d.buf.WriteString("</radialGradient>")
		return "url(#" + id + ")", 1
	default:
		return "none", 1
	}
}

// spreadAttr maps an extend mode to its spreadMethod attribute. Pad is
// the SVG default and serializes to nothing.
func spreadAttr(m vg.ExtendMode) string {
	switch m {
	case vg.ExtendRepeat:
		return ` spreadMethod="repeat"`
	case vg.ExtendReflect:
		return ` spreadMethod="reflect"`
	default:
		return ""
	}
}

func (d *defs) stops(stops []vg.GradientStop) {
	for _, s := range stops {
		col, op := colorAttr(s.Color)
		fmt.Fprintf(&d.buf, `<stop offset=%q stop-color=%q stop-opacity=%q/>`,
			ftoa(s.Offset), col, ftoa(op))
	}
}

// clipDef registers a clip path and returns its id.
func (d *defs) clipDef(path *vg.BezPath, transform vg.Affine) string {
	id := d.id("clip")
	fmt.Fprintf(&d.buf, `<clipPath id=%q>`, id)
	d.buf.WriteString(`<path d="` + pathData(path) + `"`)
	if t := transformAttr(transform); t != "" {
		fmt.Fprintf(&d.buf, " transform=%q", t)
	}
	d.buf.WriteString("/></clipPath>")
	return id
}

// strokeAttrs serializes a stroke style into presentation attributes.
func strokeAttrs(style vg.StrokeStyle) string {
	var b strings.Builder
	fmt.Fprintf(&b, ` stroke-width=%q`, ftoa(style.Width))
	switch style.Cap {
	case vg.CapRound:
		b.WriteString(` stroke-linecap="round"`)
	case vg.CapSquare:
		b.WriteString(` stroke-linecap="square"`)
	}
	switch style.Join {
	case vg.JoinRound:
		b.WriteString(` stroke-linejoin="round"`)
	case vg.JoinBevel:
		b.WriteString(` stroke-linejoin="bevel"`)
	default:
		fmt.Fprintf(&b, ` stroke-miterlimit=%q`, ftoa(style.MiterLimit))
	}
	if pattern, offset, ok := style.EffectiveDash(); ok {
		parts := make([]string, len(pattern))
		for i, l := range pattern {
			parts[i] = ftoa(l)
		}
		fmt.Fprintf(&b, ` stroke-dasharray=%q`, strings.Join(parts, " "))
		if offset != 0 {
			fmt.Fprintf(&b, ` stroke-dashoffset=%q`, ftoa(offset))
		}
	}
	return b.String()
}

// escapeText XML-escapes character data.
func escapeText(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// dataURI encodes img as a base64 PNG data URI.
func dataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", vg.BackendError(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
