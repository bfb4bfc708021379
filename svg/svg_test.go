package svg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/vg"
)

func rect(x0, y0, x1, y1 float64) vg.Rect {
	return vg.NewRect(x0, y0, x1, y1)
}

func TestFillProducesPathElement(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	shape := new(vg.BezPath).Rectangle(rect(10, 10, 60, 40))
	ctx.Fill(shape, vg.SolidRGB(0, 0, 1), vg.NonZero)
	if err := ctx.Finish(); err != nil {
		t.Fatalf("Finish() = %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "<path"); got != 1 {
		t.Fatalf("output has %d path elements, want 1\n%s", got, out)
	}
	if !strings.Contains(out, `d="M10 10L60 10L60 40L10 40Z"`) {
		t.Errorf("path data missing or wrong:\n%s", out)
	}
	if !strings.Contains(out, `fill="rgb(0,0,255)"`) {
		t.Errorf("fill color missing:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 100 100"`) {
		t.Errorf("viewBox missing:\n%s", out)
	}
}

func TestTransformSerializedAsMatrix(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	ctx.Transform(vg.Translate(5, 6))
	ctx.Fill(new(vg.BezPath).Rectangle(rect(0, 0, 10, 10)), vg.Solid(vg.Black), vg.NonZero)
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `transform="matrix(1 0 0 1 5 6)"`) {
		t.Errorf("matrix attribute missing:\n%s", buf.String())
	}
}

func TestCommandsSerializeInCallOrder(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 50, 50)
	sq := new(vg.BezPath).Rectangle(rect(0, 0, 50, 50))
	ctx.Fill(sq, vg.SolidRGB(1, 0, 0), vg.NonZero)
	ctx.Fill(sq, vg.SolidRGB(0, 0, 1), vg.NonZero)
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	red := strings.Index(out, "rgb(255,0,0)")
	blue := strings.Index(out, "rgb(0,0,255)")
	if red < 0 || blue < 0 || red > blue {
		t.Errorf("commands out of order: red at %d, blue at %d\n%s", red, blue, out)
	}
}

func TestEvenOddRule(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 50, 50)
	ctx.Fill(new(vg.BezPath).Rectangle(rect(0, 0, 50, 50)), vg.Solid(vg.Black), vg.EvenOdd)
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `fill-rule="evenodd"`) {
		t.Errorf("fill-rule missing:\n%s", buf.String())
	}
}

func TestClipOpensGroup(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	sq := new(vg.BezPath).Rectangle(rect(0, 0, 100, 100))
	if err := ctx.Save(); err != nil {
		t.Fatal(err)
	}
	ctx.Clip(new(vg.BezPath).Rectangle(rect(10, 10, 50, 50)))
	ctx.Fill(sq, vg.SolidRGB(1, 0, 0), vg.NonZero)
	if err := ctx.Restore(); err != nil {
		t.Fatal(err)
	}
	ctx.Fill(sq, vg.SolidRGB(0, 0, 1), vg.NonZero)
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `<clipPath id="clip1">`) {
		t.Fatalf("clipPath def missing:\n%s", out)
	}
	open := strings.Index(out, `<g clip-path="url(#clip1)">`)
	closeTag := strings.Index(out, "</g>")
	red := strings.Index(out, "rgb(255,0,0)")
	blue := strings.Index(out, "rgb(0,0,255)")
	if !(open >= 0 && open < red && red < closeTag && closeTag < blue) {
		t.Errorf("clip group does not scope the red fill:\n%s", out)
	}
}

func TestGradientDef(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	grad, err := vg.NewLinearGradient(vg.Pt(0, 0), vg.Pt(100, 0),
		vg.GradientStop{Offset: 0, Color: vg.Black},
		vg.GradientStop{Offset: 1, Color: vg.White})
	if err != nil {
		t.Fatal(err)
	}
	ctx.Fill(new(vg.BezPath).Rectangle(rect(0, 0, 100, 100)), grad, vg.NonZero)
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `<linearGradient id="grad1"`) {
		t.Errorf("gradient def missing:\n%s", out)
	}
	if !strings.Contains(out, `fill="url(#grad1)"`) {
		t.Errorf("gradient reference missing:\n%s", out)
	}
	if got := strings.Count(out, "<stop "); got != 2 {
		t.Errorf("gradient has %d stops, want 2", got)
	}
}

func TestStrokeAttributes(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	style := vg.DefaultStrokeStyle().
		WithWidth(3).
		WithCap(vg.CapRound).
		WithJoin(vg.JoinBevel).
		WithDash(1, 4, 2)
	ctx.SetStrokeStyle(style)
	line := new(vg.BezPath).MoveTo(vg.Pt(0, 0)).LineTo(vg.Pt(100, 100))
	ctx.Stroke(line, vg.Solid(vg.Black))
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`fill="none"`,
		`stroke-width="3"`,
		`stroke-linecap="round"`,
		`stroke-linejoin="bevel"`,
		`stroke-dasharray="4 2"`,
		`stroke-dashoffset="1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in output:\n%s", want, out)
		}
	}
}

func TestTextElement(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 200, 50)
	layout, err := ctx.Text().NewTextLayout("a&b").Font(vg.FamilyMonospace, 16).Build()
	if err != nil {
		t.Fatal(err)
	}
	ctx.DrawText(layout, vg.Pt(10, 10))
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `font-family="monospace"`) {
		t.Errorf("font-family missing:\n%s", out)
	}
	if !strings.Contains(out, ">a&amp;b</text>") {
		t.Errorf("escaped text content missing:\n%s", out)
	}
}

func TestImageElement(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img, err := ctx.MakeImage(src)
	if err != nil {
		t.Fatal(err)
	}
	ctx.DrawImage(img, rect(10, 10, 50, 50), vg.InterpNearest)
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `href="data:image/png;base64,`) {
		t.Errorf("image data URI missing:\n%s", out)
	}
	if !strings.Contains(out, `image-rendering="pixelated"`) {
		t.Errorf("nearest mode not serialized:\n%s", out)
	}
}

func TestInertAfterError(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	ctx.DrawImage(nil, rect(0, 0, 10, 10), vg.InterpNearest) // foreign handle
	ctx.Fill(new(vg.BezPath).Rectangle(rect(0, 0, 10, 10)), vg.Solid(vg.Black), vg.NonZero)
	err := ctx.Finish()
	if !errors.Is(err, vg.ErrInvalidInput) {
		t.Fatalf("Finish() = %v, want ErrInvalidInput", err)
	}
	if buf.Len() != 0 {
		t.Errorf("failed render wrote %d bytes, want none", buf.Len())
	}
}

func TestFinishWithOpenSaveWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(&buf, 100, 100)
	if err := ctx.Save(); err != nil {
		t.Fatal(err)
	}
	err := ctx.Finish()
	if !errors.Is(err, vg.ErrUnbalancedState) {
		t.Fatalf("Finish() = %v, want ErrUnbalancedState", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unbalanced render wrote %d bytes, want none", buf.Len())
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriterFailureIsBackendError(t *testing.T) {
	ctx := NewContext(failWriter{}, 50, 50)
	ctx.Fill(new(vg.BezPath).Rectangle(rect(0, 0, 10, 10)), vg.Solid(vg.Black), vg.NonZero)
	if err := ctx.Finish(); !errors.Is(err, vg.ErrBackend) {
		t.Errorf("Finish() = %v, want ErrBackend", err)
	}
}

func TestForeignImageRejected(t *testing.T) {
	var bufA, bufB bytes.Buffer
	a := NewContext(&bufA, 10, 10)
	b := NewContext(&bufB, 10, 10)
	img, err := a.MakeImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	b.DrawImage(img, rect(0, 0, 5, 5), vg.InterpBilinear)
	if err := b.Status(); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Status() = %v, want ErrInvalidInput", err)
	}
}
