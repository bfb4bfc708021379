package raster

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/vg"
)

func buildTestLayout(t *testing.T, text string, opts func(vg.TextLayoutBuilder) vg.TextLayoutBuilder) vg.TextLayout {
	t.Helper()
	ctx := NewContext(200, 200)
	b := ctx.Text().NewTextLayout(text)
	if opts != nil {
		b = opts(b)
	}
	layout, err := b.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	return layout
}

func TestHitTestRoundTrip(t *testing.T) {
	text := "Hello, world!"
	layout := buildTestLayout(t, text, func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
		return b.Font(vg.FamilySerif, 14)
	})
	// ASCII text: every byte offset is a rune boundary.
	for idx := 0; idx <= len(text); idx++ {
		pos := layout.HitTestTextPosition(idx)
		got := layout.HitTestPoint(pos.Point)
		if got.Idx != idx {
			t.Errorf("round trip at %d: HitTestPoint(%v).Idx = %d", idx, pos.Point, got.Idx)
		}
	}
}

func TestHitTestRoundTripMonospace(t *testing.T) {
	text := "abc def"
	layout := buildTestLayout(t, text, func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
		return b.Font(vg.FamilyMonospace, 13)
	})
	for idx := 0; idx <= len(text); idx++ {
		pos := layout.HitTestTextPosition(idx)
		if got := layout.HitTestPoint(pos.Point); got.Idx != idx {
			t.Errorf("round trip at %d: got %d", idx, got.Idx)
		}
	}
}

func TestHitTestPointOutside(t *testing.T) {
	layout := buildTestLayout(t, "hi", nil)
	hit := layout.HitTestPoint(vg.Pt(-100, -100))
	if hit.IsInside {
		t.Error("far point reported inside")
	}
	if hit.Idx != 0 {
		t.Errorf("snap idx = %d, want 0", hit.Idx)
	}
	w, h := layout.Size()
	hit = layout.HitTestPoint(vg.Pt(w+100, h+100))
	if hit.IsInside {
		t.Error("far point reported inside")
	}
	if hit.Idx != len("hi") {
		t.Errorf("snap idx = %d, want end", hit.Idx)
	}
}

func TestLayoutLines(t *testing.T) {
	text := "one\ntwo\r\nthree"
	layout := buildTestLayout(t, text, nil)
	if got := layout.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	wantLines := []string{"one", "two", "three"}
	for i, want := range wantLines {
		got, ok := layout.LineText(i)
		if !ok || got != want {
			t.Errorf("LineText(%d) = %q, %v; want %q", i, got, ok, want)
		}
	}
	m0, _ := layout.LineMetric(0)
	if m0.StartOffset != 0 || m0.EndOffset != 4 || m0.TrailingWhitespace != 1 {
		t.Errorf("line 0 metric = %+v", m0)
	}
	m1, _ := layout.LineMetric(1)
	if m1.StartOffset != 4 || m1.EndOffset != 9 || m1.TrailingWhitespace != 2 {
		t.Errorf("line 1 metric = %+v", m1)
	}
	m2, _ := layout.LineMetric(2)
	if m2.StartOffset != 9 || m2.EndOffset != len(text) || m2.TrailingWhitespace != 0 {
		t.Errorf("line 2 metric = %+v", m2)
	}
	if m1.YOffset <= m0.YOffset || m2.YOffset <= m1.YOffset {
		t.Error("line YOffsets are not increasing")
	}
	if _, ok := layout.LineMetric(3); ok {
		t.Error("LineMetric(3) reported ok")
	}
}

func TestWordWrap(t *testing.T) {
	text := "aaa bbb ccc ddd"
	narrow := buildTestLayout(t, text, func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
		return b.Font(vg.FamilyMonospace, 13).MaxWidth(7 * 5) // five glyph advances
	})
	if got := narrow.LineCount(); got != 4 {
		t.Fatalf("LineCount() = %d, want one word per line", got)
	}
	// Offsets reassemble the original text exactly.
	var rebuilt strings.Builder
	for i := 0; i < narrow.LineCount(); i++ {
		m, _ := narrow.LineMetric(i)
		rebuilt.WriteString(text[m.StartOffset:m.EndOffset])
	}
	if rebuilt.String() != text {
		t.Errorf("line ranges rebuild %q, want %q", rebuilt.String(), text)
	}
	// Trailing space is excluded from the trimmed range.
	m0, _ := narrow.LineMetric(0)
	if start, end := m0.Range(); text[start:end] != "aaa" {
		t.Errorf("trimmed range = %q, want %q", text[start:end], "aaa")
	}
}

func TestEmptyLayout(t *testing.T) {
	layout := buildTestLayout(t, "", nil)
	if got := layout.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	w, h := layout.Size()
	if w != 0 || h <= 0 {
		t.Errorf("Size() = %v, %v; want zero width, positive height", w, h)
	}
	if hit := layout.HitTestPoint(vg.Pt(0, 0)); hit.Idx != 0 {
		t.Errorf("hit test on empty layout = %+v", hit)
	}
}

func TestLoadFont(t *testing.T) {
	ctx := NewContext(10, 10)
	engine := ctx.Text()
	if _, err := engine.LoadFont([]byte("not a font")); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("LoadFont(garbage) = %v, want ErrInvalidInput", err)
	}
}

func TestUnknownFamily(t *testing.T) {
	ctx := NewContext(10, 10)
	_, err := ctx.Text().NewTextLayout("x").Font("no-such-family", 12).Build()
	if !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Build() = %v, want ErrInvalidInput", err)
	}
}

func TestDrawTextRendersInk(t *testing.T) {
	ctx := NewContext(120, 40, WithBackground(vg.White))
	layout, err := ctx.Text().NewTextLayout("Hello").Font(vg.FamilySerif, 20).Build()
	if err != nil {
		t.Fatal(err)
	}
	ctx.DrawText(layout, vg.Pt(5, 5))
	if err := ctx.Finish(); err != nil {
		t.Fatal(err)
	}
	img := ctx.Image()
	ink := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				ink++
			}
		}
	}
	if ink < 20 {
		t.Errorf("DrawText left %d non-background pixels, expected glyph coverage", ink)
	}
}

func TestForeignLayoutRejected(t *testing.T) {
	a := NewContext(10, 10)
	b := NewContext(10, 10)
	layout, err := a.Text().NewTextLayout("x").Build()
	if err != nil {
		t.Fatal(err)
	}
	b.DrawText(layout, vg.Pt(0, 0))
	if err := b.Status(); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Status = %v, want ErrInvalidInput", err)
	}
}

func TestAlignment(t *testing.T) {
	text := "ab"
	build := func(a vg.TextAlignment) vg.TextLayout {
		return buildTestLayout(t, text, func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
			return b.Font(vg.FamilyMonospace, 13).MaxWidth(70).Alignment(a)
		})
	}
	start := build(vg.AlignStart).HitTestTextPosition(0).Point.X
	center := build(vg.AlignCenter).HitTestTextPosition(0).Point.X
	end := build(vg.AlignEnd).HitTestTextPosition(0).Point.X
	if !(start < center && center < end) {
		t.Errorf("alignment offsets not ordered: start %v, center %v, end %v", start, center, end)
	}
	// Monospace advances are 7px: two glyphs in a 70px box.
	if end != 70-14 {
		t.Errorf("end offset = %v, want %v", end, 70-14)
	}
}

func TestBuildHandlesVariedText(t *testing.T) {
	for _, text := range []string{"ab", "ab\n", "שלום", "  ", "a\r\nb"} {
		layout := buildTestLayout(t, text, nil)
		if layout.LineCount() < 1 {
			t.Errorf("Build(%q): no lines", text)
		}
	}
}

func TestRightToLeftFlipsStartAlignment(t *testing.T) {
	layout := buildTestLayout(t, "שלום", func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
		return b.Font(vg.FamilySerif, 13).MaxWidth(70).Alignment(vg.AlignStart)
	})
	// Right-to-left base direction puts the start edge on the right.
	if x := layout.HitTestTextPosition(0).Point.X; x <= 0 {
		t.Errorf("start position X = %v, want right of the left edge", x)
	}
	ltr := buildTestLayout(t, "ab", func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
		return b.Font(vg.FamilySerif, 13).MaxWidth(70).Alignment(vg.AlignStart)
	})
	if x := ltr.HitTestTextPosition(0).Point.X; x != 0 {
		t.Errorf("left-to-right start position X = %v, want 0", x)
	}
}

func TestTrailingNewlineAddsEmptyLine(t *testing.T) {
	text := "ab\n"
	layout := buildTestLayout(t, text, func(b vg.TextLayoutBuilder) vg.TextLayoutBuilder {
		return b.Font(vg.FamilyMonospace, 13)
	})
	if got := layout.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	if got, ok := layout.LineText(1); !ok || got != "" {
		t.Errorf("LineText(1) = %q, %v; want empty line", got, ok)
	}
	for idx := 0; idx <= len(text); idx++ {
		pos := layout.HitTestTextPosition(idx)
		if got := layout.HitTestPoint(pos.Point); got.Idx != idx {
			t.Errorf("round trip at %d: got %d", idx, got.Idx)
		}
	}
	pos := layout.HitTestTextPosition(len(text))
	if pos.Line != 1 {
		t.Errorf("end offset maps to line %d, want 1", pos.Line)
	}
}
