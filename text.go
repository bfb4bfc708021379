package vg

import "math"

// FontFamily names a font family known to a text engine: one of the
// generic families below or a name returned by LoadFont.
type FontFamily string

// Generic families every engine resolves to some concrete font.
const (
	FamilySerif     FontFamily = "serif"
	FamilySansSerif FontFamily = "sans-serif"
	FamilyMonospace FontFamily = "monospace"
)

// FontWeight is a CSS-style weight from 100 to 900.
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// TextAlignment positions lines within the layout width.
type TextAlignment uint8

const (
	// AlignStart aligns lines to the leading edge of the base direction.
	AlignStart TextAlignment = iota
	// AlignEnd aligns lines to the trailing edge.
	AlignEnd
	// AlignCenter centers each line.
	AlignCenter
	// AlignJustified behaves as AlignStart; engines may stretch interior
	// lines when they support it.
	AlignJustified
)

// TextEngine creates text layouts for one backend. Engines are obtained
// from RenderContext.Text; the layouts they build are bound to that
// context.
type TextEngine interface {
	// LoadFont parses font data (TTF/OTF) and registers it under a new
	// family name.
	LoadFont(data []byte) (FontFamily, error)

	// NewTextLayout starts building a layout for text.
	NewTextLayout(text string) TextLayoutBuilder
}

// TextLayoutBuilder configures a layout before Build. Builder methods
// return the builder for chaining.
type TextLayoutBuilder interface {
	// Font selects the family and size in user-space units.
	Font(family FontFamily, size float64) TextLayoutBuilder

	// Weight selects the font weight.
	Weight(w FontWeight) TextLayoutBuilder

	// Color sets the text color. The default is opaque black.
	Color(c Color) TextLayoutBuilder

	// MaxWidth sets the wrapping width. The default is +Inf: no wrapping.
	MaxWidth(width float64) TextLayoutBuilder

	// Alignment sets line alignment within MaxWidth.
	Alignment(a TextAlignment) TextLayoutBuilder

	// Build computes the layout. Unknown families and malformed input
	// return ErrInvalidInput.
	Build() (TextLayout, error)
}

// LineMetric describes one laid-out line. Offsets are byte offsets into
// the layout's source text and always fall on rune boundaries.
type LineMetric struct {
	// StartOffset is the offset of the line's first byte.
	StartOffset int
	// EndOffset is the offset one past the line's last byte, including
	// trailing whitespace and any line break.
	EndOffset int
	// TrailingWhitespace is the number of bytes of trailing whitespace,
	// including any line break.
	TrailingWhitespace int
	// Baseline is the distance from the top of the line to its baseline.
	Baseline float64
	// Height is the line's total height.
	Height float64
	// YOffset is the distance from the top of the layout to the top of
	// the line.
	YOffset float64
}

// Range returns the line's byte range excluding trailing whitespace.
func (m LineMetric) Range() (start, end int) {
	return m.StartOffset, m.EndOffset - m.TrailingWhitespace
}

// HitTestPoint is the result of mapping a point to a text position.
type HitTestPoint struct {
	// Idx is the byte offset of the closest rune boundary.
	Idx int
	// IsInside reports whether the point was directly over the text.
	IsInside bool
}

// HitTestPosition is the result of mapping a text position to a point.
type HitTestPosition struct {
	// Point is the position on the baseline of the line containing the
	// offset, relative to the layout origin.
	Point Point
	// Line is the index of that line.
	Line int
}

// TextLayout is an immutable laid-out block of text. Hit-testing is
// bidirectional: HitTestPoint(HitTestTextPosition(i).Point).Idx == i for
// every rune-boundary offset i.
type TextLayout interface {
	// Size returns the overall layout extent: the maximum line advance
	// width and the sum of line heights.
	Size() (width, height float64)

	// Text returns the source text.
	Text() string

	// LineCount returns the number of lines; it is at least 1, the empty
	// string laying out as a single empty line.
	LineCount() int

	// LineText returns the text of line i excluding any trailing line
	// break, and whether i is in range.
	LineText(i int) (string, bool)

	// LineMetric returns the metrics of line i and whether i is in range.
	LineMetric(i int) (LineMetric, bool)

	// HitTestPoint maps a point relative to the layout origin to the
	// closest rune-boundary offset. Points outside the text snap to the
	// nearest valid position with IsInside false.
	HitTestPoint(p Point) HitTestPoint

	// HitTestTextPosition maps a rune-boundary byte offset to its
	// baseline position. Out-of-range offsets clamp to the text bounds.
	HitTestTextPosition(idx int) HitTestPosition
}

// NoWrap is the MaxWidth value meaning no line wrapping.
var NoWrap = math.Inf(1)
