// Package textlayout implements the backend-independent part of text
// layout: paragraph splitting, greedy word wrapping, alignment and
// bidirectional hit-testing. Backends supply per-rune advance widths and
// vertical metrics; this package owns the line geometry.
package textlayout

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/vg"
)

// Options configures a layout build.
type Options struct {
	// MaxWidth is the wrapping width; +Inf disables wrapping.
	MaxWidth float64
	// Align positions lines within MaxWidth.
	Align vg.TextAlignment
	// Ascent is the baseline distance from the line top.
	Ascent float64
	// LineHeight is the full height of one line.
	LineHeight float64
}

// Line is one laid-out line.
type Line struct {
	Start    int // byte offset of the first byte in the source text
	End      int // one past the last byte, including trailing ws and break
	Trailing int // trailing whitespace bytes, including the line break
	BreakLen int // bytes of the hard line break, 0 for soft wraps

	// XS holds cumulative boundary positions for every rune of the line
	// content excluding the break bytes; len(XS) == runeCount+1.
	XS []float64
	// Offsets holds the byte offset, relative to Start, of each boundary.
	Offsets []int

	TrimmedWidth float64
	AlignOffset  float64
}

// Layout is the computed line geometry for one piece of text.
type Layout struct {
	Text       string
	Lines      []Line
	Ascent     float64
	LineHeight float64
	Width      float64
}

// AdvanceFunc returns the advance width of every rune in s, in order.
type AdvanceFunc func(s string) []float64

// Build lays out text into lines. advances is called once per paragraph.
func Build(text string, opts Options, advances AdvanceFunc) *Layout {
	l := &Layout{
		Text:       text,
		Ascent:     opts.Ascent,
		LineHeight: opts.LineHeight,
	}
	pos := 0
	for {
		rel := strings.IndexByte(text[pos:], '\n')
		var para string
		var breakLen int
		if rel < 0 {
			para = text[pos:]
		} else {
			end := pos + rel
			breakLen = 1
			if end > pos && text[end-1] == '\r' {
				end--
				breakLen = 2
			}
			para = text[pos:end]
		}
		l.layoutParagraph(para, pos, breakLen, opts, advances)
		if rel < 0 {
			break
		}
		// A trailing newline still yields a final empty line, so every
		// byte offset up to len(text) maps to a laid-out position.
		pos += rel + 1
	}

	for i := range l.Lines {
		if l.Lines[i].TrimmedWidth > l.Width {
			l.Width = l.Lines[i].TrimmedWidth
		}
	}
	box := opts.MaxWidth
	if math.IsInf(box, 1) {
		box = l.Width
	}
	rtl := baseRTL(text)
	for i := range l.Lines {
		l.Lines[i].AlignOffset = alignOffset(opts.Align, rtl, box, l.Lines[i].TrimmedWidth)
	}
	return l
}

// baseRTL reports whether the text's base direction is right-to-left.
// The direction comes from the resolved run ordering; anything that
// fails to order is treated as left-to-right.
func baseRTL(text string) bool {
	if text == "" {
		return false
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return false
	}
	ord, err := p.Order()
	if err != nil || ord.NumRuns() == 0 {
		return false
	}
	run := ord.Run(0)
	return run.Direction() == bidi.RightToLeft
}

// alignOffset resolves the horizontal offset of one line. Start and End
// flip for right-to-left base direction; Justified falls back to Start.
func alignOffset(a vg.TextAlignment, rtl bool, box, line float64) float64 {
	if rtl {
		switch a {
		case vg.AlignStart:
			a = vg.AlignEnd
		case vg.AlignEnd:
			a = vg.AlignStart
		}
	}
	switch a {
	case vg.AlignEnd:
		return box - line
	case vg.AlignCenter:
		return (box - line) / 2
	default:
		return 0
	}
}

func (l *Layout) layoutParagraph(para string, paraStart, breakLen int, opts Options, advances AdvanceFunc) {
	runes := []rune(para)
	adv := advances(para)

	xs := make([]float64, len(runes)+1)
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		xs[i+1] = xs[i] + adv[i]
		offsets[i] = off
		off += utf8.RuneLen(r)
	}
	offsets[len(runes)] = off

	type lineRange struct{ ls, le int } // rune range
	var ranges []lineRange
	if math.IsInf(opts.MaxWidth, 1) || len(runes) == 0 {
		ranges = []lineRange{{0, len(runes)}}
	} else {
		ls := 0
		i := 0
		for i < len(runes) {
			// Step over the space run, then the next word.
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			ws := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				i++
			}
			if ws == i {
				break
			}
			if xs[i]-xs[ls] > opts.MaxWidth && ws > ls {
				ranges = append(ranges, lineRange{ls, ws})
				ls = ws
			}
			// A single word wider than the box breaks at rune granularity.
			for xs[i]-xs[ls] > opts.MaxWidth && i-ls > 1 {
				le := ls + 1
				for le < i && xs[le+1]-xs[ls] <= opts.MaxWidth {
					le++
				}
				ranges = append(ranges, lineRange{ls, le})
				ls = le
			}
		}
		ranges = append(ranges, lineRange{ls, len(runes)})
	}

	for ri, rg := range ranges {
		last := ri == len(ranges)-1
		line := Line{
			Start: paraStart + offsets[rg.ls],
			End:   paraStart + offsets[rg.le],
		}
		line.XS = make([]float64, rg.le-rg.ls+1)
		line.Offsets = make([]int, rg.le-rg.ls+1)
		for j := 0; j <= rg.le-rg.ls; j++ {
			line.XS[j] = xs[rg.ls+j] - xs[rg.ls]
			line.Offsets[j] = offsets[rg.ls+j] - offsets[rg.ls]
		}
		trim := rg.le - rg.ls
		for trim > 0 && unicode.IsSpace(runes[rg.ls+trim-1]) {
			trim--
		}
		line.Trailing = line.Offsets[rg.le-rg.ls] - line.Offsets[trim]
		line.TrimmedWidth = line.XS[trim]
		if last && breakLen > 0 {
			line.End += breakLen
			line.Trailing += breakLen
			line.BreakLen = breakLen
		}
		l.Lines = append(l.Lines, line)
	}
}

// Size returns the maximum trimmed line width and total line height.
func (l *Layout) Size() (float64, float64) {
	return l.Width, l.LineHeight * float64(len(l.Lines))
}

// LineCount returns the number of lines, at least 1.
func (l *Layout) LineCount() int { return len(l.Lines) }

// LineText returns line i excluding its trailing line break.
func (l *Layout) LineText(i int) (string, bool) {
	if i < 0 || i >= len(l.Lines) {
		return "", false
	}
	ln := l.Lines[i]
	return l.Text[ln.Start : ln.End-ln.BreakLen], true
}

// Metric returns the vg.LineMetric of line i.
func (l *Layout) Metric(i int) (vg.LineMetric, bool) {
	if i < 0 || i >= len(l.Lines) {
		return vg.LineMetric{}, false
	}
	ln := l.Lines[i]
	return vg.LineMetric{
		StartOffset:        ln.Start,
		EndOffset:          ln.End,
		TrailingWhitespace: ln.Trailing,
		Baseline:           l.Ascent,
		Height:             l.LineHeight,
		YOffset:            float64(i) * l.LineHeight,
	}, true
}

// lineFor returns the index of the line containing byte offset idx.
func (l *Layout) lineFor(idx int) int {
	for i, ln := range l.Lines {
		if idx < ln.End {
			return i
		}
	}
	return len(l.Lines) - 1
}

// HitTestTextPosition maps a byte offset to its baseline position.
// Offsets are snapped down to a rune boundary; offsets inside a line
// break clamp to the boundary before it.
func (l *Layout) HitTestTextPosition(idx int) vg.HitTestPosition {
	if idx < 0 {
		idx = 0
	}
	if idx > len(l.Text) {
		idx = len(l.Text)
	}
	for idx > 0 && idx < len(l.Text) && !utf8.RuneStart(l.Text[idx]) {
		idx--
	}
	li := l.lineFor(idx)
	ln := l.Lines[li]
	rel := idx - ln.Start
	j := sort.SearchInts(ln.Offsets, rel)
	if j >= len(ln.Offsets) || ln.Offsets[j] != rel {
		j = len(ln.Offsets) - 1
	}
	return vg.HitTestPosition{
		Point: vg.Pt(ln.AlignOffset+ln.XS[j], float64(li)*l.LineHeight+l.Ascent),
		Line:  li,
	}
}

// HitTestPoint maps a point relative to the layout origin to the nearest
// rune boundary. Ties between boundaries resolve to the earlier one.
func (l *Layout) HitTestPoint(p vg.Point) vg.HitTestPoint {
	_, height := l.Size()
	li := int(math.Floor(p.Y / l.LineHeight))
	insideY := p.Y >= 0 && p.Y < height
	if li < 0 {
		li = 0
	}
	if li >= len(l.Lines) {
		li = len(l.Lines) - 1
	}
	ln := l.Lines[li]
	x := p.X - ln.AlignOffset

	j := sort.SearchFloat64s(ln.XS, x)
	if j >= len(ln.XS) {
		j = len(ln.XS) - 1
	} else if j > 0 && x-ln.XS[j-1] <= ln.XS[j]-x {
		j--
	}
	insideX := x >= 0 && x <= ln.XS[len(ln.XS)-1]
	return vg.HitTestPoint{
		Idx:      ln.Start + ln.Offsets[j],
		IsInside: insideY && insideX,
	}
}
