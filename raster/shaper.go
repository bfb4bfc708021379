package raster

import (
	"sort"
	"sync"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shaper measures text through go-text/typesetting's HarfBuzz port,
// picking up kerning and ligatures that plain per-glyph advances miss.
// HarfbuzzShaper instances hold mutable buffers, so they are pooled.
type shaper struct {
	pool sync.Pool
}

func newShaper() *shaper {
	return &shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// cluster is a shaped run of runes sharing one advance.
type cluster struct {
	runeStart int // rune index into the measured string
	runeCount int
	advance   float64
}

// measure shapes text at size and returns its clusters in logical order.
func (s *shaper) measure(text string, fnt *tsfont.Font, size float64) []cluster {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      tsfont.NewFace(fnt),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	// Sum advances per cluster start, then order by rune index.
	adv := make(map[int]float64, len(output.Glyphs))
	for _, g := range output.Glyphs {
		adv[g.TextIndex()] += float64(g.Advance) / 64
	}
	starts := make([]int, 0, len(adv))
	for idx := range adv {
		starts = append(starts, idx)
	}
	sort.Ints(starts)

	clusters := make([]cluster, len(starts))
	for i, start := range starts {
		end := len(runes)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		clusters[i] = cluster{runeStart: start, runeCount: end - start, advance: adv[start]}
	}
	return clusters
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
