package layout

import (
	"golang.org/x/text/unicode/bidi"
)

// UnicodeBidi is a BidiAnalyzer on top of golang.org/x/text/unicode/bidi.
//
// x/text resolves levels for one paragraph at a time and reports runs of
// equal direction only. Levels are reconstructed from run directions: runs
// against the base direction get the next odd (or even) level, and digits
// following right-to-left text in a left-to-right paragraph get level 2.
type UnicodeBidi struct{}

const lrm = '\u200e'

// Analyze implements BidiAnalyzer.
func (UnicodeBidi) Analyze(text []rune, dir Direction) ([]LevelRun, bool) {
	rtl := baseIsRTL(text, dir)
	if !rtl && !requiresBidi(text) {
		return []LevelRun{{Start: 0, End: len(text), Level: 0}}, false
	}
	var runs []LevelRun
	base := uint8(0)
	if rtl {
		base = 1
	}
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && !isParagraphSeparator(text[i]) {
			continue
		}
		runs = appendParagraphLevels(runs, text, start, i, rtl)
		if i < len(text) { // the separator itself
			runs = appendLevelRun(runs, i, i+1, base)
		}
		start = i + 1
	}
	return runs, rtl
}

// appendParagraphLevels analyzes text[start:end], which contains no
// paragraph separator.
func appendParagraphLevels(runs []LevelRun, text []rune, start, end int, rtl bool) []LevelRun {
	if start >= end {
		return runs
	}
	para := text[start:end]
	base := uint8(0)
	var p bidi.Paragraph
	shift := 0
	if rtl {
		base = 1
		p.SetString(string(para), bidi.DefaultDirection(bidi.RightToLeft))
	} else {
		// x/text has no way to force a left-to-right paragraph level,
		// therefore we lead with a strong left-to-right mark
		shift = 1
		p.SetString(string(lrm)+string(para), bidi.DefaultDirection(bidi.LeftToRight))
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		tracer().Errorf("bidi analysis failed: %v", err)
		return appendLevelRun(runs, start, end, base)
	}
	prevRTL := false
	for i := 0; i < order.NumRuns(); i++ {
		r := order.Run(i)
		s, e := r.Pos()
		s, e = max(s-shift, 0), e-shift+1
		if e <= s {
			continue
		}
		var level uint8
		if r.Direction() == bidi.RightToLeft {
			level = base | 1
			prevRTL = true
		} else {
			level = (base + 1) &^ 1
			if !rtl && prevRTL && !hasStrongLTR(para[s:e]) {
				level = 2
			}
			prevRTL = false
		}
		runs = appendLevelRun(runs, start+s, start+e, level)
	}
	return runs
}

func appendLevelRun(runs []LevelRun, start, end int, level uint8) []LevelRun {
	if n := len(runs); n > 0 && runs[n-1].Level == level && runs[n-1].End == start {
		runs[n-1].End = end
		return runs
	}
	return append(runs, LevelRun{Start: start, End: end, Level: level})
}

// baseIsRTL resolves the paragraph direction. Automatic directions look for
// the first strong character of the text.
func baseIsRTL(text []rune, dir Direction) bool {
	switch dir {
	case LeftToRight:
		return false
	case RightToLeft:
		return true
	}
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return dir == AutoRightToLeft
}

// requiresBidi is true if text contains right-to-left characters or explicit
// directional formatting.
func requiresBidi(text []rune) bool {
	for _, r := range text {
		if r < 0x0590 {
			continue
		}
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL, bidi.AN, bidi.RLE, bidi.RLO, bidi.RLI, bidi.FSI,
			bidi.LRE, bidi.LRO, bidi.LRI:
			return true
		}
	}
	return false
}

func hasStrongLTR(text []rune) bool {
	for _, r := range text {
		if props, _ := bidi.LookupRune(r); props.Class() == bidi.L {
			return true
		}
	}
	return false
}

func isParagraphSeparator(r rune) bool {
	switch r {
	case '\n', '\r', 0x1C, 0x1D, 0x1E, 0x85, 0x2029:
		return true
	}
	return false
}
