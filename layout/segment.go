package layout

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/internal/pool"
	"github.com/npillmayer/textlayout/script"
)

// glyphLayout is the transient helper for run segmentation and complex
// shaping. Layouts check it out from a process-wide pool for the duration of
// a layout pass.
type glyphLayout struct {
	levels []uint8
	req    fontres.ShapeRequest
}

var helpers = pool.New(func() *glyphLayout { return &glyphLayout{} })

// resolveLevels fills g.levels with one bidi level per code point.
func (g *glyphLayout) resolveLevels(chars []rune, dir Direction, analyzer BidiAnalyzer) (rtl, bidi bool) {
	if cap(g.levels) < len(chars) {
		g.levels = make([]uint8, len(chars))
	}
	g.levels = g.levels[:len(chars)]
	runs, rtl := analyzer.Analyze(chars, dir)
	base := uint8(0)
	if rtl {
		base = 1
	}
	for i := range g.levels {
		g.levels[i] = base
	}
	for _, r := range runs {
		for i := max(r.Start, 0); i < min(r.End, len(chars)); i++ {
			g.levels[i] = r.Level
		}
	}
	for _, lvl := range g.levels {
		if lvl != 0 {
			bidi = true
			break
		}
	}
	return rtl, bidi
}

// textSegment is a part of the text with a single font.
type textSegment struct {
	start, end int
	font       fontres.Font
	span       *Span
}

func (l *Layout) segments() []textSegment {
	if l.spans == nil {
		return []textSegment{{start: 0, end: len(l.chars), font: l.font}}
	}
	segs := make([]textSegment, len(l.spans))
	for i, s := range l.spans {
		end := len(l.chars)
		if i+1 < len(l.spans) {
			end = l.spanStarts[i+1]
		}
		segs[i] = textSegment{start: l.spanStarts[i], end: end, font: s.Font, span: s}
	}
	return segs
}

// buildRuns splits the text into runs at span boundaries, bidi level changes,
// script changes and at tabs and line breaks. It sets the analysis flags of
// the layout.
func (l *Layout) buildRuns(chars []rune, g *glyphLayout) {
	var flags layoutFlags
	rtl, bidi := g.resolveLevels(chars, l.direction, l.caps.Bidi)
	if rtl {
		flags |= rtlBase
	}
	if bidi {
		flags |= hasBidi
	}
	baseLevel := uint8(0)
	if rtl {
		baseLevel = 1
	}
	runs := make([]*Run, 0, 8)
	var last textSegment
	for _, seg := range l.segments() {
		last = seg
		if seg.start == seg.end {
			continue
		}
		if seg.span != nil && seg.span.IsEmbedded() {
			r := newRun(nil, seg.start, seg.end-seg.start, g.levels[seg.start], RunEmbedded)
			r.span = seg.span
			runs = append(runs, r)
			flags |= hasEmbedded
			continue
		}
		var cur *Run
		emit := func(end int) {
			if cur != nil && end > cur.start {
				cur.length = end - cur.start
				runs = append(runs, cur)
			}
			cur = nil
		}
		for i := seg.start; i < seg.end; {
			ch := chars[i]
			if ch == '\t' || ch == '\n' || ch == '\r' {
				emit(i)
				n, rf := 1, RunLinebreak
				if ch == '\t' {
					rf = RunTab
					flags |= hasTabs
				} else if ch == '\r' && i+1 < seg.end && chars[i+1] == '\n' {
					n = 2
				}
				r := newRun(seg.font, i, n, g.levels[i], rf)
				r.span = seg.span
				runs = append(runs, r)
				i += n
				continue
			}
			if cur != nil && g.levels[i] != cur.level {
				emit(i)
			}
			cl := script.Classify(ch)
			if cur != nil && !script.IsCommon(cl.Script) && !script.IsCommon(cur.script) && cl.Script != cur.script {
				emit(i)
			}
			if cur == nil {
				cur = newRun(seg.font, i, 0, g.levels[i], 0)
				cur.span = seg.span
			}
			if !script.IsCommon(cl.Script) && script.IsCommon(cur.script) {
				cur.script = cl.Script
			}
			if cl.Complex {
				cur.flags |= RunComplex
				flags |= hasComplex
			}
			if cl.Ideographic {
				flags |= hasCJK
			}
			i++
		}
		emit(seg.end)
	}
	n := len(runs)
	if n == 0 || runs[n-1].isLinebreak() {
		// an empty last line still needs a run for its metrics
		f := last.font
		if f == nil {
			f = l.firstFont()
		}
		r := newRun(f, len(chars), 0, baseLevel, 0)
		r.span = last.span
		if r.span != nil && r.span.IsEmbedded() {
			r.span = nil
		}
		runs = append(runs, r)
	}
	l.runs, l.runsShared = runs, false
	l.flags = (l.flags &^ analysisMask) | flags | analysisValid
	tracer().Debugf("segmented %d code points into %d runs, flags=%b", len(chars), len(l.runs), l.flags)
}

// reuseRuns prepares the runs of a previous layout pass for another pass.
// Runs which have been split by wrapping are merged again.
func (l *Layout) reuseRuns() {
	old := l.runs
	runs := make([]*Run, 0, len(old))
	for i := 0; i < len(old); i++ {
		r := old[i].clone()
		if r.flags&RunSplit != 0 {
			for i+1 < len(old) {
				i++
				next := old[i]
				r.merge(next)
				if next.flags&RunSplitLast != 0 {
					break
				}
			}
		}
		r.flags &^= RunSplit | RunSplitLast | RunSoftbreak | RunLeftBearing | RunRightBearing
		runs = append(runs, r)
	}
	l.runs, l.runsShared = runs, false
}

// shape calls the complex shaper of the run's font.
func (g *glyphLayout) shape(r *Run, chars []rune, lang language.Language) fontres.Shaped {
	g.req = fontres.ShapeRequest{
		Text:     chars,
		Start:    r.start,
		End:      r.End(),
		RTL:      !r.IsLeftToRight(),
		Script:   r.script,
		Language: lang,
	}
	return r.font.Shape(g.req)
}
