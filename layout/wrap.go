package layout

import (
	"unicode"

	"github.com/npillmayer/textlayout/tabs"
)

// layout runs a full layout pass: runs are built or reused, shaped and
// broken into lines, which are then aligned and reordered.
func (l *Layout) layout() {
	l.initCache()
	if l.lines != nil {
		return
	}
	chars := l.chars
	g := helpers.Get()
	defer helpers.Put(g)
	if l.flags.has(analysisValid) && l.isSimpleLayout() {
		l.reuseRuns()
	} else {
		l.buildRuns(chars, g)
	}
	var fixedTabs tabs.Policy
	if l.flags.has(hasTabs) {
		fixedTabs = tabs.Fixed{Advance: l.tabAdvance()}
	}
	var breaks BreakIterator
	if l.wrapWidth > 0 && l.flags.has(hasComplex|hasCJK) {
		breaks = l.caps.Breaks(chars)
	}
	if l.isSimpleLayout() {
		if l.cache == nil {
			l.cache = newCacheEntry(len(chars))
		}
	} else {
		l.cache = nil
	}
	var lines []*Line
	var lineWidth float32
	startIndex, startOffset := 0, 0
	for i := 0; i < len(l.runs); i++ {
		run := l.runs[i]
		l.shape(run, chars, g)
		if run.isTab() {
			run.setWidth(l.tabWidth(run, lineWidth, fixedTabs))
		}
		runWidth := run.width
		if l.wrapWidth > 0 && lineWidth+runWidth > l.wrapWidth && !run.isLinebreak() {
			i = l.wrapRun(i, run, chars, breaks, lineWidth, startIndex, startOffset, g)
			if l.runs[i].isSoftbreak() {
				run = l.runs[i]
			}
		}
		lineWidth += runWidth
		if run.isBreak() {
			line := l.createLine(startIndex, i)
			lines = append(lines, line)
			startIndex = i + 1
			startOffset += line.length
			lineWidth = 0
		}
	}
	if startIndex < len(l.runs) {
		lines = append(lines, l.createLine(startIndex, len(l.runs)-1))
	}
	l.assemble(lines, chars)
	l.publishCache()
	tracer().Debugf("layout of %d code points: %d lines, width=%.2f, height=%.2f",
		len(chars), len(lines), l.layoutWidth, l.layoutHeight)
}

// tabWidth is the distance from lineWidth to the next tab stop.
func (l *Layout) tabWidth(run *Run, lineWidth float32, fixed tabs.Policy) float32 {
	next := float32(-1)
	if l.tabPolicy != nil {
		next = l.tabPolicy.NextTabStop(run.start, lineWidth)
	}
	if next < 0 && fixed != nil {
		next = fixed.NextTabStop(run.start, lineWidth)
	}
	if next < 0 {
		return 0
	}
	return max(next-lineWidth, 0)
}

// wrapRun handles run i overflowing the wrap width. It finds a break
// offset, splits runs if necessary, and marks the last run of the current
// line as a soft break. It returns the index of the last run of the line.
func (l *Layout) wrapRun(i int, run *Run, chars []rune, breaks BreakIterator,
	lineWidth float32, startIndex, startOffset int, g *glyphLayout) int {
	//
	hitOffset := run.start + run.wrapIndex(l.wrapWidth-lineWidth)
	offset := hitOffset
	// a space at the wrap point stays on the line
	if offset+1 < run.End() && chars[offset] == ' ' {
		offset++
	}
	if breaks != nil {
		if !breaks.IsBoundary(offset) && chars[offset] != '\t' {
			offset = breaks.Preceding(offset)
		}
	} else {
		// break at the start of a word
		current := isWhitespace(chars[offset])
		for offset > startOffset {
			previous := isWhitespace(chars[offset-1])
			if !current && previous {
				break
			}
			current = previous
			offset--
		}
	}
	offset = max(offset, startOffset)
	breakIndex := startIndex
	breakRun := l.runs[breakIndex]
	for ; breakIndex < len(l.runs); breakIndex++ {
		breakRun = l.runs[breakIndex]
		if breakRun.End() > offset {
			break
		}
	}
	if offset == startOffset {
		// no break opportunity on this line; break where the width overflows
		breakRun, breakIndex = run, i
		offset = hitOffset
	}
	inRun := offset - breakRun.start
	if inRun == 0 && breakIndex != startIndex {
		// move the whole run to the next line
		i = breakIndex - 1
	} else {
		i = breakIndex
		if inRun == 0 {
			// not even a single code point fits
			inRun++
		}
		if inRun < breakRun.length && !breakRun.isEmbedded() {
			tail := breakRun.split(inRun)
			l.insertRun(i+1, tail)
			if !breakRun.isShaped() {
				l.shape(breakRun, chars, g)
			}
		}
	}
	if i+1 < len(l.runs) && !l.runs[i+1].isLinebreak() {
		l.runs[i].flags |= RunSoftbreak
		l.flags |= wrapped
	}
	tracer().Debugf("wrap: hit at %d, break at %d, line ends with run #%d", hitOffset, offset, i)
	return i
}

func (l *Layout) insertRun(at int, r *Run) {
	assert(!l.runsShared, "attempt to modify shared runs")
	l.runs = append(l.runs, nil)
	copy(l.runs[at+1:], l.runs[at:])
	l.runs[at] = r
}

// createLine creates a line from runs[start:end+1].
func (l *Layout) createLine(start, end int) *Line {
	runs := make([]*Run, end-start+1)
	copy(runs, l.runs[start:end+1])
	line := newLine(runs)
	l.layoutWidth = max(l.layoutWidth, line.width)
	return line
}

// isWhitespace is true for white space except non-breaking spaces.
func isWhitespace(r rune) bool {
	switch r {
	case 0x00A0, 0x2007, 0x202F:
		return false
	}
	return unicode.IsSpace(r)
}
