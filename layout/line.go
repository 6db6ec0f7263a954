package layout

import "fmt"

// Line is a laid-out line of text.
type Line struct {
	start, length int
	runs          []*Run // visual order
	width         float32
	ascent        float32 // negative
	descent       float32
	leading       float32
	lsb, rsb      float32 // side bearings, ≤ 0 and ≥ 0 respectively
	x             float32 // alignment offset
}

func newLine(runs []*Run) *Line {
	l := &Line{runs: runs}
	if len(runs) == 0 {
		return l
	}
	l.start = runs[0].start
	for _, r := range runs {
		l.width += r.width
		l.ascent = min(l.ascent, r.ascent)
		l.descent = max(l.descent, r.descent)
		l.leading = max(l.leading, r.leading)
		l.length += r.length
	}
	return l
}

// Start is the text offset of the line.
func (l *Line) Start() int { return l.start }

// Length is the number of code points of the line, including trailing
// whitespace and line break characters.
func (l *Line) Length() int { return l.length }

// End is the text offset after the line.
func (l *Line) End() int { return l.start + l.length }

// Runs returns the runs of the line in visual order.
func (l *Line) Runs() []*Run { return l.runs }

// Width is the advance width of the line.
func (l *Line) Width() float32 { return l.width }

// Ascent is the maximum ascent of the line's runs; negative.
func (l *Line) Ascent() float32 { return l.ascent }

// Descent is the maximum descent of the line's runs.
func (l *Line) Descent() float32 { return l.descent }

// Leading is the maximum line gap of the line's runs.
func (l *Line) Leading() float32 { return l.leading }

// Height is -ascent + descent + leading.
func (l *Line) Height() float32 { return -l.ascent + l.descent + l.leading }

// LeftSideBearing is the ink overhang at the left edge; ≤ 0.
func (l *Line) LeftSideBearing() float32 { return l.lsb }

// RightSideBearing is the ink overhang at the right edge; ≥ 0.
func (l *Line) RightSideBearing() float32 { return l.rsb }

// Bounds returns the logical box of the line, relative to its baseline.
func (l *Line) Bounds() Rect {
	return Rect{MinX: l.x, MinY: l.ascent, MaxX: l.x + l.width, MaxY: l.descent + l.leading}
}

func (l *Line) setAlignment(x float32) {
	l.x = x
}

func (l *Line) String() string {
	return fmt.Sprintf("line[%d:%d] x=%.2f w=%.2f h=%.2f runs=%d", l.start, l.End(), l.x,
		l.width, l.Height(), len(l.runs))
}
