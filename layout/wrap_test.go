package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout/tabs"
)

func checkLines(t *testing.T, l *Layout, bounds ...[2]int) {
	t.Helper()
	lines := l.Lines()
	if len(lines) != len(bounds) {
		t.Fatalf("expected %d lines, have %d: %v", len(bounds), len(lines), lines)
	}
	for i, line := range lines {
		if line.Start() != bounds[i][0] || line.End() != bounds[i][1] {
			t.Errorf("line %d is [%d,%d), want [%d,%d)", i, line.Start(), line.End(),
				bounds[i][0], bounds[i][1])
		}
	}
}

func TestWrapAtSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("one two three")
	l.SetWrapWidth(100)
	checkLines(t, l, [2]int{0, 8}, [2]int{8, 13})
	if !l.IsWrapped() {
		t.Errorf("layout should be wrapped")
	}
	lines := l.Lines()
	if lines[0].Width() != 80 || lines[1].Width() != 50 {
		t.Errorf("line widths are %.2f and %.2f, want 80 and 50", lines[0].Width(), lines[1].Width())
	}
	runs := lines[0].Runs()
	if !runs[len(runs)-1].Flags().Has(RunSoftbreak) {
		t.Errorf("first line should end with a soft break")
	}
	if y := lines[1].Runs()[0].Location()[1]; y != 22 {
		t.Errorf("second line at y=%.2f, want 22", y)
	}
}

func TestWrapInsideWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("abcdefgh")
	l.SetWrapWidth(35)
	checkLines(t, l, [2]int{0, 3}, [2]int{3, 6}, [2]int{6, 8})
}

func TestWrapIdeographs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("日本語のテキスト")
	l.SetWrapWidth(35)
	checkLines(t, l, [2]int{0, 3}, [2]int{3, 6}, [2]int{6, 8})
}

func TestRewrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("one two three")
	l.SetWrapWidth(100)
	checkLines(t, l, [2]int{0, 8}, [2]int{8, 13})
	l.SetWrapWidth(0)
	checkLines(t, l, [2]int{0, 13})
	if n := len(l.Runs()); n != 1 {
		t.Errorf("split runs should be merged again, have %d runs", n)
	}
	l.SetWrapWidth(60)
	checkLines(t, l, [2]int{0, 4}, [2]int{4, 8}, [2]int{8, 13})
}

func TestAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("one two three")
	l.SetWrapWidth(100)
	l.SetAlignment(AlignRight)
	lines := l.Lines()
	if x := lines[1].Runs()[0].Location()[0]; x != 50 {
		t.Errorf("right aligned line at x=%.2f, want 50", x)
	}
	l.SetAlignment(AlignCenter)
	lines = l.Lines()
	if x := lines[0].Runs()[0].Location()[0]; x != 10 {
		t.Errorf("centered line at x=%.2f, want 10", x)
	}
}

func TestJustify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("one two three")
	l.SetWrapWidth(100)
	l.SetAlignment(AlignJustify)
	lines := l.Lines()
	if lines[0].Width() != 100 {
		t.Errorf("justified line width=%.2f, want 100", lines[0].Width())
	}
	if lines[1].Width() != 50 {
		t.Errorf("last line should not be justified, width=%.2f", lines[1].Width())
	}
	r := lines[0].Runs()[0]
	if x := r.PosX(4); x != 60 {
		t.Errorf("glyph after justified space at x=%.2f, want 60", x)
	}
}

func TestTabPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("a\tb\tc")
	l.SetTabPolicy(tabs.NewStops(100, 25))
	runs := l.Runs()
	if len(runs) != 5 {
		t.Fatalf("expected 5 runs, have %d", len(runs))
	}
	if runs[2].Location()[0] != 25 {
		t.Errorf("first tab stop at %.2f, want 25", runs[2].Location()[0])
	}
	if runs[4].Location()[0] != 100 {
		t.Errorf("second tab stop at %.2f, want 100", runs[4].Location()[0])
	}
	l.SetTabPolicy(tabs.Fixed{Advance: 40})
	if x := l.Runs()[2].Location()[0]; x != 40 {
		t.Errorf("fixed tab stop at %.2f, want 40", x)
	}
}

func TestLineSpacing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("ab\ncd")
	l.SetLineSpacing(8)
	if h := l.Bounds().Height(); h != 50 {
		t.Errorf("height with spacing=%.2f, want 50", h)
	}
	if y := l.Lines()[1].Runs()[0].Location()[1]; y != 30 {
		t.Errorf("second line at y=%.2f, want 30", y)
	}
}

func TestWrapInsideRightToLeftRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout(hebrew + hebrew)
	l.SetWrapWidth(35)
	checkLines(t, l, [2]int{0, 3}, [2]int{3, 6}, [2]int{6, 8})
	for i, line := range l.Lines() {
		runs := line.Runs()
		if len(runs) != 1 {
			t.Fatalf("line %d has %d runs, want 1", i, len(runs))
		}
		r := runs[0]
		if r.Level() != 1 || r.GlyphCount() != r.Length() || r.Width() != float32(10*r.Length()) {
			t.Errorf("line %d: run %v not reshaped after split", i, r)
		}
		if r.CharOffset(0) != r.Length()-1 {
			t.Errorf("line %d: first glyph maps to %d, want %d", i, r.CharOffset(0), r.Length()-1)
		}
	}
	// unwrapped, the paragraph is a single run again
	l.SetWrapWidth(0)
	checkLines(t, l, [2]int{0, 8})
	if r := l.Runs()[0]; r.GlyphCount() != 8 || r.Width() != 80 {
		t.Errorf("merged run=%v, want 8 glyphs of width 80", r)
	}
}

// runAt returns the run of line containing offset, ignoring line breaks.
func runAt(line *Line, offset int) *Run {
	for _, r := range line.Runs() {
		if r.Start() <= offset && offset < r.End() && !r.isLinebreak() {
			return r
		}
	}
	return nil
}

func TestLineInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	defer tracer().SetTraceLevel(tracing.LevelInfo)
	//
	texts := []string{
		"one two three four five",
		"abc " + hebrew + " def " + hebrew,
		hebrew + " " + hebrew + " abc def",
		"日本語のテキストと English words",
		"tab\there\nnext line\r\nlast",
		"",
	}
	for _, text := range texts {
		for _, wrap := range []float32{0, 30, 45, 60, 100} {
			for _, dir := range []Direction{LeftToRight, RightToLeft, AutoLeftToRight} {
				for _, align := range []Alignment{AlignLeft, AlignCenter, AlignJustify} {
					l := newLayout(text)
					l.SetDirection(dir)
					l.SetAlignment(align)
					l.SetWrapWidth(wrap)
					name := fmt.Sprintf("%q wrap=%.0f %v %v", text, wrap, dir, align)
					checkLineInvariants(t, l, name)
					if wrap > 0 && align != AlignJustify && !strings.Contains(text, "\t") {
						checkLineWidths(t, l, name)
					}
					checkSplitCarets(t, l, name)
				}
			}
		}
	}
}

func checkLineInvariants(t *testing.T, l *Layout, name string) {
	t.Helper()
	next := 0
	for i, line := range l.Lines() {
		if line.Start() != next {
			t.Errorf("%s: line %d starts at %d, want %d", name, i, line.Start(), next)
		}
		n := 0
		for _, r := range line.Runs() {
			n += r.Length()
		}
		if n != line.Length() {
			t.Errorf("%s: runs of line %d cover %d code points, want %d", name, i, n, line.Length())
		}
		next = line.End()
	}
	if next != l.CharCount() {
		t.Errorf("%s: lines cover %d code points, want %d", name, next, l.CharCount())
	}
}

// checkLineWidths checks that lines stay within the wrap width. Trailing
// spaces may hang over, as may a line holding a single code point.
func checkLineWidths(t *testing.T, l *Layout, name string) {
	t.Helper()
	text := l.Text()
	for i, line := range l.Lines() {
		end := line.End()
		for end > line.Start() && (text[end-1] == '\n' || text[end-1] == '\r') {
			end--
		}
		spaces := 0
		for end > line.Start() && text[end-1] == ' ' {
			end--
			spaces++
		}
		w := line.Width() - float32(10*spaces)
		if w > l.WrapWidth() && end-line.Start() > 1 {
			t.Errorf("%s: line %d %q has width %.2f", name, i, string(text[line.Start():line.End()]), w)
		}
	}
}

// checkSplitCarets checks that carets are split exactly where the runs
// on either side of an offset differ in direction.
func checkSplitCarets(t *testing.T, l *Layout, name string) {
	t.Helper()
	for _, line := range l.Lines() {
		for offset := line.Start(); offset < line.End(); offset++ {
			r := runAt(line, offset)
			if r == nil {
				continue
			}
			prev, next := runAt(line, offset-1), runAt(line, offset+1)
			split := offset == r.Start() && prev != nil && prev.Level()&1 != r.Level()&1
			if got := len(l.CaretShape(offset, true, 0, 0)) == 4; got != split {
				t.Errorf("%s: leading caret at %d split=%v, want %v", name, offset, got, split)
			}
			split = offset+1 == r.End() && next != nil && next.Level()&1 != r.Level()&1
			if got := len(l.CaretShape(offset, false, 0, 0)) == 4; got != split {
				t.Errorf("%s: trailing caret at %d split=%v, want %v", name, offset, got, split)
			}
		}
	}
}
