package layout

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout/fontres"
)

const hebrew = "\u05e9\u05dc\u05d5\u05dd" // shalom

func mono() *fontres.Monospace {
	return fontres.NewMonospace(10)
}

func newLayout(text string) *Layout {
	l := New()
	l.SetContent(text, mono())
	return l
}

func TestSimpleLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("hello")
	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, have %d", len(lines))
	}
	if lines[0].Width() != 50 {
		t.Errorf("line width=%.2f, want 50", lines[0].Width())
	}
	if lines[0].Height() != 22 {
		t.Errorf("line height=%.2f, want 22", lines[0].Height())
	}
	b := l.Bounds()
	if b != (Rect{MaxX: 50, MaxY: 20}) {
		t.Errorf("bounds=%v, want (0,0)-(50,20)", b)
	}
	if l.IsWrapped() || l.IsRightToLeft() {
		t.Errorf("plain line should neither be wrapped nor right-to-left")
	}
}

func TestEmptyText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("")
	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("empty text should have 1 line, have %d", len(lines))
	}
	if lines[0].Length() != 0 || lines[0].Width() != 0 {
		t.Errorf("empty line expected, have %v", lines[0])
	}
	if l.Bounds().Height() != 20 {
		t.Errorf("height of empty text=%.2f, want 20", l.Bounds().Height())
	}
}

func TestLinebreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	for _, tc := range []struct {
		text   string
		starts []int
		ends   []int
	}{
		{"ab\ncd", []int{0, 3}, []int{3, 5}},
		{"ab\r\ncd", []int{0, 4}, []int{4, 6}},
		{"ab\n", []int{0, 3}, []int{3, 3}},
	} {
		l := newLayout(tc.text)
		lines := l.Lines()
		if len(lines) != len(tc.starts) {
			t.Fatalf("%q: expected %d lines, have %d", tc.text, len(tc.starts), len(lines))
		}
		for i, line := range lines {
			if line.Start() != tc.starts[i] || line.End() != tc.ends[i] {
				t.Errorf("%q: line %d is [%d,%d), want [%d,%d)", tc.text, i, line.Start(),
					line.End(), tc.starts[i], tc.ends[i])
			}
		}
		if h := l.Bounds().Height(); h != 42 {
			t.Errorf("%q: height=%.2f, want 42", tc.text, h)
		}
	}
}

func TestBidiSegmentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("abc " + hebrew + " def")
	runs := l.Runs()
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, have %d: %v", len(runs), runs)
	}
	levels := []uint8{0, 1, 0}
	starts := []int{0, 4, 8}
	for i, r := range runs {
		if r.Level() != levels[i] || r.Start() != starts[i] {
			t.Errorf("run #%d = %v, want start %d, level %d", i, r, starts[i], levels[i])
		}
	}
	if g := runs[1].Glyph(0); g != fontres.GlyphID(0x05dd) {
		t.Errorf("first visual glyph of Hebrew run=%x, want final mem", g)
	}
	if runs[1].Location()[0] != 40 || runs[2].Location()[0] != 80 {
		t.Errorf("runs misplaced: %v, %v", runs[1].Location(), runs[2].Location())
	}
}

func TestRightToLeftParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("abc " + hebrew + " def")
	l.SetDirection(RightToLeft)
	if !l.IsRightToLeft() {
		t.Fatalf("expected right-to-left paragraph")
	}
	runs := l.Runs()
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, have %d: %v", len(runs), runs)
	}
	if runs[0].Start() != 9 || runs[1].Start() != 3 || runs[2].Start() != 0 {
		t.Errorf("visual order wrong: %v", runs)
	}
	if runs[0].Level() != 2 || runs[1].Level() != 1 {
		t.Errorf("levels wrong: %v", runs)
	}
}

func TestAutoDirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout(hebrew + " abc")
	l.SetDirection(AutoLeftToRight)
	if !l.IsRightToLeft() {
		t.Errorf("paragraph starting with Hebrew should resolve to right-to-left")
	}
	l = newLayout("123")
	l.SetDirection(AutoRightToLeft)
	if !l.IsRightToLeft() {
		t.Errorf("paragraph without strong characters should take the default")
	}
}

func TestRichText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	small, large := fontres.NewMonospace(10), fontres.NewMonospace(20)
	obj := &Span{Text: "\ufffc", Bounds: Rect{MinY: -30, MaxX: 25, MaxY: 5}}
	spans := []*Span{{Text: "ab", Font: small}, {Text: "cd", Font: large}, obj}
	l := New()
	if !l.SetSpans(spans) {
		t.Fatalf("expected new spans to be accepted")
	}
	if l.SetSpans([]*Span{spans[0], spans[1], obj}) {
		t.Errorf("equal spans should be ignored")
	}
	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, have %d", len(lines))
	}
	line := lines[0]
	if line.Width() != 85 {
		t.Errorf("line width=%.2f, want 85", line.Width())
	}
	if line.Ascent() != -32 || line.Descent() != 8 || line.Leading() != 4 {
		t.Errorf("line metrics: ascent=%.2f descent=%.2f leading=%.2f", line.Ascent(),
			line.Descent(), line.Leading())
	}
	runs := l.Runs()
	if !runs[2].Flags().Has(RunEmbedded) || runs[2].Width() != 25 {
		t.Errorf("embedded run wrong: %v", runs[2])
	}
	b := l.BoundsOf(spans[1])
	if b != (Rect{MinX: 20, MaxX: 60, MaxY: 44}) {
		t.Errorf("bounds of span=%v, want (20,0)-(60,44)", b)
	}
}

func TestTabs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("a\tb")
	runs := l.Runs()
	if len(runs) != 3 || !runs[1].Flags().Has(RunTab) {
		t.Fatalf("expected a tab run, have %v", runs)
	}
	if runs[1].Width() != 70 {
		t.Errorf("default tab width=%.2f, want 70", runs[1].Width())
	}
	l.SetTabSize(4)
	if w := l.Runs()[1].Width(); w != 30 {
		t.Errorf("tab width for tab size 4 = %.2f, want 30", w)
	}
	if x := l.Runs()[2].Location()[0]; x != 40 {
		t.Errorf("text after tab at x=%.2f, want 40", x)
	}
}

func TestSetWrapWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := newLayout("hello")
	if l.SetWrapWidth(float32(math.NaN())) || l.SetWrapWidth(-1) {
		t.Errorf("invalid wrap widths should be treated as 0")
	}
	if l.WrapWidth() != 0 {
		t.Errorf("wrap width=%.2f, want 0", l.WrapWidth())
	}
	if !l.SetWrapWidth(100) {
		t.Errorf("expected change of wrap width to require a layout")
	}
	_ = l.Lines()
	if l.SetWrapWidth(200) {
		t.Errorf("widening an unwrapped layout should not require a layout")
	}
	if l.SetWrapWidth(60) {
		t.Errorf("narrowing above the text width should not require a layout")
	}
	if !l.SetWrapWidth(40) {
		t.Errorf("narrowing below the text width should require a layout")
	}
	if len(l.Lines()) != 2 {
		t.Errorf("expected 2 lines, have %d", len(l.Lines()))
	}
}

func TestOptions(t *testing.T) {
	if d, err := ParseDirection("rtl"); err != nil || d != RightToLeft {
		t.Errorf("ParseDirection(rtl)=%v, %v", d, err)
	}
	if _, err := ParseAlignment("sideways"); err == nil {
		t.Errorf("expected error for unknown alignment")
	}
	if a, err := ParseAlignment("justify"); err != nil || a != AlignJustify {
		t.Errorf("ParseAlignment(justify)=%v, %v", a, err)
	}
}

func TestVerticalCenterBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	l := New()
	l.SetContent("ab", fontres.NewMonospace(11))
	if !l.SetBoundsType(BoundsVerticalCenter) {
		t.Fatalf("bounds type should have changed")
	}
	line := l.Lines()[0]
	if line.Ascent() != -18 || line.Descent() != 5 || line.Leading() != 2 {
		t.Errorf("metrics=%.2f/%.2f/%.2f, want -18/5/2", line.Ascent(), line.Descent(), line.Leading())
	}
	if b := l.Bounds(); b.MaxY != 23 || b.MaxX != 22 {
		t.Errorf("bounds=%v, want height 23 and width 22", b)
	}
}

func TestContentAccessors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	f := mono()
	l := New()
	l.SetContent("plain", f)
	if l.Font() != f || l.Spans() != nil {
		t.Errorf("plain text: font=%v spans=%v", l.Font(), l.Spans())
	}
	spans := []*Span{{Text: "ri", Font: f}, {Text: "ch", Font: fontres.NewMonospace(20)}}
	l.SetSpans(spans)
	if l.Font() != nil || len(l.Spans()) != 2 || l.Spans()[1] != spans[1] {
		t.Errorf("rich text: font=%v spans=%v", l.Font(), l.Spans())
	}
	if l.SetSpans(nil) {
		t.Errorf("nil spans should be ignored")
	}
	if len(l.Spans()) != 2 || string(l.Text()) != "rich" {
		t.Errorf("nil spans changed the content to %q", string(l.Text()))
	}
	l.SetContent("again", f)
	if l.Spans() != nil || l.Font() != f {
		t.Errorf("plain text after rich text: font=%v spans=%v", l.Font(), l.Spans())
	}
}
