package fontres

import (
	"math"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type FontResTestEnviron struct {
	suite.Suite
	face *Face
	sfnt *SFNT
}

// listen for 'go test' command --> run test methods
func TestFontResources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.fonts")
	defer teardown()
	suite.Run(t, new(FontResTestEnviron))
}

// run once, before test suite methods
func (env *FontResTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("textlayout.fonts").SetTraceLevel(tracing.LevelError)
	var err error
	env.face, err = ParseFace("Go Regular", goregular.TTF, 12)
	env.Require().NoError(err)
	f, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	env.sfnt, err = NewSFNT(f, 12)
	env.Require().NoError(err)
	tracing.Select("textlayout.fonts").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *FontResTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *FontResTestEnviron) TestMetrics() {
	for _, f := range []Font{env.face, env.sfnt} {
		m := f.Metrics()
		env.Less(m.Ascent, float32(0), "ascent of %s should be negative", f.Key())
		env.Greater(m.Descent, float32(0), "descent of %s should be positive", f.Key())
		env.Greater(m.UnderlineOffset, float32(0), "underline of %s should be below baseline", f.Key())
		env.Less(m.StrikethroughOffset, float32(0), "strikethrough of %s should be above baseline", f.Key())
		env.Greater(m.Height(), float32(12), "line height of %s", f.Key())
	}
}

func (env *FontResTestEnviron) TestGlyphMapping() {
	chars := []rune("Ab \u200d")
	for _, f := range []Font{env.face, env.sfnt} {
		glyphs := make([]GlyphID, len(chars))
		f.CharsToGlyphs(chars, glyphs)
		env.NotEqual(InvisibleGlyph, glyphs[0])
		env.NotEqual(glyphs[0], glyphs[1])
		env.Equal(InvisibleGlyph, glyphs[3], "ZWJ should map to the invisible glyph")
		env.Equal(float32(0), f.Advance(glyphs[3]))
		env.True(f.GlyphBounds(glyphs[2]).Empty(), "space of %s should have no ink", f.Key())
		b := f.GlyphBounds(glyphs[0])
		env.Greater(b.MaxY, b.MinY)
		env.Greater(b.MaxY, float32(0), "'A' should extend above the baseline")
	}
}

func (env *FontResTestEnviron) TestAdvancesAgree() {
	chars := []rune("Wa")
	g1 := make([]GlyphID, 2)
	g2 := make([]GlyphID, 2)
	env.face.CharsToGlyphs(chars, g1)
	env.sfnt.CharsToGlyphs(chars, g2)
	for i := range chars {
		a1, a2 := env.face.Advance(g1[i]), env.sfnt.Advance(g2[i])
		env.InDelta(float64(a1), float64(a2), 0.1, "advance of %q", chars[i])
	}
}

func (env *FontResTestEnviron) TestShapeDirection() {
	text := []rune("xabcx")
	for _, f := range []Font{env.face, env.sfnt} {
		ltr := f.Shape(ShapeRequest{Text: text, Start: 1, End: 4})
		env.Equal([]int{0, 1, 2}, ltr.Clusters, "LTR clusters of %s", f.Key())
		env.Equal(len(ltr.Glyphs)*2+2, len(ltr.Positions))
		rtl := f.Shape(ShapeRequest{Text: text, Start: 1, End: 4, RTL: true})
		env.Equal([]int{2, 1, 0}, rtl.Clusters, "RTL clusters of %s", f.Key())
		env.InDelta(float64(ltr.Advance()), float64(rtl.Advance()), 0.5)
	}
}

func (env *FontResTestEnviron) TestConcurrentShaping() {
	var wg sync.WaitGroup
	text := []rune("concurrent shaping")
	want := env.face.Shape(ShapeRequest{Text: text, End: len(text)}).Advance()
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				got := env.face.Shape(ShapeRequest{Text: text, End: len(text)}).Advance()
				if math.Abs(float64(got-want)) > 1e-3 {
					env.T().Errorf("advance = %.3f, want %.3f", got, want)
				}
			}
		}()
	}
	wg.Wait()
}

// --- Plain tests -----------------------------------------------------------

func TestMonospace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.fonts")
	defer teardown()
	//
	m := NewMonospace(10)
	if h := m.Metrics().Height(); h != 22 {
		t.Fatalf("line height = %.2f, want 22", h)
	}
	glyphs := make([]GlyphID, 3)
	m.CharsToGlyphs([]rune("a\u0301\u200b"), glyphs)
	if m.Advance(glyphs[0]) != 10 || m.Advance(glyphs[1]) != 0 || glyphs[2] != InvisibleGlyph {
		t.Fatalf("unexpected glyph mapping %v", glyphs)
	}
	if b := m.GlyphBounds('f'); b.MaxX <= 10 {
		t.Fatalf("expected 'f' to overhang its advance, box=%+v", b)
	}
	s := m.Shape(ShapeRequest{Text: []rune("\u05d0\u05d1\u05bc\u05d2"), End: 4, RTL: true})
	if len(s.Glyphs) != 4 || s.Glyphs[0] != 0x05D2 || s.Clusters[0] != 3 {
		t.Fatalf("expected visual order for RTL run, have %v / %v", s.Glyphs, s.Clusters)
	}
	if s.Clusters[1] != 1 || s.Clusters[2] != 1 {
		t.Fatalf("expected mark to join cluster of its base, have %v", s.Clusters)
	}
	if s.Advance() != 30 {
		t.Fatalf("advance = %.1f, want 30", s.Advance())
	}
}

func TestInvalidFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.fonts")
	defer teardown()
	//
	if _, err := ParseFace("none", nil, 12); err != ErrNoFont {
		t.Fatalf("err = %v, want ErrNoFont", err)
	}
	if _, err := ParseFace("garbage", []byte("not a font"), 12); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := NewSFNT(nil, 12); err != ErrNoFont {
		t.Fatalf("err = %v, want ErrNoFont", err)
	}
	f, _ := sfnt.Parse(goregular.TTF)
	if _, err := NewSFNT(f, 0); err != ErrInvalidSize {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
}

func (env *FontResTestEnviron) TestUnmappedCodePoints() {
	chars := []rune("a一")
	for _, f := range []Font{env.face, env.sfnt} {
		glyphs := make([]GlyphID, len(chars))
		f.CharsToGlyphs(chars, glyphs)
		env.Equal(NotdefGlyph, glyphs[1], "%s has no ideographs", f.Key())
		env.False(glyphs[1].HasInk())
		env.True(glyphs[0].HasInk())
		env.Greater(f.Advance(glyphs[1]), float32(0), "notdef of %s should advance", f.Key())
	}
	env.False(InvisibleGlyph.HasInk())
}
