package fontres

import (
	"fmt"

	"github.com/npillmayer/textlayout/internal/pool"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNT is a font resource backed by golang.org/x/image/font/sfnt.
//
// sfnt has no OpenType layout engine. Shape therefore maps code points one by
// one to glyphs, applies pair kerning and reverses right-to-left runs. This
// is adequate for scripts without contextual forms.
type SFNT struct {
	font    *sfnt.Font
	name    string
	size    float32
	ppem    fixed.Int26_6
	metrics Metrics
	buffers *pool.One[sfnt.Buffer]
}

var _ Font = (*SFNT)(nil)

// NewSFNT creates a font resource from a parsed sfnt font.
func NewSFNT(f *sfnt.Font, size float32) (*SFNT, error) {
	if f == nil {
		return nil, ErrNoFont
	}
	if !(size > 0) {
		return nil, ErrInvalidSize
	}
	sf := &SFNT{
		font:    f,
		size:    size,
		ppem:    fixed.Int26_6(size * 64),
		buffers: pool.New(func() *sfnt.Buffer { return &sfnt.Buffer{} }),
	}
	buf := sf.buffers.Get()
	defer sf.buffers.Put(buf)
	name, err := f.Name(buf, sfnt.NameIDFull)
	if err != nil {
		name = "sfnt"
	}
	sf.name = name
	m, err := f.Metrics(buf, sf.ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("fontres: cannot read metrics of %q: %w", name, err)
	}
	sf.metrics = Metrics{
		Ascent:    -fromFixed(m.Ascent),
		Descent:   fromFixed(m.Descent),
		CapHeight: fromFixed(m.CapHeight),
	}
	if gap := fromFixed(m.Height) - fromFixed(m.Ascent) - fromFixed(m.Descent); gap > 0 {
		sf.metrics.LineGap = gap
	}
	upem := float32(f.UnitsPerEm())
	if post := f.PostTable(); post != nil && upem > 0 {
		sf.metrics.UnderlineOffset = -float32(post.UnderlinePosition) * size / upem
		sf.metrics.UnderlineThickness = float32(post.UnderlineThickness) * size / upem
	}
	if sf.metrics.UnderlineThickness <= 0 {
		sf.metrics.UnderlineThickness = size / 14
	}
	// sfnt does not expose the OS/2 strikeout metrics
	sf.metrics.StrikethroughThickness = sf.metrics.UnderlineThickness
	sf.metrics.StrikethroughOffset = -fromFixed(m.XHeight)/2 - sf.metrics.StrikethroughThickness/2
	return sf, nil
}

// Key returns name and size of the font.
func (sf *SFNT) Key() string {
	return fmt.Sprintf("%s@%g#%p", sf.name, sf.size, sf.font)
}

// Size returns the font size.
func (sf *SFNT) Size() float32 {
	return sf.size
}

// Metrics returns the vertical font metrics.
func (sf *SFNT) Metrics() Metrics {
	return sf.metrics
}

// Name returns the full font name from the name table.
func (sf *SFNT) Name() string {
	return sf.name
}

// CharsToGlyphs maps chars to their nominal glyphs.
func (sf *SFNT) CharsToGlyphs(chars []rune, glyphs []GlyphID) {
	buf := sf.buffers.Get()
	defer sf.buffers.Put(buf)
	for i, r := range chars {
		glyphs[i] = sf.glyphIndex(buf, r)
	}
}

func (sf *SFNT) glyphIndex(buf *sfnt.Buffer, r rune) GlyphID {
	if isInvisible(r) {
		return InvisibleGlyph
	}
	x, err := sf.font.GlyphIndex(buf, r)
	if err != nil {
		return NotdefGlyph
	}
	return GlyphID(x)
}

// Advance returns the horizontal advance of glyph g.
func (sf *SFNT) Advance(g GlyphID) float32 {
	if g == InvisibleGlyph {
		return 0
	}
	buf := sf.buffers.Get()
	defer sf.buffers.Put(buf)
	return sf.advance(buf, g)
}

func (sf *SFNT) advance(buf *sfnt.Buffer, g GlyphID) float32 {
	adv, err := sf.font.GlyphAdvance(buf, sfnt.GlyphIndex(g), sf.ppem, xfont.HintingNone)
	if err != nil {
		tracer().Debugf("no advance for glyph %d: %v", g, err)
		return 0
	}
	return fromFixed(adv)
}

// GlyphBounds returns the ink box of glyph g.
func (sf *SFNT) GlyphBounds(g GlyphID) Box {
	if g == InvisibleGlyph {
		return Box{}
	}
	buf := sf.buffers.Get()
	defer sf.buffers.Put(buf)
	r, _, err := sf.font.GlyphBounds(buf, sfnt.GlyphIndex(g), sf.ppem, xfont.HintingNone)
	if err != nil {
		return Box{}
	}
	// x/image uses a y-down coordinate system
	return Box{
		MinX: fromFixed(r.Min.X),
		MinY: -fromFixed(r.Max.Y),
		MaxX: fromFixed(r.Max.X),
		MaxY: -fromFixed(r.Min.Y),
	}
}

// Shape maps Text[Start:End] to glyphs one by one, applying pair kerning.
// Right-to-left runs are returned in visual order.
func (sf *SFNT) Shape(req ShapeRequest) Shaped {
	buf := sf.buffers.Get()
	defer sf.buffers.Put(buf)
	n := req.End - req.Start
	shaped := Shaped{
		Glyphs:   make([]GlyphID, n),
		Advances: make([]float32, n),
		Clusters: make([]int, n),
	}
	for i := 0; i < n; i++ {
		j := i
		if req.RTL {
			j = n - 1 - i
		}
		g := sf.glyphIndex(buf, req.Text[req.Start+j])
		shaped.Glyphs[i] = g
		shaped.Clusters[i] = j
		if g != InvisibleGlyph {
			shaped.Advances[i] = sf.advance(buf, g)
		}
	}
	for i := 0; i+1 < n; i++ {
		g0, g1 := shaped.Glyphs[i], shaped.Glyphs[i+1]
		if !g0.HasInk() || !g1.HasInk() {
			continue
		}
		k, err := sf.font.Kern(buf, sfnt.GlyphIndex(g0), sfnt.GlyphIndex(g1), sf.ppem, xfont.HintingNone)
		if err == nil {
			shaped.Advances[i] += fromFixed(k)
		}
	}
	shaped.Positions = positionsFromAdvances(shaped.Advances)
	return shaped
}
