package fontres

import (
	"fmt"
	"unicode"
)

// Monospace is a synthetic font where every visible code point has the same
// advance. Glyph IDs equal code points. Combining marks have zero advance and
// are shaped on top of their base character.
//
// A few glyphs carry ink outside their advance box, so that side bearings can
// be observed: 'f' overhangs to the right and 'j' to the left.
type Monospace struct {
	width   float32
	metrics Metrics
}

var _ Font = (*Monospace)(nil)

// NewMonospace creates a monospace font where visible glyphs advance by
// width. Vertical metrics are derived from width: ascent 1.6, descent 0.4,
// line gap 0.2 widths.
func NewMonospace(width float32) *Monospace {
	return &Monospace{
		width: width,
		metrics: Metrics{
			Ascent:                 -1.6 * width,
			Descent:                0.4 * width,
			LineGap:                0.2 * width,
			CapHeight:              1.2 * width,
			UnderlineOffset:        0.2 * width,
			UnderlineThickness:     0.1 * width,
			StrikethroughOffset:    -0.5 * width,
			StrikethroughThickness: 0.1 * width,
		},
	}
}

// Key identifies the font by its width.
func (m *Monospace) Key() string {
	return fmt.Sprintf("monospace@%g", m.width)
}

// Size returns the advance width.
func (m *Monospace) Size() float32 {
	return m.width
}

// Metrics returns the synthetic vertical metrics.
func (m *Monospace) Metrics() Metrics {
	return m.metrics
}

// CharsToGlyphs maps each visible code point to a glyph with the same ID.
func (m *Monospace) CharsToGlyphs(chars []rune, glyphs []GlyphID) {
	for i, r := range chars {
		if isInvisible(r) {
			glyphs[i] = InvisibleGlyph
		} else {
			glyphs[i] = GlyphID(r)
		}
	}
}

func isMark(g GlyphID) bool {
	r := rune(g)
	return unicode.In(r, unicode.Mn, unicode.Me)
}

// Advance is the font width for visible glyphs, 0 for marks.
func (m *Monospace) Advance(g GlyphID) float32 {
	if g == InvisibleGlyph || isMark(g) {
		return 0
	}
	return m.width
}

// GlyphBounds returns a synthetic ink box.
func (m *Monospace) GlyphBounds(g GlyphID) Box {
	if g == InvisibleGlyph || unicode.IsSpace(rune(g)) {
		return Box{}
	}
	w, ch := m.width, m.metrics.CapHeight
	switch {
	case isMark(g):
		return Box{MinX: -0.7 * w, MinY: ch, MaxX: -0.3 * w, MaxY: ch + 0.2*w}
	case g == 'f':
		return Box{MinX: 0.1 * w, MinY: 0, MaxX: 1.2 * w, MaxY: ch}
	case g == 'j':
		return Box{MinX: -0.2 * w, MinY: -m.metrics.Descent, MaxX: 0.9 * w, MaxY: ch}
	}
	return Box{MinX: 0.1 * w, MinY: 0, MaxX: 0.9 * w, MaxY: ch}
}

// Shape maps code points one by one. Right-to-left runs are reversed into
// visual order; marks stay attached to the cluster of their base.
func (m *Monospace) Shape(req ShapeRequest) Shaped {
	n := req.End - req.Start
	shaped := Shaped{
		Glyphs:    make([]GlyphID, n),
		Advances:  make([]float32, n),
		Clusters:  make([]int, n),
		Positions: make([]float32, 2*(n+1)),
	}
	logical := make([]GlyphID, n)
	m.CharsToGlyphs(req.Text[req.Start:req.End], logical)
	cluster := make([]int, n)
	for j := 0; j < n; j++ {
		cluster[j] = j
		if j > 0 && isMark(logical[j]) {
			cluster[j] = cluster[j-1]
		}
	}
	pen := float32(0)
	for i := 0; i < n; i++ {
		j := i
		if req.RTL {
			j = n - 1 - i
		}
		g := logical[j]
		shaped.Glyphs[i] = g
		shaped.Clusters[i] = cluster[j]
		shaped.Advances[i] = m.Advance(g)
		shaped.Positions[2*i] = pen
		pen += shaped.Advances[i]
	}
	shaped.Positions[2*n] = pen
	return shaped
}
