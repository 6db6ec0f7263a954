package layout

import (
	"github.com/npillmayer/textlayout/fontres"
)

// runMetrics returns ascent, descent and leading for runs of font f.
func (l *Layout) runMetrics(f fontres.Font) (ascent, descent, leading float32) {
	m := f.Metrics()
	if l.boundsType != BoundsVerticalCenter {
		return m.Ascent, m.Descent, m.LineGap
	}
	ascent = float32(int(m.Ascent - 0.75))
	descent = float32(int(m.Descent + 0.75))
	leading = float32(int(m.LineGap + 0.75))
	capHeight := float32(int(m.CapHeight + 0.75))
	topPadding := -ascent - capHeight
	if topPadding > descent {
		descent = topPadding
	} else {
		ascent += topPadding - descent
	}
	return
}

// shape sets the metrics of r and shapes its glyphs, dispatching to the
// compact path for simple left-to-right runs and to the font's shaper for
// everything else. Shaped runs, tabs and line breaks are left alone.
func (l *Layout) shape(r *Run, chars []rune, g *glyphLayout) {
	if r.isEmbedded() {
		if !r.isShaped() {
			r.setEmbedded(r.span.Bounds)
		}
		return
	}
	if r.font == nil {
		return
	}
	if r.ascent == 0 {
		r.setMetrics(l.runMetrics(r.font))
	}
	if r.isTab() || r.isLinebreak() || r.isShaped() {
		return
	}
	if r.length == 0 {
		r.setCompact([]fontres.GlyphID{}, []float32{})
		return
	}
	if r.needsComplex() {
		r.setComplex(g.shape(r, chars, l.lang))
		return
	}
	start, end := r.start, r.End()
	if e := l.cache; e != nil {
		glyphs := e.glyphs[start:end:end]
		advances := e.advances[start:end:end]
		if !e.valid {
			fillCompact(r.font, chars[start:end], glyphs, advances)
		}
		r.setCompact(glyphs, advances)
		return
	}
	glyphs := make([]fontres.GlyphID, end-start)
	advances := make([]float32, end-start)
	fillCompact(r.font, chars[start:end], glyphs, advances)
	r.setCompact(glyphs, advances)
}

func fillCompact(f fontres.Font, chars []rune, glyphs []fontres.GlyphID, advances []float32) {
	f.CharsToGlyphs(chars, glyphs)
	for i, gid := range glyphs {
		advances[i] = f.Advance(gid)
	}
}
