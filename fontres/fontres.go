/*
Package fontres defines the font resources a text layout consumes.

A layout never looks into font files. It talks to a Font, which maps code
points to glyphs, measures glyphs and shapes runs of complex text. Three
implementations are provided:

  - Face wraps a go-text/typesetting font and shapes with its HarfBuzz port.
  - SFNT wraps a golang.org/x/image/font/sfnt font; shaping falls back to
    one glyph per code point with pair kerning.
  - Monospace is a synthetic font with fixed advances, useful for tests and
    for terminal-like output.

All measurements are in layout units (font units scaled to the font's size).
Vertical metrics follow a y-down convention: ascent is negative, descent is
positive. Glyph ink boxes, however, are reported in the font's own y-up
convention.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontres

import (
	"errors"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout.fonts'
func tracer() tracing.Trace {
	return tracing.Select("textlayout.fonts")
}

// ErrNoFont is returned if a font resource is created without font data.
var ErrNoFont = errors.New("fontres: no font")

// ErrInvalidSize is returned for font sizes which are not positive.
var ErrInvalidSize = errors.New("fontres: invalid font size")

// GlyphID identifies a glyph within a font.
type GlyphID uint32

// InvisibleGlyph is the glyph for format and control characters. It has
// neither ink nor advance.
const InvisibleGlyph GlyphID = 1<<32 - 1

// NotdefGlyph is the glyph for code points a font cannot map. It advances
// by the width of the font's .notdef glyph, but layouts do not count its ink.
const NotdefGlyph GlyphID = 0

// HasInk is false for the sentinels InvisibleGlyph and NotdefGlyph.
func (g GlyphID) HasInk() bool {
	return g != InvisibleGlyph && g != NotdefGlyph
}

// Box is a glyph's ink box, relative to the glyph origin on the baseline.
// Y grows upwards.
type Box struct {
	MinX, MinY, MaxX, MaxY float32
}

// Empty is true for boxes without horizontal extent, e.g. for spaces.
func (b Box) Empty() bool {
	return b.MinX == b.MaxX
}

// Metrics holds the vertical metrics of a font at its size.
// Y grows downwards: Ascent is negative, Descent positive.
type Metrics struct {
	Ascent    float32
	Descent   float32
	LineGap   float32
	CapHeight float32 // positive
	// Offsets are measured from the baseline to the top edge of the line.
	UnderlineOffset        float32
	UnderlineThickness     float32
	StrikethroughOffset    float32
	StrikethroughThickness float32
}

// Height is the line height: -Ascent + Descent + LineGap.
func (m Metrics) Height() float32 {
	return -m.Ascent + m.Descent + m.LineGap
}

// ShapeRequest asks a font to shape Text[Start:End]. The whole text is passed
// so that shapers may look at context.
type ShapeRequest struct {
	Text       []rune
	Start, End int
	RTL        bool
	Script     language.Script
	Language   language.Language
}

// Shaped is the result of shaping a run.
//
// Glyphs are in visual order. Positions holds x/y pairs, one per glyph plus a
// trailing pair holding the pen position after the last glyph; y grows
// downwards. Advances holds the horizontal advance of each glyph. Clusters
// maps each glyph to the offset of its first code point, relative to Start.
type Shaped struct {
	Glyphs    []GlyphID
	Positions []float32
	Advances  []float32
	Clusters  []int
}

// Advance is the total advance of a shaped run.
func (s Shaped) Advance() float32 {
	if len(s.Positions) < 2 {
		return 0
	}
	return s.Positions[len(s.Positions)-2]
}

// Font is the capability a layout needs from a font resource.
//
// Implementations must be safe for concurrent use; layouts of different
// goroutines may share a font.
type Font interface {
	// Key identifies the font and its size. Fonts with equal keys produce
	// identical glyphs and measurements.
	Key() string
	Size() float32
	// CharsToGlyphs maps chars to nominal glyphs; len(glyphs) >= len(chars).
	CharsToGlyphs(chars []rune, glyphs []GlyphID)
	Advance(g GlyphID) float32
	GlyphBounds(g GlyphID) Box
	Metrics() Metrics
	Shape(req ShapeRequest) Shaped
}

// isInvisible is true for code points which never produce a visible glyph.
func isInvisible(r rune) bool {
	switch {
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r < 0xA0:
		return true
	case r == 0x00AD: // soft hyphen
		return true
	case r >= 0x200B && r <= 0x200F, r >= 0x202A && r <= 0x202E, r >= 0x2060 && r <= 0x2069:
		return true
	case r == 0xFEFF:
		return true
	}
	return false
}

// positionsFromAdvances builds a positions array for glyphs placed one after
// another without offsets.
func positionsFromAdvances(advances []float32) []float32 {
	pos := make([]float32, 2*(len(advances)+1))
	x := float32(0)
	for i, a := range advances {
		pos[2*i] = x
		x += a
	}
	pos[2*len(advances)] = x
	return pos
}
