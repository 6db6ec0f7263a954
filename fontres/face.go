package fontres

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/textlayout/internal/pool"
	"golang.org/x/image/math/fixed"
)

// Face is a font resource backed by go-text/typesetting. Complex runs are
// shaped by go-text's HarfBuzz port.
type Face struct {
	font    *font.Font
	name    string
	size    float32
	scale   float32 // size / units per em
	metrics Metrics
	helpers *pool.One[faceHelper]
}

// faceHelper bundles the objects of go-text which are not safe for concurrent
// use. Checkout is done through a pool.
type faceHelper struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
}

var _ Font = (*Face)(nil)

// ParseFace parses a TrueType or OpenType font and returns it as a font
// resource at the given size. name is used for the font key only.
func ParseFace(name string, data []byte, size float32) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrNoFont
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontres: cannot parse font %q: %w", name, err)
	}
	return NewFace(name, face.Font, size)
}

// NewFace creates a font resource from a parsed go-text font.
func NewFace(name string, f *font.Font, size float32) (*Face, error) {
	if f == nil {
		return nil, ErrNoFont
	}
	if !(size > 0) {
		return nil, ErrInvalidSize
	}
	fc := &Face{
		font:  f,
		name:  name,
		size:  size,
		scale: size / float32(f.Upem()),
	}
	fc.helpers = pool.New(func() *faceHelper {
		return &faceHelper{face: font.NewFace(f)}
	})
	fc.metrics = fc.readMetrics()
	tracer().Debugf("font %s @ %.1f: ascent=%.2f descent=%.2f gap=%.2f", name, size,
		fc.metrics.Ascent, fc.metrics.Descent, fc.metrics.LineGap)
	return fc, nil
}

func (fc *Face) readMetrics() Metrics {
	h := fc.helpers.Get()
	defer fc.helpers.Put(h)
	var m Metrics
	if ext, ok := h.face.FontHExtents(); ok {
		m.Ascent = -ext.Ascender * fc.scale
		m.Descent = -ext.Descender * fc.scale
		m.LineGap = ext.LineGap * fc.scale
	} else {
		m.Ascent, m.Descent = -0.8*fc.size, 0.2*fc.size
	}
	m.CapHeight = h.face.LineMetric(font.CapHeight) * fc.scale
	m.UnderlineOffset = -h.face.LineMetric(font.UnderlinePosition) * fc.scale
	m.UnderlineThickness = h.face.LineMetric(font.UnderlineThickness) * fc.scale
	m.StrikethroughOffset = -h.face.LineMetric(font.StrikethroughPosition) * fc.scale
	m.StrikethroughThickness = h.face.LineMetric(font.StrikethroughThickness) * fc.scale
	if m.UnderlineThickness <= 0 {
		m.UnderlineThickness = fc.size / 14
	}
	if m.StrikethroughThickness <= 0 {
		m.StrikethroughThickness = m.UnderlineThickness
	}
	if m.StrikethroughOffset == 0 {
		m.StrikethroughOffset = m.Ascent / 3
	}
	return m
}

// Key returns name and size of the font, plus the address of the font data,
// which keeps faces of equal name but different origin apart.
func (fc *Face) Key() string {
	return fmt.Sprintf("%s@%g#%p", fc.name, fc.size, fc.font)
}

// Size returns the font size.
func (fc *Face) Size() float32 {
	return fc.size
}

// Metrics returns the vertical font metrics.
func (fc *Face) Metrics() Metrics {
	return fc.metrics
}

// CharsToGlyphs maps chars to their nominal glyphs.
func (fc *Face) CharsToGlyphs(chars []rune, glyphs []GlyphID) {
	for i, r := range chars {
		if isInvisible(r) {
			glyphs[i] = InvisibleGlyph
			continue
		}
		gid, ok := fc.font.NominalGlyph(r)
		if !ok {
			glyphs[i] = NotdefGlyph
			continue
		}
		glyphs[i] = GlyphID(gid)
	}
}

// Advance returns the horizontal advance of glyph g.
func (fc *Face) Advance(g GlyphID) float32 {
	if g == InvisibleGlyph {
		return 0
	}
	h := fc.helpers.Get()
	defer fc.helpers.Put(h)
	return h.face.HorizontalAdvance(font.GID(g)) * fc.scale
}

// GlyphBounds returns the ink box of glyph g.
func (fc *Face) GlyphBounds(g GlyphID) Box {
	if g == InvisibleGlyph {
		return Box{}
	}
	h := fc.helpers.Get()
	defer fc.helpers.Put(h)
	ext, ok := h.face.GlyphExtents(font.GID(g))
	if !ok {
		return Box{}
	}
	// extents have a negative height for glyphs extending downwards from
	// the bearing point
	return Box{
		MinX: ext.XBearing * fc.scale,
		MinY: (ext.YBearing + ext.Height) * fc.scale,
		MaxX: (ext.XBearing + ext.Width) * fc.scale,
		MaxY: ext.YBearing * fc.scale,
	}
}

// Shape shapes a run with HarfBuzz.
func (fc *Face) Shape(req ShapeRequest) Shaped {
	h := fc.helpers.Get()
	defer fc.helpers.Put(h)
	dir := di.DirectionLTR
	if req.RTL {
		dir = di.DirectionRTL
	}
	out := h.shaper.Shape(shaping.Input{
		Text:      req.Text,
		RunStart:  req.Start,
		RunEnd:    req.End,
		Direction: dir,
		Face:      h.face,
		Size:      fixed.Int26_6(fc.size * 64),
		Script:    req.Script,
		Language:  req.Language,
	})
	n := len(out.Glyphs)
	shaped := Shaped{
		Glyphs:    make([]GlyphID, n),
		Positions: make([]float32, 2*(n+1)),
		Advances:  make([]float32, n),
		Clusters:  make([]int, n),
	}
	pen := float32(0)
	for i, g := range out.Glyphs {
		if g.GlyphID == font.EmptyGlyph {
			shaped.Glyphs[i] = InvisibleGlyph
		} else {
			shaped.Glyphs[i] = GlyphID(g.GlyphID)
		}
		adv := fromFixed(g.XAdvance)
		shaped.Positions[2*i] = pen + fromFixed(g.XOffset)
		shaped.Positions[2*i+1] = -fromFixed(g.YOffset)
		shaped.Advances[i] = adv
		shaped.Clusters[i] = g.ClusterIndex - req.Start
		pen += adv
	}
	shaped.Positions[2*n] = pen
	return shaped
}

func fromFixed(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
