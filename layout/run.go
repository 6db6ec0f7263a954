package layout

import (
	"fmt"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textlayout/fontres"
	"golang.org/x/image/math/f32"
)

// Run is a sequence of code points of a single font, bidi level and script,
// shaped as a unit.
//
// Runs come in two shapes. Compact runs hold one glyph and one advance per
// code point; they result from the simple shaping path and may share their
// glyph data with other runs. Complex runs hold glyphs in visual order
// together with positions and a glyph-to-char cluster map.
type Run struct {
	start, length int
	level         uint8
	script        language.Script
	font          fontres.Font
	span          *Span
	flags         RunFlags
	// shaping results
	glyphs    []fontres.GlyphID
	advances  []float32
	positions []float32 // x/y pairs plus trailing pen position; nil for unjustified compact runs
	clusters  []int     // glyph to char offset; nil for compact runs
	owned     bool      // advances and positions are private to this run
	// metrics and placement
	width                    float32
	ascent, descent, leading float32
	location                 f32.Vec2
}

func newRun(f fontres.Font, start, length int, level uint8, flags RunFlags) *Run {
	return &Run{
		font:   f,
		start:  start,
		length: length,
		level:  level,
		flags:  flags,
		script: language.Common,
	}
}

// Start is the text offset of the first code point of r.
func (r *Run) Start() int { return r.start }

// End is the text offset after the last code point of r.
func (r *Run) End() int { return r.start + r.length }

// Length is the number of code points of r.
func (r *Run) Length() int { return r.length }

// Level is the bidi embedding level of r.
func (r *Run) Level() uint8 { return r.level }

// Script is the script of r, or Common for runs of neutral characters.
func (r *Run) Script() language.Script { return r.script }

// Font returns the font of r, or nil for embedded objects.
func (r *Run) Font() fontres.Font { return r.font }

// Span returns the span r belongs to, or nil for plain text.
func (r *Run) Span() *Span { return r.span }

// Flags returns the properties of r.
func (r *Run) Flags() RunFlags { return r.flags }

// Width is the advance width of r.
func (r *Run) Width() float32 { return r.width }

// Ascent of r; negative.
func (r *Run) Ascent() float32 { return r.ascent }

// Descent of r; positive.
func (r *Run) Descent() float32 { return r.descent }

// Leading is the line gap of r.
func (r *Run) Leading() float32 { return r.leading }

// Location is the position of r in layout coordinates: x is the left edge,
// y the top of its line.
func (r *Run) Location() f32.Vec2 { return r.location }

// IsLeftToRight is true for runs of even bidi level.
func (r *Run) IsLeftToRight() bool { return r.level&1 == 0 }

func (r *Run) isTab() bool        { return r.flags&RunTab != 0 }
func (r *Run) isLinebreak() bool  { return r.flags&RunLinebreak != 0 }
func (r *Run) isSoftbreak() bool  { return r.flags&RunSoftbreak != 0 }
func (r *Run) isEmbedded() bool   { return r.flags&RunEmbedded != 0 }
func (r *Run) isBreak() bool      { return r.flags&(RunLinebreak|RunSoftbreak) != 0 }
func (r *Run) isShaped() bool     { return r.glyphs != nil }
func (r *Run) isCompact() bool    { return r.clusters == nil }
func (r *Run) needsComplex() bool { return r.flags&RunComplex != 0 || r.level&1 != 0 }

// GlyphCount is the number of glyphs of r.
func (r *Run) GlyphCount() int { return len(r.glyphs) }

// Glyph returns the i-th glyph in visual order.
func (r *Run) Glyph(i int) fontres.GlyphID { return r.glyphs[i] }

// Advance returns the advance of the i-th glyph.
func (r *Run) Advance(i int) float32 { return r.advances[i] }

// PosX returns the x position of glyph i relative to the run's origin.
// PosX(GlyphCount()) is the pen position after the last glyph.
func (r *Run) PosX(i int) float32 {
	if r.positions != nil {
		return r.positions[2*i]
	}
	x := float32(0)
	for _, a := range r.advances[:i] {
		x += a
	}
	return x
}

// PosY returns the vertical offset of glyph i; y grows downwards.
func (r *Run) PosY(i int) float32 {
	if r.positions != nil {
		return r.positions[2*i+1]
	}
	return 0
}

// CharOffset returns the offset of the first code point of glyph i,
// relative to the start of r.
func (r *Run) CharOffset(i int) int {
	if r.clusters == nil {
		return i
	}
	return r.clusters[i]
}

func (r *Run) String() string {
	return fmt.Sprintf("run[%d:%d] L%d %s w=%.2f %v", r.start, r.End(), r.level,
		r.script, r.width, r.flags)
}

// --- Shaping ---------------------------------------------------------------

func (r *Run) setMetrics(ascent, descent, leading float32) {
	r.ascent, r.descent, r.leading = ascent, descent, leading
}

// setCompact stores glyphs of the simple shaping path. The slices are not
// copied and may be shared with other runs.
func (r *Run) setCompact(glyphs []fontres.GlyphID, advances []float32) {
	r.glyphs, r.advances = glyphs, advances
	r.positions, r.clusters, r.owned = nil, nil, false
	r.width = sum(advances)
}

// setComplex stores the output of a complex shaper.
func (r *Run) setComplex(s fontres.Shaped) {
	r.glyphs = s.Glyphs
	if r.glyphs == nil {
		r.glyphs = []fontres.GlyphID{}
	}
	r.advances, r.positions, r.clusters = s.Advances, s.Positions, s.Clusters
	if r.clusters == nil {
		r.clusters = []int{}
	}
	r.owned = true
	r.width = s.Advance()
}

// setEmbedded gives an embedded object its size. An embedded object is
// placed on the baseline, bounds.MinY being its (negative) ascent.
func (r *Run) setEmbedded(bounds Rect) {
	r.glyphs = []fontres.GlyphID{}
	r.advances = []float32{}
	r.width = bounds.Width()
	r.setMetrics(min(bounds.MinY, 0), max(bounds.MaxY, 0), 0)
}

// setWidth is used for tabs and line breaks, which have no glyphs.
func (r *Run) setWidth(w float32) {
	r.width = w
}

func (r *Run) clearShaping() {
	r.glyphs, r.advances, r.positions, r.clusters = nil, nil, nil, nil
	r.owned = false
	r.width = 0
}

func sum(a []float32) float32 {
	s := float32(0)
	for _, x := range a {
		s += x
	}
	return s
}

// --- Measuring -------------------------------------------------------------

// clusterExtent finds the cluster containing the code point at offset. It
// returns the horizontal extent of the cluster's glyphs, the offset of its
// first code point and the number of code points it spans.
func (r *Run) clusterExtent(offset int) (left, right float32, first, count int) {
	first = -1
	for _, c := range r.clusters {
		if c <= offset && c > first {
			first = c
		}
	}
	if first < 0 {
		first = 0
	}
	next := r.length
	for _, c := range r.clusters {
		if c > first && c < next {
			next = c
		}
	}
	left, right = r.width, 0
	x := float32(0)
	found := false
	for i, c := range r.clusters {
		if c == first {
			left, right = min(left, x), max(right, x+r.advances[i])
			found = true
		}
		x += r.advances[i]
	}
	if !found {
		left, right = 0, 0
	}
	return left, right, first, max(next-first, 1)
}

// XAtOffset returns the x position of an edge of the code point at offset,
// relative to the start of the run. Offsets are relative to r.Start().
// The leading edge is the left edge for left-to-right runs and the right edge
// otherwise.
func (r *Run) XAtOffset(offset int, leading bool) float32 {
	ltr := r.IsLeftToRight()
	if offset >= r.length {
		if ltr {
			return r.width
		}
		return 0
	}
	offset = max(offset, 0)
	if len(r.glyphs) == 0 {
		if ltr == leading {
			return 0
		}
		return r.width
	}
	if r.isCompact() {
		x := r.PosX(offset)
		if !leading {
			x += r.advances[offset]
		}
		return x
	}
	left, right, first, count := r.clusterExtent(offset)
	k := offset - first
	if !leading {
		k++
	}
	frac := float32(k) / float32(count)
	if ltr {
		return left + (right-left)*frac
	}
	return right - (right-left)*frac
}

// OffsetAtX returns the code point at horizontal position x, relative to the
// run's origin, and whether x falls onto the trailing half of it.
func (r *Run) OffsetAtX(x float32) (offset int, trailing bool) {
	if r.length == 0 || r.isLinebreak() {
		return 0, false
	}
	ltr := r.IsLeftToRight()
	if len(r.glyphs) == 0 {
		trailing = (x > r.width/2) == ltr
		if trailing {
			return r.length - 1, true
		}
		return 0, false
	}
	if r.isCompact() {
		acc := float32(0)
		for i, a := range r.advances {
			if x < acc+a {
				return i, x-acc > a/2
			}
			acc += a
		}
		return len(r.advances) - 1, true
	}
	g, acc := len(r.glyphs)-1, float32(0)
	for i, a := range r.advances {
		if x < acc+a {
			g = i
			break
		}
		acc += a
	}
	left, right, first, count := r.clusterExtent(r.clusters[g])
	frac := float32(0)
	if right > left {
		frac = min(max((x-left)/(right-left), 0), 1)
	}
	if !ltr {
		frac = 1 - frac
	}
	pos := frac * float32(count)
	k := min(int(pos), count-1)
	return first + k, pos-float32(k) > 0.5
}

// wrapIndex returns the offset of the code point at which the run's glyphs
// first exceed width, counted in logical order.
func (r *Run) wrapIndex(width float32) int {
	n := len(r.glyphs)
	if n == 0 {
		return 0
	}
	if r.isCompact() {
		for i, a := range r.advances {
			width -= a
			if width < 0 {
				return i
			}
		}
		return max(r.length-1, 0)
	}
	for j := 0; j < n; j++ {
		i := j
		if !r.IsLeftToRight() {
			i = n - 1 - j
		}
		width -= r.advances[i]
		if width < 0 {
			return r.clusters[i]
		}
	}
	return max(r.length-1, 0)
}

// --- Splitting and merging -------------------------------------------------

// split cuts r at offset, keeping the head in r and returning the tail.
// Compact runs split their glyph data; complex runs lose it and have to be
// shaped again.
func (r *Run) split(offset int) *Run {
	assert(offset > 0 && offset < r.length, "run split offset out of range")
	tail := *r
	tail.start = r.start + offset
	tail.length = r.length - offset
	r.length = offset
	if r.isShaped() && r.isCompact() && r.positions == nil {
		r.glyphs, tail.glyphs = r.glyphs[:offset:offset], r.glyphs[offset:]
		r.advances, tail.advances = r.advances[:offset:offset], r.advances[offset:]
		r.width, tail.width = sum(r.advances), sum(tail.advances)
		r.owned, tail.owned = false, false
	} else {
		r.clearShaping()
		tail.clearShaping()
	}
	tail.flags &^= RunSoftbreak | RunLeftBearing | RunRightBearing
	if tail.flags&(RunSplit|RunSplitLast) == 0 {
		tail.flags |= RunSplitLast
	}
	r.flags = (r.flags | RunSplit) &^ RunSplitLast
	return &tail
}

// merge appends the adjacent run next to r.
func (r *Run) merge(next *Run) {
	assert(r.End() == next.start, "merge of non-adjacent runs")
	if r.isShaped() && next.isShaped() && r.isCompact() && next.isCompact() {
		r.glyphs = append(r.glyphs[:len(r.glyphs):len(r.glyphs)], next.glyphs...)
		r.advances = append(r.advances[:len(r.advances):len(r.advances)], next.advances...)
		r.width += next.width
		r.positions, r.owned = nil, true
	} else {
		r.clearShaping()
	}
	r.length += next.length
	r.flags = (r.flags &^ (RunSplit | RunSplitLast)) | (next.flags & (RunSplit | RunSplitLast))
}

func (r *Run) clone() *Run {
	c := *r
	return &c
}

// --- Justification ---------------------------------------------------------

// justify widens the glyph for the code point at offset by inc, moving all
// glyphs to its right.
func (r *Run) justify(offset int, inc float32) {
	if inc == 0 || len(r.glyphs) == 0 {
		return
	}
	g := -1
	if r.isCompact() {
		g = offset
	} else {
		for i, c := range r.clusters {
			if c == offset {
				g = i
				break
			}
		}
	}
	if g < 0 || g >= len(r.glyphs) {
		return
	}
	if !r.owned || r.positions == nil {
		adv := append([]float32(nil), r.advances...)
		if r.positions == nil {
			r.positions = positionsFromAdvances(adv)
		} else {
			r.positions = append([]float32(nil), r.positions...)
		}
		r.advances = adv
		r.owned = true
	}
	r.advances[g] += inc
	for i := g + 1; i <= len(r.glyphs); i++ {
		r.positions[2*i] += inc
	}
	r.width += inc
}

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
