package layout

import (
	"golang.org/x/image/math/f32"
)

// assemble aligns, justifies and reorders lines, computes side bearings and
// places runs.
func (l *Layout) assemble(lines []*Line, chars []rune) {
	fullWidth := max(l.wrapWidth, l.layoutWidth)
	var align float32
	if l.isMirrored() {
		align = 1
		if l.alignment == AlignRight {
			align = 0
		}
	} else if l.alignment == AlignRight {
		align = 1
	}
	if l.alignment == AlignCenter {
		align = 0.5
	}
	justify := l.wrapWidth > 0 && l.alignment == AlignJustify
	var lineY float32
	for i, line := range lines {
		lineX := (fullWidth - line.width) * align
		if justify && l.justifyLine(line, chars, fullWidth) {
			lineX = 0
		}
		line.setAlignment(lineX)
		if l.flags.has(hasBidi) {
			reorderLine(line)
		}
		computeSideBearings(line)
		runX := lineX
		for _, r := range line.runs {
			r.location = f32.Vec2{runX, lineY}
			runX += r.width
		}
		if i+1 < len(lines) {
			lineY += line.Height() + l.spacing
		} else {
			lineY += line.Height() - line.leading
		}
	}
	l.lines = lines
	l.layoutHeight = lineY
	l.logicalBounds = Rect{MaxX: l.layoutWidth, MaxY: l.layoutHeight}
}

// justifyLine distributes the free space of a wrapped line over its
// interior spaces. Trailing spaces do not take part.
func (l *Layout) justifyLine(line *Line, chars []rune, fullWidth float32) bool {
	if len(line.runs) == 0 || !line.runs[len(line.runs)-1].isSoftbreak() {
		return false
	}
	hitChar, spaces := false, 0
	for j := line.End() - 1; j >= line.start; j-- {
		if !hitChar && chars[j] != ' ' {
			hitChar = true
		}
		if hitChar && chars[j] == ' ' {
			spaces++
		}
	}
	if spaces == 0 {
		return false
	}
	inc := (fullWidth - line.width) / float32(spaces)
done:
	for _, r := range line.runs {
		for j := r.start; j < r.End(); j++ {
			if chars[j] == ' ' {
				r.justify(j-r.start, inc)
				spaces--
				if spaces == 0 {
					break done
				}
			}
		}
	}
	line.width = fullWidth
	return true
}

// computeSideBearings finds the ink overhang of the first and the last
// visible glyph of a line.
func computeSideBearings(line *Line) {
	line.lsb, line.rsb = 0, 0
	var w float32
left:
	for _, r := range line.runs {
		n := len(r.glyphs)
		if n == 0 {
			w += r.width
			continue
		}
		for gi := 0; gi < n; gi++ {
			adv := r.advances[gi]
			if adv != 0 && r.glyphs[gi].HasInk() {
				box := r.font.GlyphBounds(r.glyphs[gi])
				line.lsb = min(0, box.MinX+w)
				r.flags |= RunLeftBearing
				break left
			}
			w += adv
		}
	}
	w = 0
right:
	for i := len(line.runs) - 1; i >= 0; i-- {
		r := line.runs[i]
		n := len(r.glyphs)
		if n == 0 {
			w += r.width
			continue
		}
		for gi := n - 1; gi >= 0; gi-- {
			adv := r.advances[gi]
			if adv != 0 && r.glyphs[gi].HasInk() {
				box := r.font.GlyphBounds(r.glyphs[gi])
				line.rsb = max(0, box.MaxX-adv-w)
				r.flags |= RunRightBearing
				break right
			}
			w += adv
		}
	}
}
