package layout

import (
	"math"
)

// BoundsOf returns the bounds of the runs of span, including side bearings.
// With span == nil, it returns the bounds of all lines including side
// bearings, mirrored for right-to-left paragraphs.
func (l *Layout) BoundsOf(span *Span) Rect {
	l.ensureLayout()
	if span == nil {
		var b Rect
		left, right := float32(math.Inf(1)), float32(math.Inf(-1))
		for _, line := range l.lines {
			lb := line.Bounds()
			left = min(left, lb.MinX+line.lsb)
			right = max(right, lb.MaxX+line.rsb)
			b.MaxY += line.Height()
		}
		if len(l.lines) == 0 {
			return Rect{}
		}
		if l.isMirrored() {
			w := l.mirroringWidth()
			left, right = w-right, w-left
		}
		b.MinX, b.MaxX = left, right
		return b
	}
	b := emptyBox()
	for _, line := range l.lines {
		for _, r := range line.runs {
			if r.span != span {
				continue
			}
			left, right := r.location[0], r.location[0]+r.width
			if r.flags&RunLeftBearing != 0 {
				left += line.lsb
			}
			if r.flags&RunRightBearing != 0 {
				right += line.rsb
			}
			top := r.location[1]
			b.add(left, top, right, top+line.Height()+l.spacing)
		}
	}
	if !b.valid() {
		return Rect{}
	}
	return b
}

// VisualBounds returns the ink bounds of the glyphs. decor may include
// RangeUnderline and RangeStrikethrough to cover text decorations as well.
func (l *Layout) VisualBounds(decor RangeType) Rect {
	l.ensureLayout()
	underline := decor&RangeUnderline != 0
	strikethrough := decor&RangeStrikethrough != 0
	if l.visualBounds != nil && underline == l.flags.has(cachedUnderline) &&
		strikethrough == l.flags.has(cachedStrikethrough) {
		return *l.visualBounds
	}
	l.flags &^= cachedUnderline | cachedStrikethrough
	if underline {
		l.flags |= cachedUnderline
	}
	if strikethrough {
		l.flags |= cachedStrikethrough
	}
	b := emptyBox()
	for _, line := range l.lines {
		for _, r := range line.runs {
			if r.font == nil {
				continue
			}
			x := r.location[0]
			baseline := r.location[1] - line.ascent
			for gi, gid := range r.glyphs {
				if !gid.HasInk() {
					continue
				}
				box := r.font.GlyphBounds(gid)
				if box.Empty() {
					continue
				}
				gx, gy := x+r.PosX(gi), baseline+r.PosY(gi)
				b.add(gx+box.MinX, gy-box.MaxY, gx+box.MaxX, gy-box.MinY)
			}
			m := r.font.Metrics()
			if underline && r.width > 0 {
				top := baseline + m.UnderlineOffset
				b.add(x, top, x+r.width, top+m.UnderlineThickness)
			}
			if strikethrough && r.width > 0 {
				top := baseline + m.StrikethroughOffset
				b.add(x, top, x+r.width, top+m.StrikethroughThickness)
			}
		}
	}
	var vb Rect
	if b.MinX < b.MaxX && b.MinY < b.MaxY {
		vb = b
	}
	l.visualBounds = &vb
	return vb
}

func (l *Layout) clampOffset(offset int) int {
	return min(max(offset, 0), len(l.chars))
}

// CaretShape returns the path of a caret at text offset offset, translated
// by (x, y). leading selects the leading or trailing edge of the code point
// at offset. At boundaries between runs of different direction the caret is
// split: the upper half marks the position for the code point at offset, the
// lower half for its neighbor.
func (l *Layout) CaretShape(offset int, leading bool, x, y float32) []PathElement {
	l.ensureLayout()
	offset = l.clampOffset(offset)
	lineIndex := 0
	for lineIndex < len(l.lines)-1 {
		if l.lines[lineIndex].End() > offset {
			break
		}
		lineIndex++
	}
	line := l.lines[lineIndex]
	runs := line.runs
	runIndex := -1
	for i, r := range runs {
		if r.start <= offset && offset < r.End() {
			if !r.isLinebreak() {
				runIndex = i
			}
			break
		}
	}
	var lineX, lineY float32
	lineHeight := line.Height()
	splitOffset := -1
	var level uint8
	if runIndex >= 0 {
		r := runs[runIndex]
		lineX = r.location[0] + r.XAtOffset(offset-r.start, leading)
		lineY = r.location[1]
		// the neighbor is found by offset, as runs are in visual order
		if leading {
			if offset == r.start && offset > line.start {
				level = r.level
				splitOffset = offset - 1
			}
		} else if offset+1 == r.End() && offset+1 < line.End() {
			level = r.level
			splitOffset = offset + 1
		}
	} else {
		// end of line: trailing edge of the last logical run
		maxOffset := 0
		runIndex = 0
		for i, r := range runs {
			if r.start >= maxOffset && !r.isLinebreak() {
				maxOffset = r.start
				runIndex = i
			}
		}
		r := runs[runIndex]
		lineX = r.location[0]
		if r.IsLeftToRight() {
			lineX += r.width
		}
		lineY = r.location[1]
	}
	if l.isMirrored() {
		lineX = l.mirroringWidth() - lineX
	}
	lineX += x
	lineY += y
	if splitOffset >= 0 {
		for _, r := range runs {
			if r.start > splitOffset || splitOffset >= r.End() || r.isLinebreak() {
				continue
			}
			if r.level&1 != level&1 {
				x2 := r.location[0]
				if leading == (level&1 != 0) {
					x2 += r.width
				}
				if l.isMirrored() {
					x2 = l.mirroringWidth() - x2
				}
				x2 += x
				return []PathElement{
					{Op: MoveTo, X: lineX, Y: lineY},
					{Op: LineTo, X: lineX, Y: lineY + lineHeight/2},
					{Op: MoveTo, X: x2, Y: lineY + lineHeight/2},
					{Op: LineTo, X: x2, Y: lineY + lineHeight},
				}
			}
		}
	}
	return []PathElement{
		{Op: MoveTo, X: lineX, Y: lineY},
		{Op: LineTo, X: lineX, Y: lineY + lineHeight},
	}
}

// lineIndexAt returns the index of the line at vertical position y, or the
// number of lines if y is below the last line.
func (l *Layout) lineIndexAt(y float32) int {
	var bottom float32
	for i, line := range l.lines {
		bottom += line.Height() + l.spacing
		if i+1 == len(l.lines) {
			bottom -= line.leading + l.spacing
		}
		if bottom > y {
			return i
		}
	}
	return len(l.lines)
}

// HitInfo returns the code point at position (x, y). Positions below the
// last line hit the end of the text.
func (l *Layout) HitInfo(x, y float32) Hit {
	l.ensureLayout()
	lineIndex := l.lineIndexAt(y)
	if lineIndex >= len(l.lines) {
		return Hit{CharIndex: len(l.chars), Leading: true}
	}
	if l.isMirrored() {
		x = l.mirroringWidth() - x
	}
	line := l.lines[lineIndex]
	x -= line.x
	var run *Run
	for i, r := range line.runs {
		run = r
		if x < r.width {
			break
		}
		if i+1 < len(line.runs) {
			if line.runs[i+1].isLinebreak() {
				break
			}
			x -= r.width
		}
	}
	if run == nil {
		return Hit{CharIndex: line.start, Leading: true}
	}
	offset, trailing := run.OffsetAtX(x)
	return Hit{CharIndex: run.start + offset, Leading: !trailing}
}

// Range returns the outline of the text between start and end, translated
// by (x, y), as a sequence of closed rectangles of five path elements each.
// typ selects whether the rectangles cover the line height, the underline
// or the strikethrough.
func (l *Layout) Range(start, end int, typ RangeType, x, y float32) []PathElement {
	l.ensureLayout()
	start, end = l.clampOffset(start), l.clampOffset(end)
	var path []PathElement
	rect := func(left, right, top, bottom float32) {
		if l.isMirrored() {
			w := l.mirroringWidth()
			left, right = w-left, w-right
		}
		path = append(path,
			PathElement{Op: MoveTo, X: x + left, Y: y + top},
			PathElement{Op: LineTo, X: x + right, Y: y + top},
			PathElement{Op: LineTo, X: x + right, Y: y + bottom},
			PathElement{Op: LineTo, X: x + left, Y: y + bottom},
			PathElement{Op: LineTo, X: x + left, Y: y + top},
		)
	}
	var lineY float32
	for _, line := range l.lines {
		lineStart, lineEnd := line.start, line.End()
		if lineStart >= end {
			break
		}
		if start > lineEnd {
			lineY += line.Height() + l.spacing
			continue
		}
		count := min(lineEnd, end) - max(lineStart, start)
		left, right := float32(-1), float32(-1)
		lineX := line.x
		for _, r := range line.runs {
			if count <= 0 {
				break
			}
			runStart, runEnd := r.start, r.End()
			clampStart := max(runStart, min(start, runEnd))
			clampEnd := max(runStart, min(end, runEnd))
			if n := clampEnd - clampStart; n != 0 {
				ltr := r.IsLeftToRight()
				var runLeft, runRight float32
				if runStart > start {
					runLeft = lineX
					if !ltr {
						runLeft += r.width
					}
				} else {
					runLeft = lineX + r.XAtOffset(start-runStart, true)
				}
				if runEnd < end {
					runRight = lineX
					if ltr {
						runRight += r.width
					}
				} else {
					runRight = lineX + r.XAtOffset(end-runStart, true)
				}
				if runLeft > runRight {
					runLeft, runRight = runRight, runLeft
				}
				count -= n
				top, bottom, ok := l.rangeExtent(line, r, typ, lineY)
				if ok {
					if runLeft != right {
						if left != -1 && right != -1 {
							rect(left, right, top, bottom)
						}
						left = runLeft
					}
					right = runRight
					if count == 0 {
						rect(left, right, top, bottom)
					}
				}
			}
			lineX += r.width
		}
		lineY += line.Height() + l.spacing
	}
	return path
}

// rangeExtent returns the vertical extent of a range rectangle for run r.
func (l *Layout) rangeExtent(line *Line, r *Run, typ RangeType, lineY float32) (top, bottom float32, ok bool) {
	if typ&RangeText != 0 || typ == 0 {
		return lineY, lineY + line.Height(), true
	}
	if r.font == nil {
		return 0, 0, false
	}
	m := r.font.Metrics()
	baseline := lineY - line.ascent
	if typ&RangeUnderline != 0 {
		top = baseline + m.UnderlineOffset
		return top, top + m.UnderlineThickness, true
	}
	top = baseline + m.StrikethroughOffset
	return top, top + m.StrikethroughThickness, true
}
