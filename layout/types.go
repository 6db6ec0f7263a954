package layout

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the paragraph direction of a layout.
type Direction uint8

const (
	LeftToRight     Direction = iota // force left-to-right base direction
	RightToLeft                      // force right-to-left base direction
	AutoLeftToRight                  // first strong character decides, default left-to-right
	AutoRightToLeft                  // first strong character decides, default right-to-left
)

var directionNames = []string{"ltr", "rtl", "auto-ltr", "auto-rtl"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// ParseDirection parses "ltr", "rtl", "auto-ltr" or "auto-rtl".
// "auto" is an alias for "auto-ltr".
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" {
		return AutoLeftToRight, nil
	}
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return LeftToRight, fmt.Errorf("%w: direction %q", ErrUnknownOption, s)
}

// Alignment is the horizontal alignment of lines.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

var alignmentNames = []string{"left", "center", "right", "justify"}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", a)
}

// ParseAlignment parses "left", "center", "right" or "justify".
func ParseAlignment(s string) (Alignment, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range alignmentNames {
		if s == name {
			return Alignment(i), nil
		}
	}
	return AlignLeft, fmt.Errorf("%w: alignment %q", ErrUnknownOption, s)
}

// BoundsType selects how line heights are derived from font metrics.
type BoundsType uint8

const (
	// BoundsLogical uses ascent, descent and line gap of the fonts.
	BoundsLogical BoundsType = iota
	// BoundsVerticalCenter rounds metrics to whole units and balances the
	// space above capitals against the descent, centering capitals
	// vertically within the line.
	BoundsVerticalCenter
)

// RangeType selects the geometry returned for a text range.
type RangeType uint8

const (
	RangeText RangeType = 1 << iota
	RangeUnderline
	RangeStrikethrough
)

// PathOp is the operation of a path element.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
)

func (op PathOp) String() string {
	if op == MoveTo {
		return "M"
	}
	return "L"
}

// PathElement is a single move or line segment of a path.
type PathElement struct {
	Op   PathOp
	X, Y float32
}

func (e PathElement) String() string {
	return fmt.Sprintf("%s(%.2f,%.2f)", e.Op, e.X, e.Y)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width of r.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height of r.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// IsEmpty is true for rectangles without area.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX > r.MinX) || !(r.MaxY > r.MinY)
}

// emptyBox is the neutral element for box unions.
func emptyBox() Rect {
	inf := float32(math.Inf(1))
	return Rect{MinX: inf, MinY: inf, MaxX: -inf, MaxY: -inf}
}

func (r *Rect) add(minX, minY, maxX, maxY float32) {
	r.MinX = min(r.MinX, minX)
	r.MinY = min(r.MinY, minY)
	r.MaxX = max(r.MaxX, maxX)
	r.MaxY = max(r.MaxY, maxY)
}

func (r Rect) valid() bool {
	return r.MinX <= r.MaxX && r.MinY <= r.MaxY
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f)-(%.2f,%.2f)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Hit is the result of a hit test.
type Hit struct {
	CharIndex int  // code point hit
	Leading   bool // hit on the leading edge of the code point
}

// InsertionIndex is the text offset a caret should move to for this hit.
func (h Hit) InsertionIndex() int {
	if h.Leading {
		return h.CharIndex
	}
	return h.CharIndex + 1
}
