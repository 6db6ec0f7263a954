package layout

import (
	"math"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/tabs"
	textlang "golang.org/x/text/language"
)

// DefaultTabSize is the number of space advances between tab stops.
const DefaultTabSize = 8

// Layout is a paragraph of text laid out into lines.
//
// A Layout is configured with setters and laid out lazily on the first
// query. Setters report whether the configuration changed. A Layout is not
// safe for concurrent use.
type Layout struct {
	caps       Capabilities
	chars      []rune
	font       fontres.Font // plain text only
	spans      []*Span      // rich text only
	spanStarts []int
	direction  Direction
	alignment  Alignment
	boundsType BoundsType
	wrapWidth  float32
	spacing    float32
	tabSize    int
	tabPolicy  tabs.Policy
	lang       language.Language
	flags      layoutFlags
	// layout results
	runs          []*Run
	runsShared    bool // runs is the slice of a cache entry
	lines         []*Line
	cacheKey      uint64
	keyed         bool
	cache         *cacheEntry
	layoutWidth   float32
	layoutHeight  float32
	logicalBounds Rect
	visualBounds  *Rect
}

// New creates an empty layout using the default capabilities.
func New() *Layout {
	return NewWithCapabilities(DefaultCapabilities())
}

// NewWithCapabilities creates an empty layout using caps. Missing
// capabilities are replaced by the defaults.
func NewWithCapabilities(caps Capabilities) *Layout {
	return &Layout{
		caps:    caps.withDefaults(),
		tabSize: DefaultTabSize,
	}
}

// SetContent sets plain text in a single font. It always resets the layout.
func (l *Layout) SetContent(text string, f fontres.Font) bool {
	l.reset()
	l.spans, l.spanStarts = nil, nil
	l.font = f
	l.chars = []rune(text)
	l.keyed = false
	if n := len(l.chars); n > 0 && n <= maxCachedText && f != nil {
		l.cacheKey = cacheKeyFor(f.Key(), text)
		l.keyed = true
	}
	return true
}

// SetSpans sets rich text. It does nothing if spans are equal to the
// current ones, or if spans is nil; use SetContent to return to plain text.
func (l *Layout) SetSpans(spans []*Span) bool {
	if spans == nil || (l.spans != nil && equalSpans(l.spans, spans)) {
		return false
	}
	l.reset()
	l.font, l.keyed = nil, false
	l.spans = spans
	l.spanStarts = make([]int, len(spans))
	l.chars = l.chars[:0:0]
	for i, s := range spans {
		l.spanStarts[i] = len(l.chars)
		l.chars = append(l.chars, []rune(s.Text)...)
	}
	return true
}

// SetDirection sets the paragraph direction.
func (l *Layout) SetDirection(d Direction) bool {
	if l.direction == d {
		return false
	}
	l.direction = d
	l.reset()
	return true
}

// SetBoundsType selects how line heights are computed.
func (l *Layout) SetBoundsType(t BoundsType) bool {
	if l.boundsType == t {
		return false
	}
	l.boundsType = t
	l.reset()
	return true
}

// SetAlignment sets the horizontal alignment. Switching to or from Justify
// needs new runs; other changes reuse them.
func (l *Layout) SetAlignment(a Alignment) bool {
	if l.alignment == a {
		return false
	}
	justify := a == AlignJustify || l.alignment == AlignJustify
	l.alignment = a
	if justify {
		l.reset()
	} else {
		l.relayout()
	}
	return true
}

// SetWrapWidth sets the wrapping width; 0 disables wrapping. NaN, infinite
// and negative widths are treated as 0. SetWrapWidth reports whether the
// layout has to be redone.
func (l *Layout) SetWrapWidth(w float32) bool {
	if math.IsNaN(float64(w)) || math.IsInf(float64(w), 0) {
		w = 0
	}
	w = max(w, 0)
	old := l.wrapWidth
	if old == w {
		return false
	}
	l.wrapWidth = w
	needsLayout := true
	if l.lines != nil && old != 0 && w != 0 && l.alignment == AlignLeft && !l.isMirrored() {
		if w > old {
			// all text fits if nothing has been wrapped before
			needsLayout = l.flags.has(wrapped)
		} else {
			needsLayout = w < l.layoutWidth
		}
	}
	if needsLayout {
		l.relayout()
	}
	return needsLayout
}

// SetLineSpacing sets additional space between lines.
func (l *Layout) SetLineSpacing(spacing float32) bool {
	if l.spacing == spacing {
		return false
	}
	l.spacing = spacing
	l.relayout()
	return true
}

// SetTabSize sets the distance of tab stops in multiples of the advance of
// a space. Sizes below 1 are treated as 1. An explicit tab policy takes
// precedence.
func (l *Layout) SetTabSize(spaces int) bool {
	spaces = max(spaces, 1)
	if l.tabSize == spaces {
		return false
	}
	l.tabSize = spaces
	l.relayout()
	return true
}

// SetTabPolicy sets a tab policy; nil restores fixed stops of the tab size.
func (l *Layout) SetTabPolicy(p tabs.Policy) bool {
	l.tabPolicy = p
	l.relayout()
	return true
}

// SetLanguage sets the language used for shaping complex text.
func (l *Layout) SetLanguage(tag textlang.Tag) bool {
	lang := language.NewLanguage(tag.String())
	if tag == textlang.Und {
		lang = ""
	}
	if lang == l.lang {
		return false
	}
	l.lang = lang
	l.reset()
	return true
}

// Text returns the code points of the layout.
func (l *Layout) Text() []rune { return l.chars }

// CharCount is the number of code points of the layout.
func (l *Layout) CharCount() int { return len(l.chars) }

// Spans returns the spans of rich text, or nil for plain text.
func (l *Layout) Spans() []*Span { return l.spans }

// Font returns the font of plain text, or nil for rich text.
func (l *Layout) Font() fontres.Font { return l.font }

// Direction returns the configured paragraph direction.
func (l *Layout) Direction() Direction { return l.direction }

// Alignment returns the configured alignment.
func (l *Layout) Alignment() Alignment { return l.alignment }

// WrapWidth returns the wrapping width; 0 if wrapping is disabled.
func (l *Layout) WrapWidth() float32 { return l.wrapWidth }

// IsRightToLeft reports whether the resolved paragraph direction is
// right-to-left.
func (l *Layout) IsRightToLeft() bool {
	l.ensureLayout()
	return l.flags.has(rtlBase)
}

// IsWrapped reports whether any line has been wrapped.
func (l *Layout) IsWrapped() bool {
	l.ensureLayout()
	return l.flags.has(wrapped)
}

// Lines returns the lines of the layout.
func (l *Layout) Lines() []*Line {
	l.ensureLayout()
	return l.lines
}

// Runs returns all runs, line by line in visual order.
func (l *Layout) Runs() []*Run {
	l.ensureLayout()
	var runs []*Run
	for _, line := range l.lines {
		runs = append(runs, line.runs...)
	}
	return runs
}

// Bounds returns the logical bounds of the layout, derived from font
// metrics and the widest line.
func (l *Layout) Bounds() Rect {
	l.ensureLayout()
	return l.logicalBounds
}

func (l *Layout) ensureLayout() {
	if l.lines == nil {
		l.layout()
	}
}

func (l *Layout) reset() {
	l.cache = nil
	l.runs, l.runsShared = nil, false
	l.flags &^= analysisMask
	l.relayout()
}

func (l *Layout) relayout() {
	l.logicalBounds = Rect{}
	l.visualBounds = nil
	l.layoutWidth, l.layoutHeight = 0, 0
	l.flags &^= wrapped | cachedUnderline | cachedStrikethrough
	l.lines = nil
}

// isMirrored is true if lines are mirrored for a right-to-left paragraph.
func (l *Layout) isMirrored() bool {
	switch l.direction {
	case RightToLeft:
		return true
	case LeftToRight:
		return false
	}
	return l.flags.has(rtlBase)
}

func (l *Layout) mirroringWidth() float32 {
	if l.wrapWidth != 0 {
		return l.wrapWidth
	}
	return l.layoutWidth
}

// isSimpleLayout is true for layouts of compact runs only.
func (l *Layout) isSimpleLayout() bool {
	return !l.flags.has(hasBidi|hasComplex) && l.alignment != AlignJustify
}

// copyCache is true if cached runs may be used, but lines have to be
// computed anew.
func (l *Layout) copyCache() bool {
	return l.wrapWidth != 0 || l.alignment != AlignLeft || l.boundsType != BoundsLogical ||
		l.spacing != 0 || l.tabPolicy != nil || l.tabSize != DefaultTabSize || l.isMirrored()
}

// firstFont returns the plain text font or the font of the first span with
// a font.
func (l *Layout) firstFont() fontres.Font {
	if l.spans == nil {
		return l.font
	}
	for _, s := range l.spans {
		if s.Font != nil {
			return s.Font
		}
	}
	return nil
}

func (l *Layout) tabAdvance() float32 {
	f := l.firstFont()
	if f == nil {
		return 0
	}
	var g [1]fontres.GlyphID
	f.CharsToGlyphs([]rune{' '}, g[:])
	return float32(l.tabSize) * f.Advance(g[0])
}
