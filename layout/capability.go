package layout

// LevelRun is a maximal sequence of code points with equal bidi level.
// End is exclusive.
type LevelRun struct {
	Start, End int
	Level      uint8
}

// BidiAnalyzer resolves embedding levels for a text.
type BidiAnalyzer interface {
	// Analyze returns level runs covering text in logical order, together
	// with the resolved paragraph direction. Paragraph separators take the
	// paragraph's base level.
	Analyze(text []rune, dir Direction) (runs []LevelRun, rtlBase bool)
}

// BreakIterator reports line break opportunities of a text.
// Offsets are code point indices; the start and end of the text are
// boundaries.
type BreakIterator interface {
	// IsBoundary is true if a line may be broken before offset.
	IsBoundary(offset int) bool
	// Preceding returns the last boundary before offset, or 0.
	Preceding(offset int) int
}

// Capabilities are the collaborators of a layout which implement Unicode
// algorithms.
type Capabilities struct {
	Bidi   BidiAnalyzer
	Breaks func(text []rune) BreakIterator
}

// DefaultCapabilities uses golang.org/x/text for bidi analysis and the UAX #14
// segmenter of go-text/typesetting for line breaking.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Bidi:   UnicodeBidi{},
		Breaks: NewLineBreaks,
	}
}

func (c Capabilities) withDefaults() Capabilities {
	if c.Bidi == nil {
		c.Bidi = UnicodeBidi{}
	}
	if c.Breaks == nil {
		c.Breaks = NewLineBreaks
	}
	return c
}
