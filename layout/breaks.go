package layout

import (
	"sort"

	"github.com/go-text/typesetting/segmenter"
)

// lineBreaks is a BreakIterator over precomputed UAX #14 break
// opportunities.
type lineBreaks struct {
	bounds []int // ascending, includes 0 and len(text)
}

// NewLineBreaks computes the line break opportunities of text with the
// segmenter of go-text/typesetting.
func NewLineBreaks(text []rune) BreakIterator {
	lb := &lineBreaks{bounds: []int{0}}
	if len(text) == 0 {
		return lb
	}
	var seg segmenter.Segmenter
	seg.Init(text)
	it := seg.LineIterator()
	for it.Next() {
		line := it.Line()
		end := line.Offset + len(line.Text)
		if end > lb.bounds[len(lb.bounds)-1] {
			lb.bounds = append(lb.bounds, end)
		}
	}
	return lb
}

func (lb *lineBreaks) IsBoundary(offset int) bool {
	i := sort.SearchInts(lb.bounds, offset)
	return i < len(lb.bounds) && lb.bounds[i] == offset
}

func (lb *lineBreaks) Preceding(offset int) int {
	i := sort.SearchInts(lb.bounds, offset)
	if i == 0 {
		return 0
	}
	return lb.bounds[i-1]
}
