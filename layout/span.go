package layout

import "github.com/npillmayer/textlayout/fontres"

// Span is a piece of rich text. A span without a font is an embedded object
// (e.g., an image) of size Bounds, occupying the code points of Text.
type Span struct {
	Text   string
	Font   fontres.Font
	Bounds Rect // embedded objects only; MinY is the (negative) ascent
}

// IsEmbedded is true for spans without a font.
func (s *Span) IsEmbedded() bool {
	return s.Font == nil
}

func equalSpans(a, b []*Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && *a[i] != *b[i] {
			return false
		}
	}
	return true
}
