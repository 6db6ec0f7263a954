/*
Package layout lays out paragraphs of text.

A Layout takes plain text in a single font, or rich text made of spans, and
breaks it into lines of glyph runs. Runs are homogeneous in font, bidi level
and script, and are shaped either by a simple per-character path or by the
font's complex shaper. Lines honor a wrap width, an alignment and the
paragraph direction; runs within a line are reordered visually for mixed
left-to-right and right-to-left text.

Finished layouts answer geometry queries: logical and visual bounds, caret
shapes, hit tests and the rectangles covering a range of text.

Coordinates have their origin at the top left corner of the first line, with
y growing downwards. Text offsets are code point (rune) indices.

Layouts of short, simple, unwrapped text are kept in a process-wide cache and
shared between Layout instances with equal text and font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout.layout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout.layout")
}

// ErrUnknownOption is returned when parsing an unknown option name.
var ErrUnknownOption = errors.New("layout: unknown option")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
