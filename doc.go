/*
Package textlayout lays out paragraphs of text for display.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "scalable font" is a font file, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Go regular".
Package internal/fontload handles these.

▪︎ A "font resource" is a scalable font at a certain size, able to map
characters to glyphs, measure them and shape runs of text. Package fontres
defines the capability and provides implementations on top of
go-text/typesetting and golang.org/x/image/font/sfnt.

▪︎ A "layout" is a paragraph of text broken into lines of glyph runs, ready
to be drawn. Package layout creates layouts and answers geometry queries on
them, e.g. for carets, hit tests and selections.

This package offers convenience functions for the common case of a plain
string in a single font.

# Status

Does not yet handle vertical text or font fallback for missing glyphs.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package textlayout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
