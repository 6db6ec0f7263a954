/*
Package script classifies code points for text layout.

A layout engine needs three answers per code point: which Unicode script it
belongs to, whether it requires complex shaping (contextual forms, combining
marks, reordering), and whether it is ideographic and therefore breakable
almost anywhere. Script lookup is delegated to go-text/typesetting; the
complexity and ideograph classes are answered from range tables owned by this
package, versioned by TableVersion.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package script

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout.script'
func tracer() tracing.Trace {
	return tracing.Select("textlayout.script")
}

// TableVersion identifies the Unicode version the complexity and ideograph
// tables have been compiled against.
const TableVersion = "15.1.0"

// Class bundles the classification results for a single code point.
type Class struct {
	Script      language.Script
	Complex     bool
	Ideographic bool
}

// Classify returns script, complexity and ideograph class of r.
func Classify(r rune) Class {
	return Class{
		Script:      Of(r),
		Complex:     IsComplex(r),
		Ideographic: IsIdeographic(r),
	}
}

// Of returns the Unicode script of r.
func Of(r rune) language.Script {
	return language.LookupScript(r)
}

// IsCommon is true for scripts which do not start a script run of their own:
// Common, Inherited and Unknown. Characters of these scripts adopt the script
// of their surroundings.
func IsCommon(s language.Script) bool {
	return s == language.Common || s == language.Inherited || s == language.Unknown
}

// IsComplex is true if r requires complex shaping, i.e. glyph selection or
// positioning depending on context.
func IsComplex(r rune) bool {
	if r < 0x0300 { // fast path for ASCII and Latin-1
		return false
	}
	return unicode.Is(complexTable, r)
}

// IsIdeographic is true for CJK ideographs, kana, bopomofo and related
// blocks. Text containing these is broken with a break iterator rather than
// at whitespace.
func IsIdeographic(r rune) bool {
	if r < 0x2E80 {
		return false
	}
	return unicode.Is(ideographTable, r)
}

// Scan classifies a whole text. It reports whether any code point is complex
// or ideographic, stopping early once both have been found.
func Scan(text []rune) (complex, ideographic bool) {
	for _, r := range text {
		if !complex && IsComplex(r) {
			complex = true
		}
		if !ideographic && IsIdeographic(r) {
			ideographic = true
		}
		if complex && ideographic {
			break
		}
	}
	tracer().Debugf("scan of %d code points: complex=%v, ideographic=%v", len(text), complex, ideographic)
	return
}
