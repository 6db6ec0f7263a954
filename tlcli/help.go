package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "text", "font":
		pterm.Info.Println("Content")
		pterm.Println(`
	text <string>        set the text to lay out; \n and \t are escapes
	font <name> [size]   load a font: a file path, "goregular" or "gomono"
	font                 print the metrics of the current font
	`)
	case "wrap", "align", "dir", "spacing", "tabs", "options":
		pterm.Info.Println("Layout Options")
		pterm.Println(`
	wrap <width>         wrap lines at width; 0 switches wrapping off
	align <alignment>    left | center | right | justify
	dir <direction>      ltr | rtl | auto-ltr | auto-rtl
	spacing <amount>     extra space between lines
	tabs <n>             tab stops every n spaces
	tabs <x1> <x2> … / <d>   explicit tab stops, then every d units
	`)
	case "query", "queries", "caret", "hit", "range", "bounds":
		pterm.Info.Println("Geometry Queries")
		pterm.Println(`
	lines                list lines with their metrics
	runs [names]         list runs in visual order, optionally with character names
	caret <offset> [trailing]    print the caret shape at a text offset
	hit <x> <y>          find the code point at a position
	range <start> <end> [underline|strikethrough]   print the outline of a range
	bounds               print logical and visual bounds
	`)
	default:
		pterm.Info.Println("General Help")
		pterm.Println(`
	Commands may be chained with ';', e.g.  text Hello World; wrap 40; lines
	Help topics: text, options, queries
	`)
	}
}
