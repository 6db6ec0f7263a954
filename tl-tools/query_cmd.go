package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/textlayout/layout"
	"github.com/thatisuday/commando"
)

func runCaretCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetup(args, flags)
	offset := mustArgInt(args["offset"], "offset")
	leading := !mustFlagBool(flags["trailing"], "trailing")
	l := setup.layout()
	fmt.Printf("caret at %d (leading=%v):\n", offset, leading)
	fmt.Println(formatPath(l.CaretShape(offset, leading, 0, 0)))
}

func runHitCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetup(args, flags)
	x, y := mustArgFloat(args["x"], "x"), mustArgFloat(args["y"], "y")
	l := setup.layout()
	hit := l.HitInfo(x, y)
	fmt.Printf("hit at (%.2f,%.2f): %s\n", x, y, formatHit(hit, l.Text()))
}

func runRangeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetup(args, flags)
	start, end := mustArgInt(args["start"], "start"), mustArgInt(args["end"], "end")
	typ, err := parseRangeType(mustFlagString(flags["type"], "type"))
	if err != nil {
		fatalf("%v", err)
	}
	l := setup.layout()
	path := l.Range(start, end, typ, 0, 0)
	if len(path) == 0 {
		fmt.Printf("range [%d,%d) is empty\n", start, end)
		return
	}
	fmt.Printf("range [%d,%d):\n", start, end)
	fmt.Println(formatPath(path))
}

func parseRangeType(s string) (layout.RangeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return layout.RangeText, nil
	case "underline":
		return layout.RangeUnderline, nil
	case "strikethrough", "strike":
		return layout.RangeStrikethrough, nil
	}
	return layout.RangeText, fmt.Errorf("unknown range type %q", s)
}

func formatHit(hit layout.Hit, text []rune) string {
	edge := "trailing"
	if hit.Leading {
		edge = "leading"
	}
	s := fmt.Sprintf("char %d (%s), insertion index %d", hit.CharIndex, edge, hit.InsertionIndex())
	if hit.CharIndex >= 0 && hit.CharIndex < len(text) {
		s += fmt.Sprintf(", %q", text[hit.CharIndex])
	}
	return s
}

// formatPath prints one path element per line.
func formatPath(path []layout.PathElement) string {
	b := strings.Builder{}
	for i, e := range path {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("    ")
		b.WriteString(e.String())
	}
	return b.String()
}
