package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/layout"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func printMetrics(f fontres.Font) {
	m := f.Metrics()
	data := [][]string{
		{"Metric", "Value"},
		{"ascent", fmt.Sprintf("%.2f", m.Ascent)},
		{"descent", fmt.Sprintf("%.2f", m.Descent)},
		{"line gap", fmt.Sprintf("%.2f", m.LineGap)},
		{"line height", fmt.Sprintf("%.2f", m.Height())},
		{"cap height", fmt.Sprintf("%.2f", m.CapHeight)},
		{"underline", fmt.Sprintf("%.2f / %.2f", m.UnderlineOffset, m.UnderlineThickness)},
		{"strikethrough", fmt.Sprintf("%.2f / %.2f", m.StrikethroughOffset, m.StrikethroughThickness)},
	}
	pterm.Printf("Font %s\n", f.Key())
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLines(l *layout.Layout) {
	lines := l.Lines()
	pterm.Printf("Layout has %d lines, wrapped=%v, right-to-left=%v\n", len(lines),
		l.IsWrapped(), l.IsRightToLeft())
	data := [][]string{
		{"Line", "Text", "Width", "Height", "LSB", "RSB", "Runs"},
	}
	text := l.Text()
	for i, line := range lines {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%q", string(text[line.Start():line.End()])),
			fmt.Sprintf("%.2f", line.Width()),
			fmt.Sprintf("%.2f", line.Height()),
			fmt.Sprintf("%.2f", line.LeftSideBearing()),
			fmt.Sprintf("%.2f", line.RightSideBearing()),
			fmt.Sprintf("%d", len(line.Runs())),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printRuns(l *layout.Layout, names bool) {
	data := [][]string{
		{"Run", "Text", "Level", "Script", "Location", "Width", "Glyphs", "Flags"},
	}
	text := l.Text()
	for i, r := range l.Runs() {
		loc := r.Location()
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%q", string(text[r.Start():r.End()])),
			fmt.Sprintf("%d", r.Level()),
			r.Script().String(),
			fmt.Sprintf("(%.2f,%.2f)", loc[0], loc[1]),
			fmt.Sprintf("%.2f", r.Width()),
			fmt.Sprintf("%d", r.GlyphCount()),
			r.Flags().String(),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if !names {
		return
	}
	for _, r := range l.Runs() {
		pterm.Printf("run [%d,%d):\n", r.Start(), r.End())
		for _, c := range text[r.Start():r.End()] {
			pterm.Printf("    U+%04X  %s\n", c, runeName(c))
		}
	}
}

func runeName(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return "<unnamed>"
}

func printPath(name string, path []layout.PathElement) {
	if len(path) == 0 {
		pterm.Printf("%s is empty\n", name)
		return
	}
	sb := strings.Builder{}
	for i, e := range path {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(e.String())
	}
	pterm.Printf("%s: %s\n", name, sb.String())
}
