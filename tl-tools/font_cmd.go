package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/internal/fontload"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	size := mustFlagFloat(flags["size"], "size")
	sf, err := fontload.Load(fontPath)
	if err != nil {
		fatalf("cannot load font %s: %v", fontPath, err)
	}
	face, err := sf.Face(size)
	if err != nil {
		fatalf("cannot create face for %s: %v", fontPath, err)
	}
	fmt.Printf("Font: %s\n", sf.Fontname)
	if sf.Filepath != "" {
		fmt.Printf("File: %s (%d bytes)\n", sf.Filepath, len(sf.Binary))
	}
	var buf sfnt.Buffer
	for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDSubfamily, sfnt.NameIDVersion} {
		if name, err := sf.SFNT.Name(&buf, id); err == nil && name != "" {
			fmt.Printf("    name %-2d %s\n", id, name)
		}
	}
	fmt.Printf("Glyphs: %d\n", sf.SFNT.NumGlyphs())
	fmt.Printf("Metrics at size %.1f:\n", size)
	fmt.Println(formatMetrics(face.Metrics()))
	if mustFlagBool(flags["verbose"], "verbose") {
		if s, err := sf.SFNTFont(size); err == nil {
			fmt.Println("SFNT metrics:")
			fmt.Println(formatMetrics(s.Metrics()))
		}
	}
}

func formatMetrics(m fontres.Metrics) string {
	return fmt.Sprintf("    ascent=%.2f descent=%.2f gap=%.2f height=%.2f cap-height=%.2f\n"+
		"    underline=%.2f/%.2f strikethrough=%.2f/%.2f",
		m.Ascent, m.Descent, m.LineGap, m.Height(), m.CapHeight,
		m.UnderlineOffset, m.UnderlineThickness, m.StrikethroughOffset, m.StrikethroughThickness)
}
