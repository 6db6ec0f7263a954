package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/internal/fontload"
	"github.com/npillmayer/textlayout/internal/snapshot"
	"github.com/npillmayer/textlayout/layout"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func main() {
	commando.
		SetExecutableName("tl-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for testing text layout and geometry queries.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("layout").
		SetDescription("Lay out text with a given font and print lines and glyph runs.").
		SetShortDescription("lay out text").
		AddArgument("font", "font file path, or goregular|gomono", "").
		AddArgument("text...", "text to lay out (variadic argument parts joined by comma by commando)", "").
		AddFlag("size,s", "font size", commando.String, "16").
		AddFlag("wrap,w", "wrap width (0 switches wrapping off)", commando.String, "0").
		AddFlag("align,a", "alignment: left|center|right|justify", commando.String, "left").
		AddFlag("dir,d", "paragraph direction: ltr|rtl|auto-ltr|auto-rtl", commando.String, "auto-ltr").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "und").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+05E9,U+05DC)", commando.String, "-").
		AddFlag("sfnt", "use x/image/font/sfnt instead of HarfBuzz", commando.Bool, nil).
		AddFlag("json,j", "print a JSON snapshot of the layout", commando.Bool, nil).
		AddFlag("compare", "compare the layout with a JSON snapshot file", commando.String, "-").
		AddFlag("verbose,V", "print positions of all glyphs", commando.Bool, nil).
		SetAction(runLayoutCommand)

	commando.
		Register("caret").
		SetDescription("Print the caret shape at a text offset.").
		SetShortDescription("caret shape").
		AddArgument("font", "font file path, or goregular|gomono", "").
		AddArgument("offset", "text offset (code point index)", "0").
		AddArgument("text...", "text to lay out", "").
		AddFlag("size,s", "font size", commando.String, "16").
		AddFlag("wrap,w", "wrap width (0 switches wrapping off)", commando.String, "0").
		AddFlag("dir,d", "paragraph direction: ltr|rtl|auto-ltr|auto-rtl", commando.String, "auto-ltr").
		AddFlag("trailing,t", "caret at the trailing edge", commando.Bool, nil).
		SetAction(runCaretCommand)

	commando.
		Register("hit").
		SetDescription("Find the code point at a position.").
		SetShortDescription("hit test").
		AddArgument("font", "font file path, or goregular|gomono", "").
		AddArgument("x", "x position", "0").
		AddArgument("y", "y position", "0").
		AddArgument("text...", "text to lay out", "").
		AddFlag("size,s", "font size", commando.String, "16").
		AddFlag("wrap,w", "wrap width (0 switches wrapping off)", commando.String, "0").
		AddFlag("dir,d", "paragraph direction: ltr|rtl|auto-ltr|auto-rtl", commando.String, "auto-ltr").
		SetAction(runHitCommand)

	commando.
		Register("range").
		SetDescription("Print the outline of a range of text.").
		SetShortDescription("range outline").
		AddArgument("font", "font file path, or goregular|gomono", "").
		AddArgument("start", "start offset", "0").
		AddArgument("end", "end offset", "0").
		AddArgument("text...", "text to lay out", "").
		AddFlag("size,s", "font size", commando.String, "16").
		AddFlag("wrap,w", "wrap width (0 switches wrapping off)", commando.String, "0").
		AddFlag("dir,d", "paragraph direction: ltr|rtl|auto-ltr|auto-rtl", commando.String, "auto-ltr").
		AddFlag("type,T", "range type: text|underline|strikethrough", commando.String, "text").
		SetAction(runRangeCommand)

	commando.
		Register("font").
		SetDescription("Print names and metrics of a font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path, or goregular|gomono", "").
		AddFlag("size,s", "font size", commando.String, "16").
		AddFlag("verbose,V", "print SFNT metrics as well", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// layoutSetup collects what is needed to create a layout from command-line
// arguments.
type layoutSetup struct {
	font      fontres.Font
	text      string
	wrap      float32
	align     layout.Alignment
	direction layout.Direction
	lang      language.Tag
}

func (s layoutSetup) layout() *layout.Layout {
	l := layout.New()
	l.SetContent(s.text, s.font)
	l.SetWrapWidth(s.wrap)
	l.SetAlignment(s.align)
	l.SetDirection(s.direction)
	l.SetLanguage(s.lang)
	return l
}

func runLayoutCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetup(args, flags)
	var err error
	if setup.align, err = layout.ParseAlignment(mustFlagString(flags["align"], "align")); err != nil {
		fatalf("%v", err)
	}
	if setup.lang, err = parseLanguage(flags["lang"]); err != nil {
		fatalf("%v", err)
	}
	if cp := strings.TrimSpace(mustFlagString(flags["codepoints"], "codepoints")); cp != "-" && cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			fatalf("%v", err)
		}
		setup.text = string(runes)
	}
	if mustFlagBool(flags["sfnt"], "sfnt") {
		setup.font = mustLoadSFNT(args["font"].Value, mustFlagFloat(flags["size"], "size"))
	}
	l := setup.layout()
	if path := strings.TrimSpace(mustFlagString(flags["compare"], "compare")); path != "-" && path != "" {
		if err := compareWithSnapshot(l, path); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("layout matches snapshot %s\n", path)
		return
	}
	if mustFlagBool(flags["json"], "json") {
		s, err := snapshot.Take(l)
		if err != nil {
			fatalf("%v", err)
		}
		if err := snapshot.WriteJSON(os.Stdout, s); err != nil {
			fatalf("%v", err)
		}
		return
	}
	verbose := mustFlagBool(flags["verbose"], "verbose")
	b := l.Bounds()
	fmt.Printf("Font: %s\n", setup.font.Key())
	fmt.Printf("Bounds: %v, lines=%d, wrapped=%v, rtl=%v\n", b, len(l.Lines()), l.IsWrapped(), l.IsRightToLeft())
	for i, line := range l.Lines() {
		fmt.Printf("line %d: [%d,%d) x=%.2f w=%.2f h=%.2f\n", i, line.Start(), line.End(),
			line.Bounds().MinX, line.Width(), line.Height())
		for _, r := range line.Runs() {
			fmt.Printf("    %v %s\n", r, formatGlyphOutput(r, verbose))
		}
	}
}

// compareWithSnapshot checks l against the snapshot stored at path.
func compareWithSnapshot(l *layout.Layout, path string) error {
	want, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	got, err := snapshot.Take(l)
	if err != nil {
		return err
	}
	if err := snapshot.Compare(got, want); err != nil {
		return fmt.Errorf("layout differs from %s: %w", path, err)
	}
	return nil
}

func mustSetup(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) layoutSetup {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	size := mustFlagFloat(flags["size"], "size")
	setup := layoutSetup{
		font: mustLoadFont(fontPath, size),
		text: joinTextArgs(args["text"].Value),
		wrap: mustFlagFloat(flags["wrap"], "wrap"),
	}
	var err error
	if setup.direction, err = layout.ParseDirection(mustFlagString(flags["dir"], "dir")); err != nil {
		fatalf("%v", err)
	}
	return setup
}

// joinTextArgs undoes commando's joining of variadic arguments.
func joinTextArgs(v string) string {
	return strings.ReplaceAll(v, ",", " ")
}

func parseLanguage(flag commando.FlagValue) (language.Tag, error) {
	s, err := flag.GetString()
	if err != nil {
		return language.Und, fmt.Errorf("invalid --lang flag: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "und" {
		return language.Und, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10FFFF || (u >= 0xD800 && u <= 0xDFFF) {
		return 0, fmt.Errorf("codepoint %q is not a Unicode scalar value", token)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustLoadFont(path string, size float32) fontres.Font {
	sf, err := fontload.Load(path)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	face, err := sf.Face(size)
	if err != nil {
		fatalf("cannot create face for %s: %v", path, err)
	}
	return face
}

func mustLoadSFNT(path string, size float32) fontres.Font {
	sf, err := fontload.Load(path)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	f, err := sf.SFNTFont(size)
	if err != nil {
		fatalf("cannot create SFNT font for %s: %v", path, err)
	}
	return f
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagFloat(flag commando.FlagValue, name string) float32 {
	s := mustFlagString(flag, name)
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return float32(x)
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustArgInt(arg commando.ArgValue, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(arg.Value))
	if err != nil {
		fatalf("argument %s not numeric: %v", name, arg.Value)
	}
	return n
}

func mustArgFloat(arg commando.ArgValue, name string) float32 {
	x, err := strconv.ParseFloat(strings.TrimSpace(arg.Value), 32)
	if err != nil {
		fatalf("argument %s not numeric: %v", name, arg.Value)
	}
	return float32(x)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "tl-tools: "+format+"\n", args...)
	os.Exit(1)
}

// formatGlyphOutput prints glyphs of a run in the style of hb-shape:
// gid=cluster+advance, with an @x,y offset for displaced glyphs.
func formatGlyphOutput(r *layout.Run, verbose bool) string {
	b := strings.Builder{}
	for i := 0; i < r.GlyphCount(); i++ {
		if i > 0 {
			b.WriteString("|")
		}
		g := r.Glyph(i)
		gid := strconv.FormatUint(uint64(g), 10)
		if g == fontres.InvisibleGlyph {
			gid = "-"
		}
		part := fmt.Sprintf("%s=%d+%.2f", gid, r.CharOffset(i), r.Advance(i))
		if y := r.PosY(i); y != 0 || verbose {
			part = fmt.Sprintf("%s@%.2f,%.2f", part, r.PosX(i), y)
		}
		b.WriteString(part)
	}
	return "[" + b.String() + "]"
}
