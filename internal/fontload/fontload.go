/*
Package fontload loads scalable fonts from files or from the fonts embedded in
golang.org/x/image, and turns them into layout font resources.
*/
package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textlayout/fontres"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'textlayout.fonts'
func tracer() tracing.Trace {
	return tracing.Select("textlayout.fonts")
}

// ErrNoFontData is returned for empty font binaries.
var ErrNoFontData = errors.New("fontload: no font data")

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string // empty for embedded fonts
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	if len(fbytes) == 0 {
		return nil, ErrNoFontData
	}
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		f.Fontname = "unnamed"
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// GoRegular returns the embedded Go Regular font.
func GoRegular() *ScalableFont {
	return mustParse(goregular.TTF)
}

// GoMono returns the embedded Go Mono font.
func GoMono() *ScalableFont {
	return mustParse(gomono.TTF)
}

func mustParse(data []byte) *ScalableFont {
	f, err := ParseOpenTypeFont(data)
	if err != nil {
		panic(err) // embedded fonts are known to be valid
	}
	return f
}

// Embedded resolves the names "goregular" and "gomono". It returns nil for
// other names.
func Embedded(name string) *ScalableFont {
	switch name {
	case "goregular", "go":
		return GoRegular()
	case "gomono", "mono":
		return GoMono()
	}
	return nil
}

// Load resolves name as an embedded font first, then as a file path.
func Load(name string) (*ScalableFont, error) {
	if f := Embedded(name); f != nil {
		return f, nil
	}
	return LoadOpenTypeFont(name)
}

// Face creates a layout font with HarfBuzz shaping at size.
func (f *ScalableFont) Face(size float32) (*fontres.Face, error) {
	return fontres.ParseFace(f.Fontname, f.Binary, size)
}

// SFNTFont creates a layout font backed by x/image/font/sfnt at size.
func (f *ScalableFont) SFNTFont(size float32) (*fontres.SFNT, error) {
	return fontres.NewSFNT(f.SFNT, size)
}
