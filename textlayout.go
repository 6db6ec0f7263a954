package textlayout

import (
	"fmt"

	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/internal/fontload"
	"github.com/npillmayer/textlayout/layout"
)

// LoadFont loads a font resource for layout at size. name is either a path
// to a TTF or OTF file, or one of the embedded fonts "goregular" and
// "gomono". Fonts are shaped with HarfBuzz.
func LoadFont(name string, size float32) (fontres.Font, error) {
	sf, err := fontload.Load(name)
	if err != nil {
		return nil, err
	}
	face, err := sf.Face(size)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", sf.Fontname, err)
	}
	tracer().Debugf("loaded font %s at size %g", sf.Fontname, size)
	return face, nil
}

// LayoutString lays out a plain string in font f, wrapped at wrapWidth. A
// wrap width of 0 disables wrapping.
//
// The layout is created with default capabilities and left-to-right
// paragraph direction. Clients may reconfigure it with the setters of
// package layout.
func LayoutString(text string, f fontres.Font, wrapWidth float32) *layout.Layout {
	l := layout.New()
	l.SetContent(text, f)
	l.SetWrapWidth(wrapWidth)
	return l
}
