package layout

import "strings"

// RunFlags is a set of properties of a run.
type RunFlags uint16

const (
	RunTab          RunFlags = 1 << iota // run is a single tab character
	RunLinebreak                         // run is a hard line break
	RunSoftbreak                         // a line wraps after this run
	RunSplit                             // run has been split; the next run continues it
	RunSplitLast                         // run is the last piece of a split run
	RunLeftBearing                       // run holds its line's left side bearing
	RunRightBearing                      // run holds its line's right side bearing
	RunEmbedded                          // run is an embedded object without font
	RunComplex                           // run needs complex shaping
)

var runFlagNames = []string{"tab", "linebreak", "softbreak", "split", "split-last",
	"lsb", "rsb", "embedded", "complex"}

// Has is true if all flags of x are set in f.
func (f RunFlags) Has(x RunFlags) bool {
	return f&x == x
}

func (f RunFlags) String() string {
	var names []string
	for i, name := range runFlagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return "[" + strings.Join(names, ",") + "]"
}

// layoutFlags hold analysis results and state of a layout.
type layoutFlags uint16

const (
	hasBidi layoutFlags = 1 << iota
	hasComplex
	hasCJK
	hasTabs
	hasEmbedded
	rtlBase
	analysisValid
	wrapped
	cachedUnderline
	cachedStrikethrough
)

// analysisMask covers the flags produced by run segmentation.
const analysisMask = hasBidi | hasComplex | hasCJK | hasTabs | hasEmbedded | rtlBase | analysisValid

func (f layoutFlags) has(x layoutFlags) bool {
	return f&x != 0
}
