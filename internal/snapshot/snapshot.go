/*
Package snapshot captures the geometry of finished layouts as plain,
JSON-serializable values.

Snapshots are used to compare layouts produced along different paths (e.g.,
cached and uncached) and to export layouts from the command-line tools.
*/
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/textlayout/layout"
)

// SchemaVersion is the version of the JSON format written by WriteJSON.
const SchemaVersion = 1

// ErrNoLayout is returned when taking a snapshot of a nil layout.
var ErrNoLayout = errors.New("snapshot: no layout")

// Glyph is one positioned glyph of a run.
type Glyph struct {
	G  uint32  `json:"g"`  // glyph ID
	Cl int     `json:"cl"` // code point offset of the cluster, relative to the run
	X  float32 `json:"x"`  // x position relative to the run
	Y  float32 `json:"y"`  // y offset, downwards
	AX float32 `json:"ax"` // advance
}

// RunGeometry is the placement of a run.
type RunGeometry struct {
	Start  int     `json:"start"`
	Length int     `json:"length"`
	Level  uint8   `json:"level"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
}

// Run is a glyph run at its location in the layout.
type Run struct {
	RunGeometry
	Flags  string  `json:"flags,omitempty"`
	Glyphs []Glyph `json:"glyphs,omitempty"`
}

// LineGeometry is the extent of a line.
type LineGeometry struct {
	Start   int     `json:"start"`
	Length  int     `json:"length"`
	Width   float32 `json:"width"`
	Ascent  float32 `json:"ascent"`
	Descent float32 `json:"descent"`
	Leading float32 `json:"leading"`
	LSB     float32 `json:"lsb"`
	RSB     float32 `json:"rsb"`
}

// Line is a line of runs in visual order.
type Line struct {
	LineGeometry
	Runs []Run `json:"runs"`
}

// Snapshot is the geometry of a layout.
type Snapshot struct {
	SchemaVersion int        `json:"schema_version"`
	Text          string     `json:"text"`
	Bounds        [4]float32 `json:"bounds"` // min x, min y, max x, max y
	Lines         []Line     `json:"lines"`
}

// Take captures the geometry of l, laying it out if necessary.
func Take(l *layout.Layout) (Snapshot, error) {
	if l == nil {
		return Snapshot{}, ErrNoLayout
	}
	b := l.Bounds()
	s := Snapshot{
		SchemaVersion: SchemaVersion,
		Text:          string(l.Text()),
		Bounds:        [4]float32{b.MinX, b.MinY, b.MaxX, b.MaxY},
	}
	for _, line := range l.Lines() {
		ln := Line{LineGeometry: LineGeometry{
			Start:   line.Start(),
			Length:  line.Length(),
			Width:   line.Width(),
			Ascent:  line.Ascent(),
			Descent: line.Descent(),
			Leading: line.Leading(),
			LSB:     line.LeftSideBearing(),
			RSB:     line.RightSideBearing(),
		}}
		for _, r := range line.Runs() {
			ln.Runs = append(ln.Runs, takeRun(r))
		}
		s.Lines = append(s.Lines, ln)
	}
	return s, nil
}

func takeRun(r *layout.Run) Run {
	loc := r.Location()
	run := Run{RunGeometry: RunGeometry{
		Start:  r.Start(),
		Length: r.Length(),
		Level:  r.Level(),
		X:      loc[0],
		Y:      loc[1],
		Width:  r.Width(),
	}}
	if f := r.Flags(); f != 0 {
		run.Flags = f.String()
	}
	for i := 0; i < r.GlyphCount(); i++ {
		run.Glyphs = append(run.Glyphs, Glyph{
			G:  uint32(r.Glyph(i)),
			Cl: r.CharOffset(i),
			X:  r.PosX(i),
			Y:  r.PosY(i),
			AX: r.Advance(i),
		})
	}
	return run
}

// Compare returns an error describing the first difference between got and
// want, or nil if their geometry is identical. Run flags are not compared.
func Compare(got, want Snapshot) error {
	if got.Text != want.Text {
		return fmt.Errorf("text differs: got %q, want %q", got.Text, want.Text)
	}
	if got.Bounds != want.Bounds {
		return fmt.Errorf("bounds differ: got %v, want %v", got.Bounds, want.Bounds)
	}
	if len(got.Lines) != len(want.Lines) {
		return fmt.Errorf("unequal number of lines: got %d, want %d", len(got.Lines), len(want.Lines))
	}
	for i := range got.Lines {
		g, w := got.Lines[i], want.Lines[i]
		if len(g.Runs) != len(w.Runs) {
			return fmt.Errorf("line[%d]: unequal number of runs: got %d, want %d", i, len(g.Runs), len(w.Runs))
		}
		if g.LineGeometry != w.LineGeometry {
			return fmt.Errorf("line[%d] mismatch: got=%+v want=%+v", i, g.LineGeometry, w.LineGeometry)
		}
		for j := range g.Runs {
			if err := compareRuns(g.Runs[j], w.Runs[j]); err != nil {
				return fmt.Errorf("line[%d] run[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

func compareRuns(got, want Run) error {
	if len(got.Glyphs) != len(want.Glyphs) {
		return fmt.Errorf("unequal number of glyphs: got %d, want %d", len(got.Glyphs), len(want.Glyphs))
	}
	for k := range got.Glyphs {
		if got.Glyphs[k] != want.Glyphs[k] {
			return fmt.Errorf("glyph[%d] mismatch: got=%+v want=%+v", k, got.Glyphs[k], want.Glyphs[k])
		}
	}
	if got.RunGeometry != want.RunGeometry {
		return fmt.Errorf("mismatch: got=%+v want=%+v", got.RunGeometry, want.RunGeometry)
	}
	return nil
}

// Equal is true if a and b have identical geometry.
func Equal(a, b Snapshot) bool {
	return Compare(a, b) == nil
}

// WriteJSON writes s as indented JSON.
func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// ReadJSON reads a snapshot written by WriteJSON.
func ReadJSON(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, err
	}
	if err := s.validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Load reads a snapshot from a JSON file.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	s, err := ReadJSON(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return s, nil
}

func (s Snapshot) validate() error {
	if s.SchemaVersion != SchemaVersion {
		return fmt.Errorf("snapshot: unsupported schema version %d", s.SchemaVersion)
	}
	if len(s.Lines) == 0 {
		return fmt.Errorf("snapshot: a layout has at least one line")
	}
	n := len([]rune(s.Text))
	for i, line := range s.Lines {
		if line.Start < 0 || line.Start+line.Length > n {
			return fmt.Errorf("snapshot: line[%d] [%d,%d) exceeds text of length %d", i,
				line.Start, line.Start+line.Length, n)
		}
	}
	return nil
}
