package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/internal/snapshot"
	"github.com/npillmayer/textlayout/layout"
	"golang.org/x/text/language"
)

func TestParseCodepoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	runes, err := parseCodepoints("U+05E9, 0x5DC 05D5\tu+05dd")
	if err != nil {
		t.Fatal(err)
	}
	want := []rune{0x05E9, 0x05DC, 0x05D5, 0x05DD}
	if len(runes) != len(want) {
		t.Fatalf("len(runes)=%d, want %d", len(runes), len(want))
	}
	for i, r := range want {
		if runes[i] != r {
			t.Errorf("runes[%d]=%U, want %U", i, runes[i], r)
		}
	}
	for _, bad := range []string{"U+D800", "110000", "xyz"} {
		if _, err := parseCodepoints(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if _, err := parseCodepointToken(" "); err == nil {
		t.Errorf("expected error for empty token")
	}
}

func TestParseRangeType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	for s, want := range map[string]layout.RangeType{
		"":          layout.RangeText,
		"Underline": layout.RangeUnderline,
		"strike":    layout.RangeStrikethrough,
	} {
		typ, err := parseRangeType(s)
		if err != nil || typ != want {
			t.Errorf("parseRangeType(%q)=%v/%v, want %v", s, typ, err, want)
		}
	}
	if _, err := parseRangeType("overline"); err == nil {
		t.Errorf("expected error for unknown range type")
	}
}

func TestLayoutOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	setup := layoutSetup{
		font: fontres.NewMonospace(10),
		text: joinTextArgs("Hello,World"),
		wrap: 75,
		lang: language.English,
	}
	l := setup.layout()
	if len(l.Lines()) != 2 {
		t.Fatalf("expected 2 lines, have %d", len(l.Lines()))
	}
	r := l.Lines()[1].Runs()[0]
	out := formatGlyphOutput(r, false)
	if out != "[87=0+10.00|111=1+10.00|114=2+10.00|108=3+10.00|100=4+10.00]" {
		t.Errorf("unexpected glyph output %s", out)
	}
	if out = formatGlyphOutput(r, true); !strings.Contains(out, "87=0+10.00@0.00,0.00|") {
		t.Errorf("unexpected verbose glyph output %s", out)
	}
	hit := formatHit(l.HitInfo(12, 5), l.Text())
	if hit != "char 1 (leading), insertion index 1, 'e'" {
		t.Errorf("unexpected hit %s", hit)
	}
	path := formatPath(l.CaretShape(1, true, 0, 0))
	if n := strings.Count(path, "\n"); n != 1 {
		t.Errorf("expected caret of 2 elements, have %d lines:\n%s", n+1, path)
	}
}

func TestCompareWithSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	setup := layoutSetup{font: fontres.NewMonospace(10), text: "one two three", wrap: 50}
	s, err := snapshot.Take(setup.layout())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err = snapshot.WriteJSON(f, s); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err = compareWithSnapshot(setup.layout(), path); err != nil {
		t.Errorf("identical layout should match: %v", err)
	}
	setup.wrap = 0
	if err = compareWithSnapshot(setup.layout(), path); err == nil {
		t.Errorf("unwrapped layout should not match")
	}
	if err = compareWithSnapshot(setup.layout(), filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Errorf("expected error for missing snapshot file")
	}
}
