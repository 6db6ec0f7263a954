package snapshot

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/layout"
)

func take(t *testing.T, text string, wrap float32) Snapshot {
	t.Helper()
	l := layout.New()
	l.SetContent(text, fontres.NewMonospace(10))
	l.SetWrapWidth(wrap)
	s, err := Take(l)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCachedEqualsFresh(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	layout.ClearCache()
	defer layout.ClearCache()
	//
	text := "one two three"
	published := take(t, text, 0)
	cached := take(t, text, 0)
	if err := Compare(cached, published); err != nil {
		t.Errorf("cached layout differs: %v", err)
	}
	wrappedFromCache := take(t, text, 100)
	layout.ClearCache()
	fresh := take(t, text, 0)
	if err := Compare(fresh, published); err != nil {
		t.Errorf("fresh layout differs: %v", err)
	}
	layout.ClearCache()
	wrapped := take(t, text, 100)
	if err := Compare(wrappedFromCache, wrapped); err != nil {
		t.Errorf("wrapped layout from cached runs differs: %v", err)
	}
	if len(wrapped.Lines) != 2 {
		t.Errorf("expected 2 lines, have %d", len(wrapped.Lines))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	s := take(t, "abc \u05e9\u05dc\u05d5\u05dd def", 60)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"schema_version": 1`) {
		t.Errorf("schema version missing in %s", buf.String())
	}
	r, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("cannot read snapshot: %v", err)
	}
	if err := Compare(r, s); err != nil {
		t.Errorf("snapshot changed by round trip: %v", err)
	}
}

func TestMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	a := take(t, "one two three", 100)
	b := take(t, "one two three", 60)
	if Equal(a, b) {
		t.Errorf("layouts of different wrap widths should differ")
	}
	c := take(t, "one two three", 100)
	c.Lines[0].Runs[0].Glyphs[1].AX++
	if err := Compare(c, a); err == nil || !strings.Contains(err.Error(), "glyph[1]") {
		t.Errorf("expected glyph mismatch, have %v", err)
	}
}

func TestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout.layout")
	defer teardown()
	//
	if _, err := Take(nil); !errors.Is(err, ErrNoLayout) {
		t.Errorf("expected ErrNoLayout, have %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`{"schema_version": 7}`)); err == nil {
		t.Errorf("expected error for unsupported schema")
	}
	if _, err := ReadJSON(strings.NewReader(`{"schema_version": 1, "text": "ab",
		"lines": [{"start": 0, "length": 5}]}`)); err == nil {
		t.Errorf("expected error for line exceeding text")
	}
}
