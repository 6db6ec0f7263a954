package tabs

import "testing"

func TestFixed(t *testing.T) {
	f := Fixed{Advance: 40}
	tests := []struct {
		pos, next float32
	}{
		{0, 40}, {10, 40}, {39.5, 40}, {40, 80}, {95, 120},
	}
	for _, test := range tests {
		if n := f.NextTabStop(0, test.pos); n != test.next {
			t.Errorf("next stop after %.1f = %.1f, want %.1f", test.pos, n, test.next)
		}
	}
	if n := (Fixed{}).NextTabStop(0, 10); n != -1 {
		t.Errorf("zero advance: next stop = %.1f, want -1", n)
	}
}

func TestStops(t *testing.T) {
	s := NewStops(50, 120, 30)
	tests := []struct {
		pos, next float32
	}{
		{0, 30}, {29, 30}, {30, 120}, {100, 120}, {120, 150}, {160, 200},
	}
	for _, test := range tests {
		if n := s.NextTabStop(0, test.pos); n != test.next {
			t.Errorf("next stop after %.1f = %.1f, want %.1f", test.pos, n, test.next)
		}
	}
	none := Stops{Positions: []float32{10}}
	if n := none.NextTabStop(0, 20); n != -1 {
		t.Errorf("no default: next stop = %.1f, want -1", n)
	}
}
