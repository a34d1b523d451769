package forms

import (
	"strings"
	"testing"
)

// uniformMetrics measures every rune as w pixels.
type uniformMetrics struct{ w float64 }

func (m uniformMetrics) WidthOf(s string) float64 { return float64(len([]rune(s))) * m.w }
func (m uniformMetrics) FontHeight() float64      { return 16 }

func TestCaretIndexFromLocalX(t *testing.T) {
	m := uniformMetrics{w: 10}
	tests := []struct {
		displayed string
		start     int
		x         float64
		want      int
	}{
		{"HELLO", 0, 23, 2},
		{"HELLO", 0, 1000, 5},
		{"HELLO", 0, 0, 0},
		{"HELLO", 0, 10, 0},
		{"HELLO", 0, 10.5, 1},
		{"HELLO", 7, 23, 9},
		{"HELLO", 7, 51, 12},
		{"", 3, 5, 3},
	}
	for _, tt := range tests {
		got := CaretIndexFromLocalX(m, tt.displayed, tt.start, tt.x)
		if got != tt.want {
			t.Errorf("%q start=%d x=%v: expected %d, got %d", tt.displayed, tt.start, tt.x, tt.want, got)
		}
	}
}

func TestClip_FitsAndContainsCaret(t *testing.T) {
	m := uniformMetrics{w: 10}
	value := "abcdefghijklmnopqrst"
	avail := 90.0

	win := ClipWindow{}
	for _, caret := range []int{0, 5, 9, 12, 20, 19, 3, 0, 20} {
		shown, next := Clip(m, value, caret, win, avail, true)
		if w := m.WidthOf(shown); w > avail {
			t.Errorf("caret %d: shown width %v exceeds %v", caret, w, avail)
		}
		if !next.Contains(caret) {
			t.Errorf("caret %d: window %+v does not contain caret", caret, next)
		}
		if shown != value[next.Start:next.End] {
			t.Errorf("caret %d: shown %q does not match window %+v", caret, shown, next)
		}
		win = next
	}
}

func TestClip_ScrollDirections(t *testing.T) {
	m := uniformMetrics{w: 10}
	value := strings.Repeat("x", 20)

	_, win := Clip(m, value, 0, ClipWindow{}, 90, true)
	if win != (ClipWindow{0, 9}) {
		t.Fatalf("Expected [0,9], got %+v", win)
	}

	_, win = Clip(m, value, 15, win, 90, true)
	if win != (ClipWindow{6, 15}) {
		t.Errorf("Expected forward scroll to [6,15], got %+v", win)
	}

	_, win = Clip(m, value, 10, win, 90, true)
	if win != (ClipWindow{6, 15}) {
		t.Errorf("Expected window kept for caret inside, got %+v", win)
	}

	_, win = Clip(m, value, 2, win, 90, true)
	if win != (ClipWindow{2, 11}) {
		t.Errorf("Expected backward scroll to [2,11], got %+v", win)
	}
}

func TestClip_NonAuthoritativeShowsStart(t *testing.T) {
	m := uniformMetrics{w: 10}
	shown, win := Clip(m, "placeholder text", 14, ClipWindow{Start: 5, End: 14}, 50, false)
	if shown != "place" {
		t.Errorf("Expected %q, got %q", "place", shown)
	}
	if win.Start != 0 {
		t.Errorf("Expected start 0, got %d", win.Start)
	}
}

func TestClip_Empty(t *testing.T) {
	shown, win := Clip(uniformMetrics{w: 10}, "", 0, ClipWindow{Start: 3, End: 8}, 90, true)
	if shown != "" || win != (ClipWindow{}) {
		t.Errorf("Expected empty result, got %q %+v", shown, win)
	}
}

func TestClip_ShrunkValueResetsStart(t *testing.T) {
	m := uniformMetrics{w: 10}
	_, win := Clip(m, "abc", 3, ClipWindow{Start: 10, End: 19}, 90, true)
	if win != (ClipWindow{0, 3}) {
		t.Errorf("Expected [0,3], got %+v", win)
	}
}

func TestTextField_ClipScenario(t *testing.T) {
	m, _ := newTestManager(t)
	value := "abcdefghijklmnopqrst"
	tf := newMonoField(m, WithWidth(100), WithPadding(5), WithValue(value))

	tf.Focus()
	tf.Update(false)
	if got := tf.ClipWindow().Len(); got != 9 {
		t.Fatalf("Expected a 9 rune window, got %d (%+v)", got, tf.ClipWindow())
	}

	m.Peer().SetSelection(19, 19)
	m.PeerKeyUp(&KeyEvent{Key: KeyEnd})
	tf.Update(false)
	win := tf.ClipWindow()
	if win.End != 19 || win.Len() != 9 {
		t.Errorf("Expected window ending at the caret (19), got %+v", win)
	}

	m.Peer().SetSelection(20, 20)
	m.PeerKeyUp(&KeyEvent{Key: KeyEnd})
	tf.Update(false)
	if got := tf.ClipWindow().End; got != len(value) {
		t.Errorf("Expected window right edge at the value's end (%d), got %d", len(value), got)
	}
	if got := tf.DisplayedText(); got != value[11:] {
		t.Errorf("Expected displayed %q, got %q", value[11:], got)
	}
}

// pairKernMetrics measures A as 10 and V as 12 pixels, with an A-V pair
// pulled together by kern pixels.
type pairKernMetrics struct{ kern float64 }

func (m pairKernMetrics) WidthOf(s string) float64 {
	w := 0.0
	var prev rune
	for _, r := range s {
		switch r {
		case 'A':
			w += 10
		case 'V':
			w += 12
			if prev == 'A' {
				w += m.kern
			}
		}
		prev = r
	}
	return w
}
func (m pairKernMetrics) FontHeight() float64 { return 16 }

func TestClip_KernedTextFits(t *testing.T) {
	m := pairKernMetrics{kern: -4}
	value := strings.Repeat("AV", 10)
	const avail = 50

	tests := []struct {
		name          string
		caret         int
		prev          ClipWindow
		authoritative bool
		want          ClipWindow
	}{
		{"from start", 0, ClipWindow{}, true, ClipWindow{Start: 0, End: 5}},
		{"unfocused", 20, ClipWindow{}, false, ClipWindow{Start: 0, End: 5}},
		{"scroll forward", 20, ClipWindow{Start: 0, End: 5}, true, ClipWindow{Start: 15, End: 20}},
	}
	for _, tt := range tests {
		shown, win := Clip(m, value, tt.caret, tt.prev, avail, tt.authoritative)
		if w := m.WidthOf(shown); w > avail {
			t.Errorf("%s: expected width <= %v, got %v for %q", tt.name, avail, w, shown)
		}
		if win != tt.want {
			t.Errorf("%s: expected window %+v, got %+v", tt.name, tt.want, win)
		}
		if tt.authoritative && (tt.caret < win.Start || tt.caret > win.End) {
			t.Errorf("%s: expected caret %d inside %+v", tt.name, tt.caret, win)
		}
	}
}

func TestClip_KernedBitmapFont(t *testing.T) {
	m, _ := newTestManager(t)
	m.RegisterBitmapFont("kerned", kernedFont())
	bm := newBitmapMetrics(m, TextStyle{Font: "kerned", Bitmap: true})
	value := strings.Repeat("AV", 10)

	shown, win := Clip(bm, value, 0, ClipWindow{}, 50, true)
	if w := bm.WidthOf(shown); w > 50 {
		t.Errorf("Expected width <= 50, got %v for %q", w, shown)
	}
	shown, win = Clip(bm, value, 20, win, 50, true)
	if w := bm.WidthOf(shown); w > 50 {
		t.Errorf("Expected width <= 50, got %v for %q", w, shown)
	}
	if win.End != 20 {
		t.Errorf("Expected window to end at the caret, got %+v", win)
	}
}
