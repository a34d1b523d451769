package forms

import (
	"math"
	"testing"

	"github.com/go-theft-auto/forms/fonts"
)

func kernedFont() *fonts.BitmapFont {
	f := fonts.NewBitmapFont("kerned", 20)
	f.LineHeight = 24
	f.Glyphs['A'] = &fonts.Glyph{ID: 'A', XAdvance: 10}
	f.Glyphs['V'] = &fonts.Glyph{ID: 'V', XAdvance: 12, Kerning: map[rune]float64{'A': -3}}
	return f
}

func TestBitmapMetrics_Kerning(t *testing.T) {
	m, _ := newTestManager(t)
	m.RegisterBitmapFont("kerned", kernedFont())
	bm := newBitmapMetrics(m, TextStyle{Font: "kerned", Bitmap: true})

	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"A", 10},
		{"AV", 19},
		{"VA", 22},
		{"A?V", 22}, // unknown glyph breaks the kerning pair
		{"AVAV", 38},
	}
	for _, tt := range tests {
		if got := bm.WidthOf(tt.text); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestBitmapMetrics_Scale(t *testing.T) {
	m, _ := newTestManager(t)
	m.RegisterBitmapFont("kerned", kernedFont())

	native := newBitmapMetrics(m, TextStyle{Font: "kerned", Bitmap: true})
	if native.Scale() != 1 || native.FontHeight() != 24 {
		t.Errorf("Expected native scale 1 and height 24, got %v %v", native.Scale(), native.FontHeight())
	}

	half := newBitmapMetrics(m, TextStyle{Font: "10px kerned", Bitmap: true})
	if half.Scale() != 0.5 {
		t.Errorf("Expected scale 0.5, got %v", half.Scale())
	}
	if got := half.WidthOf("AV"); got != 9.5 {
		t.Errorf("Expected scaled width 9.5, got %v", got)
	}
	if got := half.FontHeight(); got != 12 {
		t.Errorf("Expected scaled height 12, got %v", got)
	}
}

func TestBitmapMetrics_Fallback(t *testing.T) {
	m, _ := newTestManager(t)
	bm := newBitmapMetrics(m, TextStyle{Font: "13px nosuch", Bitmap: true})
	if got := bm.WidthOf("ab"); got != 14 {
		t.Errorf("Expected the 7px fallback advance, got %v", got)
	}
}

func TestCharWidth(t *testing.T) {
	m, _ := newTestManager(t)
	bm := newBitmapMetrics(m, TextStyle{Font: monoStyle, Bitmap: true})
	if got := charWidth(bm, 'x'); got != 10 {
		t.Errorf("Expected 10, got %v", got)
	}

	vm := newVectorMetrics(m, TextStyle{Font: "14px Go"})
	defer vm.release()
	if got, want := charWidth(vm, 'x'), vm.WidthOf("x"); got != want {
		t.Errorf("Expected cached width %v to match measured %v", got, want)
	}
}

func TestVectorMetrics_FontHeightIncludesStroke(t *testing.T) {
	m, _ := newTestManager(t)
	vm := newVectorMetrics(m, TextStyle{Font: "14px Go", StrokeThickness: 4})
	defer vm.release()
	if got := vm.FontHeight(); got != 18 {
		t.Errorf("Expected 18, got %v", got)
	}
	if math.IsNaN(vm.WidthOf("abc")) || vm.WidthOf("abc") <= 0 {
		t.Errorf("Expected positive width, got %v", vm.WidthOf("abc"))
	}
}
