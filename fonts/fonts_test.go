package fonts

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		in       string
		size     float64
		family   string
		bold     bool
		italic   bool
		families int
	}{
		{"14px Arial", 14, "arial", false, false, 1},
		{"bold 20px 'Go Mono', monospace", 20, "go mono", true, false, 2},
		{"italic 700 12px Go", 12, "go", true, true, 1},
		{"Desyrel", DefaultSize, "desyrel", false, false, 1},
		{"", DefaultSize, DefaultFamily, false, false, 0},
		{"16px/1.5 sans-serif", 16, "sans-serif", false, false, 1},
	}
	for _, tt := range tests {
		spec := ParseFont(tt.in)
		if spec.Size != tt.size {
			t.Errorf("%q: expected size %v, got %v", tt.in, tt.size, spec.Size)
		}
		if spec.Family() != tt.family {
			t.Errorf("%q: expected family %q, got %q", tt.in, tt.family, spec.Family())
		}
		if spec.Bold() != tt.bold {
			t.Errorf("%q: expected bold=%v", tt.in, tt.bold)
		}
		if spec.Italic() != tt.italic {
			t.Errorf("%q: expected italic=%v", tt.in, tt.italic)
		}
		if len(spec.Families) != tt.families {
			t.Errorf("%q: expected %d families, got %v", tt.in, tt.families, spec.Families)
		}
	}
}

const sampleBMFont = `info face="Test Font" size=-20 bold=0 charset="" padding=0,0,0,0
common lineHeight=24 base=18 scaleW=64 scaleH=64 pages=1
page id=0 file="test.png"
chars count=3
char id=65 x=0 y=0 width=10 height=12 xoffset=1 yoffset=2 xadvance=10 page=0 chnl=15
char id=86 x=10 y=0 width=10 height=12 xoffset=0 yoffset=2 xadvance=9 page=0 chnl=15
char id=32 x=0 y=0 width=0 height=0 xoffset=0 yoffset=0 xadvance=5 page=0 chnl=15
kernings count=2
kerning first=65 second=86 amount=-2
kerning first=65 second=999 amount=-1
`

func TestParseBMFont(t *testing.T) {
	f, err := ParseBMFont(strings.NewReader(sampleBMFont))
	if err != nil {
		t.Fatalf("ParseBMFont failed: %v", err)
	}
	if f.Name != "Test Font" {
		t.Errorf("Expected name 'Test Font', got %q", f.Name)
	}
	if f.Size != 20 {
		t.Errorf("Expected size 20, got %v", f.Size)
	}
	if f.LineHeight != 24 || f.Base != 18 {
		t.Errorf("Expected lineHeight 24 base 18, got %v %v", f.LineHeight, f.Base)
	}
	if len(f.PageFiles) != 1 || f.PageFiles[0] != "test.png" {
		t.Errorf("Expected page test.png, got %v", f.PageFiles)
	}
	if len(f.Glyphs) != 3 {
		t.Fatalf("Expected 3 glyphs, got %d", len(f.Glyphs))
	}
	if got := f.Kerning('A', 'V'); got != -2 {
		t.Errorf("Expected kerning A->V = -2, got %v", got)
	}
	if got := f.Kerning('V', 'A'); got != 0 {
		t.Errorf("Expected no kerning V->A, got %v", got)
	}
}

func TestParseBMFontMalformed(t *testing.T) {
	_, err := ParseBMFont(strings.NewReader("info face=\"broken\n"))
	if !errors.Is(err, ErrMalformedBMFont) {
		t.Errorf("Expected ErrMalformedBMFont, got %v", err)
	}
	_, err = ParseBMFont(strings.NewReader("info face=x size=10\n"))
	if !errors.Is(err, ErrMalformedBMFont) {
		t.Errorf("Expected ErrMalformedBMFont for font without chars, got %v", err)
	}
}

func TestParseBMFontXML(t *testing.T) {
	src := `<?xml version="1.0"?>
<font>
  <info face="Xml Font" size="32"/>
  <common lineHeight="36" base="29"/>
  <pages><page id="0" file="xml.png"/></pages>
  <chars count="2">
    <char id="72" x="0" y="0" width="20" height="30" xoffset="0" yoffset="3" xadvance="22" page="0"/>
    <char id="105" x="20" y="0" width="8" height="30" xoffset="1" yoffset="3" xadvance="9" page="0"/>
  </chars>
  <kernings count="1"><kerning first="72" second="105" amount="1"/></kernings>
</font>`
	f, err := ParseBMFontXML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseBMFontXML failed: %v", err)
	}
	if f.Name != "Xml Font" || f.Size != 32 {
		t.Errorf("Expected Xml Font/32, got %q/%v", f.Name, f.Size)
	}
	g, ok := f.Glyph('H')
	if !ok || g.XAdvance != 22 {
		t.Errorf("Expected H advance 22, got %+v", g)
	}
	if f.Kerning('H', 'i') != 1 {
		t.Errorf("Expected kerning H->i = 1, got %v", f.Kerning('H', 'i'))
	}
}

func TestFromBasicFace(t *testing.T) {
	f := FromBasicFace("fixed", basicfont.Face7x13)
	g, ok := f.Glyph('A')
	if !ok {
		t.Fatal("Expected glyph for 'A'")
	}
	if g.XAdvance != 7 {
		t.Errorf("Expected advance 7, got %v", g.XAdvance)
	}
	if f.Size != 13 {
		t.Errorf("Expected native size 13, got %v", f.Size)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 40, 20))
	f.DrawString(dst, 0, 0, "AB", 13, image.NewUniform(color.Black))
	var inked bool
	for _, px := range dst.Pix {
		if px != 0 {
			inked = true
			break
		}
	}
	if !inked {
		t.Error("Expected DrawString to ink pixels")
	}
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry()
	face := r.Face("14px NoSuchFamily")
	if face == nil {
		t.Fatal("Expected fallback face")
	}
	if face.Size() != 14 {
		t.Errorf("Expected size 14, got %v", face.Size())
	}
	if w := face.Measure("hello"); w <= 0 {
		t.Errorf("Expected positive width, got %v", w)
	}
	if r.Face("14px NoSuchFamily") != face {
		t.Error("Expected cached face on second lookup")
	}

	_, err := r.Lookup("14px NoSuchFamily")
	if !errors.Is(err, ErrUnknownFont) {
		t.Errorf("Expected ErrUnknownFont, got %v", err)
	}
	if _, err := r.Lookup("bold 12px monospace"); err != nil {
		t.Errorf("Expected monospace to resolve, got %v", err)
	}
}

func TestMonospaceWidths(t *testing.T) {
	r := NewRegistry()
	face := r.Face("20px monospace")
	one := face.Measure("i")
	four := face.Measure("iiii")
	if d := four - 4*one; d > 0.01 || d < -0.01 {
		t.Errorf("Expected monospace widths to add up, got %v vs 4*%v", four, one)
	}
	if face.Measure("") != 0 {
		t.Error("Expected empty string to measure 0")
	}
}

func TestShapedFaceMeasures(t *testing.T) {
	r := NewRegistry()
	r.SetShaping(true)
	face := r.Face("16px Go")
	if _, ok := face.(*ShapedFace); !ok {
		t.Fatalf("Expected *ShapedFace, got %T", face)
	}
	if w := face.Measure("shaped"); w <= 0 {
		t.Errorf("Expected positive shaped width, got %v", w)
	}
}
