package fonts

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// VectorFace measures and draws text with a scalable font at a fixed size.
type VectorFace interface {
	// Measure returns the advance width of text in pixels.
	Measure(text string) float64
	// Ascent and Descent return the vertical metrics in pixels.
	Ascent() float64
	Descent() float64
	// Size returns the pixel size of the face.
	Size() float64
	// DrawString draws text with its baseline at (x, y), filling glyphs with src.
	DrawString(dst draw.Image, x, y float64, text string, src image.Image)
}

// OpenTypeFace is a VectorFace backed by golang.org/x/image/font/opentype.
type OpenTypeFace struct {
	face font.Face
	size float64
}

// NewOpenTypeFace parses TrueType/OpenType data and builds a face at size pixels.
func NewOpenTypeFace(data []byte, size float64) (*OpenTypeFace, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return newOpenTypeFace(f, size)
}

func newOpenTypeFace(f *opentype.Font, size float64) (*OpenTypeFace, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return &OpenTypeFace{face: face, size: size}, nil
}

// Measure implements VectorFace.
func (f *OpenTypeFace) Measure(text string) float64 {
	if text == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(f.face, text))
}

// Ascent implements VectorFace.
func (f *OpenTypeFace) Ascent() float64 { return fixedToFloat(f.face.Metrics().Ascent) }

// Descent implements VectorFace.
func (f *OpenTypeFace) Descent() float64 { return fixedToFloat(f.face.Metrics().Descent) }

// Size implements VectorFace.
func (f *OpenTypeFace) Size() float64 { return f.size }

// DrawString implements VectorFace.
func (f *OpenTypeFace) DrawString(dst draw.Image, x, y float64, text string, src image.Image) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: f.face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(text)
}

// ShapedFace measures text with the HarfBuzz shaper from go-text/typesetting,
// so kerning and ligatures are reflected in widths. Drawing and vertical
// metrics come from the embedded OpenTypeFace.
type ShapedFace struct {
	*OpenTypeFace
	face   *gtfont.Face
	shaper shaping.HarfbuzzShaper
}

// NewShapedFace builds a shaping face from TrueType/OpenType data.
func NewShapedFace(data []byte, size float64) (*ShapedFace, error) {
	base, err := NewOpenTypeFace(data, size)
	if err != nil {
		return nil, err
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font for shaping: %w", err)
	}
	return &ShapedFace{OpenTypeFace: base, face: face}, nil
}

// Measure implements VectorFace using the shaped run advance.
func (f *ShapedFace) Measure(text string) float64 {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      floatToFixed(f.size),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	})
	adv := fixedToFloat(out.Advance)
	if adv < 0 {
		return 0
	}
	return adv
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
