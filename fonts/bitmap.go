package fonts

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // BMFont pages are PNG files
	"io/fs"
	"path"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// Glyph is one entry of a bitmap font's glyph table.
type Glyph struct {
	ID       rune
	X, Y     int // cell origin in the page image
	Width    int
	Height   int
	XOffset  float64
	YOffset  float64
	XAdvance float64
	Page     int

	// Kerning maps the preceding rune to the horizontal adjustment applied
	// before this glyph.
	Kerning map[rune]float64
}

// BitmapFont is a glyph table with page images, at a native pixel size.
type BitmapFont struct {
	Name       string
	Size       float64 // native size the glyph table was authored at
	LineHeight float64
	Base       float64
	Glyphs     map[rune]*Glyph

	// PageFiles lists page image names relative to the descriptor.
	PageFiles []string
	Pages     []image.Image
}

// NewBitmapFont returns an empty font ready to have glyphs added.
func NewBitmapFont(name string, size float64) *BitmapFont {
	return &BitmapFont{
		Name:       name,
		Size:       size,
		LineHeight: size,
		Base:       size,
		Glyphs:     make(map[rune]*Glyph),
	}
}

// Glyph returns the glyph for r, if present.
func (f *BitmapFont) Glyph(r rune) (*Glyph, bool) {
	g, ok := f.Glyphs[r]
	return g, ok
}

// Kerning returns the adjustment between prev and next.
func (f *BitmapFont) Kerning(prev, next rune) float64 {
	g, ok := f.Glyphs[next]
	if !ok || g.Kerning == nil {
		return 0
	}
	return g.Kerning[prev]
}

// addKerning records a kerning pair; pairs naming unknown glyphs are dropped.
func (f *BitmapFont) addKerning(first, second rune, amount float64) {
	g, ok := f.Glyphs[second]
	if !ok {
		return
	}
	if g.Kerning == nil {
		g.Kerning = make(map[rune]float64)
	}
	g.Kerning[first] = amount
}

// LoadPages decodes the page images named by PageFiles from fsys, resolving
// names against dir.
func (f *BitmapFont) LoadPages(fsys fs.FS, dir string) error {
	f.Pages = f.Pages[:0]
	for _, name := range f.PageFiles {
		file, err := fsys.Open(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to open page %s: %w", name, err)
		}
		img, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to decode page %s: %w", name, err)
		}
		f.Pages = append(f.Pages, img)
	}
	return nil
}

// DrawString draws text with its top-left at (x, y), scaled to size pixels.
// Glyph cells act as alpha masks for src. Glyphs missing from the table or
// whose page is not loaded are skipped.
func (f *BitmapFont) DrawString(dst draw.Image, x, y float64, text string, size float64, src image.Image) {
	scale := 1.0
	if f.Size > 0 && size > 0 {
		scale = size / f.Size
	}
	pen := 0.0
	prev := rune(-1)
	for _, r := range text {
		g, ok := f.Glyphs[r]
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 && g.Kerning != nil {
			pen += g.Kerning[prev]
		}
		if g.Width > 0 && g.Height > 0 && g.Page < len(f.Pages) && f.Pages[g.Page] != nil {
			page := f.Pages[g.Page]
			sr := image.Rect(g.X, g.Y, g.X+g.Width, g.Y+g.Height).Add(page.Bounds().Min)

			cell := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
			draw.DrawMask(cell, cell.Bounds(), src, image.Point{}, page, sr.Min, draw.Src)

			dx := x + (pen+g.XOffset)*scale
			dy := y + g.YOffset*scale
			dr := image.Rect(
				int(dx), int(dy),
				int(dx+float64(g.Width)*scale+0.5), int(dy+float64(g.Height)*scale+0.5),
			)
			if scale == 1 {
				draw.Draw(dst, dr, cell, image.Point{}, draw.Over)
			} else {
				xdraw.ApproxBiLinear.Scale(dst, dr, cell, cell.Bounds(), xdraw.Over, nil)
			}
		}
		pen += g.XAdvance
		prev = r
	}
}

// FromBasicFace builds a bitmap font from an x/image basicfont face such as
// basicfont.Face7x13. The face mask becomes the single page.
func FromBasicFace(name string, face *basicfont.Face) *BitmapFont {
	cellH := face.Ascent + face.Descent
	f := NewBitmapFont(name, float64(face.Height))
	f.LineHeight = float64(face.Height)
	f.Base = float64(face.Ascent)
	f.Pages = []image.Image{face.Mask}
	for _, rng := range face.Ranges {
		for r := rng.Low; r < rng.High; r++ {
			f.Glyphs[r] = &Glyph{
				ID:       r,
				X:        0,
				Y:        (int(r-rng.Low) + rng.Offset) * cellH,
				Width:    face.Width,
				Height:   cellH,
				XOffset:  float64(face.Left),
				XAdvance: float64(face.Advance),
			}
		}
	}
	return f
}
