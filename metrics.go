package forms

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-theft-auto/forms/fonts"
)

// TextMetrics measures text for one font and style.
type TextMetrics interface {
	// WidthOf returns the pixel width of text. It is non-negative and
	// deterministic for a fixed font and style.
	WidthOf(text string) float64

	// FontHeight returns the height used for auto-sized widgets.
	FontHeight() float64
}

// runeMeasurer is implemented by metrics that can measure one rune cheaper
// than WidthOf(string(r)).
type runeMeasurer interface {
	RuneWidth(r rune) float64
}

// charWidth returns the width of a single rune under m.
func charWidth(m TextMetrics, r rune) float64 {
	if rm, ok := m.(runeMeasurer); ok {
		return rm.RuneWidth(r)
	}
	return m.WidthOf(string(r))
}

// textFace is the metrics plus rasterizer a widget renders its text with.
type textFace interface {
	TextMetrics

	// drawText draws text with its top-left corner at (x, y).
	drawText(dst draw.Image, x, y float64, text string, fill color.NRGBA)

	// release returns shared resources to the manager.
	release()
}

// newTextFace selects the vector or bitmap variant for ts.
func newTextFace(m *Manager, ts TextStyle) textFace {
	if ts.Bitmap {
		return newBitmapMetrics(m, ts)
	}
	return newVectorMetrics(m, ts)
}

// restyleFace replaces old with a face for ts. A vector face keeps its
// shared width cache when the font and stroke are unchanged.
func restyleFace(m *Manager, old textFace, ts TextStyle) textFace {
	prev, ok := old.(*vectorMetrics)
	if !ok || ts.Bitmap || prev.cache == nil {
		old.release()
		return newTextFace(m, ts)
	}
	v := vectorMetricsWith(m, ts, m.textCache.Reacquire(prev.cache, ts.Font, ts.StrokeThickness))
	prev.cache = nil
	return v
}

// vectorMetrics measures with an outline font. Single-rune widths live in a
// TextCacheEntry shared with every widget using the same font and stroke.
type vectorMetrics struct {
	face        fonts.VectorFace
	size        float64
	stroke      float64
	strokeColor color.NRGBA
	cache       *TextCacheEntry
	pool        *TextCache
}

func newVectorMetrics(m *Manager, ts TextStyle) *vectorMetrics {
	return vectorMetricsWith(m, ts, m.textCache.Acquire(ts.Font, ts.StrokeThickness))
}

func vectorMetricsWith(m *Manager, ts TextStyle, cache *TextCacheEntry) *vectorMetrics {
	spec := fonts.ParseFont(ts.Font)
	return &vectorMetrics{
		face:        m.fonts.Face(ts.Font),
		size:        spec.Size,
		stroke:      ts.StrokeThickness,
		strokeColor: mustColor(ts.Stroke, color.NRGBA{A: 255}),
		cache:       cache,
		pool:        m.textCache,
	}
}

func (v *vectorMetrics) WidthOf(text string) float64 {
	if text == "" {
		return 0
	}
	return v.face.Measure(text)
}

// RuneWidth returns the cached width of r.
func (v *vectorMetrics) RuneWidth(r rune) float64 {
	return v.cache.width(r, v.WidthOf)
}

func (v *vectorMetrics) FontHeight() float64 {
	return v.size + v.stroke
}

func (v *vectorMetrics) drawText(dst draw.Image, x, y float64, text string, fill color.NRGBA) {
	if text == "" {
		return
	}
	half := v.stroke / 2
	baseline := y + half + v.face.Ascent()
	x += half
	if v.stroke > 0 && v.strokeColor.A > 0 {
		src := image.NewUniform(v.strokeColor)
		for _, d := range strokeOffsets(half) {
			v.face.DrawString(dst, x+d.X, baseline+d.Y, text, src)
		}
	}
	v.face.DrawString(dst, x, baseline, text, image.NewUniform(fill))
}

func (v *vectorMetrics) release() {
	v.pool.Release(v.cache)
	v.cache = nil
}

// strokeOffsets returns the eight compass offsets at distance r.
func strokeOffsets(r float64) []Vec2 {
	if r <= 0 {
		return nil
	}
	d := r * math.Sqrt2 / 2
	return []Vec2{
		{-r, 0}, {r, 0}, {0, -r}, {0, r},
		{-d, -d}, {d, -d}, {-d, d}, {d, d},
	}
}

// bitmapMetrics measures with a bitmap font's glyph table, scaled from the
// font's native size.
type bitmapMetrics struct {
	font  *fonts.BitmapFont
	size  float64
	scale float64
}

func newBitmapMetrics(m *Manager, ts TextStyle) *bitmapMetrics {
	spec := fonts.ParseFont(ts.Font)
	bf := m.bitmapFont(spec.Family())
	size := bf.Size
	if spec.SizeSet {
		size = spec.Size
	}
	scale := 1.0
	if bf.Size > 0 {
		scale = size / bf.Size
	}
	return &bitmapMetrics{font: bf, size: size, scale: scale}
}

// WidthOf sums glyph advances and kerning. Unknown glyphs add nothing and
// break the kerning chain.
func (b *bitmapMetrics) WidthOf(text string) float64 {
	width := 0.0
	prev := rune(-1)
	for _, r := range text {
		g, ok := b.font.Glyph(r)
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 && g.Kerning != nil {
			width += g.Kerning[prev]
		}
		width += g.XAdvance
		prev = r
	}
	return width * b.scale
}

// FontHeight is the scaled line height.
func (b *bitmapMetrics) FontHeight() float64 {
	return b.font.LineHeight * b.scale
}

// Scale returns fontSize / nativeSize.
func (b *bitmapMetrics) Scale() float64 { return b.scale }

func (b *bitmapMetrics) drawText(dst draw.Image, x, y float64, text string, fill color.NRGBA) {
	b.font.DrawString(dst, x, y, text, b.size, image.NewUniform(fill))
}

func (b *bitmapMetrics) release() {}
