package forms

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// selectCapWidth is the width of the arrow cap drawn at the right edge of a Select.
const selectCapWidth = 25

// chromeLayout is the geometry of a widget's chrome for one configuration.
type chromeLayout struct {
	OuterW, OuterH int
	Shadow         ShadowExtents

	TextboxLeft, TextboxTop     float64
	TextboxWidth, TextboxHeight float64
}

// layoutChrome computes the chrome geometry for content height h.
func layoutChrome(cfg *Config, h float64, logger *slog.Logger) chromeLayout {
	sh, ok := ParseShadow(cfg.BoxShadow)
	if !ok {
		logger.Debug("Chrome: malformed box shadow", "shadow", cfg.BoxShadow)
	}
	ext := sh.Extents()
	bw := cfg.BorderWidth

	outerW := int(cfg.Width + 2*cfg.Padding + 2*bw + float64(ext.Width()))
	outerH := int(h + 2*cfg.Padding + 2*bw + float64(ext.Height()))
	return chromeLayout{
		OuterW:        max(outerW, 1),
		OuterH:        max(outerH, 1),
		Shadow:        ext,
		TextboxLeft:   bw + float64(ext.Left),
		TextboxTop:    bw + float64(ext.Top),
		TextboxWidth:  float64(outerW) - 2*bw - float64(ext.Width()),
		TextboxHeight: float64(outerH) - 2*bw - float64(ext.Height()),
	}
}

// rasterizeChrome draws border, box shadow, background and inner shadow into
// tex, resizing it to the layout. It reports false, leaving tex untouched,
// when the background gradient has fewer than two stops.
func rasterizeChrome(tex *Texture, cfg *Config, lay chromeLayout, logger *slog.Logger) bool {
	if n := len(cfg.BackgroundGradient); n == 1 {
		logger.Debug("Chrome: gradient needs two stops", "stops", n)
		return false
	}

	dst := tex.Reset(lay.OuterW, lay.OuterH)
	paintChrome(dst, cfg, lay, logger)
	tex.MarkDirty()
	return true
}

func paintChrome(dst *image.RGBA, cfg *Config, lay chromeLayout, logger *slog.Logger) {
	box, _ := ParseShadow(cfg.BoxShadow)
	inner, ok := ParseShadow(cfg.InnerShadow)
	if !ok {
		logger.Debug("Chrome: malformed inner shadow", "shadow", cfg.InnerShadow)
	}

	w, h := float64(lay.OuterW), float64(lay.OuterH)
	ext := lay.Shadow
	bounds := dst.Bounds()

	// The box shadow is cast by the first shape drawn: the border when there
	// is one, the background otherwise.
	if cfg.BorderWidth > 0 {
		border := roundedRectMask(bounds, float64(ext.Left), float64(ext.Top),
			w-float64(ext.Width()), h-float64(ext.Height()), cfg.BorderRadius)
		drawShadow(dst, border, box)
		box = Shadow{}
		fillMask(dst, border, image.NewUniform(mustColor(cfg.BorderColor, color.NRGBA{A: 255})))
	}

	textbox := roundedRectMask(bounds, lay.TextboxLeft, lay.TextboxTop,
		lay.TextboxWidth, lay.TextboxHeight, cfg.BorderRadius)
	drawShadow(dst, textbox, box)

	switch {
	case cfg.BackgroundImage != nil:
		r := image.Rect(int(lay.TextboxLeft), int(lay.TextboxTop),
			int(lay.TextboxLeft+lay.TextboxWidth), int(lay.TextboxTop+lay.TextboxHeight))
		xdraw.BiLinear.Scale(dst, r, cfg.BackgroundImage, cfg.BackgroundImage.Bounds(), xdraw.Over, nil)
	case len(cfg.BackgroundGradient) >= 2:
		fillMask(dst, textbox, gradientImage(bounds, cfg.BackgroundGradient))
	default:
		fillMask(dst, textbox, image.NewUniform(mustColor(cfg.BackgroundColor, color.NRGBA{})))
	}

	if inner.Blur > 0 && inner.Color.A > 0 {
		drawInnerShadow(dst, textbox, lay, inner)
	}
}

// paintSelectCap draws the arrow cap over the right edge of a Select's chrome.
func paintSelectCap(dst *image.RGBA, cfg *Config, lay chromeLayout, logger *slog.Logger) {
	r := cfg.BorderRadius[0]
	capCfg := Config{
		Width:        selectCapWidth,
		BorderWidth:  1,
		BorderColor:  cfg.BorderColor,
		BorderRadius: [4]float64{0, r, r, 0},
		BackgroundGradient: []GradientStop{
			{Offset: -1, Color: "#bbb"},
			{Offset: -1, Color: "#eee"},
			{Offset: -1, Color: "#bbb"},
		},
	}
	capLay := layoutChrome(&capCfg, float64(lay.OuterH), logger)
	buf := image.NewRGBA(image.Rect(0, 0, capLay.OuterW, capLay.OuterH))
	paintChrome(buf, &capCfg, capLay, logger)

	bw := cfg.BorderWidth
	oh := float64(lay.OuterH)
	z := vector.NewRasterizer(capLay.OuterW, capLay.OuterH)
	z.MoveTo(float32(9+bw-2), float32(oh/3+bw+1))
	z.LineTo(float32(17-bw), float32(oh/3+bw+1))
	z.LineTo(12, float32(2*oh/3-bw+2))
	z.ClosePath()
	z.Draw(buf, buf.Bounds(), image.NewUniform(color.NRGBA{A: 255}), image.Point{})

	at := image.Rect(lay.OuterW-selectCapWidth, 0, lay.OuterW, lay.OuterH)
	draw.Draw(dst, at, buf, image.Point{}, draw.Over)
}

// roundedRectMask rasterizes a rounded rectangle with per-corner radii
// (top-left, top-right, bottom-right, bottom-left). A rectangle narrower or
// shorter than twice the first radius degrades to a square-cornered one,
// with zero sizes raised to one pixel.
func roundedRectMask(bounds image.Rectangle, x, y, w, h float64, radii [4]float64) *image.Alpha {
	mask := image.NewAlpha(bounds)
	if w < 2*radii[0] || h < 2*radii[0] {
		if w <= 0 {
			w = 1
		}
		if h <= 0 {
			h = 1
		}
		radii = [4]float64{}
	}
	r1, r2, r3, r4 := radii[0], radii[1], radii[2], radii[3]

	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	f := func(v float64) float32 { return float32(v) }
	z.MoveTo(f(x+r1), f(y))
	z.LineTo(f(x+w-r2), f(y))
	z.QuadTo(f(x+w), f(y), f(x+w), f(y+r2))
	z.LineTo(f(x+w), f(y+h-r3))
	z.QuadTo(f(x+w), f(y+h), f(x+w-r3), f(y+h))
	z.LineTo(f(x+r4), f(y+h))
	z.QuadTo(f(x), f(y+h), f(x), f(y+h-r4))
	z.LineTo(f(x), f(y+r1))
	z.QuadTo(f(x), f(y), f(x+r1), f(y))
	z.ClosePath()
	z.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}

func fillMask(dst *image.RGBA, mask *image.Alpha, src image.Image) {
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

// drawShadow paints sh as cast by the shape in mask.
func drawShadow(dst *image.RGBA, mask *image.Alpha, sh Shadow) {
	if sh.Color.A == 0 || (sh.Blur == 0 && sh.X == 0 && sh.Y == 0) {
		return
	}
	blurred := blurAlpha(mask, float64(sh.Blur)/2)
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(sh.Color), image.Point{},
		blurred, image.Pt(-sh.X, -sh.Y), draw.Over)
}

// drawInnerShadow paints the shadow cast into the textbox by the area around
// it, clipped to the textbox shape.
func drawInnerShadow(dst *image.RGBA, textbox *image.Alpha, lay chromeLayout, sh Shadow) {
	sw := int(lay.TextboxWidth)
	shh := int(lay.TextboxHeight)
	if sw <= 0 || shh <= 0 {
		return
	}
	sigma := float64(sh.Blur) / 2
	pad := int(math.Ceil(sigma*3)) + absInt(sh.X) + absInt(sh.Y) + 1

	// Edges above and below are offset vertically, edges left and right
	// horizontally.
	area := image.Rect(-pad, -pad, sw+pad, shh+pad)
	vert := image.NewAlpha(area)
	horiz := image.NewAlpha(area)
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			if ty := py - sh.Y; ty < 0 || ty >= shh {
				vert.SetAlpha(px, py, color.Alpha{A: 255})
			}
			if tx := px - sh.X; tx < 0 || tx >= sw {
				horiz.SetAlpha(px, py, color.Alpha{A: 255})
			}
		}
	}
	vert = blurAlpha(vert, sigma)
	horiz = blurAlpha(horiz, sigma)

	shadow := image.NewAlpha(image.Rect(0, 0, sw, shh))
	for py := 0; py < shh; py++ {
		for px := 0; px < sw; px++ {
			a := float64(vert.AlphaAt(px, py).A) / 255
			b := float64(horiz.AlphaAt(px, py).A) / 255
			shadow.SetAlpha(px, py, color.Alpha{A: uint8((1-(1-a)*(1-b))*255 + 0.5)})
		}
	}

	// Clip to the textbox shape.
	origin := image.Pt(int(lay.TextboxLeft), int(lay.TextboxTop))
	clipped := image.NewAlpha(dst.Bounds())
	draw.DrawMask(clipped, shadow.Bounds().Add(origin), shadow, image.Point{}, textbox, origin, draw.Src)
	fillMask(dst, clipped, image.NewUniform(sh.Color))
}

// gradientImage builds a vertical gradient spanning bounds.
func gradientImage(bounds image.Rectangle, stops []GradientStop) *image.RGBA {
	type stop struct {
		at float64
		c  color.NRGBA
	}
	n := len(stops)
	resolved := make([]stop, n)
	for i, s := range stops {
		at := s.Offset
		if at < 0 {
			at = float64(i) / float64(n-1)
		}
		resolved[i] = stop{at: min(at, 1), c: mustColor(s.Color, color.NRGBA{})}
	}
	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].at < resolved[j].at })

	img := image.NewRGBA(bounds)
	h := float64(bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		t := (float64(y-bounds.Min.Y) + 0.5) / h
		var c color.NRGBA
		switch {
		case t <= resolved[0].at:
			c = resolved[0].c
		case t >= resolved[n-1].at:
			c = resolved[n-1].c
		default:
			for i := 1; i < n; i++ {
				if t <= resolved[i].at {
					a, b := resolved[i-1], resolved[i]
					span := b.at - a.at
					if span <= 0 {
						c = b.c
					} else {
						c = blendColor(a.c, b.c, (t-a.at)/span)
					}
					break
				}
			}
		}
		row := image.Rect(bounds.Min.X, y, bounds.Max.X, y+1)
		draw.Draw(img, row, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// blurAlpha applies a separable Gaussian blur with standard deviation sigma.
// Pixels outside src count as transparent.
func blurAlpha(src *image.Alpha, sigma float64) *image.Alpha {
	if sigma <= 0 {
		out := image.NewAlpha(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	kernel := gaussianKernel(sigma)
	half := len(kernel) / 2
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	tmp := make([]float32, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= w {
					continue
				}
				acc += float32(row[sx]) * weight
			}
			tmp[y*w+x] = acc
		}
	}

	out := image.NewAlpha(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= h {
					continue
				}
				acc += tmp[sy*w+x] * weight
			}
			out.Pix[y*out.Stride+x] = uint8(min(acc+0.5, 255))
		}
	}
	return out
}

// gaussianKernel returns a normalized kernel covering three standard deviations.
func gaussianKernel(sigma float64) []float32 {
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, 2*half+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	for i := range kernel {
		kernel[i] = float32(float64(kernel[i]) / sum)
	}
	return kernel
}
