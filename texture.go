package forms

import "image"

// Texture is a CPU pixel buffer a backend uploads to the GPU. Each change to
// the pixels bumps Version; a backend re-uploads when the version it last
// saw differs.
type Texture struct {
	img       *image.RGBA
	version   uint64
	destroyed bool
}

// NewTexture allocates a transparent w x h texture.
func NewTexture(w, h int) *Texture {
	return &Texture{img: image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1))), version: 1}
}

// Image returns the pixel buffer.
func (t *Texture) Image() *image.RGBA { return t.img }

// Size returns the pixel dimensions.
func (t *Texture) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Version changes every time the pixels change.
func (t *Texture) Version() uint64 { return t.version }

// MarkDirty records a change to the pixels.
func (t *Texture) MarkDirty() { t.version++ }

// Reset clears the buffer, reallocating it when the size changes, and
// returns it for drawing. The caller must call MarkDirty when done.
func (t *Texture) Reset(w, h int) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	if cw, ch := t.Size(); cw != w || ch != h {
		t.img = image.NewRGBA(image.Rect(0, 0, w, h))
		return t.img
	}
	clear(t.img.Pix)
	return t.img
}

// Destroy marks the texture released; backends free its GPU copy.
func (t *Texture) Destroy() {
	t.destroyed = true
	t.img = image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool { return t.destroyed }
