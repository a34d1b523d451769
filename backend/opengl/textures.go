package opengl

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/forms"
)

// gpuTexture is the GL copy of a forms.Texture.
type gpuTexture struct {
	id      uint32
	version uint64
	w, h    int
}

// TextureCache mirrors widget pixel buffers on the GPU. A texture is
// uploaded on first use and again whenever its version changes; the GL copy
// is deleted once the widget releases the texture.
type TextureCache struct {
	entries map[*forms.Texture]*gpuTexture
	logger  *slog.Logger
}

// NewTextureCache creates an empty cache.
func NewTextureCache(logger *slog.Logger) *TextureCache {
	return &TextureCache{entries: make(map[*forms.Texture]*gpuTexture), logger: logger}
}

// Len returns the number of textures resident on the GPU.
func (c *TextureCache) Len() int { return len(c.entries) }

// Bind returns the GL name for tex, uploading its pixels if they changed.
// The texture is left bound to TEXTURE_2D.
func (c *TextureCache) Bind(tex *forms.Texture) uint32 {
	e, ok := c.entries[tex]
	if !ok {
		e = &gpuTexture{}
		gl.GenTextures(1, &e.id)
		gl.BindTexture(gl.TEXTURE_2D, e.id)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		c.entries[tex] = e
	} else {
		gl.BindTexture(gl.TEXTURE_2D, e.id)
	}

	if e.version == tex.Version() {
		return e.id
	}
	img := tex.Image()
	w, h := tex.Size()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w == e.w && h == e.h {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		e.w, e.h = w, h
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	e.version = tex.Version()
	c.logger.Debug("TextureCache: uploaded", "id", e.id, "w", w, "h", h, "version", e.version)
	return e.id
}

// Sweep deletes the GL copies of textures that have been destroyed.
func (c *TextureCache) Sweep() {
	for tex, e := range c.entries {
		if tex.Destroyed() {
			gl.DeleteTextures(1, &e.id)
			delete(c.entries, tex)
			c.logger.Debug("TextureCache: freed", "id", e.id)
		}
	}
}

// Delete frees every cached texture.
func (c *TextureCache) Delete() {
	for tex, e := range c.entries {
		gl.DeleteTextures(1, &e.id)
		delete(c.entries, tex)
	}
}
