package forms

import (
	"log/slog"
	"strconv"
)

// TextCacheEntry holds single-character widths shared by every widget that
// renders vector text with the same font and stroke.
type TextCacheEntry struct {
	id     string
	count  int
	widths map[rune]float64
}

// ID returns the font signature the entry is keyed by.
func (e *TextCacheEntry) ID() string { return e.id }

// Count returns the number of widgets holding the entry.
func (e *TextCacheEntry) Count() int { return e.count }

// width returns the cached width of r, measuring it on a miss.
func (e *TextCacheEntry) width(r rune, measure func(string) float64) float64 {
	if w, ok := e.widths[r]; ok {
		return w
	}
	w := measure(string(r))
	e.widths[r] = w
	return w
}

// TextCache is a reference-counted pool of TextCacheEntry values.
type TextCache struct {
	entries map[string]*TextCacheEntry
	logger  *slog.Logger
}

// NewTextCache creates an empty pool.
func NewTextCache(logger *slog.Logger) *TextCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TextCache{entries: make(map[string]*TextCacheEntry), logger: logger}
}

func textCacheKey(font string, strokeThickness float64) string {
	return font + "_" + strconv.FormatFloat(strokeThickness, 'f', -1, 64)
}

// Acquire returns the entry for the font signature, incrementing its count.
func (c *TextCache) Acquire(font string, strokeThickness float64) *TextCacheEntry {
	key := textCacheKey(font, strokeThickness)
	e, ok := c.entries[key]
	if !ok {
		e = &TextCacheEntry{id: key, widths: make(map[rune]float64)}
		c.entries[key] = e
	}
	e.count++
	return e
}

// Release decrements the entry's count and evicts it at zero.
func (c *TextCache) Release(e *TextCacheEntry) {
	if e == nil {
		return
	}
	e.count--
	if e.count <= 0 {
		if cur, ok := c.entries[e.id]; ok && cur == e {
			delete(c.entries, e.id)
			c.logger.Debug("TextCache: evicted", "id", e.id)
		}
	}
}

// Reacquire releases old and acquires the entry for the new signature.
// It returns old unchanged when the signature is the same.
func (c *TextCache) Reacquire(old *TextCacheEntry, font string, strokeThickness float64) *TextCacheEntry {
	if old != nil && old.id == textCacheKey(font, strokeThickness) {
		return old
	}
	c.Release(old)
	return c.Acquire(font, strokeThickness)
}

// Len returns the number of live entries.
func (c *TextCache) Len() int { return len(c.entries) }

// Lookup returns the live entry for a signature, if any.
func (c *TextCache) Lookup(font string, strokeThickness float64) (*TextCacheEntry, bool) {
	e, ok := c.entries[textCacheKey(font, strokeThickness)]
	return e, ok
}
