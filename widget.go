package forms

import (
	"image/color"
	"math"
	"time"
)

// Widget is a form control bound to a Manager.
type Widget interface {
	ID() ID
	Kind() string

	// Config returns a copy of the merged configuration.
	Config() Config

	// Configure applies options on top of the current configuration.
	Configure(opts ...Option)

	Position() Vec2
	SetPosition(x, y float64)
	Visible() bool
	SetVisible(v bool)

	// Size returns the outer size including border and shadow.
	Size() (w, h float64)
	Bounds() Rect
	TabIndex() int

	HasFocus() bool
	Focus()
	Blur()

	// Update reconciles dirty state; force treats every aspect as dirty.
	Update(force bool)

	// Draw appends the widget to dl. Update must have run this frame.
	Draw(dl *DrawList)

	Destroy()
	Destroyed() bool

	base() *widgetBase
	syncPeer(p Peer)
	blurred()
	tick(now time.Time)
	keyDown(ev *KeyEvent)
	keyUp(ev *KeyEvent)
	pointerDown(ev *PointerEvent, local Vec2)
	pointerMove(ev *PointerEvent, local Vec2, inside bool)
	pointerUp(ev *PointerEvent, local Vec2)
	pointerUpOutside()
	contains(local Vec2) bool
	overlayContains(local Vec2) bool
	drawOverlay(dl *DrawList)
}

// widgetBase holds what every widget kind shares: configuration, chrome,
// the text sprite, focus state and dirty flags.
type widgetBase struct {
	m     *Manager
	self  Widget
	stage *Stage
	id    ID
	kind  string

	cfg       Config
	pos       Vec2
	visible   bool
	hasFocus  bool
	mouseDown bool
	destroyed bool
	dirty     Dirty

	face    textFace
	chrome  *Texture
	layout  chromeLayout
	textTex *Texture
	textPos Vec2
	textPad float64
}

func (b *widgetBase) init(m *Manager, self Widget, kind string, defaults Config, opts []Option) {
	b.m = m
	b.self = self
	b.kind = kind
	b.cfg = buildConfig(defaults, m.styles, opts)
	b.visible = true
	b.face = newTextFace(m, b.cfg.Text)
	b.chrome = NewTexture(1, 1)
	b.textTex = NewTexture(1, 1)
	b.dirty = DirtyChrome | DirtyText
	b.id = m.register(self, kind)
}

func (b *widgetBase) base() *widgetBase { return b }

func (b *widgetBase) ID() ID       { return b.id }
func (b *widgetBase) Kind() string { return b.kind }

func (b *widgetBase) Config() Config { return b.cfg.clone() }

func (b *widgetBase) Position() Vec2 { return b.pos }

func (b *widgetBase) SetPosition(x, y float64) { b.pos = Vec2{X: x, Y: y} }

func (b *widgetBase) Visible() bool { return b.visible }

func (b *widgetBase) SetVisible(v bool) { b.visible = v }

func (b *widgetBase) Size() (float64, float64) {
	b.self.Update(false)
	return float64(b.layout.OuterW), float64(b.layout.OuterH)
}

func (b *widgetBase) Bounds() Rect {
	w, h := b.Size()
	return Rect{X: b.pos.X, Y: b.pos.Y, W: w, H: h}
}

func (b *widgetBase) TabIndex() int { return b.cfg.TabIndex }

func (b *widgetBase) HasFocus() bool { return b.hasFocus }

func (b *widgetBase) Focus() { b.m.focus(b.self) }

func (b *widgetBase) Blur() { b.m.blur(b.self) }

func (b *widgetBase) Destroyed() bool { return b.destroyed }

// configure applies opts and marks what they touched. A WithStyle among
// opts applies that preset first. It returns the configuration before the
// change.
func (b *widgetBase) configure(opts []Option) Config {
	old := b.cfg.clone()
	var requested Config
	for _, opt := range opts {
		opt(&requested)
	}
	if requested.Style != "" {
		for _, opt := range b.m.styles.Lookup(requested.Style) {
			opt(&b.cfg)
		}
	}
	for _, opt := range opts {
		opt(&b.cfg)
	}
	b.dirty |= DirtyChrome
	if b.cfg.Text != old.Text {
		b.dirty |= DirtyStyle | DirtyText
	}
	if b.cfg.Value != old.Value {
		b.dirty |= DirtyText
	}
	return old
}

// ownsPeer reports whether the shared peer currently mirrors this widget.
func (b *widgetBase) ownsPeer() bool {
	return b.hasFocus && !b.cfg.Readonly && b.m.peer != nil
}

// contentHeight is the configured height, or the font height when unset.
func (b *widgetBase) contentHeight() float64 {
	if b.cfg.Height > 0 {
		return b.cfg.Height
	}
	return b.face.FontHeight()
}

// renderChrome re-rasterizes the chrome and places the text origin.
func (b *widgetBase) renderChrome() {
	b.layout = layoutChrome(&b.cfg, b.contentHeight(), b.m.logger)
	if !rasterizeChrome(b.chrome, &b.cfg, b.layout, b.m.logger) {
		b.m.logger.Debug("Chrome: skipped", "widget", b.id, "kind", b.kind)
	}

	textH := b.face.FontHeight()
	lay := b.layout
	var y float64
	switch b.cfg.VAlign {
	case VAlignMiddle:
		y = lay.TextboxTop + (lay.TextboxHeight-textH)/2
	case VAlignTop:
		y = lay.TextboxTop
	case VAlignBottom:
		y = lay.TextboxTop + lay.TextboxHeight - textH
	default:
		y = b.cfg.Padding
	}
	b.textPos = Vec2{X: math.Floor(lay.TextboxLeft + b.cfg.Padding), Y: math.Floor(y)}
}

// restyle rebuilds the text face. When the height follows the font and the
// font height changed, the chrome is laid out again and restyle reports
// true.
func (b *widgetBase) restyle() bool {
	oldH := b.face.FontHeight()
	b.face = restyleFace(b.m, b.face, b.cfg.Text)
	if b.cfg.Height <= 0 && b.face.FontHeight() != oldH {
		b.renderChrome()
		return true
	}
	return false
}

// renderText rasterizes s into the text sprite.
func (b *widgetBase) renderText(s string, fill color.NRGBA) {
	if s == "" {
		b.textTex.Reset(1, 1)
		b.textTex.MarkDirty()
		return
	}
	b.textPad = math.Ceil(b.cfg.Text.StrokeThickness / 2)
	w := int(math.Ceil(b.face.WidthOf(s)+2*b.textPad)) + 2
	h := int(math.Ceil(b.face.FontHeight()+2*b.textPad)) + 2
	img := b.textTex.Reset(w, h)
	b.face.drawText(img, b.textPad, b.textPad, s, fill)
	b.textTex.MarkDirty()
}

func (b *widgetBase) textFill() color.NRGBA {
	return mustColor(b.cfg.Text.Fill, color.NRGBA{A: 255})
}

// drawBase draws the chrome.
func (b *widgetBase) drawBase(dl *DrawList) {
	dl.AddTexture(b.chrome, float32(b.pos.X), float32(b.pos.Y))
}

func (b *widgetBase) drawText(dl *DrawList) {
	x := b.pos.X + b.textPos.X - b.textPad
	y := b.pos.Y + b.textPos.Y - b.textPad
	dl.AddTexture(b.textTex, float32(x), float32(y))
}

// syncPeer resets the peer for widgets that do not edit text.
func (b *widgetBase) syncPeer(p Peer) {
	p.SetType(TypeText)
	p.SetMaxLength(0)
	p.SetRange(nil, nil)
	p.SetValue("")
	p.SetSelection(0, 0)
}

func (b *widgetBase) blurred() {}

func (b *widgetBase) tick(time.Time) {}

func (b *widgetBase) keyDown(*KeyEvent) {}

func (b *widgetBase) keyUp(*KeyEvent) {}

func (b *widgetBase) pointerDown(*PointerEvent, Vec2) {}

func (b *widgetBase) pointerMove(*PointerEvent, Vec2, bool) {}

func (b *widgetBase) pointerUp(*PointerEvent, Vec2) {}

// pointerUpOutside handles a release away from a widget that was pressed,
// and the peer losing platform focus.
func (b *widgetBase) pointerUpOutside() {
	if b.hasFocus && !b.mouseDown {
		b.self.Blur()
	}
	b.mouseDown = false
}

func (b *widgetBase) contains(local Vec2) bool {
	return local.X >= 0 && local.Y >= 0 &&
		local.X < float64(b.layout.OuterW) && local.Y < float64(b.layout.OuterH)
}

func (b *widgetBase) overlayContains(Vec2) bool { return false }

func (b *widgetBase) drawOverlay(*DrawList) {}

// Destroy blurs the widget if needed, unregisters it and releases its
// textures and shared text cache.
func (b *widgetBase) Destroy() {
	if b.destroyed {
		return
	}
	b.m.destroy(b.self)
	if b.stage != nil {
		b.stage.Remove(b.self)
	}
	b.chrome.Destroy()
	b.textTex.Destroy()
	b.face.release()
	b.destroyed = true
}

// hook helpers

func (b *widgetBase) fireKey(fn func(*KeyEvent, Widget), ev *KeyEvent) {
	if fn != nil {
		fn(ev, b.self)
	}
}

func (b *widgetBase) firePointer(fn func(*PointerEvent, Widget), ev *PointerEvent) {
	if fn != nil {
		fn(ev, b.self)
	}
}

func (b *widgetBase) fire(fn func(Widget)) {
	if fn != nil {
		fn(b.self)
	}
}
