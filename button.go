package forms

import "math"

// Button is a clickable label on widget chrome. Buttons take focus when
// pressed but are skipped by Tab unless given a tab index.
type Button struct {
	widgetBase
}

// ButtonDefaults returns the defaults a Button starts from: the shared
// defaults with Tab disabled.
func ButtonDefaults() Config {
	cfg := DefaultConfig()
	cfg.TabIndex = -1
	return cfg
}

// NewButton creates a button. Its label is the Value option.
func NewButton(m *Manager, opts ...Option) *Button {
	b := &Button{}
	b.init(m, b, "button", ButtonDefaults(), opts)
	return b
}

// Value returns the label.
func (b *Button) Value() string { return b.cfg.Value }

// SetValue replaces the label.
func (b *Button) SetValue(v string) {
	if v == b.cfg.Value {
		return
	}
	b.cfg.Value = v
	b.dirty |= DirtyChrome | DirtyText
}

// Configure applies options on top of the current configuration.
func (b *Button) Configure(opts ...Option) {
	b.configure(opts)
}

// Update reconciles dirty state.
func (b *Button) Update(force bool) {
	if force {
		b.dirty = DirtyAll
	}
	if b.dirty == 0 || b.destroyed {
		return
	}
	if b.dirty.Has(DirtyChrome) {
		b.renderChrome()
		b.dirty |= DirtyText
	}
	if b.dirty.Has(DirtyStyle) {
		b.restyle()
	}
	if b.dirty.Has(DirtyText) {
		b.renderText(b.cfg.Value, b.textFill())
		b.placeLabel()
	}
	b.dirty = 0
}

// placeLabel sets the label's x by Align. Left alignment keeps the padded
// textbox origin.
func (b *Button) placeLabel() {
	textW := b.face.WidthOf(b.cfg.Value)
	outerW := float64(b.layout.OuterW)
	switch b.cfg.Align {
	case AlignCenter:
		b.textPos.X = math.Floor((outerW - textW) / 2)
	case AlignRight:
		b.textPos.X = math.Floor(outerW - textW - b.layout.TextboxLeft - b.cfg.Padding)
	default:
		b.textPos.X = math.Floor(b.layout.TextboxLeft + b.cfg.Padding)
	}
}

// Draw appends chrome and label to dl.
func (b *Button) Draw(dl *DrawList) {
	b.drawBase(dl)
	b.drawText(dl)
}

func (b *Button) keyDown(ev *KeyEvent) {
	b.fireKey(b.cfg.OnKeyDown, ev)
	switch ev.Key {
	case KeyEscape:
		b.Blur()
	case KeyTab:
		ev.PreventDefault()
		b.m.tab(b)
	case KeyEnter, KeySpace:
		ev.PreventDefault()
		b.fire(b.cfg.OnSubmit)
	}
}

func (b *Button) keyUp(ev *KeyEvent) {
	b.fireKey(b.cfg.OnKeyUp, ev)
}

func (b *Button) pointerDown(ev *PointerEvent, _ Vec2) {
	b.Focus()
	b.mouseDown = true
	b.firePointer(b.cfg.OnMouseDown, ev)
}

func (b *Button) pointerUp(ev *PointerEvent, _ Vec2) {
	b.firePointer(b.cfg.OnMouseUp, ev)
	b.mouseDown = false
}
