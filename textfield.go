package forms

import (
	"image/color"
	"math"
	"strings"
	"time"
)

// caretBlink is the caret's on/off period.
const caretBlink = 300 * time.Millisecond

// TextField is a single-line text input. The native peer does the editing;
// the field mirrors the peer's value and selection and renders them.
type TextField struct {
	widgetBase

	sel          SelectionState
	displayed    string
	displayStart int
	placeholder  bool

	selVisible bool
	selRect    Rect

	caretVisible bool
	caretX       float64
	caretToggled time.Time
}

// NewTextField creates a text field. Options are applied over the defaults
// and the preset named by WithStyle.
func NewTextField(m *Manager, opts ...Option) *TextField {
	t := &TextField{sel: newSelectionState()}
	t.init(m, t, "textfield", DefaultConfig(), opts)
	t.sel.Clamp(runeLen(t.cfg.Value))
	return t
}

// Value returns the field's value.
func (t *TextField) Value() string { return t.cfg.Value }

// SetValue replaces the value. The selection is clamped to the new length.
func (t *TextField) SetValue(v string) {
	if v == t.cfg.Value {
		return
	}
	t.cfg.Value = v
	if t.ownsPeer() {
		t.m.Peer().SetValue(v)
		v = t.m.Peer().Value()
		t.cfg.Value = v
	}
	t.sel.Clamp(runeLen(v))
	t.dirty |= DirtyText | DirtySelection | DirtyCaret
	t.fire(t.cfg.OnChange)
}

// Selection returns the selected rune range.
func (t *TextField) Selection() (start, end int) { return t.sel.Range[0], t.sel.Range[1] }

// Caret returns the caret's rune index.
func (t *TextField) Caret() int { return t.sel.Caret }

// ClipWindow returns the visible window of the value.
func (t *TextField) ClipWindow() ClipWindow { return t.sel.Clip }

// DisplayedText returns the text currently shown, after masking and
// clipping. It reflects the last Update.
func (t *TextField) DisplayedText() string { return t.displayed }

// SelectionRect returns the highlight rectangle in local coordinates and
// whether it is shown.
func (t *TextField) SelectionRect() (Rect, bool) { return t.selRect, t.selVisible }

// CaretX returns the caret's local x and whether it is currently shown.
func (t *TextField) CaretX() (float64, bool) { return t.caretX, t.caretVisible }

// Configure applies options on top of the current configuration.
func (t *TextField) Configure(opts ...Option) {
	old := t.configure(opts)
	if t.cfg.Value != old.Value && t.ownsPeer() {
		t.m.Peer().SetValue(t.cfg.Value)
	}
	if t.ownsPeer() {
		t.m.Peer().SetMaxLength(t.cfg.MaxLength)
	}
	t.sel.Clamp(runeLen(t.cfg.Value))
}

// Update reconciles dirty state in a fixed order: chrome, text style,
// displayed text, selection, caret.
func (t *TextField) Update(force bool) {
	if force {
		t.dirty = DirtyAll
	}
	if t.dirty == 0 || t.destroyed {
		return
	}
	if t.dirty.Has(DirtyChrome) {
		t.renderChrome()
		t.dirty |= DirtySelection | DirtyCaret
	}
	if t.dirty.Has(DirtyStyle) {
		t.restyle()
	}
	if t.dirty.Has(DirtyText) {
		t.clipText()
		fill := t.textFill()
		if t.placeholder {
			fill = mustColor(t.cfg.PlaceholderColor, fill)
		}
		t.renderText(t.displayed, fill)
	}
	if t.dirty.Has(DirtySelection) {
		t.updateSelection()
	}
	if t.dirty.Has(DirtyCaret) {
		t.updateCaret()
	}
	if formsVerbose() {
		t.m.logger.Debug("TextField: updated", "widget", t.id, "dirty", t.dirty.String(), "shown", t.displayed)
	}
	t.dirty = 0
}

// clipText computes the displayed string. A focused or pressed field shows
// its value through the caret-following window; otherwise the value, or the
// placeholder when the value is empty, is shown from its start.
func (t *TextField) clipText() {
	active := t.hasFocus || t.mouseDown
	avail := t.cfg.Width - 2*t.cfg.Padding

	value := t.cfg.Value
	t.placeholder = !active && value == ""
	if t.placeholder {
		t.displayed, _ = Clip(t.face, t.cfg.Placeholder, 0, ClipWindow{}, avail, false)
		t.displayStart = 0
		return
	}
	if t.cfg.Type == TypePassword {
		value = strings.Repeat("*", runeLen(value))
	}

	shown, win := Clip(t.face, value, t.sel.Caret, t.sel.Clip, avail, active)
	if active {
		t.sel.Clip = win
	}
	t.displayed = shown
	t.displayStart = win.Start
}

func (t *TextField) updateSelection() {
	if t.sel.Empty() {
		t.selVisible = false
		return
	}
	runes := []rune(t.displayed)
	ds := t.displayStart
	before := substring(runes, 0, t.sel.Range[0]-ds)
	inside := substring(runes, t.sel.Range[0]-ds, t.sel.Range[1]-ds)

	t.selRect = Rect{
		X: t.textPos.X + math.Floor(t.face.WidthOf(before)),
		Y: t.textPos.Y,
		W: math.Ceil(t.face.WidthOf(inside)) + t.cfg.Text.StrokeThickness,
		H: t.contentHeight(),
	}
	t.selVisible = t.hasFocus || t.mouseDown
}

func (t *TextField) updateCaret() {
	runes := []rune(t.displayed)
	t.caretX = t.textPos.X - 1 + t.face.WidthOf(substring(runes, 0, t.sel.Caret-t.displayStart))
}

// tick blinks the caret while the field is focused or pressed.
func (t *TextField) tick(now time.Time) {
	if !t.hasFocus && !t.mouseDown {
		t.selVisible = false
		t.caretVisible = false
		return
	}
	if now.Sub(t.caretToggled) >= caretBlink {
		t.caretToggled = now
		t.caretVisible = !t.caretVisible
	}
	if t.selVisible {
		t.caretVisible = false
	}
}

// Draw appends chrome, selection, text and caret to dl.
func (t *TextField) Draw(dl *DrawList) {
	t.drawBase(dl)
	if t.selVisible {
		c := PackColor(mustColor(t.cfg.SelectionColor, color.NRGBA{R: 179, G: 212, B: 253, A: 204}))
		r := t.selRect.Translate(t.pos)
		dl.AddRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c)
	}
	t.drawText(dl)
	if t.caretVisible {
		x := t.pos.X + t.caretX
		y := t.pos.Y + t.textPos.Y
		dl.AddRect(float32(x), float32(y), 1, float32(t.face.FontHeight()), PackColor(t.textFill()))
	}
}

// syncPeer hands the field's value and constraints to the peer.
func (t *TextField) syncPeer(p Peer) {
	p.SetType(t.cfg.Type)
	p.SetMaxLength(t.cfg.MaxLength)
	if t.cfg.Type == TypeNumber {
		p.SetRange(t.cfg.Min, t.cfg.Max)
	} else {
		p.SetRange(nil, nil)
	}
	p.SetValue(t.cfg.Value)
	p.SetSelection(t.sel.Range[0], t.sel.Range[1])
	t.caretToggled = time.Time{}
	t.clipText()
	t.dirty |= DirtyText | DirtySelection | DirtyCaret
}

// blurred restores the placeholder, drops the selection and hides the caret.
func (t *TextField) blurred() {
	if !t.sel.Empty() {
		t.sel.Collapse(0)
	}
	t.sel.Anchor = -1
	t.selVisible = false
	t.caretVisible = false
	t.dirty |= DirtyText | DirtySelection | DirtyCaret
}

// syncFromPeer copies the peer's value and selection into the field.
func (t *TextField) syncFromPeer() {
	if !t.ownsPeer() {
		return
	}
	p := t.m.Peer()
	if v := strings.ReplaceAll(p.Value(), "\r", ""); v != t.cfg.Value {
		t.cfg.Value = v
		t.dirty |= DirtyText
		t.fire(t.cfg.OnChange)
	}
	start, end := p.Selection()
	if start != t.sel.Range[0] || end != t.sel.Range[1] || start != t.sel.Caret {
		t.sel.Range = [2]int{start, end}
		t.sel.Caret = start
		t.dirty |= DirtyText | DirtySelection | DirtyCaret
	}
	t.sel.Clamp(runeLen(t.cfg.Value))
}

func (t *TextField) keyDown(ev *KeyEvent) {
	t.sel.Anchor = -1
	if ev.Key == KeyEscape {
		t.Blur()
		return
	}
	t.dirty |= DirtyText | DirtySelection
	t.fireKey(t.cfg.OnKeyDown, ev)

	if ev.Key == KeyA && ev.Mods.Command() {
		ev.PreventDefault()
		n := runeLen(t.cfg.Value)
		t.sel.Range = [2]int{0, n}
		if t.ownsPeer() {
			t.m.Peer().SetSelection(0, n)
		}
		return
	}
	if ev.Key == KeyControl || ev.Key == KeySuper || ev.Mods.Command() {
		return
	}

	switch ev.Key {
	case KeyEnter:
		ev.PreventDefault()
		t.fire(t.cfg.OnSubmit)
	case KeyTab:
		ev.PreventDefault()
		t.m.tab(t)
		return
	}
	t.syncFromPeer()
}

func (t *TextField) keyUp(ev *KeyEvent) {
	t.fireKey(t.cfg.OnKeyUp, ev)
	t.syncFromPeer()
}

// hitIndex maps a local point to a caret index into the value.
func (t *TextField) hitIndex(local Vec2) int {
	i := CaretIndexFromLocalX(t.face, t.displayed, t.displayStart, local.X-t.textPos.X)
	return clamp(i, 0, runeLen(t.cfg.Value))
}

func (t *TextField) pointerDown(ev *PointerEvent, local Vec2) {
	if ev.Button != MouseButtonLeft {
		ev.PreventDefault()
		return
	}
	t.Focus()
	t.mouseDown = true
	t.firePointer(t.cfg.OnMouseDown, ev)
	if t.placeholder {
		t.clipText()
		t.dirty |= DirtyText
	}

	hit := t.hitIndex(local)
	t.sel.Anchor = hit
	t.sel.Collapse(hit)
	if t.ownsPeer() {
		t.m.Peer().SetSelection(hit, hit)
	}
	t.caretToggled = time.Time{}
	t.dirty |= DirtySelection | DirtyCaret
}

func (t *TextField) pointerMove(_ *PointerEvent, local Vec2, inside bool) {
	if !t.hasFocus || !t.mouseDown || t.sel.Anchor < 0 || !inside {
		return
	}
	hit := t.hitIndex(local)
	prev := t.sel
	t.sel.Extend(t.sel.Anchor, hit)
	if t.sel.Range == prev.Range && t.sel.Caret == prev.Caret {
		return
	}
	if t.ownsPeer() {
		t.m.Peer().SetSelectionAnchor(t.sel.Anchor, hit)
	}
	t.dirty |= DirtyText | DirtySelection | DirtyCaret
}

func (t *TextField) pointerUp(ev *PointerEvent, local Vec2) {
	if ev.Button != MouseButtonLeft {
		ev.PreventDefault()
		return
	}
	t.firePointer(t.cfg.OnMouseUp, ev)
	hit := t.hitIndex(local)
	if t.sel.Anchor < 0 || hit == t.sel.Anchor {
		t.sel.Collapse(hit)
		if t.ownsPeer() {
			t.m.Peer().SetSelection(hit, hit)
		}
		t.dirty |= DirtySelection | DirtyCaret
	}
	t.sel.Anchor = -1
	t.mouseDown = false
}

func runeLen(s string) int { return len([]rune(s)) }

// substring returns runes[a:b] with both ends clamped and swapped into
// order.
func substring(runes []rune, a, b int) string {
	a = clamp(a, 0, len(runes))
	b = clamp(b, 0, len(runes))
	if a > b {
		a, b = b, a
	}
	return string(runes[a:b])
}
