package forms

import (
	"image/color"
	"math"
)

// optionTextX is the left inset of option labels in the menu.
const optionTextX = 5

// Select is a drop-down choice among ordered options. The closed widget
// shows the selected option's label beside an arrow cap; the open menu
// lists every option above or below the widget, whichever side has room.
type Select struct {
	widgetBase

	options       []SelectOption
	selectedIndex int

	optionFace textFace
	optionsTex *Texture
	lineHeight float64

	menuVisible bool
	menuStartY  float64
	menuIndex   int // hovered option, -1 when none
	menuPressed bool
	highlight   bool
	highlightY  float64
}

// NewSelect creates a select. WithOptions sets the options in order and
// WithSelected names the initially selected key; otherwise the first
// option is selected.
func NewSelect(m *Manager, opts ...Option) *Select {
	s := &Select{menuIndex: -1}
	s.init(m, s, "select", DefaultConfig(), opts)
	s.optionFace = newTextFace(m, s.cfg.OptionText)
	s.optionsTex = NewTexture(1, 1)
	s.setOptions(s.cfg.Options, s.cfg.Selected)
	return s
}

// setOptions replaces the option list and selects key, or the first option.
func (s *Select) setOptions(opts []SelectOption, key string) {
	s.options = append(s.options[:0], opts...)
	s.selectedIndex = 0
	for i, o := range s.options {
		if o.Value == key {
			s.selectedIndex = i
			break
		}
	}
	s.renderOptions()
	s.updateText()
}

// Options returns the options in display order.
func (s *Select) Options() []SelectOption {
	out := make([]SelectOption, len(s.options))
	copy(out, s.options)
	return out
}

// Selected returns the selected option, or false when there are none.
func (s *Select) Selected() (SelectOption, bool) {
	if s.selectedIndex < 0 || s.selectedIndex >= len(s.options) {
		return SelectOption{}, false
	}
	return s.options[s.selectedIndex], true
}

// SelectedIndex returns the index of the selected option.
func (s *Select) SelectedIndex() int { return s.selectedIndex }

// SetSelectedIndex selects option i, clamped to the option range.
func (s *Select) SetSelectedIndex(i int) { s.selectIndex(i) }

// Value returns the selected option's key, or "" when there are no options.
func (s *Select) Value() string {
	o, _ := s.Selected()
	return o.Value
}

// SetValue selects the option whose key is v. Unknown keys are ignored.
func (s *Select) SetValue(v string) {
	for i, o := range s.options {
		if o.Value == v {
			s.selectIndex(i)
			return
		}
	}
}

// MenuVisible reports whether the option menu is open.
func (s *Select) MenuVisible() bool { return s.menuVisible }

// MenuRect returns the menu rectangle in local coordinates.
func (s *Select) MenuRect() Rect {
	return Rect{X: s.layout.TextboxLeft, Y: s.menuStartY, W: s.layout.TextboxWidth, H: s.menuHeight()}
}

// LineHeight returns the height of one option row.
func (s *Select) LineHeight() float64 { return s.lineHeight }

// Configure applies options on top of the current configuration.
func (s *Select) Configure(opts ...Option) {
	old := s.configure(opts)
	if s.cfg.OptionText != old.OptionText {
		s.optionFace = restyleFace(s.m, s.optionFace, s.cfg.OptionText)
		s.renderOptions()
	}
	if !optionsEqual(s.cfg.Options, old.Options) || s.cfg.Selected != old.Selected {
		s.setOptions(s.cfg.Options, s.cfg.Selected)
	}
}

func optionsEqual(a, b []SelectOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// selectIndex clamps i, selects it and refreshes the label. OnChange fires
// when the selection moved.
func (s *Select) selectIndex(i int) {
	if len(s.options) == 0 {
		return
	}
	i = clamp(i, 0, len(s.options)-1)
	changed := i != s.selectedIndex
	s.selectedIndex = i
	s.updateText()
	if changed {
		s.fire(s.cfg.OnChange)
	}
}

// updateText shows the selected label and moves the highlight to it.
func (s *Select) updateText() {
	o, ok := s.Selected()
	if !ok {
		s.cfg.Value = ""
		s.dirty |= DirtyText
		return
	}
	s.cfg.Value = o.Text
	s.dirty |= DirtyText
	s.updateHighlight(s.selectedIndex)
}

func (s *Select) updateHighlight(i int) {
	s.highlightY = s.menuStartY + s.lineHeight*float64(i)
}

// renderOptions rasterizes every label, one per line.
func (s *Select) renderOptions() {
	s.lineHeight = math.Floor(s.optionFace.FontHeight() - s.cfg.OptionText.StrokeThickness/2)
	if len(s.options) == 0 {
		s.optionsTex.Reset(1, 1)
		s.optionsTex.MarkDirty()
		return
	}
	w := 1.0
	for _, o := range s.options {
		w = max(w, s.optionFace.WidthOf(o.Text))
	}
	h := s.lineHeight*float64(len(s.options)) + s.optionFace.FontHeight()
	img := s.optionsTex.Reset(int(math.Ceil(w))+2, int(math.Ceil(h)))
	fill := mustColor(s.cfg.OptionText.Fill, color.NRGBA{A: 255})
	for i, o := range s.options {
		s.optionFace.drawText(img, 0, s.lineHeight*float64(i), o.Text, fill)
	}
	s.optionsTex.MarkDirty()
}

func (s *Select) menuHeight() float64 {
	return s.lineHeight*float64(len(s.options)) - 1
}

// displayMenu opens or closes the menu. An open menu goes below the widget
// unless it does not fit there and there is more room above.
func (s *Select) displayMenu(show bool) {
	s.menuVisible = show
	s.highlight = false
	if !show {
		return
	}
	s.Update(false)

	stageH := 0.0
	if s.stage != nil {
		_, stageH = s.stage.Size()
	}
	outerH := float64(s.layout.OuterH)
	top := s.pos.Y
	bottom := stageH - (top + outerH)
	menuH := s.menuHeight()

	if menuH > bottom && top > bottom {
		s.menuStartY = 1 - menuH
	} else {
		s.menuStartY = outerH - 1
	}
	s.menuIndex = -1

	if _, ok := s.Selected(); ok {
		s.highlight = true
		s.updateHighlight(s.selectedIndex)
	}
	s.m.logger.Debug("Select: menu opened", "widget", s.id, "startY", s.menuStartY, "options", len(s.options))
}

// indexAt maps a local point to an option index, or -1 outside the rows.
func (s *Select) indexAt(local Vec2) int {
	y := local.Y - s.menuStartY
	if y < 1 || y > s.menuHeight() || len(s.options) == 0 {
		return -1
	}
	i := int(math.Floor(y / s.lineHeight))
	return clamp(i, 0, len(s.options)-1)
}

// Update reconciles dirty state: chrome with the arrow cap, text style,
// then the label.
func (s *Select) Update(force bool) {
	if force {
		s.dirty = DirtyAll
	}
	if s.dirty == 0 || s.destroyed {
		return
	}
	if s.dirty.Has(DirtyChrome) {
		s.renderChrome()
		s.paintCap()
	}
	if s.dirty.Has(DirtyStyle) && s.restyle() {
		s.paintCap()
	}
	if s.dirty.Has(DirtyText) {
		s.renderText(s.cfg.Value, s.textFill())
	}
	s.dirty = 0
}

func (s *Select) paintCap() {
	paintSelectCap(s.chrome.Image(), &s.cfg, s.layout, s.m.logger)
	s.chrome.MarkDirty()
}

// Draw appends chrome and label to dl.
func (s *Select) Draw(dl *DrawList) {
	s.drawBase(dl)
	s.drawText(dl)
}

// drawOverlay draws the open menu: background, highlight, then labels.
func (s *Select) drawOverlay(dl *DrawList) {
	if !s.menuVisible {
		return
	}
	r := s.MenuRect().Translate(s.pos)
	bg := PackColor(mustColor(s.cfg.BackgroundColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	dl.AddRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg)

	// Labels wider than the menu are cut at its edge.
	dl.PushClipRect(float32(r.X), float32(r.Y), float32(r.X+r.W), float32(r.Y+r.H))
	defer dl.PopClipRect()

	if s.highlight {
		y := s.pos.Y + s.highlightY
		c := PackColor(mustColor(s.cfg.SelectionColor, color.NRGBA{R: 179, G: 212, B: 253, A: 204}))
		dl.AddRect(float32(r.X), float32(y), float32(r.W), float32(s.lineHeight), c)
	}
	dl.AddTexture(s.optionsTex, float32(s.pos.X+optionTextX), float32(s.pos.Y+s.menuStartY))
}

func (s *Select) overlayContains(local Vec2) bool {
	return s.menuVisible && s.MenuRect().Contains(local)
}

func (s *Select) contains(local Vec2) bool {
	return s.widgetBase.contains(local) || s.overlayContains(local)
}

func (s *Select) blurred() {
	s.displayMenu(false)
	s.menuIndex = -1
}

func (s *Select) keyDown(ev *KeyEvent) {
	if ev.Key == KeyEscape {
		s.Blur()
		return
	}
	s.dirty |= DirtyText | DirtySelection
	s.fireKey(s.cfg.OnKeyDown, ev)

	switch ev.Key {
	case KeySpace, KeyEnter:
		ev.PreventDefault()
		if !s.menuVisible {
			s.displayMenu(true)
			return
		}
		s.displayMenu(false)
		if s.menuIndex >= 0 {
			i := s.menuIndex
			s.menuIndex = -1
			s.selectIndex(i)
		}
	case KeyTab:
		ev.PreventDefault()
		s.m.tab(s)
	case KeyUp:
		s.selectIndex(s.selectedIndex - 1)
	case KeyDown:
		s.selectIndex(s.selectedIndex + 1)
	}
}

func (s *Select) keyUp(ev *KeyEvent) {
	s.fireKey(s.cfg.OnKeyUp, ev)
	if s.menuIndex < 0 {
		s.updateText()
	}
}

func (s *Select) pointerDown(ev *PointerEvent, local Vec2) {
	if s.overlayContains(local) {
		s.menuPressed = true
		if ev.Button != MouseButtonLeft {
			ev.PreventDefault()
			s.displayMenu(false)
			return
		}
		if i := s.indexAt(local); i >= 0 {
			s.selectIndex(i)
		}
		s.displayMenu(false)
		return
	}
	s.Focus()
	s.mouseDown = true
	s.firePointer(s.cfg.OnMouseDown, ev)
}

func (s *Select) pointerMove(_ *PointerEvent, local Vec2, _ bool) {
	if !s.overlayContains(local) {
		return
	}
	if i := s.indexAt(local); i >= 0 {
		s.menuIndex = i
		s.highlight = true
		s.updateHighlight(i)
	}
}

func (s *Select) pointerUp(ev *PointerEvent, _ Vec2) {
	if s.menuPressed {
		s.menuPressed = false
		return
	}
	s.firePointer(s.cfg.OnMouseUp, ev)
	s.mouseDown = false
	s.Focus()
	s.displayMenu(!s.menuVisible)
}

// pointerUpOutside ignores releases of a press that began on the menu,
// which closes on pick and leaves the pointer off the widget.
func (s *Select) pointerUpOutside() {
	if s.menuPressed {
		s.menuPressed = false
		return
	}
	s.widgetBase.pointerUpOutside()
}

// Destroy releases the option text resources along with the base widget's.
func (s *Select) Destroy() {
	if s.destroyed {
		return
	}
	s.widgetBase.Destroy()
	s.optionsTex.Destroy()
	s.optionFace.release()
}
