package forms

import "slices"

// Renderer draws finished draw lists.
type Renderer interface {
	Render(dl *DrawList) error
	Resize(width, height int)
}

// Stage is the display surface widgets live on. It routes pointer input to
// widgets and builds the per-frame draw lists.
//
// Each frame:
//
//	stage.PointerDown(ev) / PointerMove / PointerUp as input arrives
//	if err := stage.Render(renderer); err != nil { ... }
type Stage struct {
	m        *Manager
	children []Widget
	width    float64
	height   float64

	pressed map[Widget]bool
	outside func(hit Widget)

	// Valid between Begin and End.
	DrawList           *DrawList
	ForegroundDrawList *DrawList
}

// NewStage creates a stage of the given size. The first stage created for
// a manager becomes its click-outside surface.
func NewStage(m *Manager, width, height float64) *Stage {
	s := &Stage{
		m:       m,
		width:   width,
		height:  height,
		pressed: make(map[Widget]bool),
	}
	if m.surface == nil {
		m.SetSurface(s)
	}
	return s
}

// Size returns the stage size.
func (s *Stage) Size() (w, h float64) { return s.width, s.height }

// Resize changes the stage size. Select menus placed after the change use
// the new height.
func (s *Stage) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Add places widgets on the stage, on top of earlier children.
func (s *Stage) Add(ws ...Widget) {
	for _, w := range ws {
		if w.Destroyed() || slices.Contains(s.children, w) {
			continue
		}
		if b := w.base(); b.stage != nil && b.stage != s {
			b.stage.Remove(w)
		}
		w.base().stage = s
		s.children = append(s.children, w)
	}
}

// Remove takes w off the stage.
func (s *Stage) Remove(w Widget) {
	if i := slices.Index(s.children, w); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
	}
	delete(s.pressed, w)
	if w.base().stage == s {
		w.base().stage = nil
	}
}

// Children returns the widgets in draw order.
func (s *Stage) Children() []Widget { return slices.Clone(s.children) }

// LocalPosition converts a stage point into w's local space.
func (s *Stage) LocalPosition(w Widget, p Vec2) Vec2 {
	return p.Sub(w.Position())
}

// HitTest returns the topmost visible widget under p. Open overlays such as
// Select menus take precedence.
func (s *Stage) HitTest(p Vec2) Widget {
	for i := len(s.children) - 1; i >= 0; i-- {
		w := s.children[i]
		if w.Visible() && w.overlayContains(s.LocalPosition(w, p)) {
			return w
		}
	}
	for i := len(s.children) - 1; i >= 0; i-- {
		w := s.children[i]
		if w.Visible() && w.contains(s.LocalPosition(w, p)) {
			return w
		}
	}
	return nil
}

// PointerDown delivers a press. The outside-click handler sees it before
// any widget does.
func (s *Stage) PointerDown(ev *PointerEvent) {
	hit := s.HitTest(ev.Pos)
	if s.outside != nil {
		s.outside(hit)
	}
	if hit == nil || hit.Destroyed() {
		return
	}
	s.pressed[hit] = true
	hit.pointerDown(ev, s.LocalPosition(hit, ev.Pos))
}

// PointerMove delivers a move to every widget, telling each whether the
// pointer is over it.
func (s *Stage) PointerMove(ev *PointerEvent) {
	for _, w := range slices.Clone(s.children) {
		if w.Destroyed() || !w.Visible() {
			continue
		}
		local := s.LocalPosition(w, ev.Pos)
		w.pointerMove(ev, local, w.contains(local) || w.overlayContains(local))
	}
}

// PointerUp delivers a release to the widget under the pointer, and a
// release-outside to every other widget that was pressed.
func (s *Stage) PointerUp(ev *PointerEvent) {
	hit := s.HitTest(ev.Pos)
	for _, w := range slices.Clone(s.children) {
		if w.Destroyed() {
			continue
		}
		switch {
		case w == hit:
			w.pointerUp(ev, s.LocalPosition(w, ev.Pos))
		case s.pressed[w]:
			w.pointerUpOutside()
		}
	}
	clear(s.pressed)
}

// Begin runs due deferred work, updates every widget and fills fresh draw
// lists. Overlays go to ForegroundDrawList.
func (s *Stage) Begin() {
	s.m.RunPending()
	now := s.m.Now()

	s.DrawList = AcquireDrawList()
	s.ForegroundDrawList = AcquireDrawList()

	for _, w := range slices.Clone(s.children) {
		if w.Destroyed() || !w.Visible() {
			continue
		}
		w.Update(false)
		w.tick(now)
		w.Draw(s.DrawList)
		w.drawOverlay(s.ForegroundDrawList)
	}
	s.DrawList.Finalize()
	s.ForegroundDrawList.Finalize()
}

// End renders the draw lists and returns them to the pool.
func (s *Stage) End(r Renderer) error {
	if s.DrawList == nil {
		return nil
	}

	err := r.Render(s.DrawList)
	if err == nil && len(s.ForegroundDrawList.CmdBuffer) > 0 {
		err = r.Render(s.ForegroundDrawList)
	}

	ReleaseDrawList(s.DrawList)
	ReleaseDrawList(s.ForegroundDrawList)
	s.DrawList = nil
	s.ForegroundDrawList = nil
	return err
}

// Render is Begin followed by End.
func (s *Stage) Render(r Renderer) error {
	s.Begin()
	return s.End(r)
}
