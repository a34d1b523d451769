package forms

import "testing"

func newMonoButton(m *Manager, opts ...Option) *Button {
	return NewButton(m, append([]Option{WithBitmapFont(monoStyle), WithValue("OK")}, opts...)...)
}

func TestButton_Defaults(t *testing.T) {
	m, _ := newTestManager(t)
	b := newMonoButton(m)
	if b.TabIndex() != -1 {
		t.Errorf("Expected tab index -1, got %d", b.TabIndex())
	}
	if b.Config().Width != DefaultConfig().Width {
		t.Errorf("Expected shared default width, got %v", b.Config().Width)
	}
}

func TestButton_LabelAlignment(t *testing.T) {
	m, _ := newTestManager(t)
	tests := []struct {
		align Align
		want  float64
	}{
		{AlignCenter, 82},
		{AlignRight, 157},
		{AlignLeft, 7},
	}
	for _, tt := range tests {
		b := newMonoButton(m, WithAlign(tt.align))
		b.Update(false)
		if b.textPos.X != tt.want {
			t.Errorf("%s: expected label x %v, got %v", tt.align, tt.want, b.textPos.X)
		}
	}
}

func TestButton_SetValueRecenters(t *testing.T) {
	m, _ := newTestManager(t)
	b := newMonoButton(m)
	b.Update(false)
	b.SetValue("Submit")
	b.Update(false)
	if got := b.textPos.X; got != 62 {
		t.Errorf("Expected label x 62 for a 60px label, got %v", got)
	}
}

func TestButton_PressFocuses(t *testing.T) {
	m, _ := newTestManager(t)
	var events []string
	b := newMonoButton(m,
		OnMouseDown(func(*PointerEvent, Widget) { events = append(events, "down") }),
		OnMouseUp(func(*PointerEvent, Widget) { events = append(events, "up") }),
	)
	stage := NewStage(m, 400, 300)
	stage.Add(b)
	b.Update(false)

	at := Vec2{X: 20, Y: 10}
	stage.PointerDown(&PointerEvent{Pos: at})
	if !b.HasFocus() {
		t.Error("Expected press to focus the button")
	}
	stage.PointerUp(&PointerEvent{Pos: at})
	if len(events) != 2 || events[0] != "down" || events[1] != "up" {
		t.Errorf("Expected [down up], got %v", events)
	}
	if m.Peer().Focused() {
		t.Error("Expected the peer to stay unfocused for a button")
	}
}

func TestButton_EnterAndSpaceSubmit(t *testing.T) {
	m, _ := newTestManager(t)
	submits := 0
	b := newMonoButton(m, OnSubmit(func(Widget) { submits++ }))
	b.Focus()

	for _, k := range []Key{KeyEnter, KeySpace} {
		ev := &KeyEvent{Key: k}
		m.PeerKeyDown(ev)
		if !ev.DefaultPrevented() {
			t.Errorf("%s: expected default prevented", KeyName(k))
		}
	}
	if submits != 2 {
		t.Errorf("Expected 2 submits, got %d", submits)
	}

	m.PeerKeyDown(&KeyEvent{Key: KeyEscape})
	if b.HasFocus() {
		t.Error("Expected Escape to blur")
	}
}

func TestButton_TabIndexOptIn(t *testing.T) {
	m, clk := newTestManager(t)
	a := newMonoField(m)
	skipped := newMonoButton(m)
	reached := newMonoButton(m, WithTabIndex(0))

	a.Focus()
	m.PeerKeyDown(&KeyEvent{Key: KeyTab})
	clk.Advance(tabFocusDelay)
	m.RunPending()

	if skipped.HasFocus() {
		t.Error("Expected default button skipped by Tab")
	}
	if !reached.HasFocus() {
		t.Error("Expected button with tab index 0 to receive focus")
	}
}
