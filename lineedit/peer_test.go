package lineedit_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/go-theft-auto/forms"
	"github.com/go-theft-auto/forms/lineedit"
)

func newManager(ed *lineedit.Editor, now *time.Time) *forms.Manager {
	return forms.NewManager(
		forms.WithLogger(slog.New(slog.DiscardHandler)),
		forms.WithClock(func() time.Time { return *now }),
		forms.WithPeerFactory(func() forms.Peer { return ed }),
	)
}

func typeText(ed *lineedit.Editor, s string) {
	for _, r := range s {
		ed.KeyDown(&forms.KeyEvent{Key: forms.KeyOther})
		ed.InsertText(string(r))
		ed.KeyUp(&forms.KeyEvent{Key: forms.KeyOther})
	}
}

func TestEditorDrivesTextField(t *testing.T) {
	now := time.Unix(0, 0)
	ed := lineedit.New()
	m := newManager(ed, &now)
	changes := 0
	tf := forms.NewTextField(m, forms.WithMaxLength(8), forms.OnChange(func(forms.Widget) { changes++ }))

	tf.Focus()
	typeText(ed, "hello")
	if tf.Value() != "hello" {
		t.Errorf("Expected %q, got %q", "hello", tf.Value())
	}
	if changes != 5 {
		t.Errorf("Expected 5 changes, got %d", changes)
	}

	ed.KeyDown(&forms.KeyEvent{Key: forms.KeyLeft, Mods: forms.ModShift})
	ed.KeyUp(&forms.KeyEvent{Key: forms.KeyLeft, Mods: forms.ModShift})
	if s, e := tf.Selection(); s != 4 || e != 5 {
		t.Errorf("Expected selection [4,5], got [%d,%d]", s, e)
	}

	typeText(ed, " world")
	if tf.Value() != "hell wor" {
		t.Errorf("Expected max length applied, got %q", tf.Value())
	}
}

func TestSelectAllGoesThroughWidget(t *testing.T) {
	now := time.Unix(0, 0)
	ed := lineedit.New()
	m := newManager(ed, &now)
	tf := forms.NewTextField(m, forms.WithValue("abc"))
	tf.Focus()

	ev := &forms.KeyEvent{Key: forms.KeyA, Mods: forms.ModCtrl}
	ed.KeyDown(ev)
	if !ev.DefaultPrevented() {
		t.Error("Expected the widget to handle Ctrl+A")
	}
	if s, e := ed.Selection(); s != 0 || e != 3 {
		t.Errorf("Expected editor selection [0,3], got [%d,%d]", s, e)
	}
}

func TestTabMovesFocusWithoutEditing(t *testing.T) {
	now := time.Unix(0, 0)
	ed := lineedit.New()
	m := newManager(ed, &now)
	a := forms.NewTextField(m, forms.WithValue("first"))
	b := forms.NewTextField(m, forms.WithValue("second"))

	a.Focus()
	ed.KeyDown(&forms.KeyEvent{Key: forms.KeyTab})
	if ed.Focused() {
		t.Error("Expected the editor released during the Tab delay")
	}
	now = now.Add(20 * time.Millisecond)
	m.RunPending()

	if !b.HasFocus() {
		t.Fatal("Expected focus on the second field")
	}
	if ed.Value() != "second" {
		t.Errorf("Expected editor loaded with %q, got %q", "second", ed.Value())
	}
	if a.Value() != "first" {
		t.Errorf("Expected first field unchanged, got %q", a.Value())
	}
}

func TestReadonlyFieldLeavesEditorUnfocused(t *testing.T) {
	now := time.Unix(0, 0)
	ed := lineedit.New()
	m := newManager(ed, &now)
	ro := forms.NewTextField(m, forms.WithValue("fixed"), forms.WithReadonly(true))
	ro.Focus()

	typeText(ed, "x")
	if ro.Value() != "fixed" {
		t.Errorf("Expected readonly value kept, got %q", ro.Value())
	}
	if ed.Focused() {
		t.Error("Expected the editor not focused for a readonly field")
	}
}

func TestBackwardDragKeepsCaretAtPointer(t *testing.T) {
	now := time.Unix(0, 0)
	ed := lineedit.New()
	m := newManager(ed, &now)
	tf := forms.NewTextField(m, forms.WithValue("abcdef"))
	tf.SetPosition(10, 10)
	stage := forms.NewStage(m, 400, 300)
	stage.Add(tf)

	r := tf.Bounds()
	y := r.Y + r.H/2
	stage.PointerDown(&forms.PointerEvent{Pos: forms.Vec2{X: r.X + r.W - 2, Y: y}})
	stage.PointerMove(&forms.PointerEvent{Pos: forms.Vec2{X: r.X + 1, Y: y}})
	stage.PointerUp(&forms.PointerEvent{Pos: forms.Vec2{X: r.X + 1, Y: y}})
	if s, e := ed.Selection(); s != 0 || e != 6 {
		t.Fatalf("Expected editor selection [0,6], got [%d,%d]", s, e)
	}

	ed.KeyDown(&forms.KeyEvent{Key: forms.KeyRight, Mods: forms.ModShift})
	ed.KeyUp(&forms.KeyEvent{Key: forms.KeyRight, Mods: forms.ModShift})
	if s, e := tf.Selection(); s != 1 || e != 6 {
		t.Errorf("Expected Shift+Right to move the start to [1,6], got [%d,%d]", s, e)
	}
}
