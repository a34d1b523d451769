package lineedit

import (
	"testing"

	"github.com/go-theft-auto/forms"
)

func TestKeymap_CustomBinding(t *testing.T) {
	ed, _ := newFocused("hello world")
	ed.Keymap().Register(Binding{
		Name:    "clear",
		Key:     forms.KeyInsert,
		Command: true,
		Action: func(e *Editor, _ *forms.KeyEvent) {
			e.SetSelection(0, len(e.runes))
			e.insert("")
		},
	})

	press(ed, forms.KeyInsert, 0)
	assertState(t, ed, "hello world", 11, 11)

	press(ed, forms.KeyInsert, forms.ModCtrl)
	assertState(t, ed, "", 0, 0)
}

func TestKeymap_FirstMatchWins(t *testing.T) {
	ran := ""
	k := NewKeymap()
	k.Register(Binding{Name: "shifted", Key: forms.KeyZ, Shift: true, Action: func(*Editor, *forms.KeyEvent) { ran = "shifted" }})
	k.Register(Binding{Name: "plain", Key: forms.KeyZ, Action: func(*Editor, *forms.KeyEvent) { ran = "plain" }})
	ed := New(WithKeymap(k))
	ed.Focus()

	press(ed, forms.KeyZ, forms.ModShift)
	if ran != "shifted" {
		t.Errorf("Expected shifted binding, got %q", ran)
	}
	press(ed, forms.KeyZ, 0)
	if ran != "plain" {
		t.Errorf("Expected plain binding, got %q", ran)
	}
}

func TestKeymap_ConditionFallsThrough(t *testing.T) {
	ran := ""
	k := NewKeymap()
	k.Register(Binding{
		Name:      "number-only",
		Key:       forms.KeyEnter,
		Condition: func(e *Editor) bool { return e.Type() == forms.TypeNumber },
		Action:    func(*Editor, *forms.KeyEvent) { ran = "number" },
	})
	k.Register(Binding{Name: "any", Key: forms.KeyEnter, Action: func(*Editor, *forms.KeyEvent) { ran = "any" }})

	ed := New(WithKeymap(k))
	ed.Focus()
	press(ed, forms.KeyEnter, 0)
	if ran != "any" {
		t.Errorf("Expected fallthrough to %q, got %q", "any", ran)
	}

	ed.SetType(forms.TypeNumber)
	press(ed, forms.KeyEnter, 0)
	if ran != "number" {
		t.Errorf("Expected %q, got %q", "number", ran)
	}
}

func TestKeymap_Unregister(t *testing.T) {
	ed, _ := newFocused("abc")
	n := ed.Keymap().Len()
	ed.Keymap().Unregister("select-all")
	if ed.Keymap().Len() != n-1 {
		t.Errorf("Expected %d bindings, got %d", n-1, ed.Keymap().Len())
	}

	press(ed, forms.KeyA, forms.ModCtrl)
	assertState(t, ed, "abc", 3, 3)

	// Other editors keep their own defaults.
	other, _ := newFocused("abc")
	press(other, forms.KeyA, forms.ModCtrl)
	assertState(t, other, "abc", 0, 3)

	ed.Keymap().Clear()
	press(ed, forms.KeyLeft, 0)
	assertState(t, ed, "abc", 3, 3)
}
