package lineedit

import (
	"slices"

	"github.com/go-theft-auto/forms"
)

// Action is an editing command run for a matching key press.
type Action func(e *Editor, ev *forms.KeyEvent)

// Binding ties a key to an action.
type Binding struct {
	Name    string    // for Unregister and debug logs
	Key     forms.Key // key to match
	Command bool      // requires Ctrl or Cmd
	Shift   bool      // requires Shift

	Action Action

	// Condition must return true for the binding to run (nil = always).
	// A binding whose condition fails does not stop the search.
	Condition func(e *Editor) bool
}

func (b *Binding) matches(e *Editor, ev *forms.KeyEvent) bool {
	if b.Key != ev.Key || b.Action == nil {
		return false
	}
	if b.Command && !ev.Mods.Command() {
		return false
	}
	if b.Shift && ev.Mods&forms.ModShift == 0 {
		return false
	}
	return b.Condition == nil || b.Condition(e)
}

// Keymap is an ordered list of bindings; the first match wins.
type Keymap struct {
	bindings []Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make([]Binding, 0, 16)}
}

// DefaultKeymap returns a fresh keymap with the standard editing keys:
//
//	Left/Right          caret by character, Ctrl/Cmd by word, Shift extends
//	Home/Up/PageUp      start of text
//	End/Down/PageDown   end of text
//	Backspace/Delete    delete the selection or one character (word with Ctrl/Cmd)
//	Ctrl/Cmd+A          select all
//	Ctrl/Cmd+C, X, V    copy, cut, paste (no copy or cut in password fields)
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	notPassword := func(e *Editor) bool { return e.typ != forms.TypePassword }

	k.Register(Binding{Name: "select-all", Key: forms.KeyA, Command: true, Action: func(e *Editor, _ *forms.KeyEvent) {
		e.SetSelection(0, len(e.runes))
	}})
	k.Register(Binding{Name: "copy", Key: forms.KeyC, Command: true, Condition: notPassword, Action: func(e *Editor, _ *forms.KeyEvent) {
		e.copySelection()
	}})
	k.Register(Binding{Name: "cut", Key: forms.KeyX, Command: true, Condition: notPassword, Action: func(e *Editor, _ *forms.KeyEvent) {
		e.cut()
	}})
	k.Register(Binding{Name: "paste", Key: forms.KeyV, Command: true, Action: func(e *Editor, _ *forms.KeyEvent) {
		e.paste()
	}})

	k.Register(Binding{Name: "left", Key: forms.KeyLeft, Action: moveLeft})
	k.Register(Binding{Name: "right", Key: forms.KeyRight, Action: moveRight})
	for _, key := range []forms.Key{forms.KeyHome, forms.KeyUp, forms.KeyPageUp} {
		k.Register(Binding{Name: "start:" + forms.KeyName(key), Key: key, Action: func(e *Editor, ev *forms.KeyEvent) {
			e.moveTo(0, ev.Mods&forms.ModShift != 0)
		}})
	}
	for _, key := range []forms.Key{forms.KeyEnd, forms.KeyDown, forms.KeyPageDown} {
		k.Register(Binding{Name: "end:" + forms.KeyName(key), Key: key, Action: func(e *Editor, ev *forms.KeyEvent) {
			e.moveTo(len(e.runes), ev.Mods&forms.ModShift != 0)
		}})
	}
	k.Register(Binding{Name: "backspace", Key: forms.KeyBackspace, Action: deleteBackward})
	k.Register(Binding{Name: "delete", Key: forms.KeyDelete, Action: deleteForward})
	return k
}

// Register appends b. Earlier bindings for the same key take precedence.
func (k *Keymap) Register(b Binding) {
	k.bindings = append(k.bindings, b)
}

// Unregister removes every binding named name.
func (k *Keymap) Unregister(name string) {
	k.bindings = slices.DeleteFunc(k.bindings, func(b Binding) bool { return b.Name == name })
}

// Clear removes all bindings.
func (k *Keymap) Clear() {
	k.bindings = k.bindings[:0]
}

// Len returns the number of bindings.
func (k *Keymap) Len() int { return len(k.bindings) }

// handle runs the first binding matching ev. It reports whether one ran.
func (k *Keymap) handle(e *Editor, ev *forms.KeyEvent) bool {
	for i := range k.bindings {
		b := &k.bindings[i]
		if !b.matches(e, ev) {
			continue
		}
		e.logger.Debug("Editor: action", "name", b.Name, "key", forms.KeyName(ev.Key))
		b.Action(e, ev)
		return true
	}
	return false
}

func moveLeft(e *Editor, ev *forms.KeyEvent) {
	shift := ev.Mods&forms.ModShift != 0
	to := e.head - 1
	switch {
	case ev.Mods.Command():
		to = wordLeft(e.runes, e.head)
	case !shift && e.hasSelection():
		to, _ = e.Selection()
	}
	e.moveTo(to, shift)
}

func moveRight(e *Editor, ev *forms.KeyEvent) {
	shift := ev.Mods&forms.ModShift != 0
	to := e.head + 1
	switch {
	case ev.Mods.Command():
		to = wordRight(e.runes, e.head)
	case !shift && e.hasSelection():
		_, to = e.Selection()
	}
	e.moveTo(to, shift)
}

func deleteBackward(e *Editor, ev *forms.KeyEvent) {
	if !e.hasSelection() {
		from := e.head - 1
		if ev.Mods.Command() {
			from = wordLeft(e.runes, e.head)
		}
		e.anchor = max(from, 0)
	}
	e.insert("")
}

func deleteForward(e *Editor, ev *forms.KeyEvent) {
	if !e.hasSelection() {
		to := e.head + 1
		if ev.Mods.Command() {
			to = wordRight(e.runes, e.head)
		}
		e.anchor = min(to, len(e.runes))
	}
	e.insert("")
}
