package forms

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyControl
	KeyShift
	KeyAlt
	KeySuper
	KeyOther // any key without a dedicated code, typically a printable one
	KeyCount
)

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Command reports whether Ctrl or Cmd/Super is held.
func (m Modifiers) Command() bool {
	return m&(ModCtrl|ModSuper) != 0
}

// KeyEvent is a key press or release delivered by the native peer.
type KeyEvent struct {
	Key    Key
	Mods   Modifiers
	Repeat bool

	defaultPrevented bool
}

// PreventDefault stops the peer from applying its own editing action.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PointerEvent is a mouse or touch event in stage coordinates.
type PointerEvent struct {
	Pos    Vec2
	Button MouseButton
	Mods   Modifiers

	defaultPrevented bool
}

// PreventDefault marks the event as consumed without action.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:      "--",
		KeyTab:       "Tab",
		KeyLeft:      "Left",
		KeyRight:     "Right",
		KeyUp:        "Up",
		KeyDown:      "Down",
		KeyPageUp:    "PgUp",
		KeyPageDown:  "PgDn",
		KeyHome:      "Home",
		KeyEnd:       "End",
		KeyInsert:    "Ins",
		KeyDelete:    "Del",
		KeyBackspace: "Backspace",
		KeySpace:     "Space",
		KeyEnter:     "Enter",
		KeyEscape:    "Esc",
		KeyA:         "A",
		KeyC:         "C",
		KeyV:         "V",
		KeyX:         "X",
		KeyY:         "Y",
		KeyZ:         "Z",
		KeyControl:   "Ctrl",
		KeyShift:     "Shift",
		KeyAlt:       "Alt",
		KeySuper:     "Super",
		KeyOther:     "Other",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
