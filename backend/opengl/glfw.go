package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/forms"
	"github.com/go-theft-auto/forms/lineedit"
)

// Host connects a GLFW window to a stage and its line-edit peer: pointer
// callbacks go to the stage, keys and characters to the editor, and window
// focus loss to the manager.
type Host struct {
	window   *glfw.Window
	manager  *forms.Manager
	stage    *forms.Stage
	editor   *lineedit.Editor
	renderer *Renderer
}

// NewHost installs the window callbacks. renderer may be nil when the caller
// handles resizes itself.
func NewHost(window *glfw.Window, m *forms.Manager, stage *forms.Stage, editor *lineedit.Editor, renderer *Renderer) *Host {
	h := &Host{
		window:   window,
		manager:  m,
		stage:    stage,
		editor:   editor,
		renderer: renderer,
	}

	window.SetKeyCallback(h.keyCallback)
	window.SetCharCallback(h.charCallback)
	window.SetMouseButtonCallback(h.mouseButtonCallback)
	window.SetCursorPosCallback(h.cursorPosCallback)
	window.SetFocusCallback(h.focusCallback)
	window.SetSizeCallback(h.sizeCallback)

	return h
}

// WindowClipboard is a lineedit.Clipboard backed by the GLFW clipboard.
type WindowClipboard struct {
	Window *glfw.Window
}

func (c WindowClipboard) ReadText() (string, error) { return c.Window.GetClipboardString(), nil }

func (c WindowClipboard) WriteText(text string) error {
	c.Window.SetClipboardString(text)
	return nil
}

// Frame renders one frame of the stage.
func (h *Host) Frame() error {
	return h.stage.Render(h.renderer)
}

func (h *Host) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	ev := &forms.KeyEvent{
		Key:    glfwKeyToFormsKey(key),
		Mods:   glfwModsToForms(mods),
		Repeat: action == glfw.Repeat,
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		h.editor.KeyDown(ev)
	case glfw.Release:
		h.editor.KeyUp(ev)
	}
}

func (h *Host) charCallback(_ *glfw.Window, char rune) {
	h.editor.InsertText(string(char))
}

func (h *Host) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := glfwMouseButtonToForms(button)
	if !ok {
		return
	}
	x, y := w.GetCursorPos()
	ev := &forms.PointerEvent{
		Pos:    forms.Vec2{X: x, Y: y},
		Button: b,
		Mods:   glfwModsToForms(mods),
	}
	switch action {
	case glfw.Press:
		h.stage.PointerDown(ev)
	case glfw.Release:
		h.stage.PointerUp(ev)
	}
}

func (h *Host) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	h.stage.PointerMove(&forms.PointerEvent{Pos: forms.Vec2{X: xpos, Y: ypos}})
}

func (h *Host) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		h.manager.WindowBlur()
	}
}

func (h *Host) sizeCallback(_ *glfw.Window, width, height int) {
	h.stage.Resize(float64(width), float64(height))
	if h.renderer != nil {
		h.renderer.Resize(width, height)
	}
}

// glfwKeyToFormsKey maps GLFW keys to forms keys. Keys without a dedicated
// code, printable ones included, map to KeyOther.
func glfwKeyToFormsKey(key glfw.Key) forms.Key {
	switch key {
	case glfw.KeyTab:
		return forms.KeyTab
	case glfw.KeyLeft:
		return forms.KeyLeft
	case glfw.KeyRight:
		return forms.KeyRight
	case glfw.KeyUp:
		return forms.KeyUp
	case glfw.KeyDown:
		return forms.KeyDown
	case glfw.KeyPageUp:
		return forms.KeyPageUp
	case glfw.KeyPageDown:
		return forms.KeyPageDown
	case glfw.KeyHome:
		return forms.KeyHome
	case glfw.KeyEnd:
		return forms.KeyEnd
	case glfw.KeyInsert:
		return forms.KeyInsert
	case glfw.KeyDelete:
		return forms.KeyDelete
	case glfw.KeyBackspace:
		return forms.KeyBackspace
	case glfw.KeySpace:
		return forms.KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return forms.KeyEnter
	case glfw.KeyEscape:
		return forms.KeyEscape
	case glfw.KeyA:
		return forms.KeyA
	case glfw.KeyC:
		return forms.KeyC
	case glfw.KeyV:
		return forms.KeyV
	case glfw.KeyX:
		return forms.KeyX
	case glfw.KeyY:
		return forms.KeyY
	case glfw.KeyZ:
		return forms.KeyZ
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return forms.KeyControl
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return forms.KeyShift
	case glfw.KeyLeftAlt, glfw.KeyRightAlt:
		return forms.KeyAlt
	case glfw.KeyLeftSuper, glfw.KeyRightSuper:
		return forms.KeySuper
	default:
		return forms.KeyOther
	}
}

func glfwModsToForms(mods glfw.ModifierKey) forms.Modifiers {
	var m forms.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= forms.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= forms.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= forms.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= forms.ModSuper
	}
	return m
}

func glfwMouseButtonToForms(button glfw.MouseButton) (forms.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return forms.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return forms.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return forms.MouseButtonMiddle, true
	default:
		return 0, false
	}
}
