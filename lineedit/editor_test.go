package lineedit

import (
	"errors"
	"testing"

	"github.com/go-theft-auto/forms"
)

// recorder is a PeerListener that logs events and can prevent keys.
type recorder struct {
	events  []string
	prevent map[forms.Key]bool
	blurOn  forms.Key
	ed      *Editor
}

func (r *recorder) PeerKeyDown(ev *forms.KeyEvent) {
	r.events = append(r.events, "down "+forms.KeyName(ev.Key))
	if r.prevent[ev.Key] {
		ev.PreventDefault()
	}
	if r.blurOn != forms.KeyNone && ev.Key == r.blurOn {
		r.ed.Blur()
	}
}

func (r *recorder) PeerKeyUp(ev *forms.KeyEvent) {
	r.events = append(r.events, "up "+forms.KeyName(ev.Key))
}

func (r *recorder) PeerBlur() { r.events = append(r.events, "blur") }

func newFocused(value string) (*Editor, *recorder) {
	ed := New()
	rec := &recorder{ed: ed}
	ed.SetListener(rec)
	ed.SetValue(value)
	ed.Focus()
	return ed, rec
}

func press(ed *Editor, k forms.Key, mods forms.Modifiers) {
	ed.KeyDown(&forms.KeyEvent{Key: k, Mods: mods})
	ed.KeyUp(&forms.KeyEvent{Key: k, Mods: mods})
}

func assertState(t *testing.T, ed *Editor, value string, start, end int) {
	t.Helper()
	if ed.Value() != value {
		t.Errorf("Expected value %q, got %q", value, ed.Value())
	}
	if s, e := ed.Selection(); s != start || e != end {
		t.Errorf("Expected selection [%d,%d], got [%d,%d]", start, end, s, e)
	}
}

func TestEditor_TypingAndDeleting(t *testing.T) {
	ed, _ := newFocused("")
	ed.InsertText("hello")
	assertState(t, ed, "hello", 5, 5)

	press(ed, forms.KeyLeft, 0)
	press(ed, forms.KeyLeft, 0)
	ed.InsertText("X")
	assertState(t, ed, "helXlo", 4, 4)

	press(ed, forms.KeyBackspace, 0)
	assertState(t, ed, "hello", 3, 3)

	press(ed, forms.KeyDelete, 0)
	assertState(t, ed, "helo", 3, 3)

	press(ed, forms.KeyHome, 0)
	press(ed, forms.KeyBackspace, 0)
	assertState(t, ed, "helo", 0, 0)

	press(ed, forms.KeyEnd, 0)
	press(ed, forms.KeyDelete, 0)
	assertState(t, ed, "helo", 4, 4)
}

func TestEditor_ShiftExtendsSelection(t *testing.T) {
	ed, _ := newFocused("abcdef")
	ed.SetSelection(2, 2)

	press(ed, forms.KeyRight, forms.ModShift)
	press(ed, forms.KeyRight, forms.ModShift)
	assertState(t, ed, "abcdef", 2, 4)

	press(ed, forms.KeyHome, forms.ModShift)
	assertState(t, ed, "abcdef", 0, 2)

	// Left without shift collapses to the start of the selection.
	press(ed, forms.KeyEnd, forms.ModShift)
	press(ed, forms.KeyLeft, 0)
	assertState(t, ed, "abcdef", 2, 2)

	ed.InsertText("")
	assertState(t, ed, "abcdef", 2, 2)

	ed.SetSelection(1, 4)
	ed.InsertText("Z")
	assertState(t, ed, "aZef", 2, 2)
}

func TestEditor_SetSelectionAnchorBackward(t *testing.T) {
	ed, _ := newFocused("abcdef")

	ed.SetSelectionAnchor(4, 1)
	assertState(t, ed, "abcdef", 1, 4)
	press(ed, forms.KeyLeft, forms.ModShift)
	assertState(t, ed, "abcdef", 0, 4)
	press(ed, forms.KeyRight, forms.ModShift)
	press(ed, forms.KeyRight, forms.ModShift)
	assertState(t, ed, "abcdef", 2, 4)

	ed.SetSelectionAnchor(9, -3)
	assertState(t, ed, "abcdef", 0, 6)
}

func TestEditor_WordJumps(t *testing.T) {
	ed, _ := newFocused("one two  three")

	press(ed, forms.KeyLeft, forms.ModCtrl)
	assertState(t, ed, "one two  three", 9, 9)
	press(ed, forms.KeyLeft, forms.ModCtrl)
	assertState(t, ed, "one two  three", 4, 4)

	press(ed, forms.KeyRight, forms.ModCtrl)
	assertState(t, ed, "one two  three", 9, 9)

	press(ed, forms.KeyBackspace, forms.ModCtrl)
	assertState(t, ed, "one three", 4, 4)
}

func TestEditor_ClipboardShortcuts(t *testing.T) {
	clip := &MemoryClipboard{}
	ed := New(WithClipboard(clip))
	ed.SetValue("copy me")
	ed.Focus()

	press(ed, forms.KeyA, forms.ModCtrl)
	press(ed, forms.KeyC, forms.ModCtrl)
	if clip.Text != "copy me" {
		t.Errorf("Expected clipboard %q, got %q", "copy me", clip.Text)
	}

	ed.SetSelection(0, 5)
	press(ed, forms.KeyX, forms.ModCtrl)
	assertState(t, ed, "me", 0, 0)
	if clip.Text != "copy " {
		t.Errorf("Expected cut text, got %q", clip.Text)
	}

	press(ed, forms.KeyEnd, 0)
	press(ed, forms.KeyV, forms.ModSuper)
	assertState(t, ed, "mecopy ", 7, 7)
}

type failingClipboard struct{}

func (failingClipboard) ReadText() (string, error) { return "", errors.New("no display") }
func (failingClipboard) WriteText(string) error    { return errors.New("no display") }

func TestEditor_ClipboardFailureKeepsText(t *testing.T) {
	ed := New(WithClipboard(failingClipboard{}))
	ed.SetValue("keep")
	ed.Focus()
	ed.SetSelection(0, 4)

	press(ed, forms.KeyX, forms.ModCtrl)
	assertState(t, ed, "keep", 0, 4)
	press(ed, forms.KeyV, forms.ModCtrl)
	assertState(t, ed, "keep", 0, 4)
}

func TestEditor_PasswordDoesNotCopy(t *testing.T) {
	clip := &MemoryClipboard{Text: "old"}
	ed := New(WithClipboard(clip))
	ed.SetType(forms.TypePassword)
	ed.SetValue("secret")
	ed.Focus()
	ed.SetSelection(0, 6)

	press(ed, forms.KeyC, forms.ModCtrl)
	press(ed, forms.KeyX, forms.ModCtrl)
	if clip.Text != "old" {
		t.Errorf("Expected clipboard untouched, got %q", clip.Text)
	}
	assertState(t, ed, "secret", 0, 6)
}

func TestEditor_MaxLength(t *testing.T) {
	ed, _ := newFocused("")
	ed.SetMaxLength(5)
	ed.InsertText("abcdefgh")
	assertState(t, ed, "abcde", 5, 5)

	ed.SetSelection(1, 3)
	// Replacing two runes leaves room for two.
	ed.InsertText("XYZ")
	assertState(t, ed, "aXYde", 3, 3)
}

func TestEditor_MaxLengthTruncatesExisting(t *testing.T) {
	ed, _ := newFocused("abcdefgh")
	ed.SetMaxLength(3)
	assertState(t, ed, "abc", 3, 3)
	ed.SetValue("wxyz")
	assertState(t, ed, "wxy", 3, 3)
	ed.SetMaxLength(0)
	ed.InsertText("z")
	assertState(t, ed, "wxyz", 4, 4)
}

func TestEditor_NumberFilter(t *testing.T) {
	ed, _ := newFocused("")
	ed.SetType(forms.TypeNumber)
	lo, hi := 0.0, 10.0
	ed.SetRange(&lo, &hi)

	ed.InsertText("1a2.5e-3x")
	assertState(t, ed, "12.5e-3", 7, 7)

	ed.SetValue("99 cats")
	if ed.Value() != "99" {
		t.Errorf("Expected %q, got %q", "99", ed.Value())
	}
	if gotLo, gotHi := ed.Range(); *gotLo != 0 || *gotHi != 10 {
		t.Errorf("Expected range kept, got %v %v", *gotLo, *gotHi)
	}
}

func TestEditor_NormalizesInput(t *testing.T) {
	ed, _ := newFocused("")
	ed.InsertText("e\u0301")
	if ed.Value() != "\u00e9" {
		t.Errorf("Expected NFC composed rune, got %q", ed.Value())
	}
	ed.InsertText("a\r\nb\tc")
	if ed.Value() != "\u00e9abc" {
		t.Errorf("Expected control runes stripped, got %q", ed.Value())
	}
}

func TestEditor_EventOrderAndPrevent(t *testing.T) {
	ed, rec := newFocused("abc")
	rec.prevent = map[forms.Key]bool{forms.KeyBackspace: true}

	press(ed, forms.KeyBackspace, 0)
	assertState(t, ed, "abc", 3, 3)
	press(ed, forms.KeyLeft, 0)
	assertState(t, ed, "abc", 2, 2)

	want := []string{"down Backspace", "up Backspace", "down Left", "up Left"}
	if len(rec.events) != len(want) {
		t.Fatalf("Expected %v, got %v", want, rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("Expected event %d %q, got %q", i, want[i], rec.events[i])
		}
	}
}

func TestEditor_UnfocusedIsSilent(t *testing.T) {
	ed := New()
	rec := &recorder{ed: ed}
	ed.SetListener(rec)
	ed.SetValue("abc")

	press(ed, forms.KeyBackspace, 0)
	ed.InsertText("x")
	ed.Blur()
	if len(rec.events) != 0 {
		t.Errorf("Expected no events while unfocused, got %v", rec.events)
	}
	assertState(t, ed, "abc", 3, 3)
}

func TestEditor_BlurInHandlerSkipsAction(t *testing.T) {
	ed, rec := newFocused("abc")
	rec.blurOn = forms.KeyDelete
	ed.SetSelection(0, 0)

	ed.KeyDown(&forms.KeyEvent{Key: forms.KeyDelete})
	if ed.Focused() {
		t.Error("Expected editor blurred")
	}
	assertState(t, ed, "abc", 0, 0)
	if rec.events[len(rec.events)-1] != "blur" {
		t.Errorf("Expected blur event last, got %v", rec.events)
	}
}

func TestWordBoundaries(t *testing.T) {
	runes := []rune("  foo bar")
	tests := []struct {
		pos         int
		left, right int
	}{
		{0, 0, 2},
		{2, 0, 6},
		{5, 2, 6},
		{6, 2, 9},
		{9, 6, 9},
	}
	for _, tt := range tests {
		if got := wordLeft(runes, tt.pos); got != tt.left {
			t.Errorf("wordLeft(%d): expected %d, got %d", tt.pos, tt.left, got)
		}
		if got := wordRight(runes, tt.pos); got != tt.right {
			t.Errorf("wordRight(%d): expected %d, got %d", tt.pos, tt.right, got)
		}
	}
}
