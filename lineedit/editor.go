// Package lineedit is a single-line text editor that serves as the native
// peer behind forms widgets on hosts without a platform text control.
//
// The host feeds raw input into the editor:
//
//	ed := lineedit.New(lineedit.WithClipboard(lineedit.SystemClipboard{}))
//	m := forms.NewManager(forms.WithPeerFactory(func() forms.Peer { return ed }))
//
//	// key callback
//	ed.KeyDown(&forms.KeyEvent{Key: forms.KeyLeft, Mods: mods})
//	// char callback
//	ed.InsertText(string(r))
//	// key release
//	ed.KeyUp(&forms.KeyEvent{Key: forms.KeyLeft})
//
// While focused, the editor reports KeyDown to its listener before running
// the key's binding from its Keymap and skips the binding when the listener
// prevents the default. Inserted text is NFC-normalized and stripped of line breaks.
package lineedit

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/go-theft-auto/forms"
	"golang.org/x/text/unicode/norm"
)

var _ forms.Peer = (*Editor)(nil)

// Editor is the line-edit state: value, selection, limits and clipboard.
// It implements forms.Peer.
type Editor struct {
	runes []rune

	// anchor is where the selection started, head where the caret is.
	anchor, head int

	maxLength int
	min, max  *float64
	typ       forms.InputType

	focused   bool
	listener  forms.PeerListener
	clipboard Clipboard
	keymap    *Keymap
	logger    *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(c Clipboard) Option {
	return func(e *Editor) { e.clipboard = c }
}

// WithKeymap replaces the default key bindings.
func WithKeymap(k *Keymap) Option {
	return func(e *Editor) {
		if k != nil {
			e.keymap = k
		}
	}
}

// WithLogger sets the logger for actions and clipboard failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an empty, unfocused editor. Without WithClipboard it keeps an
// in-process clipboard.
func New(opts ...Option) *Editor {
	e := &Editor{
		typ:       forms.TypeText,
		clipboard: &MemoryClipboard{},
		keymap:    DefaultKeymap(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Keymap returns the editor's key bindings. Changes take effect on the next
// key press.
func (e *Editor) Keymap() *Keymap { return e.keymap }

// Value returns the current text.
func (e *Editor) Value() string { return string(e.runes) }

// SetValue replaces the text, applying the type filter and max length. The
// caret moves to the end.
func (e *Editor) SetValue(v string) {
	e.runes = e.limit(e.filter([]rune(clean(v))))
	n := len(e.runes)
	e.anchor, e.head = n, n
}

// Selection returns the selected range in rune offsets, start <= end.
func (e *Editor) Selection() (int, int) {
	return min(e.anchor, e.head), max(e.anchor, e.head)
}

// SetSelection selects [start, end), clamped to the text. The caret goes to
// end.
func (e *Editor) SetSelection(start, end int) {
	n := len(e.runes)
	start = clampInt(start, 0, n)
	end = clampInt(end, start, n)
	e.anchor, e.head = start, end
}

// SetSelectionAnchor selects between anchor and head, clamped to the text.
// Unlike SetSelection the caret may sit before the anchor.
func (e *Editor) SetSelectionAnchor(anchor, head int) {
	n := len(e.runes)
	e.anchor, e.head = clampInt(anchor, 0, n), clampInt(head, 0, n)
}

// SetMaxLength limits the text length in runes; 0 removes the limit. An
// existing longer value is truncated.
func (e *Editor) SetMaxLength(n int) {
	e.maxLength = max(n, 0)
	if e.maxLength > 0 && len(e.runes) > e.maxLength {
		e.runes = e.runes[:e.maxLength]
		e.SetSelection(e.Selection())
	}
}

// SetRange records the number bounds. Editing does not enforce them.
func (e *Editor) SetRange(lo, hi *float64) { e.min, e.max = lo, hi }

// Range returns the number bounds.
func (e *Editor) Range() (lo, hi *float64) { return e.min, e.max }

// SetType switches between text, password and number behavior.
func (e *Editor) SetType(t forms.InputType) {
	e.typ = t
	if t == forms.TypeNumber {
		e.runes = e.filter(e.runes)
		e.SetSelection(e.Selection())
	}
}

// Type returns the input type.
func (e *Editor) Type() forms.InputType { return e.typ }

func (e *Editor) Focus() { e.focused = true }

func (e *Editor) Focused() bool { return e.focused }

// Blur drops focus and tells the listener.
func (e *Editor) Blur() {
	if !e.focused {
		return
	}
	e.focused = false
	if e.listener != nil {
		e.listener.PeerBlur()
	}
}

func (e *Editor) SetListener(l forms.PeerListener) { e.listener = l }

// KeyDown reports a key press to the listener and then applies the key's
// editing action, unless the listener prevented it or moved focus away.
func (e *Editor) KeyDown(ev *forms.KeyEvent) {
	if !e.focused {
		return
	}
	if e.listener != nil {
		e.listener.PeerKeyDown(ev)
	}
	if ev.DefaultPrevented() || !e.focused {
		return
	}
	e.apply(ev)
}

// KeyUp reports a key release to the listener.
func (e *Editor) KeyUp(ev *forms.KeyEvent) {
	if e.focused && e.listener != nil {
		e.listener.PeerKeyUp(ev)
	}
}

// InsertText replaces the selection with text, as typed characters or an
// input method commit do.
func (e *Editor) InsertText(text string) {
	if !e.focused {
		return
	}
	e.insert(text)
}

// apply runs the keymap binding for ev, if any.
func (e *Editor) apply(ev *forms.KeyEvent) {
	e.keymap.handle(e, ev)
}

// moveTo moves the caret, extending the selection when extend is set and
// collapsing it otherwise.
func (e *Editor) moveTo(pos int, extend bool) {
	e.head = clampInt(pos, 0, len(e.runes))
	if !extend {
		e.anchor = e.head
	}
}

func (e *Editor) hasSelection() bool { return e.anchor != e.head }

func (e *Editor) selectedText() string {
	start, end := e.Selection()
	return string(e.runes[start:end])
}

// insert replaces the selection with text. Text beyond the max length is
// dropped; the caret lands after what was inserted.
func (e *Editor) insert(text string) {
	ins := e.filter([]rune(clean(text)))
	start, end := e.Selection()
	if e.maxLength > 0 {
		room := e.maxLength - (len(e.runes) - (end - start))
		ins = ins[:clampInt(room, 0, len(ins))]
	}
	if len(ins) == 0 && start == end {
		return
	}

	e.runes = slices.Concat(e.runes[:start], ins, e.runes[end:])
	e.anchor = start + len(ins)
	e.head = e.anchor
}

func (e *Editor) copySelection() {
	if !e.hasSelection() {
		return
	}
	if err := e.clipboard.WriteText(e.selectedText()); err != nil {
		e.logger.Debug("Editor: copy failed", "err", err)
	}
}

func (e *Editor) cut() {
	if !e.hasSelection() {
		return
	}
	if err := e.clipboard.WriteText(e.selectedText()); err != nil {
		e.logger.Debug("Editor: cut failed", "err", err)
		return
	}
	e.insert("")
}

func (e *Editor) paste() {
	text, err := e.clipboard.ReadText()
	if err != nil {
		e.logger.Debug("Editor: paste failed", "err", err)
		return
	}
	if text != "" {
		e.insert(text)
	}
}

// filter drops runes a number input does not accept.
func (e *Editor) filter(rs []rune) []rune {
	if e.typ != forms.TypeNumber {
		return rs
	}
	return slices.DeleteFunc(rs, func(r rune) bool {
		return !strings.ContainsRune("0123456789.-+eE", r)
	})
}

// limit truncates rs to the max length.
func (e *Editor) limit(rs []rune) []rune {
	if e.maxLength > 0 && len(rs) > e.maxLength {
		return rs[:e.maxLength]
	}
	return rs
}

// clean normalizes to NFC and removes line breaks and other control runes.
func clean(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
