package forms

// Peer is the native line-edit control that owns raw text editing. Widgets
// mirror its value and selection; they never edit text themselves.
//
// A Peer delivers events to its listener only while it has focus: KeyDown
// before applying its own editing action for the key (skipped when the
// handler calls PreventDefault), KeyUp after the key is released, and Blur
// when platform focus leaves it.
//
// The lineedit package provides a pure Go implementation for desktop hosts.
type Peer interface {
	Value() string
	SetValue(v string)

	// Selection returns the selected rune range; start == end is a caret.
	Selection() (start, end int)
	SetSelection(start, end int)
	// SetSelectionAnchor selects between anchor and head, in either order,
	// with the caret at head.
	SetSelectionAnchor(anchor, head int)

	// SetMaxLength limits the value length in runes; 0 removes the limit.
	SetMaxLength(n int)

	// SetRange sets the number bounds; nil clears a bound.
	SetRange(min, max *float64)

	SetType(t InputType)

	Focus()
	Blur()
	Focused() bool

	SetListener(l PeerListener)
}

// PeerListener receives events from a focused Peer.
type PeerListener interface {
	PeerKeyDown(ev *KeyEvent)
	PeerKeyUp(ev *KeyEvent)
	PeerBlur()
}

// memoryPeer is a Peer with no editing behavior, used when the manager has
// no peer factory. Values and selections set on it read back unchanged.
type memoryPeer struct {
	value      string
	start, end int
	maxLength  int
	min, max   *float64
	typ        InputType
	focused    bool
	listener   PeerListener
}

func newMemoryPeer() Peer { return &memoryPeer{typ: TypeText} }

func (p *memoryPeer) Value() string { return p.value }

func (p *memoryPeer) SetValue(v string) {
	if p.maxLength > 0 {
		if r := []rune(v); len(r) > p.maxLength {
			v = string(r[:p.maxLength])
		}
	}
	p.value = v
	n := len([]rune(v))
	p.start, p.end = min(p.start, n), min(p.end, n)
}

func (p *memoryPeer) Selection() (int, int) { return p.start, p.end }

func (p *memoryPeer) SetSelection(start, end int) {
	n := len([]rune(p.value))
	start = clamp(start, 0, n)
	p.start, p.end = start, clamp(end, start, n)
}

func (p *memoryPeer) SetSelectionAnchor(anchor, head int) {
	p.SetSelection(min(anchor, head), max(anchor, head))
}

func (p *memoryPeer) SetMaxLength(n int) { p.maxLength = max(n, 0) }
func (p *memoryPeer) SetRange(lo, hi *float64) { p.min, p.max = lo, hi }
func (p *memoryPeer) SetType(t InputType) { p.typ = t }
func (p *memoryPeer) Focus() { p.focused = true }
func (p *memoryPeer) Focused() bool { return p.focused }
func (p *memoryPeer) SetListener(l PeerListener) { p.listener = l }

func (p *memoryPeer) Blur() {
	if !p.focused {
		return
	}
	p.focused = false
	if p.listener != nil {
		p.listener.PeerBlur()
	}
}
