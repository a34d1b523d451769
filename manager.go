package forms

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/go-theft-auto/forms/fonts"
)

// tabFocusDelay is how long Tab waits between blurring one widget and
// focusing the next, so the key release lands on neither.
const tabFocusDelay = 10 * time.Millisecond

// fallbackBitmapFont is used when a bitmap text style names an unknown font.
const fallbackBitmapFont = "fixed"

// Manager owns everything widgets share: the focus registry, the native
// peer, style presets, fonts and the text metric cache.
//
// A Manager and its widgets must be used from a single goroutine, typically
// the one running the render loop.
type Manager struct {
	registry    *FocusRegistry
	peer        Peer
	peerFactory func() Peer
	surface     *Stage
	touch       bool

	styles    *StyleRegistry
	textCache *TextCache
	fonts     *fonts.Registry
	bitmaps   map[string]*fonts.BitmapFont

	tasks []task
	clock func() time.Time

	logger *slog.Logger
}

type task struct {
	due time.Time
	fn  func()
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPeerFactory sets how the native peer is created on first focus.
func WithPeerFactory(fn func() Peer) ManagerOption {
	return func(m *Manager) { m.peerFactory = fn }
}

// WithTouchEnvironment disables outside-click blurring, as touch hosts
// deliver no reliable pointer-down outside the widgets.
func WithTouchEnvironment(touch bool) ManagerOption {
	return func(m *Manager) { m.touch = touch }
}

// WithClock replaces time.Now for deferred work and caret blinking.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.clock = now
		}
	}
}

// WithFontRegistry shares a vector font registry between managers.
func WithFontRegistry(r *fonts.Registry) ManagerOption {
	return func(m *Manager) {
		if r != nil {
			m.fonts = r
		}
	}
}

// NewManager creates a manager with the Go fonts and the "fixed" bitmap
// font available.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: NewFocusRegistry(),
		styles:   NewStyleRegistry(),
		bitmaps:  make(map[string]*fonts.BitmapFont),
		clock:    time.Now,
		logger:   defaultLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fonts == nil {
		m.fonts = fonts.NewRegistry()
		m.fonts.SetLogger(m.logger)
	}
	m.textCache = NewTextCache(m.logger)
	m.bitmaps[fallbackBitmapFont] = fonts.FromBasicFace(fallbackBitmapFont, basicfont.Face7x13)
	return m
}

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Now returns the manager clock's current time.
func (m *Manager) Now() time.Time { return m.clock() }

// Peer returns the shared native peer, creating it on first use.
func (m *Manager) Peer() Peer {
	if m.peer == nil {
		if m.peerFactory != nil {
			m.peer = m.peerFactory()
		}
		if m.peer == nil {
			m.peer = newMemoryPeer()
		}
		m.peer.SetListener(m)
		m.logger.Debug("Manager: peer created", "type", fmt.Sprintf("%T", m.peer))
	}
	return m.peer
}

// Current returns the focused widget, or nil.
func (m *Manager) Current() Widget { return m.registry.Current() }

// Widgets returns the live widgets in Tab order.
func (m *Manager) Widgets() []Widget { return m.registry.Items() }

// Widget finds a live widget by ID.
func (m *Manager) Widget(id ID) (Widget, bool) { return m.registry.Lookup(id) }

func (m *Manager) register(w Widget, kind string) ID {
	id := m.registry.add(w, kind)
	m.logger.Debug("Manager: registered", "widget", id, "kind", kind, "count", m.registry.ItemCount())
	return id
}

// focus makes w current. The previous holder is blurred first, so at most
// one widget is focused at any moment.
func (m *Manager) focus(w Widget) {
	if w.Destroyed() || m.registry.current == w {
		return
	}
	if cur := m.registry.current; cur != nil {
		m.blur(cur)
	}

	b := w.base()
	m.registry.current = w
	b.hasFocus = true
	b.fire(b.cfg.OnFocus)
	m.logger.Debug("Manager: focus", "widget", b.id, "kind", b.kind)

	if b.cfg.Readonly {
		return
	}
	p := m.Peer()
	w.syncPeer(p)
	p.Focus()
}

// blur clears focus from w if it is current.
func (m *Manager) blur(w Widget) {
	if m.registry.current != w {
		return
	}
	b := w.base()
	m.registry.current = nil
	b.hasFocus = false
	if m.peer != nil {
		m.peer.Blur()
	}
	w.blurred()
	b.fire(b.cfg.OnBlur)
	m.logger.Debug("Manager: blur", "widget", b.id, "kind", b.kind)
}

// tab moves focus from w to the next widget in the cycle.
func (m *Manager) tab(from Widget) {
	target := m.registry.next(from)
	if target == nil {
		return
	}
	from.Blur()
	m.after(tabFocusDelay, func() {
		if !target.Destroyed() {
			target.Focus()
		}
	})
}

// destroy removes w from the registry, blurring it first.
func (m *Manager) destroy(w Widget) {
	m.blur(w)
	m.registry.remove(w)
	m.logger.Debug("Manager: destroyed", "widget", w.ID(), "count", m.registry.ItemCount())
}

// after schedules fn to run on the first RunPending at or after d from now.
func (m *Manager) after(d time.Duration, fn func()) {
	m.tasks = append(m.tasks, task{due: m.clock().Add(d), fn: fn})
}

// RunPending runs every deferred task that is due. Stage.Begin calls it.
func (m *Manager) RunPending() {
	if len(m.tasks) == 0 {
		return
	}
	now := m.clock()
	var due []task
	m.tasks = slices.DeleteFunc(m.tasks, func(t task) bool {
		if !now.Before(t.due) {
			due = append(due, t)
			return true
		}
		return false
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending reports the number of deferred tasks not yet run.
func (m *Manager) Pending() int { return len(m.tasks) }

// PeerKeyDown routes a key press from the peer to the focused widget.
func (m *Manager) PeerKeyDown(ev *KeyEvent) {
	if w := m.registry.current; w != nil && w.HasFocus() {
		w.keyDown(ev)
	}
}

// PeerKeyUp routes a key release from the peer to the focused widget.
func (m *Manager) PeerKeyUp(ev *KeyEvent) {
	if w := m.registry.current; w != nil && w.HasFocus() {
		w.keyUp(ev)
	}
}

// PeerBlur is called when the peer loses platform focus.
func (m *Manager) PeerBlur() {
	if w := m.registry.current; w != nil {
		w.pointerUpOutside()
	}
}

// WindowBlur blurs the current widget unless a pointer is held on it.
func (m *Manager) WindowBlur() {
	w := m.registry.current
	if w != nil && !w.base().mouseDown {
		m.logger.Debug("Manager: window blur", "widget", w.ID())
		w.Blur()
	}
}

// outsideClick runs before the pointer-down reaches any widget. hit is the
// widget under the pointer, or nil.
func (m *Manager) outsideClick(hit Widget) {
	w := m.registry.current
	if w == nil || w == hit || w.base().mouseDown {
		return
	}
	w.Blur()
}

// SetSurface binds the stage whose pointer-downs blur the focused widget.
// Touch environments never bind one.
func (m *Manager) SetSurface(s *Stage) {
	if m.touch {
		m.logger.Debug("Manager: surface ignored in touch environment")
		return
	}
	if m.surface != nil {
		m.surface.outside = nil
	}
	m.surface = s
	if s != nil {
		s.outside = m.outsideClick
	}
}

// Surface returns the bound stage, or nil.
func (m *Manager) Surface() *Stage { return m.surface }

// RegisterStyle stores a named preset; WithStyle(key) applies it.
func (m *Manager) RegisterStyle(key string, opts ...Option) {
	m.styles.Register(key, opts...)
}

// Style returns the options of a preset, or nil.
func (m *Manager) Style(key string) []Option { return m.styles.Lookup(key) }

// RemoveStyle deletes a preset. Widgets built from it keep their config.
func (m *Manager) RemoveStyle(key string) { m.styles.Remove(key) }

// LoadStyles registers every preset in a TOML style sheet.
func (m *Manager) LoadStyles(r io.Reader) error {
	if err := m.styles.Load(r); err != nil {
		return fmt.Errorf("failed to load styles: %w", err)
	}
	m.logger.Debug("Manager: styles loaded", "presets", len(m.styles.Keys()))
	return nil
}

// Styles returns the style registry.
func (m *Manager) Styles() *StyleRegistry { return m.styles }

// RegisterFont adds an OpenType/TrueType family for vector text.
func (m *Manager) RegisterFont(family string, data []byte) error {
	if err := m.fonts.Register(family, data); err != nil {
		return fmt.Errorf("failed to register font %q: %w", family, err)
	}
	return nil
}

// RegisterBitmapFont makes f available to bitmap text styles under name.
func (m *Manager) RegisterBitmapFont(name string, f *fonts.BitmapFont) {
	m.bitmaps[name] = f
}

// TextCache returns the shared character width cache.
func (m *Manager) TextCache() *TextCache { return m.textCache }

func (m *Manager) bitmapFont(name string) *fonts.BitmapFont {
	if f, ok := m.bitmaps[name]; ok {
		return f
	}
	m.logger.Debug("Manager: unknown bitmap font, using fallback", "font", name, "fallback", fallbackBitmapFont)
	return m.bitmaps[fallbackBitmapFont]
}
