package forms

// FocusRegistry is the ordered list of live widgets and the single current
// focus holder. Creation order is the Tab order.
//
// The registry only records state. Manager.focus and Manager.blur drive the
// widget hooks and the peer around it.
type FocusRegistry struct {
	widgets []Widget
	current Widget
	counter uint64
}

// NewFocusRegistry creates an empty registry.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{widgets: make([]Widget, 0, 16)}
}

// add appends w and returns its ID.
func (r *FocusRegistry) add(w Widget, kind string) ID {
	r.counter++
	r.widgets = append(r.widgets, w)
	return makeID(kind, r.counter)
}

// remove drops w from the list and clears it as current.
func (r *FocusRegistry) remove(w Widget) {
	if i := r.index(w); i >= 0 {
		r.widgets = append(r.widgets[:i], r.widgets[i+1:]...)
	}
	if r.current == w {
		r.current = nil
	}
}

func (r *FocusRegistry) index(w Widget) int {
	for i, it := range r.widgets {
		if it == w {
			return i
		}
	}
	return -1
}

// Current returns the focused widget, or nil.
func (r *FocusRegistry) Current() Widget { return r.current }

// ItemCount returns the number of live widgets.
func (r *FocusRegistry) ItemCount() int { return len(r.widgets) }

// Items returns a copy of the widgets in creation order.
func (r *FocusRegistry) Items() []Widget {
	out := make([]Widget, len(r.widgets))
	copy(out, r.widgets)
	return out
}

// Lookup finds a live widget by ID.
func (r *FocusRegistry) Lookup(id ID) (Widget, bool) {
	for _, w := range r.widgets {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// next returns the first widget after from, wrapping around, whose tab index
// is not -1. It returns nil when the list has fewer than two widgets or the
// scan comes back to from.
func (r *FocusRegistry) next(from Widget) Widget {
	n := len(r.widgets)
	if n < 2 {
		return nil
	}
	start := r.index(from)
	for step := 1; step <= n; step++ {
		w := r.widgets[(start+step+n)%n]
		if w == from {
			return nil
		}
		if w.TabIndex() != -1 && !w.Destroyed() {
			return w
		}
	}
	return nil
}
