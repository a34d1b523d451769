package forms

// Dirty is a set of stale visual aspects of a widget. Mutators only set
// flags; Update is the single place that reads and clears them.
type Dirty uint8

const (
	DirtyChrome    Dirty = 1 << iota // chrome pixels must be re-rasterized
	DirtyStyle                       // text style changed, metrics must be rebuilt
	DirtyText                        // displayed text must be re-clipped
	DirtySelection                   // selection rectangle must be recomputed
	DirtyCaret                       // caret x must be recomputed

	DirtyAll = DirtyChrome | DirtyStyle | DirtyText | DirtySelection | DirtyCaret
)

// Has reports whether every flag in f is set.
func (d Dirty) Has(f Dirty) bool { return d&f == f }

// String lists the set flags, for debug logging.
func (d Dirty) String() string {
	if d == 0 {
		return "clean"
	}
	names := [...]string{"chrome", "style", "text", "selection", "caret"}
	s := ""
	for i, name := range names {
		if d&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	return s
}

// SelectionState is the caret, selection and scroll state of a text widget.
// Indices are rune offsets into the value.
type SelectionState struct {
	Range  [2]int     // selection [start, end], start <= end
	Caret  int        // caret index
	Clip   ClipWindow // visible window of the value
	Anchor int        // drag anchor, -1 when no drag is in progress
}

// newSelectionState returns a collapsed selection at 0 with no drag.
func newSelectionState() SelectionState {
	return SelectionState{Anchor: -1}
}

// Empty reports whether the selection is collapsed.
func (s SelectionState) Empty() bool { return s.Range[0] == s.Range[1] }

// Collapse puts the caret at i with an empty selection.
func (s *SelectionState) Collapse(i int) {
	s.Range = [2]int{i, i}
	s.Caret = i
}

// Extend selects between the anchor and i and moves the caret to i.
func (s *SelectionState) Extend(anchor, i int) {
	s.Range = [2]int{min(anchor, i), max(anchor, i)}
	s.Caret = i
}

// Clamp bounds every index to a value of n runes.
func (s *SelectionState) Clamp(n int) {
	s.Range[0] = clamp(s.Range[0], 0, n)
	s.Range[1] = clamp(s.Range[1], s.Range[0], n)
	s.Caret = clamp(s.Caret, 0, n)
	if s.Anchor > n {
		s.Anchor = n
	}
}
