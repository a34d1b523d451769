package forms

// ClipWindow is the [Start, End) rune range of a value currently visible in
// a text field.
type ClipWindow struct {
	Start, End int
}

// Len returns the number of visible runes.
func (w ClipWindow) Len() int { return w.End - w.Start }

// Contains reports whether index i lies within the window or on its edges.
func (w ClipWindow) Contains(i int) bool { return i >= w.Start && i <= w.End }

// Clip returns the part of value that fits within avail pixels and the
// window it occupies.
//
// When authoritative is true, value is the field's own value and the window
// follows the caret: a caret right of prev.End scrolls forward, trimming from
// the front; a caret left of prev.Start scrolls back to the caret; otherwise
// the window keeps its start and trims from the back. The returned window
// always contains the caret.
//
// When authoritative is false, value is a display override (e.g. the text
// shown while unfocused). It is shown from its start, trimmed from the back,
// and the caller must not store the returned window.
//
// Usage:
//
//	shown, win := Clip(metrics, value, caret, field.clip, width-2*padding, true)
//	field.clip = win
func Clip(m TextMetrics, value string, caret int, prev ClipWindow, avail float64, authoritative bool) (string, ClipWindow) {
	runes := []rune(value)
	n := len(runes)
	if n == 0 {
		return "", ClipWindow{}
	}
	if !authoritative {
		cand, _ := trimBack(m, runes, m.WidthOf(value), avail)
		return string(cand), ClipWindow{Start: 0, End: len(cand)}
	}

	caret = clamp(caret, 0, n)
	if n < prev.Start {
		prev.Start = 0
	}
	prev.Start = clamp(prev.Start, 0, n)

	var start int
	var cand []rune
	forward := caret > prev.End
	switch {
	case forward:
		start = prev.Start
		cand = runes[start:max(caret, start)]
	case caret < prev.Start:
		start = caret
		cand = runes[start:]
	default:
		start = prev.Start
		cand = runes[start:]
	}

	width := m.WidthOf(string(cand))
	if forward {
		cand, start = trimFront(m, cand, start, width, avail)
	} else {
		cand, _ = trimBack(m, cand, width, avail)
		// The window shrank under the caret (narrower box or wider font):
		// scroll forward to it instead.
		if caret > start+len(cand) {
			cand = runes[start:caret]
			cand, start = trimFront(m, cand, start, m.WidthOf(string(cand)), avail)
		}
	}
	return string(cand), ClipWindow{Start: start, End: start + len(cand)}
}

// trimFront drops leading runes until the width fits.
func trimFront(m TextMetrics, cand []rune, start int, width, avail float64) ([]rune, int) {
	for width > avail && len(cand) > 0 {
		width -= charWidth(m, cand[0])
		cand = cand[1:]
		start++
	}
	// Per-rune widths ignore kerning; settle on the measured width.
	for len(cand) > 0 && m.WidthOf(string(cand)) > avail {
		cand = cand[1:]
		start++
	}
	return cand, start
}

// trimBack drops trailing runes until the width fits.
func trimBack(m TextMetrics, cand []rune, width, avail float64) ([]rune, float64) {
	for width > avail && len(cand) > 0 {
		width -= charWidth(m, cand[len(cand)-1])
		cand = cand[:len(cand)-1]
	}
	for len(cand) > 0 {
		if width = m.WidthOf(string(cand)); width <= avail {
			break
		}
		cand = cand[:len(cand)-1]
	}
	return cand, width
}

// CaretIndexFromLocalX maps x, measured from the left edge of the displayed
// text, to a caret index into the full value. It returns the first index
// whose cumulative rune width reaches x, offset by clipStart, or the end of
// the window when x lies past the displayed text.
func CaretIndexFromLocalX(m TextMetrics, displayed string, clipStart int, x float64) int {
	runes := []rune(displayed)
	if x >= m.WidthOf(displayed) {
		return clipStart + len(runes)
	}
	total := 0.0
	for i, r := range runes {
		total += charWidth(m, r)
		if total >= x {
			return clipStart + i
		}
	}
	return clipStart + len(runes)
}
