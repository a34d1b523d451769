package lineedit

import "unicode"

// wordLeft returns the start of the word left of pos, skipping spaces first.
func wordLeft(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	pos--
	for pos > 0 && unicode.IsSpace(runes[pos]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordRight returns the position after the word right of pos and the
// spaces that follow it.
func wordRight(runes []rune, pos int) int {
	n := len(runes)
	if pos >= n {
		return n
	}
	for pos < n && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < n && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
