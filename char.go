package tagval

import "unicode/utf16"

// Char is a single UTF-16 code unit.
type Char uint16

// String returns the character as UTF-8. Lone surrogates render as U+FFFD.
func (c Char) String() string {
	if utf16.IsSurrogate(rune(c)) {
		return "\uFFFD"
	}
	return string(rune(c))
}

// CharsOf encodes s as UTF-16 code units.
func CharsOf(s string) []Char {
	units := utf16.Encode([]rune(s))
	chars := make([]Char, len(units))
	for i, u := range units {
		chars[i] = Char(u)
	}
	return chars
}
