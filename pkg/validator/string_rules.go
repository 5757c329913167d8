package validator

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Required passes when the value is not the empty string. Whitespace counts as content.
func Required(value, _ string, _ Subject) bool {
	return value != ""
}

// MinLength passes when the value has at least param characters.
func MinLength(value, param string, _ Subject) bool {
	n, ok := lengthParam(param)
	return ok && runeLen(value) >= n
}

// MaxLength passes when the value has at most param characters.
func MaxLength(value, param string, _ Subject) bool {
	n, ok := lengthParam(param)
	return ok && runeLen(value) <= n
}

// Length passes when the value has exactly param characters.
func Length(value, param string, _ Subject) bool {
	n, ok := lengthParam(param)
	return ok && runeLen(value) == n
}

// runeLen counts characters after NFC composition so that "é" typed as
// e + combining acute has the same length as the precomposed form.
func runeLen(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// A parameter that is not an integer makes every length comparison fail.
func lengthParam(param string) (int, bool) {
	n, err := strconv.Atoi(param)
	if err != nil {
		return 0, false
	}
	return n, true
}
