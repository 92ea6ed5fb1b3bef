package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

const (
	byteOrderMark = '\uFEFF'
	nextLine      = '\u0085'
)

// isSpace matches the ECMAScript white space and line terminator set:
// Unicode white space plus U+FEFF, without U+0085.
func isSpace(r rune) bool {
	if r == nextLine {
		return false
	}
	return unicode.IsSpace(r) || r == byteOrderMark
}

// RemoveWhitespace drops every white space rune, including ones in the middle
// of the string ("+234 801 234" becomes "+234801234").
func RemoveWhitespace(s string) string {
	if strings.IndexFunc(s, isSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, s)
}

// TrimLeadingZeros removes the national trunk prefix.
func TrimLeadingZeros(s string) string {
	return strings.TrimLeft(s, "0")
}
