package util

import (
	"strings"
	"unicode/utf8"
)

// TrimString cuts s to at most length runes
func TrimString(s string, length int) string {
	if length <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= length {
		return s
	}

	runes := []rune(s)
	return string(runes[:length])
}

func RuneLength(s string) int {
	return utf8.RuneCountInString(s)
}

// PadLeft prefixes s with spaces until it is width runes wide
func PadLeft(s string, width int) string {
	missing := width - utf8.RuneCountInString(s)
	if missing <= 0 {
		return s
	}

	return strings.Repeat(" ", missing) + s
}

// PadRight appends spaces to s until it is width runes wide
func PadRight(s string, width int) string {
	missing := width - utf8.RuneCountInString(s)
	if missing <= 0 {
		return s
	}

	return s + strings.Repeat(" ", missing)
}
