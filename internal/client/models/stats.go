package models

import (
	"strings"
	"unicode/utf8"
)

// ContentSoftLimit is the character count above which the editor warns.
// The service itself does not enforce it.
const ContentSoftLimit = 5000

// TextStats summarizes a note body.
type TextStats struct {
	Words     int
	Chars     int
	OverLimit bool
}

// StatsOf counts words and characters of content.
func StatsOf(content string) TextStats {
	chars := utf8.RuneCountInString(content)
	return TextStats{
		Words:     len(strings.Fields(content)),
		Chars:     chars,
		OverLimit: chars > ContentSoftLimit,
	}
}
