package speech

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	bracketPrefix = regexp.MustCompile(`^\[[A-Za-z]+\]\s*`)
	ansiCodes     = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	mdLink        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdMarkers     = regexp.MustCompile("(\\*\\*|__|\\*|`+|~~)")
	mdLineLead    = regexp.MustCompile(`(?m)^\s*(#{1,6}\s+|>\s*|[-+]\s+|\d+\.\s+)`)
	spaces        = regexp.MustCompile(`\s+`)
)

// CleanForSpeech strips what should not be read aloud: terminal colours,
// "[Timer]"-style prefixes, markdown markup and emoji.
func CleanForSpeech(msg string) string {
	s := ansiCodes.ReplaceAllString(msg, "")
	s = bracketPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdLineLead.ReplaceAllString(s, "")
	s = mdMarkers.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, s)
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func isEmoji(r rune) bool {
	switch {
	case r == '\u200d', r == '\ufe0f', r == '\ufe0e':
		return true
	case r >= 0x1f000 && r <= 0x1faff:
		return true
	case r >= 0x2600 && r <= 0x27bf:
		return true
	}
	return unicode.Is(unicode.So, r) && r > 0xff
}
