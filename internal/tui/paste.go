// Package tui holds rendering helpers shared by the wizard screens.
package tui

import (
	"regexp"
	"strings"
)

// ansiEscapePattern matches CSI escape sequences (colors, cursor control).
var ansiEscapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// SanitizePaste cleans pasted terminal content: it strips escape sequences
// and control characters, normalizes CRLF, trims trailing whitespace and
// caps the result at limit runes (limit <= 0 means no cap).
func SanitizePaste(content string, limit int) string {
	content = ansiEscapePattern.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var b strings.Builder
	for _, r := range content {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 32 || r == 127:
			continue
		default:
			b.WriteRune(r)
		}
	}
	content = strings.TrimRight(b.String(), " \t\n")

	if limit > 0 {
		if runes := []rune(content); len(runes) > limit {
			content = string(runes[:limit])
		}
	}
	return content
}
