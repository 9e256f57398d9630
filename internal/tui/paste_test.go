package tui

import (
	"strings"
	"testing"
)

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"color codes", "\x1b[31mred text\x1b[0m", 0, "red text"},
		{"256 colors", "\x1b[38;5;196mred\x1b[0m", 0, "red"},
		{"cursor control", "\x1b[2K\x1b[1Gclear line", 0, "clear line"},
		{"crlf", "line one\r\nline two\r\n", 0, "line one\nline two"},
		{"control chars", "a\x00b\x07c\x7fd", 0, "abcd"},
		{"tabs kept", "key:\tvalue", 0, "key:\tvalue"},
		{"trailing whitespace", "text  \n\n\t", 0, "text"},
		{"limit", "abcdefgh", 3, "abc"},
		{"limit multibyte", "ñañaña", 4, "ñaña"},
		{"stray carriage return", "a\rb", 0, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePaste(tt.input, tt.limit)
			if got != tt.expected {
				t.Errorf("SanitizePaste(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizePaste_LargeInput(t *testing.T) {
	input := strings.Repeat("x", 10000)
	if got := SanitizePaste(input, 5000); len(got) != 5000 {
		t.Errorf("expected 5000 runes, got %d", len(got))
	}
}
