package tui

import (
	"bytes"
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/debuggies/archintake/internal/tui/theme"
)

// RenderMarkdown renders markdown with glamour, falling back to the raw
// text if rendering fails.
func RenderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// glamour pads with blank lines on both ends
	return strings.Trim(rendered, "\n")
}

// HighlightCode syntax-highlights source for a terminal. language is a
// chroma lexer name or alias ("terraform", "mermaid"); unknown languages
// fall back to content detection and then plain text.
func HighlightCode(source, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source
	}

	style := styles.Get("catppuccin-mocha")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}

// RenderDiff returns a colored unified diff between two versions of a
// text, or "" when they are equal.
func RenderDiff(name, before, after string) string {
	if before == after {
		return ""
	}
	diff := udiff.Unified("previous/"+name, "current/"+name, ensureNewline(before), ensureNewline(after))
	if diff == "" {
		return ""
	}

	t := theme.Current()
	add := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	del := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error))
	hunk := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info))
	meta := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = meta.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunk.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = add.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = del.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
