package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/tui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 4 * time.Second

// ToastKind selects the toast color.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastDismissMsg is sent when the toast with the given sequence number
// should be dismissed.
type ToastDismissMsg struct {
	seq int
}

// Toast is a one-line notification that auto-dismisses.
type Toast struct {
	message string
	kind    ToastKind
	visible bool
	seq     int
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a toast and returns the command that dismisses it.
// Showing a new toast supersedes the pending dismissal of the old one.
func (t *Toast) Show(msg string, kind ToastKind) tea.Cmd {
	t.seq++
	t.message = msg
	t.kind = kind
	t.visible = true
	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastDismissMsg{seq: seq}
	})
}

// Update handles dismissal.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(ToastDismissMsg); ok && m.seq == t.seq {
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast right-aligned within width, or "" when hidden.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	th := theme.Current()
	bg := th.Info
	switch t.kind {
	case ToastSuccess:
		bg = th.Success
	case ToastError:
		bg = th.Error
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Bold(true)

	content := style.Render(t.message)
	if width > 2 && lipgloss.Width(content) > width-2 {
		content = style.Width(width - 2).Render(t.message)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		PaddingRight(1).
		Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// Message returns the current toast message (empty if not visible).
func (t *Toast) Message() string {
	if !t.visible {
		return ""
	}
	return t.message
}
