package testfixtures

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// Initialize test environment
func init() {
	// Set Ascii profile to disable color output for consistent output across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 60
)

// CmdTimeout bounds how long RunCmd waits for a single command. Commands
// that take longer (ticks, blinks) are dropped.
const CmdTimeout = 200 * time.Millisecond

// Key builds a key press for the given key name, e.g. "enter" or "ctrl+d".
func Key(name string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: name}
}

// RunCmd executes cmd and returns the messages it produced, flattening
// batches. Commands that do not finish within CmdTimeout are skipped.
func RunCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(CmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, RunCmd(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Plain strips ANSI sequences from rendered output.
func Plain(s string) string {
	return ansi.Strip(s)
}
