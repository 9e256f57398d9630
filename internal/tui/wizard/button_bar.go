package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
)

// ButtonID identifies a button's role independent of its label.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonBack
	ButtonNext
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling and keyboard
// focus. Disabled buttons are skipped by focus movement.
type ButtonBar struct {
	buttons []Button
	focus   int // -1 when the bar does not have focus
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focus:   -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetEnabled enables or disables the button with the given id. A disabled
// button that had focus loses it.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID != id {
			continue
		}
		if enabled {
			if b.buttons[i].State == ButtonDisabled {
				b.buttons[i].State = ButtonNormal
			}
			continue
		}
		b.buttons[i].State = ButtonDisabled
		if b.focus == i {
			b.focus = -1
		}
	}
}

// Enabled reports whether the button with the given id can be activated.
func (b *ButtonBar) Enabled(id ButtonID) bool {
	for _, btn := range b.buttons {
		if btn.ID == id {
			return btn.State != ButtonDisabled
		}
	}
	return false
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() bool {
	return b.focusFrom(0, 1)
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() bool {
	return b.focusFrom(len(b.buttons)-1, -1)
}

// FocusNext moves focus right. It returns false when focus would leave the
// bar, in which case the caller moves focus back to the step content.
func (b *ButtonBar) FocusNext() bool {
	if b.focus < 0 {
		return b.FocusFirst()
	}
	return b.focusFrom(b.focus+1, 1)
}

// FocusPrev moves focus left; see FocusNext.
func (b *ButtonBar) FocusPrev() bool {
	if b.focus < 0 {
		return b.FocusLast()
	}
	return b.focusFrom(b.focus-1, -1)
}

func (b *ButtonBar) focusFrom(start, step int) bool {
	for i := start; i >= 0 && i < len(b.buttons); i += step {
		if b.buttons[i].State != ButtonDisabled {
			b.focus = i
			return true
		}
	}
	return false
}

// Blur removes focus from the bar.
func (b *ButtonBar) Blur() {
	b.focus = -1
}

// IsFocused reports whether any button has focus.
func (b *ButtonBar) IsFocused() bool {
	return b.focus >= 0
}

// FocusedButton returns the id of the focused button.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focus < 0 || b.focus >= len(b.buttons) {
		return ButtonNone
	}
	return b.buttons[b.focus].ID
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Secondary)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	rendered := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		switch {
		case btn.State == ButtonDisabled:
			rendered = append(rendered, disabledStyle.Render(btn.Label))
		case i == b.focus:
			rendered = append(rendered, focusedStyle.Render(btn.Label))
		default:
			rendered = append(rendered, normalStyle.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates the standard Back/Next button set.
// nextLabel is "Next" on ordinary steps and "Submit" on the last one.
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	return []Button{
		{ID: ButtonBack, Label: "← Back", State: backState},
		{ID: ButtonNext, Label: nextLabel, State: nextState},
	}
}
