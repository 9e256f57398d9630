package wizard

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestButtonBar_FocusSkipsDisabled(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(false, true, "Next"))

	assert.True(t, bar.FocusFirst())
	assert.Equal(t, ButtonNext, bar.FocusedButton(), "disabled Back must be skipped")

	assert.False(t, bar.FocusNext(), "focus leaves the bar after the last button")
	assert.False(t, bar.FocusPrev(), "nothing enabled to the left")
}

func TestButtonBar_FocusCycle(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, true, "Submit"))

	assert.False(t, bar.IsFocused())
	assert.Equal(t, ButtonNone, bar.FocusedButton())

	assert.True(t, bar.FocusLast())
	assert.Equal(t, ButtonNext, bar.FocusedButton())
	assert.True(t, bar.FocusPrev())
	assert.Equal(t, ButtonBack, bar.FocusedButton())

	bar.Blur()
	assert.False(t, bar.IsFocused())
}

func TestButtonBar_SetEnabled(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, true, "Submit"))
	bar.FocusLast()

	bar.SetEnabled(ButtonNext, false)
	assert.False(t, bar.Enabled(ButtonNext))
	assert.False(t, bar.IsFocused(), "disabling the focused button drops focus")

	bar.SetEnabled(ButtonNext, true)
	assert.True(t, bar.Enabled(ButtonNext))
}

func TestButtonBar_Render(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, false, "Submit"))
	bar.SetWidth(40)

	out := ansi.Strip(bar.Render())
	assert.Contains(t, out, "← Back")
	assert.Contains(t, out, "Submit")
	assert.Empty(t, NewButtonBar(nil).Render())
}

func TestRenderHintBar(t *testing.T) {
	out := ansi.Strip(RenderHintBar("tab", "buttons", "esc", "back"))
	assert.Equal(t, "tab buttons • esc back", out)

	assert.Empty(t, RenderHintBar("odd"))
	assert.Empty(t, RenderFieldError(""))
	assert.Equal(t, "✗ Industry is required", ansi.Strip(RenderFieldError("Industry is required")))
}
