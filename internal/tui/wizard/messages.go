package wizard

// TabExitForwardMsg is sent when tab leaves the last focusable element of
// a step, handing focus to the button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is the shift+tab counterpart of TabExitForwardMsg.
type TabExitBackwardMsg struct{}

// OptionChosenMsg is sent when the user picks a selectable option.
type OptionChosenMsg struct {
	Value string
}
