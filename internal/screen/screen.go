package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/challengely/challengely/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Activator is implemented by screens that reload their state each time
// they are shown.
type Activator interface {
	Activate() tea.Cmd
}

// StreakProvider is implemented by screens that know the current streak
// for the header.
type StreakProvider interface {
	Streak() int
}

// InputCapturer is implemented by screens that are currently taking text
// input, so global single-key shortcuts must not fire.
type InputCapturer interface {
	CapturingInput() bool
}
