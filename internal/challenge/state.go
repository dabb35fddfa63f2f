package challenge

import (
	"fmt"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/profile"
)

// Phase is the lifecycle of today's challenge.
type Phase int

const (
	PhaseLocked     Phase = iota // Hidden until the user reveals it
	PhaseRevealed                // Shown, waiting to be accepted
	PhaseInProgress              // Countdown running
	PhaseCompleted               // Done for today
)

// DisplayName returns the badge label for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseRevealed:
		return "Ready"
	case PhaseInProgress:
		return "In Progress"
	case PhaseCompleted:
		return "Completed"
	default:
		return "Locked"
	}
}

// SessionState is the transient state of the challenge screen.
type SessionState struct {
	// Profile is the last loaded or written profile.
	Profile profile.UserProfile

	// Today is the challenge selected for the current calendar day.
	Today catalog.Challenge

	// Phase is the current lifecycle phase.
	Phase Phase

	// Remaining is the countdown in whole seconds.
	Remaining int

	// Total is the countdown length the timer started from.
	Total int

	// Running is true while the countdown ticks.
	Running bool

	// Celebrations counts completions shown this session; the view animates
	// confetti when it changes.
	Celebrations int

	// SharedPath is the last rendered share card.
	SharedPath string

	// Err is a user-visible error from the last share attempt.
	Err string
}

// FormattedTime renders Remaining as MM:SS.
func (s SessionState) FormattedTime() string {
	return fmt.Sprintf("%02d:%02d", s.Remaining/60, s.Remaining%60)
}

// Progress is the elapsed fraction of the countdown in [0, 1].
func (s SessionState) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	done := float64(s.Total-s.Remaining) / float64(s.Total)
	return min(max(done, 0), 1)
}
