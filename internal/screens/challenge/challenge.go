package challenge

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	engine "github.com/challengely/challengely/internal/challenge"
	"github.com/challengely/challengely/internal/router"
	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/screens/sharesheet"
	"github.com/challengely/challengely/internal/ui/layout"
)

const (
	confettiFrames   = 16
	confettiInterval = 120 * time.Millisecond
)

type confettiMsg struct{}

// ChallengeScreen shows today's challenge and drives its countdown.
type ChallengeScreen struct {
	ctx context.Context
	eng *engine.Engine

	// celebrated is the engine celebration count already animated.
	celebrated int
	// confetti is the number of animation frames left.
	confetti int
}

var (
	_ screen.Screen          = (*ChallengeScreen)(nil)
	_ screen.KeyHintProvider = (*ChallengeScreen)(nil)
	_ screen.Activator       = (*ChallengeScreen)(nil)
	_ screen.StreakProvider  = (*ChallengeScreen)(nil)
)

// New creates the challenge tab.
func New(ctx context.Context, eng *engine.Engine) *ChallengeScreen {
	return &ChallengeScreen{ctx: ctx, eng: eng}
}

func (s *ChallengeScreen) Init() tea.Cmd {
	return s.Activate()
}

// Activate reloads the profile and today's challenge.
func (s *ChallengeScreen) Activate() tea.Cmd {
	s.eng.Activate(s.ctx)
	s.celebrated = s.eng.State.Celebrations
	return nil
}

func (s *ChallengeScreen) Title() string {
	return "Today's Challenge"
}

// Streak returns the loaded profile's streak.
func (s *ChallengeScreen) Streak() int {
	return s.eng.State.Profile.StreakCount
}

// State exposes the engine state for rendering and tests.
func (s *ChallengeScreen) State() engine.SessionState {
	return s.eng.State
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: actionLabel(s.eng.State.Phase)}}
	hints = append(hints,
		layout.KeyHint{Key: "R", Description: "Refresh"},
		layout.KeyHint{Key: "Tab", Description: "Next tab"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case engine.TickMsg:
		cmd := s.eng.Update(s.ctx, msg)
		return s, tea.Batch(cmd, s.celebrate())

	case engine.SharedMsg:
		cmd := s.eng.Update(s.ctx, msg)
		if msg.Err != nil {
			return s, cmd
		}
		sheet := sharesheet.New(s.eng.ShareCard(), msg.Path)
		return s, tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: sheet} })

	case confettiMsg:
		if s.confetti > 0 {
			s.confetti--
		}
		if s.confetti > 0 {
			return s, confettiTick()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "space":
			return s, s.primary()
		case "r":
			s.eng.Refresh(s.ctx)
			s.celebrated = s.eng.State.Celebrations
			s.confetti = 0
			return s, nil
		}
	}
	return s, nil
}

// primary runs the action of the phase's main button.
func (s *ChallengeScreen) primary() tea.Cmd {
	switch s.eng.State.Phase {
	case engine.PhaseLocked:
		s.eng.Reveal()
		return nil
	case engine.PhaseRevealed:
		return s.eng.Accept()
	case engine.PhaseInProgress:
		s.eng.Complete(s.ctx)
		return s.celebrate()
	case engine.PhaseCompleted:
		return s.eng.Share()
	}
	return nil
}

func (s *ChallengeScreen) celebrate() tea.Cmd {
	if s.eng.State.Celebrations == s.celebrated {
		return nil
	}
	s.celebrated = s.eng.State.Celebrations
	s.confetti = confettiFrames
	return confettiTick()
}

func confettiTick() tea.Cmd {
	return tea.Tick(confettiInterval, func(time.Time) tea.Msg {
		return confettiMsg{}
	})
}

func actionLabel(p engine.Phase) string {
	switch p {
	case engine.PhaseRevealed:
		return "Accept Challenge"
	case engine.PhaseInProgress:
		return "Mark Complete"
	case engine.PhaseCompleted:
		return "Share Achievement"
	default:
		return "Reveal Challenge"
	}
}
