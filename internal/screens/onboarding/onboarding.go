package onboarding

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/challengely/challengely/internal/catalog"
	engine "github.com/challengely/challengely/internal/onboarding"
	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/layout"
)

// OnboardingScreen is the first-run wizard.
type OnboardingScreen struct {
	ctx context.Context
	eng *engine.Engine

	interests  components.ChoiceList
	difficulty components.ChoiceList
	// blocked is set when Next was refused on the interests page.
	blocked bool
}

var (
	_ screen.Screen          = (*OnboardingScreen)(nil)
	_ screen.KeyHintProvider = (*OnboardingScreen)(nil)
)

// New creates the wizard.
func New(ctx context.Context, eng *engine.Engine) *OnboardingScreen {
	s := &OnboardingScreen{ctx: ctx, eng: eng}

	cats := catalog.AllCategories()
	s.interests = components.NewChoiceList(make([]components.ChoiceOption, len(cats)), false, func(i int) tea.Cmd {
		s.eng.ToggleInterest(cats[i])
		s.blocked = false
		return nil
	})

	diffs := catalog.AllDifficulties()
	s.difficulty = components.NewChoiceList(make([]components.ChoiceOption, len(diffs)), true, func(i int) tea.Cmd {
		s.eng.SetDifficulty(diffs[i])
		return nil
	})
	s.syncOptions()
	return s
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return nil
}

func (s *OnboardingScreen) Title() string {
	return "Welcome"
}

// State exposes the engine state for rendering and tests.
func (s *OnboardingScreen) State() engine.State {
	return s.eng.State
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	next := "Next"
	if s.eng.State.Step == engine.StepDifficulty {
		next = "Get Started"
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: next}}
	switch s.eng.State.Step {
	case engine.StepInterests, engine.StepDifficulty:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Move"},
			layout.KeyHint{Key: "Space", Description: "Select"},
		)
	}
	if s.eng.State.Step > engine.StepWelcome {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "S", Description: "Skip"})
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.eng.State.Complete {
		return s, nil
	}

	var cmd tea.Cmd
	switch kmsg.String() {
	case "enter":
		if !s.eng.CanProceed() {
			s.blocked = true
			return s, nil
		}
		cmd = s.eng.Next(s.ctx)
	case "esc", "backspace", "left":
		s.eng.Previous()
		s.blocked = false
	case "s":
		cmd = s.eng.Skip(s.ctx)
	default:
		switch s.eng.State.Step {
		case engine.StepInterests:
			s.interests, cmd = s.interests.Update(kmsg)
		case engine.StepDifficulty:
			s.difficulty, cmd = s.difficulty.Update(kmsg)
		}
	}
	s.syncOptions()
	return s, cmd
}

// syncOptions copies the engine's selection into the checklists.
func (s *OnboardingScreen) syncOptions() {
	for i, c := range catalog.AllCategories() {
		s.interests.Options[i] = components.ChoiceOption{
			Label:   c.Emoji() + " " + c.DisplayName(),
			Checked: s.eng.Selected(c),
		}
	}
	for i, d := range catalog.AllDifficulties() {
		s.difficulty.Options[i] = components.ChoiceOption{
			Label:   d.DisplayName(),
			Detail:  d.Summary(),
			Checked: s.eng.State.Difficulty == d,
		}
	}
}
