package onboarding

import (
	"fmt"

	"charm.land/lipgloss/v2"

	engine "github.com/challengely/challengely/internal/onboarding"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/theme"
)

type feature struct {
	icon, title, desc string
}

var features = []feature{
	{"🎯", "Daily Challenges", "Get one personalized challenge each day"},
	{"📈", "Track Progress", "Build streaks and celebrate achievements"},
	{"💬", "AI Assistant", "Get guidance and motivation when you need it"},
}

func (s *OnboardingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	step := s.eng.State.Step

	var body string
	switch step {
	case engine.StepWelcome:
		body = lipgloss.JoinVertical(lipgloss.Center,
			RenderBanner(cw),
			"",
			"🎯",
			theme.Title.Render("Welcome to Challengely"),
			"",
			theme.Subtitle.Width(cw).Render("Transform your daily routine with personalized challenges that inspire growth and build lasting habits."),
		)
	case engine.StepIntro:
		rows := []string{theme.Title.Render("Here's what you'll get"), ""}
		for _, f := range features {
			rows = append(rows,
				lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(f.icon+"  "+f.title),
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+f.desc),
				"",
			)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	case engine.StepInterests:
		rows := []string{
			theme.Title.Render("What interests you?"),
			theme.Subtitle.Width(cw).Render("Choose the areas you'd like to explore. You can always change this later."),
			"",
			s.interests.View(),
		}
		if s.blocked {
			rows = append(rows, theme.ErrorText.Render("Pick at least one interest to continue"))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	case engine.StepDifficulty:
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("Choose your level"),
			theme.Subtitle.Width(cw).Render("How challenging would you like your daily tasks to be?"),
			"",
			s.difficulty.View(),
		)
	}

	next := "Next ›"
	if step == engine.StepDifficulty {
		next = "Get Started 🚀"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Step %d of %d", int(step)+1, engine.StepCount)),
		renderDots(int(step)),
		"",
		body,
		"",
		components.ActionButton(next, s.eng.CanProceed(), cw/2),
	)
	return components.Frame(content, width, height)
}

func renderDots(current int) string {
	var out string
	for i := range engine.StepCount {
		if i == current {
			out += lipgloss.NewStyle().Foreground(theme.Primary).Render("● ")
		} else {
			out += lipgloss.NewStyle().Foreground(theme.Border).Render("○ ")
		}
	}
	return out
}
