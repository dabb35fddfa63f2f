package profile

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/theme"
)

func (s *ProfileScreen) View(width, height int) string {
	st := s.eng.State
	cw := components.ContentWidth(width)

	section := func(title string) string {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(strings.ToUpper(title))
	}

	interests := make([]string, 0, len(st.Profile.Interests))
	for _, c := range st.Profile.Interests {
		interests = append(interests, c.Emoji()+" "+c.DisplayName())
	}
	if len(interests) == 0 {
		interests = append(interests, "All categories")
	}

	profile := lipgloss.JoinVertical(lipgloss.Left,
		row("Current Streak", lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d 🔥", st.Profile.StreakCount)), cw),
		row("Completed", fmt.Sprintf("%d", len(st.Profile.CompletedChallenges)), cw),
		row("Interests", strings.Join(interests, ", "), cw),
	)

	next := row("Next notification", lipgloss.NewStyle().Foreground(theme.Secondary).Render(s.eng.NextNotificationDisplay()), cw)

	sections := []string{
		section("Your Profile"),
		profile,
		"",
		section("Notification Settings"),
		s.menu.View(cw),
		next,
	}
	if st.Settings.Enabled {
		sections = append(sections, theme.Hint.Render("Test notification will arrive in 1 minute"))
	}
	if st.Err != "" {
		sections = append(sections, "", theme.ErrorText.Width(cw).Render(st.Err))
	} else if st.Status != "" {
		sections = append(sections, "", theme.StatusText.Render(st.Status))
	}
	if d := st.Profile.Difficulty; d != "" {
		sections = append(sections, "", theme.Hint.Render(difficultyNote(d)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return components.Frame(content, width, height)
}

func row(label, value string, width int) string {
	l := lipgloss.NewStyle().Foreground(theme.Text).Render("    " + label)
	gap := width - lipgloss.Width(l) - lipgloss.Width(value)
	return l + strings.Repeat(" ", max(gap, 2)) + value
}

func difficultyNote(d catalog.Difficulty) string {
	return d.DisplayName() + ": " + d.Summary()
}
