package challenge

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	engine "github.com/challengely/challengely/internal/challenge"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/theme"
)

var confettiGlyphs = []string{"✦", "•", "✧", "★", "◆", "✺"}

func (s *ChallengeScreen) View(width, height int) string {
	st := s.eng.State
	cw := components.ContentWidth(width)

	var sections []string
	if s.confetti > 0 {
		sections = append(sections, renderConfetti(s.confetti, cw), "")
	}

	sections = append(sections, renderStreak(st.Profile.StreakCount, cw), "")
	sections = append(sections, components.Badge(st.Phase.DisplayName(), phaseColor(st.Phase)), "")

	if st.Phase == engine.PhaseLocked {
		sections = append(sections, components.Card(
			theme.Title.Render("Today's Challenge")+"\n\n"+
				theme.Subtitle.Render("Press Enter to reveal your personalized challenge"),
			cw,
		))
	} else {
		sections = append(sections, renderChallenge(st, cw))
	}

	switch st.Phase {
	case engine.PhaseInProgress:
		sections = append(sections, "", renderTimer(st, cw))
	case engine.PhaseCompleted:
		sections = append(sections, "", theme.Checked.Render("🎉 Challenge complete! Come back tomorrow."))
		if st.SharedPath != "" {
			sections = append(sections, theme.Hint.Render("Share card saved to "+st.SharedPath))
		}
	}
	if st.Err != "" {
		sections = append(sections, "", theme.ErrorText.Render(st.Err))
	}

	sections = append(sections, "", components.ActionButton(actionLabel(st.Phase), true, cw))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return components.Frame(content, width, height)
}

func renderStreak(streak, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Current Streak")
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d 🔥", streak))
	gap := cw - lipgloss.Width(label) - lipgloss.Width(value)
	return label + strings.Repeat(" ", max(gap, 2)) + value
}

func renderChallenge(st engine.SessionState, cw int) string {
	c := st.Today
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%s %s  •  %s  •  ~%d min",
		c.Category.Emoji(), c.Category.DisplayName(), c.Difficulty.DisplayName(), int(c.Duration().Minutes()),
	))
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw - 6).
		Align(lipgloss.Center).
		Render(c.Description)
	return components.Card(theme.Title.Render(c.Title)+"\n\n"+body+"\n\n"+meta, cw)
}

func renderTimer(st engine.SessionState, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Time Remaining")
	clock := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(st.FormattedTime())
	bar := components.ProgressBar{
		Percent:     st.Progress(),
		ShowPercent: true,
		Width:       cw,
		Fill:        theme.Success,
	}
	return lipgloss.JoinVertical(lipgloss.Center, label, clock, bar.View())
}

// renderConfetti draws a row of glyphs that shifts every frame.
func renderConfetti(frame, cw int) string {
	colors := []color.Color{theme.Accent, theme.Secondary, theme.Highlight, theme.Primary, theme.Success}
	var b strings.Builder
	for i := 0; i < cw/2; i++ {
		k := i + frame
		g := confettiGlyphs[k%len(confettiGlyphs)]
		b.WriteString(lipgloss.NewStyle().Foreground(colors[(k*7)%len(colors)]).Render(g))
		b.WriteString(" ")
	}
	return b.String()
}

func phaseColor(p engine.Phase) color.Color {
	switch p {
	case engine.PhaseRevealed:
		return theme.Secondary
	case engine.PhaseInProgress:
		return theme.Warning
	case engine.PhaseCompleted:
		return theme.Success
	default:
		return theme.TextDim
	}
}
