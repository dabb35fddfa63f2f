package chat

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	engine "github.com/challengely/challengely/internal/chat"
	"github.com/challengely/challengely/internal/store"
	"github.com/challengely/challengely/internal/ui/theme"
)

func (s *ChatScreen) View(width, height int) string {
	cw := min(width-4, 96)

	s.input.SetWidth(cw - 16)
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center,
		s.input.View(), "  ", s.input.Counter(s.eng.State.CharCount, bandColor(s.eng.CounterBand())),
	)
	replies := s.renderReplies(cw)

	var status string
	if s.eng.State.Typing {
		status = theme.Hint.Render("Assistant is typing…")
	}

	footer := lipgloss.JoinVertical(lipgloss.Left, status, replies, inputRow)
	logHeight := max(height-lipgloss.Height(footer)-1, 1)
	log := renderLog(s.eng.State.Messages, cw, logHeight)

	content := lipgloss.JoinVertical(lipgloss.Left, log, footer)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// renderLog renders the newest messages that fit in height lines.
func renderLog(msgs []store.Message, width, height int) string {
	bubbleWidth := width * 3 / 4
	var lines []string
	for _, m := range msgs {
		lines = append(lines, strings.Split(renderBubble(m, width, bubbleWidth), "\n")...)
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}

func renderBubble(m store.Message, width, bubbleWidth int) string {
	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	text := m.Text
	if lipgloss.Width(text) > bubbleWidth-4 {
		style = style.Width(bubbleWidth)
	}

	if m.FromUser {
		b := style.
			Foreground(theme.Text).
			Background(theme.Bubble).
			BorderForeground(theme.Primary).
			Render(text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, b)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(text)
}

func (s *ChatScreen) renderReplies(width int) string {
	parts := make([]string, 0, len(engine.QuickReplies))
	for i, r := range engine.QuickReplies {
		st := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.focus == focusReplies && i == s.replyAt {
			st = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Highlight).Bold(true)
		}
		parts = append(parts, st.Render(" "+r+" "))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, " "))
}

func bandColor(b engine.Band) color.Color {
	switch b {
	case engine.BandWarning:
		return theme.Warning
	case engine.BandError:
		return theme.Error
	default:
		return theme.TextDim
	}
}
