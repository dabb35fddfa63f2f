// Package sharesheet shows a saved achievement card over the tabs.
package sharesheet

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/challengely/challengely/internal/router"
	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/share"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/layout"
	"github.com/challengely/challengely/internal/ui/theme"
)

// ShareSheet previews a share card and where its PNG was written.
type ShareSheet struct {
	card share.Card
	path string
}

var (
	_ screen.Screen          = (*ShareSheet)(nil)
	_ screen.KeyHintProvider = (*ShareSheet)(nil)
	_ screen.StreakProvider  = (*ShareSheet)(nil)
)

// New creates a sheet for card saved at path.
func New(card share.Card, path string) *ShareSheet {
	return &ShareSheet{card: card, path: path}
}

func (s *ShareSheet) Init() tea.Cmd { return nil }

func (s *ShareSheet) Title() string { return "Share Achievement" }

func (s *ShareSheet) Streak() int { return s.card.Streak }

func (s *ShareSheet) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ShareSheet) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ShareSheet) View(width, height int) string {
	cw := components.ContentWidth(width)

	body := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(s.card.Headline()),
		"",
		theme.Title.Render(s.card.Category.Emoji() + " " + s.card.Title),
		theme.Body.Width(cw - 6).Align(lipgloss.Center).Render(s.card.Description),
		"",
		theme.Hint.Render("Challengely"),
	}, "\n")

	content := lipgloss.JoinVertical(lipgloss.Center,
		components.Card(body, cw),
		"",
		theme.StatusText.Render("Saved to "+s.path),
		"",
		components.ActionButton("Done", true, cw),
	)
	return components.Frame(content, width, height)
}
