package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/challengely/challengely/internal/ui/theme"
)

// ChoiceOption is one row of a ChoiceList.
type ChoiceOption struct {
	Label   string
	Detail  string
	Checked bool
}

// ChoiceList is a checklist. It owns only the cursor; callers keep the
// selection and refresh Checked before rendering.
type ChoiceList struct {
	Options []ChoiceOption
	Cursor  int
	// Radio renders round markers for single-choice lists.
	Radio bool
	// OnSelect is called with the cursor index on space or x.
	OnSelect func(i int) tea.Cmd
}

// NewChoiceList creates a checklist.
func NewChoiceList(options []ChoiceOption, radio bool, onSelect func(int) tea.Cmd) ChoiceList {
	return ChoiceList{
		Options:  options,
		Radio:    radio,
		OnSelect: onSelect,
	}
}

// Update handles keyboard navigation and toggling.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", "x":
		if c.OnSelect != nil && c.Cursor < len(c.Options) {
			return c, c.OnSelect(c.Cursor)
		}
	}

	return c, nil
}

// View renders the list.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}

		mark := "[ ]"
		if c.Radio {
			mark = "( )"
		}
		if opt.Checked {
			mark = "[✓]"
			if c.Radio {
				mark = "(●)"
			}
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		case opt.Checked:
			style = style.Foreground(theme.Success)
		}

		line := style.Render(prefix + mark + " " + opt.Label)
		if opt.Detail != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(opt.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
