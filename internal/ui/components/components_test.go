package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuSkipsDisabledItems(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Time", Action: func() tea.Cmd { pressed = "time"; return nil }},
		{Label: "Hidden", Disabled: true},
		{Label: "Test", Action: func() tea.Cmd { pressed = "test"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "test", pressed)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
}

func TestMenuViewShowsValues(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Reminders", Value: "On"}})
	view := m.View(40)
	assert.Contains(t, view, "Reminders")
	assert.Contains(t, view, "On")
}

func TestChoiceListToggle(t *testing.T) {
	var got []int
	c := NewChoiceList([]ChoiceOption{{Label: "A"}, {Label: "B"}}, false, func(i int) tea.Cmd {
		got = append(got, i)
		return nil
	})

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, c.Cursor, "cursor stops at the last option")
	assert.Equal(t, []int{1}, got)

	c.Options[1].Checked = true
	assert.Contains(t, c.View(), "[✓] B")
}

func TestButtonDisabledIgnoresEnter(t *testing.T) {
	called := false
	b := NewButton("Go", false, func() tea.Cmd { called = true; return nil })
	b, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, called)

	b.Enabled = true
	_, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, called)
}

func TestProgressBarSuffix(t *testing.T) {
	p := NewProgressBar("", 0.5, true, 30)
	assert.Contains(t, p.View(), "50%")

	p.Suffix = "3"
	view := p.View()
	assert.Contains(t, view, "3")
	assert.NotContains(t, view, "%")
}

func TestTextInputLimit(t *testing.T) {
	ti := NewTextInput("Type", 5)
	ti.SetValue("abcdefgh")
	require.Equal(t, "abcde", ti.Value())

	ti.Reset()
	assert.Empty(t, ti.Value())
}

func TestContentWidthClamps(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 64, ContentWidth(200))
	assert.Equal(t, 44, ContentWidth(50))
}
