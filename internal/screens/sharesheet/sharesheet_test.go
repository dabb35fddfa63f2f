package sharesheet

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/router"
	"github.com/challengely/challengely/internal/share"
)

func testCard() share.Card {
	return share.Card{
		Title:       "Morning Meditation",
		Description: "Spend 10 minutes in quiet meditation.",
		Category:    catalog.CategoryMindfulness,
		Streak:      3,
		Date:        time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestViewShowsCardAndPath(t *testing.T) {
	s := New(testCard(), "/tmp/shares/card.png")
	out := s.View(100, 30)
	assert.Contains(t, out, "Day 3 Streak!")
	assert.Contains(t, out, "Morning Meditation")
	assert.Contains(t, out, "/tmp/shares/card.png")
	assert.Equal(t, 3, s.Streak())
}

func TestCloseKeysPop(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEscape},
		{Code: tea.KeyEnter},
		{Code: 'q', Text: "q"},
	} {
		_, cmd := New(testCard(), "card.png").Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, router.PopScreenMsg{}, cmd(), key.String())
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	_, cmd := New(testCard(), "card.png").Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Nil(t, cmd)
}
