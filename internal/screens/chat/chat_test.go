package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/challengely/challengely/internal/chat"
	"github.com/challengely/challengely/internal/store/storetest"
)

func newTestScreen(t *testing.T) *ChatScreen {
	t.Helper()
	eng := engine.New(engine.Deps{
		Store: storetest.Open(t),
		Rand:  rand.New(rand.NewPCG(1, 2)),
	})
	s := New(context.Background(), eng)
	s.Init()
	return s
}

func typeText(s *ChatScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestActivateSeedsGreeting(t *testing.T) {
	s := newTestScreen(t)
	require.Len(t, s.State().Messages, 1)
	assert.Equal(t, engine.Greeting, s.State().Messages[0].Text)
	assert.Contains(t, s.View(100, 30), "challenge assistant")
}

func TestTypingMirrorsIntoEngine(t *testing.T) {
	s := newTestScreen(t)
	typeText(s, "hello")
	assert.Equal(t, "hello", s.State().Input)
	assert.Equal(t, 5, s.State().CharCount)
	assert.True(t, s.CapturingInput())
}

func TestEnterSendsAndClears(t *testing.T) {
	s := newTestScreen(t)
	typeText(s, "any streak tips")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Empty(t, s.input.Value())
	assert.True(t, s.State().Typing)

	msgs := s.State().Messages
	assert.Equal(t, "any streak tips", msgs[len(msgs)-1].Text)
	assert.True(t, msgs[len(msgs)-1].FromUser)
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	s := newTestScreen(t)
	typeText(s, "   ")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Len(t, s.State().Messages, 1)
}

func TestQuickReplyFocus(t *testing.T) {
	s := newTestScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.False(t, s.CapturingInput())

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	msgs := s.State().Messages
	assert.Equal(t, engine.QuickReplies[1], msgs[len(msgs)-1].Text)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.True(t, s.CapturingInput())
}

func TestEscStopsTyping(t *testing.T) {
	s := newTestScreen(t)
	typeText(s, "help")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.True(t, s.State().Typing)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, s.State().Typing)
	assert.Contains(t, s.View(100, 30), "0/500")
}

func TestPasteIsTruncated(t *testing.T) {
	s := newTestScreen(t)
	s.Update(tea.PasteMsg{Content: strings.Repeat("a", 600)})
	assert.Equal(t, engine.MaxChars, s.State().CharCount)
}

func TestPasteCountsEmojiOnce(t *testing.T) {
	s := newTestScreen(t)
	s.Update(tea.PasteMsg{Content: strings.Repeat("👍🏽", 501)})
	assert.Equal(t, engine.MaxChars, s.State().CharCount)
	assert.Equal(t, strings.Repeat("👍🏽", 500), s.State().Input)
}
