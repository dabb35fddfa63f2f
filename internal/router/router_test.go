package router_test

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/challengely/challengely/internal/challenge"
	"github.com/challengely/challengely/internal/router"
	challengescreen "github.com/challengely/challengely/internal/screens/challenge"
	"github.com/challengely/challengely/internal/screens/sharesheet"
	"github.com/challengely/challengely/internal/share"
	"github.com/challengely/challengely/internal/store/storetest"
)

// newChallenge returns an uninitialized challenge tab on a fresh store,
// along with its engine.
func newChallenge(t *testing.T) (*challengescreen.ChallengeScreen, *engine.Engine) {
	t.Helper()
	eng := engine.New(engine.Deps{
		Store: storetest.Open(t),
		Clock: clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
	})
	return challengescreen.New(context.Background(), eng), eng
}

func newChallengeScreen(t *testing.T) *challengescreen.ChallengeScreen {
	t.Helper()
	s, _ := newChallenge(t)
	return s
}

func newSheet() *sharesheet.ShareSheet {
	return sharesheet.New(share.Card{Title: "Morning Meditation", Streak: 2}, "card.png")
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestPushAndPopOverlay(t *testing.T) {
	base := newChallengeScreen(t)
	r := router.New(base)

	r.Update(router.PushScreenMsg{Screen: newSheet()})
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "Share Achievement", r.Active().Title())

	r.Update(router.PopScreenMsg{})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, base, r.Active())
}

func TestPopKeepsBottomScreen(t *testing.T) {
	r := router.New(newSheet())
	r.Pop()
	assert.Equal(t, 1, r.Depth())
	require.NotNil(t, r.Active())
}

func TestKeysReachOnlyTheOverlay(t *testing.T) {
	base := newChallengeScreen(t)
	base.Init()
	r := router.New(base)
	r.Push(newSheet())

	cmd := r.Update(enter())
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, engine.PhaseLocked, base.State().Phase)
}

func TestBackgroundMessagesReachTheWholeStack(t *testing.T) {
	base, eng := newChallenge(t)
	base.Init()
	r := router.New(base)

	r.Update(enter())
	r.Update(enter())
	require.Equal(t, engine.PhaseInProgress, base.State().Phase)
	start := base.State().Remaining

	r.Push(newSheet())
	r.Update(engine.TickMsg{Run: eng.Run()})
	assert.Equal(t, start-1, base.State().Remaining)
}

func TestReplaceRunsInit(t *testing.T) {
	r := router.New(newSheet())

	next := newChallengeScreen(t)
	r.Update(router.ReplaceScreenMsg{Screen: next})

	assert.Equal(t, 1, r.Depth())
	assert.Same(t, next, r.Active())
	assert.NotEmpty(t, next.State().Today.ID, "Init loads today's challenge")
}

func TestReplaceKeepsOverlayDepth(t *testing.T) {
	r := router.New(newChallengeScreen(t))
	r.Push(newSheet())

	r.Replace(newSheet())
	assert.Equal(t, 2, r.Depth())
}

func TestViewRendersActive(t *testing.T) {
	r := router.New(newChallengeScreen(t))
	r.Push(newSheet())
	assert.Contains(t, r.View(100, 30), "Day 2 Streak!")
}
