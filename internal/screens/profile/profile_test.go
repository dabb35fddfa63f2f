package profile

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/challenge"
	"github.com/challengely/challengely/internal/notify"
	engine "github.com/challengely/challengely/internal/profile"
	"github.com/challengely/challengely/internal/store"
	"github.com/challengely/challengely/internal/store/storetest"
)

type harness struct {
	screen *ProfileScreen
	store  *store.Store
	sched  *notify.Recorder
	clock  *clockwork.FakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store: storetest.Open(t),
		sched: &notify.Recorder{},
		clock: clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)),
	}
	eng := engine.NewEngine(engine.Deps{
		Store:     h.store,
		Scheduler: h.sched,
		Clock:     h.clock,
	})
	h.screen = New(context.Background(), eng)
	h.screen.Init()
	return h
}

// press sends key and runs the resulting command back through the screen.
func (h *harness) press(t *testing.T, key tea.KeyPressMsg) {
	t.Helper()
	_, cmd := h.screen.Update(key)
	if cmd != nil {
		h.screen.Update(cmd())
	}
}

func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }
func right() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyRight} }
func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestViewShowsDefaults(t *testing.T) {
	h := newHarness(t)
	view := h.screen.View(100, 40)
	assert.Contains(t, view, "Enable Daily Reminders")
	assert.Contains(t, view, "8:00 AM")
	assert.Contains(t, view, "Daily at 8:00 AM")
}

func TestToggleOffCancels(t *testing.T) {
	h := newHarness(t)
	h.press(t, enter())

	assert.False(t, h.screen.State().Settings.Enabled)
	assert.Contains(t, h.screen.View(100, 40), "Reminders off")

	stored, err := h.store.LoadSettings(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Enabled)
}

func TestAdjustTimeReschedules(t *testing.T) {
	h := newHarness(t)
	h.press(t, down())
	h.press(t, right())

	set := h.screen.State().Settings
	assert.Equal(t, 8, set.Hour)
	assert.Equal(t, 15, set.Minute)

	r, ok := h.sched.Get(notify.KindDaily)
	require.True(t, ok)
	assert.Equal(t, notify.At{Hour: 8, Minute: 15}, r.At)
}

func TestFrequencyEnablesWeekday(t *testing.T) {
	h := newHarness(t)
	assert.True(t, h.screen.menu.Items[itemWeekday].Disabled)

	h.press(t, down())
	h.press(t, down())
	h.press(t, enter())

	assert.Equal(t, engine.FrequencyWeekly, h.screen.State().Settings.Frequency)
	assert.False(t, h.screen.menu.Items[itemWeekday].Disabled)

	r, ok := h.sched.Get(notify.KindWeekly)
	require.True(t, ok)
	assert.Equal(t, time.Monday, r.Weekday)
}

func TestDifficultyCyclesAndPersists(t *testing.T) {
	h := newHarness(t)
	h.screen.menu.Selected = itemDifficulty
	h.press(t, right())

	assert.Equal(t, catalog.DifficultyHard, h.screen.State().Profile.Difficulty)
	p, err := h.store.LoadProfile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, catalog.DifficultyHard, p.Difficulty)
}

func TestDifficultyChangeKeepsOffscreenCompletion(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ch := challenge.New(challenge.Deps{Store: h.store, Clock: h.clock})
	ch.Activate(ctx)
	require.True(t, ch.Reveal())
	require.True(t, ch.Complete(ctx))

	h.screen.menu.Selected = itemDifficulty
	h.press(t, right())

	p, err := h.store.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, catalog.DifficultyHard, p.Difficulty)
	assert.Equal(t, 1, p.StreakCount)
	assert.Equal(t, []string{ch.State.Today.ID}, p.CompletedChallenges)
	assert.Equal(t, 1, h.screen.Streak())
}

func TestDeniedPermissionShowsError(t *testing.T) {
	h := newHarness(t)
	h.sched.Denied = true
	h.press(t, down())
	h.press(t, right())

	assert.Equal(t, engine.ErrMsgPermissionDenied, h.screen.State().Err)
}

func TestSendTest(t *testing.T) {
	h := newHarness(t)
	h.screen.menu.Selected = itemTest
	h.press(t, enter())

	assert.False(t, h.screen.State().Testing)
	_, ok := h.sched.Get(notify.KindOnce)
	assert.True(t, ok)
}
