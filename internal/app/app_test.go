package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/notify"
	"github.com/challengely/challengely/internal/onboarding"
	"github.com/challengely/challengely/internal/profile"
	"github.com/challengely/challengely/internal/router"
	"github.com/challengely/challengely/internal/screens/sharesheet"
	"github.com/challengely/challengely/internal/screens/tabs"
	"github.com/challengely/challengely/internal/share"
	"github.com/challengely/challengely/internal/store"
	"github.com/challengely/challengely/internal/store/storetest"
)

func newTestModel(t *testing.T, st *store.Store) (*AppModel, *notify.Recorder, *haptic.Recorder) {
	t.Helper()
	sched := &notify.Recorder{}
	fb := &haptic.Recorder{}
	m := newAppModel(context.Background(), Options{
		Store:     st,
		Scheduler: sched,
		Feedback:  fb,
		Clock:     clockwork.NewFakeClockAt(time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, sched, fb
}

func TestFirstRunShowsOnboarding(t *testing.T) {
	m, _, _ := newTestModel(t, storetest.Open(t))
	assert.False(t, m.onboarded)
	assert.Equal(t, "Welcome", m.router.Active().Title())
}

func TestOnboardedStartsOnTabsAndResumesReminders(t *testing.T) {
	st := storetest.Open(t)
	ctx := context.Background()
	require.NoError(t, st.SetOnboardingComplete(ctx, true))
	require.NoError(t, st.SaveSettings(ctx, profile.DefaultSettings()))

	m, sched, _ := newTestModel(t, st)
	_, ok := m.router.Active().(*tabs.TabsScreen)
	require.True(t, ok)

	cmd := m.Init()
	require.NotNil(t, cmd)
	for _, msg := range collect(cmd) {
		m.Update(msg)
	}
	r, ok := sched.Get(notify.KindDaily)
	require.True(t, ok)
	assert.Equal(t, notify.At{Hour: 8}, r.At)
}

func TestFinishedOnboardingPersistsFlagAndSwapsScreen(t *testing.T) {
	st := storetest.Open(t)
	m, _, _ := newTestModel(t, st)

	_, cmd := m.Update(onboarding.FinishedMsg{Profile: profile.New()})
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok)
	m.Update(msg)

	done, err := st.OnboardingComplete(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "Today's Challenge", m.router.Active().Title())

	_, cmd = m.Update(onboarding.FinishedMsg{})
	assert.Nil(t, cmd, "a second finish is ignored")
}

func TestReminderShowsToastUntilExpired(t *testing.T) {
	m, _, fb := newTestModel(t, storetest.Open(t))

	_, cmd := m.Update(notify.ReminderMsg{Reminder: notify.Reminder{Kind: notify.KindDaily, Notification: notify.DailyReminder}})
	require.NotNil(t, cmd)
	assert.Contains(t, m.render(), notify.DailyReminder.Title)
	assert.Equal(t, []haptic.Outcome{haptic.Success}, fb.Outcomes())

	m.Update(toastExpiredMsg{id: m.toastID - 1})
	assert.NotEmpty(t, m.toast, "stale expiry ignored")
	m.Update(toastExpiredMsg{id: m.toastID})
	assert.Empty(t, m.toast)
}

func TestEscClosesShareSheet(t *testing.T) {
	st := storetest.Open(t)
	require.NoError(t, st.SetOnboardingComplete(context.Background(), true))
	m, _, _ := newTestModel(t, st)

	m.Update(router.PushScreenMsg{Screen: sharesheet.New(share.Card{Title: "Morning Meditation", Streak: 1}, "card.png")})
	require.Equal(t, 2, m.router.Depth())
	assert.Contains(t, m.render(), "Saved to card.png")

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, 1, m.router.Depth())
	_, ok := m.router.Active().(*tabs.TabsScreen)
	assert.True(t, ok)
}

func TestTooSmallTerminal(t *testing.T) {
	m, _, _ := newTestModel(t, storetest.Open(t))
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
