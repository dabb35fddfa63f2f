package profile

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/notify"
)

// User-visible scheduling errors.
const (
	ErrMsgPermissionDenied = "Notification permission denied. Please enable notifications in Settings."
	ErrMsgScheduleFailed   = "Unable to schedule notifications. Please try again."
	ErrMsgTestFailed       = "Unable to send test notification. Please check your notification settings."
)

// TestDelay is how far ahead the test notification is scheduled.
const TestDelay = 60 * time.Second

// Store is the persistence the settings engine needs.
type Store interface {
	LoadProfile(ctx context.Context) (*UserProfile, error)
	UpdateProfile(ctx context.Context, fn func(*UserProfile) bool) (UserProfile, bool, error)
	LoadSettings(ctx context.Context) (*NotificationSettings, error)
	SaveSettings(ctx context.Context, s NotificationSettings) error
}

// ScheduledMsg reports the outcome of a (re)schedule or cancel request.
type ScheduledMsg struct {
	Gen int64
	Err error
	// Cancelled is set when reminders were switched off.
	Cancelled bool
	// Silent suppresses feedback, used when restoring at startup.
	Silent bool
}

// TestSentMsg reports the outcome of SendTest.
type TestSentMsg struct {
	Err error
}

// State is the profile screen state.
type State struct {
	Profile  UserProfile
	Settings NotificationSettings
	// Loaded is false until Load has run once.
	Loaded bool
	// Testing is true while a test notification is being scheduled.
	Testing bool
	// Err is the last user-visible error.
	Err string
	// Status is the last user-visible confirmation.
	Status string
}

// Deps are the engine's collaborators.
type Deps struct {
	Store     Store
	Scheduler notify.Scheduler
	Feedback  haptic.Feedback
	Clock     clockwork.Clock
	Logger    *logger.Logger
}

// Engine orchestrates profile edits and the reminder schedule.
type Engine struct {
	State State

	store     Store
	scheduler notify.Scheduler
	feedback  haptic.Feedback
	clock     clockwork.Clock
	log       *logger.Logger

	// gen is the newest schedule request; older ones are skipped.
	gen atomic.Int64
	// schedMu serializes scheduler calls made from commands.
	schedMu sync.Mutex
}

// NewEngine creates the settings engine. Call Load before use.
func NewEngine(d Deps) *Engine {
	if d.Feedback == nil {
		d.Feedback = haptic.Nop{}
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return &Engine{
		State: State{
			Profile:  New(),
			Settings: DefaultSettings(),
		},
		store:     d.Store,
		scheduler: d.Scheduler,
		feedback:  d.Feedback,
		clock:     d.Clock,
		log:       d.Logger.With("component", "profile"),
	}
}

// Load reads the profile and notification settings. Absent records leave
// the defaults in place.
func (e *Engine) Load(ctx context.Context) {
	if p, err := e.store.LoadProfile(ctx); err != nil {
		e.log.Error("load profile", "error", err)
	} else if p != nil {
		e.State.Profile = *p
	}
	if s, err := e.store.LoadSettings(ctx); err != nil {
		e.log.Error("load settings", "error", err)
	} else if s != nil {
		e.State.Settings = *s
	}
	e.State.Loaded = true
}

// UpdateProfile applies edit to the latest stored profile and persists the
// result. Fields edit leaves alone keep their stored values, so a completion
// recorded elsewhere since Load survives.
func (e *Engine) UpdateProfile(ctx context.Context, edit func(*UserProfile)) {
	updated, _, err := e.store.UpdateProfile(ctx, func(p *UserProfile) bool {
		edit(p)
		return true
	})
	if err != nil {
		e.log.Error("save profile", "error", err)
		updated = e.State.Profile.Clone()
		edit(&updated)
	}
	e.State.Profile = updated
}

// CycleDifficulty steps the preferred difficulty by dir, wrapping around.
func (e *Engine) CycleDifficulty(ctx context.Context, dir int) {
	e.UpdateProfile(ctx, func(p *UserProfile) {
		all := catalog.AllDifficulties()
		i := max(slices.Index(all, p.Difficulty), 0)
		p.Difficulty = all[(i+dir%len(all)+len(all))%len(all)]
	})
}

// ToggleNotifications switches reminders on (scheduling them) or off
// (cancelling them).
func (e *Engine) ToggleNotifications(ctx context.Context, enabled bool) tea.Cmd {
	e.State.Settings.Enabled = enabled
	e.saveSettings(ctx)
	if enabled {
		return e.Schedule(ctx)
	}
	return e.cancel(ctx)
}

// SetTime changes the reminder time of day.
func (e *Engine) SetTime(ctx context.Context, hour, minute int) tea.Cmd {
	e.State.Settings.Hour = hour
	e.State.Settings.Minute = minute
	e.State.Settings = e.State.Settings.Normalize()
	return e.settingsChanged(ctx)
}

// SetFrequency switches between daily and weekly reminders.
func (e *Engine) SetFrequency(ctx context.Context, f Frequency) tea.Cmd {
	e.State.Settings.Frequency = f
	e.State.Settings = e.State.Settings.Normalize()
	return e.settingsChanged(ctx)
}

// SetWeekday picks the day weekly reminders fire on.
func (e *Engine) SetWeekday(ctx context.Context, d time.Weekday) tea.Cmd {
	e.State.Settings.Weekday = d
	e.State.Settings = e.State.Settings.Normalize()
	return e.settingsChanged(ctx)
}

func (e *Engine) settingsChanged(ctx context.Context) tea.Cmd {
	e.saveSettings(ctx)
	if !e.State.Settings.Enabled {
		return nil
	}
	return e.Schedule(ctx)
}

func (e *Engine) saveSettings(ctx context.Context) {
	if err := e.store.SaveSettings(ctx, e.State.Settings); err != nil {
		e.log.Error("save settings", "error", err)
	}
}

// Schedule replaces the recurring reminder with one matching the current
// settings.
func (e *Engine) Schedule(ctx context.Context) tea.Cmd {
	return e.schedule(ctx, false)
}

// Resume re-creates the recurring reminder at startup without feedback.
// It does nothing when reminders are off.
func (e *Engine) Resume(ctx context.Context) tea.Cmd {
	if !e.State.Settings.Enabled {
		return nil
	}
	return e.schedule(ctx, true)
}

func (e *Engine) schedule(ctx context.Context, silent bool) tea.Cmd {
	if e.scheduler == nil {
		return nil
	}
	gen := e.gen.Add(1)
	settings := e.State.Settings
	return func() tea.Msg {
		e.schedMu.Lock()
		defer e.schedMu.Unlock()
		if gen != e.gen.Load() {
			return ScheduledMsg{Gen: gen, Silent: silent}
		}
		return ScheduledMsg{Gen: gen, Err: e.applySchedule(ctx, settings), Silent: silent}
	}
}

func (e *Engine) applySchedule(ctx context.Context, s NotificationSettings) error {
	granted, err := e.scheduler.RequestPermission(ctx)
	if err != nil {
		return err
	}
	if !granted {
		return notify.ErrPermissionDenied
	}

	at := notify.At{Hour: s.Hour, Minute: s.Minute}
	if s.Frequency == FrequencyWeekly {
		if err := e.scheduler.Cancel(ctx, notify.KindDaily); err != nil {
			return err
		}
		return e.scheduler.ScheduleWeekly(ctx, at, s.Weekday, notify.WeeklyReminder)
	}
	if err := e.scheduler.Cancel(ctx, notify.KindWeekly); err != nil {
		return err
	}
	return e.scheduler.ScheduleDaily(ctx, at, notify.DailyReminder)
}

func (e *Engine) cancel(ctx context.Context) tea.Cmd {
	if e.scheduler == nil {
		return nil
	}
	gen := e.gen.Add(1)
	return func() tea.Msg {
		e.schedMu.Lock()
		defer e.schedMu.Unlock()
		err := e.scheduler.Cancel(ctx)
		return ScheduledMsg{Gen: gen, Err: err, Cancelled: true}
	}
}

// SendTest schedules a one-shot notification TestDelay from now. It does
// nothing while reminders are off or a test is already pending.
func (e *Engine) SendTest(ctx context.Context) tea.Cmd {
	if !e.State.Settings.Enabled || e.State.Testing || e.scheduler == nil {
		return nil
	}
	e.State.Testing = true
	when := e.clock.Now().Add(TestDelay)
	return func() tea.Msg {
		e.schedMu.Lock()
		defer e.schedMu.Unlock()
		granted, err := e.scheduler.RequestPermission(ctx)
		if err == nil && !granted {
			err = notify.ErrPermissionDenied
		}
		if err == nil {
			err = e.scheduler.ScheduleOnce(ctx, when, notify.TestReminder)
		}
		return TestSentMsg{Err: err}
	}
}

// Update applies scheduling outcomes.
func (e *Engine) Update(msg tea.Msg) {
	switch msg := msg.(type) {
	case ScheduledMsg:
		if msg.Gen != e.gen.Load() {
			return
		}
		switch {
		case msg.Err == nil:
			e.State.Err = ""
			if msg.Cancelled {
				e.State.Status = "Reminders off"
				return
			}
			e.State.Status = "Reminders set: " + e.State.Settings.NextNotificationDisplay()
			if !msg.Silent {
				e.feedback.Notify(haptic.Success)
			}
		case errors.Is(msg.Err, notify.ErrPermissionDenied):
			e.State.Err = ErrMsgPermissionDenied
			e.State.Status = ""
			if !msg.Silent {
				e.feedback.Notify(haptic.Warning)
			}
		default:
			e.log.Error("schedule reminders", "error", msg.Err)
			e.State.Err = ErrMsgScheduleFailed
			e.State.Status = ""
			if !msg.Silent {
				e.feedback.Notify(haptic.Error)
			}
		}

	case TestSentMsg:
		e.State.Testing = false
		if msg.Err != nil {
			e.log.Warn("test notification", "error", msg.Err)
			e.State.Err = ErrMsgTestFailed
			e.feedback.Notify(haptic.Error)
			return
		}
		e.State.Err = ""
		e.State.Status = "Test notification arrives in a minute"
		e.feedback.Notify(haptic.Success)
	}
}

// NextNotificationDisplay describes the active schedule.
func (e *Engine) NextNotificationDisplay() string {
	if !e.State.Settings.Enabled {
		return "Reminders off"
	}
	return e.State.Settings.NextNotificationDisplay()
}
