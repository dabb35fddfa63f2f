package profile

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	engine "github.com/challengely/challengely/internal/profile"
	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/layout"
)

// timeStep is how far one left/right press moves the reminder time.
const timeStep = 15

// ProfileScreen shows the profile and the reminder settings.
type ProfileScreen struct {
	ctx  context.Context
	eng  *engine.Engine
	menu components.Menu
}

var (
	_ screen.Screen          = (*ProfileScreen)(nil)
	_ screen.KeyHintProvider = (*ProfileScreen)(nil)
	_ screen.Activator       = (*ProfileScreen)(nil)
	_ screen.StreakProvider  = (*ProfileScreen)(nil)
)

// New creates the profile tab.
func New(ctx context.Context, eng *engine.Engine) *ProfileScreen {
	s := &ProfileScreen{ctx: ctx, eng: eng}
	s.menu = components.NewMenu(s.items())
	return s
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.Activate()
}

// Activate reloads the profile and settings.
func (s *ProfileScreen) Activate() tea.Cmd {
	s.eng.Load(s.ctx)
	s.menu.SetItems(s.items())
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

// Streak returns the loaded profile's streak.
func (s *ProfileScreen) Streak() int {
	return s.eng.State.Profile.StreakCount
}

// State exposes the engine state for rendering and tests.
func (s *ProfileScreen) State() engine.State {
	return s.eng.State
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Next tab"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case engine.ScheduledMsg, engine.TestSentMsg:
		s.eng.Update(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "left", "h":
			cmd = s.adjust(-1)
		case "right", "l":
			cmd = s.adjust(1)
		default:
			s.menu, cmd = s.menu.Update(msg)
		}
	}
	s.menu.SetItems(s.items())
	return s, cmd
}

const (
	itemReminders = iota
	itemTime
	itemFrequency
	itemWeekday
	itemDifficulty
	itemTest
)

func (s *ProfileScreen) items() []components.MenuItem {
	st := s.eng.State
	set := st.Settings

	enabled := "Off"
	if set.Enabled {
		enabled = "On"
	}
	test := "in 1 min"
	if st.Testing {
		test = "Sending..."
	}

	return []components.MenuItem{
		itemReminders: {
			Label:  "Enable Daily Reminders",
			Value:  enabled,
			Action: func() tea.Cmd { return s.eng.ToggleNotifications(s.ctx, !s.eng.State.Settings.Enabled) },
		},
		itemTime: {
			Label:    "Reminder Time",
			Value:    set.Clock(),
			Action:   func() tea.Cmd { return s.adjust(1) },
			Disabled: !set.Enabled,
		},
		itemFrequency: {
			Label:    "Frequency",
			Value:    set.Frequency.DisplayName(),
			Action:   func() tea.Cmd { return s.adjust(1) },
			Disabled: !set.Enabled,
		},
		itemWeekday: {
			Label:    "Weekday",
			Value:    set.Weekday.String(),
			Action:   func() tea.Cmd { return s.adjust(1) },
			Disabled: !set.Enabled || set.Frequency != engine.FrequencyWeekly,
		},
		itemDifficulty: {
			Label:  "Difficulty",
			Value:  st.Profile.Difficulty.DisplayName(),
			Action: func() tea.Cmd { return s.adjust(1) },
		},
		itemTest: {
			Label:    "Send Test Notification",
			Value:    test,
			Action:   func() tea.Cmd { return s.eng.SendTest(s.ctx) },
			Disabled: !set.Enabled || st.Testing,
		},
	}
}

// adjust steps the selected setting forwards or backwards.
func (s *ProfileScreen) adjust(dir int) tea.Cmd {
	set := s.eng.State.Settings
	item := s.menu.Items[s.menu.Selected]
	if item.Disabled {
		return nil
	}

	switch s.menu.Selected {
	case itemReminders:
		return s.eng.ToggleNotifications(s.ctx, !set.Enabled)
	case itemTime:
		mins := (set.Hour*60 + set.Minute + dir*timeStep + 24*60) % (24 * 60)
		return s.eng.SetTime(s.ctx, mins/60, mins%60)
	case itemFrequency:
		next := engine.FrequencyWeekly
		if set.Frequency == engine.FrequencyWeekly {
			next = engine.FrequencyDaily
		}
		return s.eng.SetFrequency(s.ctx, next)
	case itemWeekday:
		return s.eng.SetWeekday(s.ctx, time.Weekday((int(set.Weekday)+dir+7)%7))
	case itemDifficulty:
		s.eng.CycleDifficulty(s.ctx, dir)
	}
	return nil
}
