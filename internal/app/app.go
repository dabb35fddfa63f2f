package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"

	"github.com/challengely/challengely/internal/challenge"
	"github.com/challengely/challengely/internal/chat"
	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/notify"
	"github.com/challengely/challengely/internal/onboarding"
	"github.com/challengely/challengely/internal/profile"
	"github.com/challengely/challengely/internal/router"
	"github.com/challengely/challengely/internal/screen"
	analyticsscreen "github.com/challengely/challengely/internal/screens/analytics"
	challengescreen "github.com/challengely/challengely/internal/screens/challenge"
	chatscreen "github.com/challengely/challengely/internal/screens/chat"
	onboardingscreen "github.com/challengely/challengely/internal/screens/onboarding"
	profilescreen "github.com/challengely/challengely/internal/screens/profile"
	"github.com/challengely/challengely/internal/screens/tabs"
	"github.com/challengely/challengely/internal/store"
	"github.com/challengely/challengely/internal/ui/layout"
)

// toastDuration is how long a delivered reminder stays on screen.
const toastDuration = 6 * time.Second

// Options holds the dependencies for the TUI.
type Options struct {
	Store     *store.Store
	Scheduler notify.Scheduler
	Feedback  haptic.Feedback
	Sharer    challenge.Sharer
	Clock     clockwork.Clock
	Logger    *logger.Logger

	// ReplyDelayMin and ReplyDelayMax bound the assistant typing delay.
	// Zero values use the chat defaults.
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
}

// deliverer is implemented by schedulers that push fired reminders.
type deliverer interface {
	OnDeliver(fn func(notify.ReminderMsg))
}

type toastExpiredMsg struct {
	id int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	opts   Options
	log    *logger.Logger
	router *router.Router

	// settings is shared with the profile tab so startup rescheduling and
	// the settings screen see the same generation counter.
	settings  *profile.Engine
	onboarded bool

	toast   string
	toastID int

	width  int
	height int
}

// newAppModel creates the root model. The onboarding flag is read once
// here; the wizard is shown until it has been completed.
func newAppModel(ctx context.Context, opts Options) *AppModel {
	if opts.Feedback == nil {
		opts.Feedback = haptic.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	m := &AppModel{
		ctx:  ctx,
		opts: opts,
		log:  opts.Logger.With("component", "app"),
	}
	m.settings = profile.NewEngine(profile.Deps{
		Store:     opts.Store,
		Scheduler: opts.Scheduler,
		Feedback:  opts.Feedback,
		Clock:     opts.Clock,
		Logger:    opts.Logger,
	})

	done, err := opts.Store.OnboardingComplete(ctx)
	if err != nil {
		m.log.Error("read onboarding flag", "error", err)
	}
	m.onboarded = done

	if done {
		m.router = router.New(m.newTabs())
	} else {
		m.router = router.New(m.newOnboarding())
	}
	return m
}

func (m *AppModel) newOnboarding() screen.Screen {
	eng := onboarding.New(onboarding.Deps{
		Store:     m.opts.Store,
		Scheduler: m.opts.Scheduler,
		Feedback:  m.opts.Feedback,
		Logger:    m.opts.Logger,
	})
	return onboardingscreen.New(m.ctx, eng)
}

func (m *AppModel) newTabs() screen.Screen {
	o := m.opts
	challengeEng := challenge.New(challenge.Deps{
		Store:    o.Store,
		Feedback: o.Feedback,
		Sharer:   o.Sharer,
		Clock:    o.Clock,
		Logger:   o.Logger,
	})
	chatEng := chat.New(chat.Deps{
		Store:    o.Store,
		Feedback: o.Feedback,
		Clock:    o.Clock,
		Logger:   o.Logger,
		MinDelay: o.ReplyDelayMin,
		MaxDelay: o.ReplyDelayMax,
	})
	return tabs.New(
		tabs.Tab{Label: "Challenge", Screen: challengescreen.New(m.ctx, challengeEng)},
		tabs.Tab{Label: "Chat", Screen: chatscreen.New(m.ctx, chatEng)},
		tabs.Tab{Label: "Profile", Screen: profilescreen.New(m.ctx, m.settings)},
		tabs.Tab{Label: "Analytics", Screen: analyticsscreen.New(m.ctx, o.Store, o.Clock, o.Logger)},
	)
}

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.onboarded {
		// Reminders live in this process; put them back on every start.
		m.settings.Load(m.ctx)
		cmds = append(cmds, m.settings.Resume(m.ctx))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case onboarding.FinishedMsg:
		return m, m.finishOnboarding()

	case onboarding.ReminderMsg:
		switch {
		case msg.Err != nil:
			m.log.Warn("first-run reminder", "error", msg.Err)
		case !msg.Granted:
			m.log.Info("first-run reminder declined")
		}
		return m, nil

	case notify.ReminderMsg:
		m.opts.Feedback.Notify(haptic.Success)
		m.toastID++
		m.toast = "🔔 " + msg.Reminder.Notification.Title + "  " + msg.Reminder.Notification.Body
		id := m.toastID
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// finishOnboarding persists the flag and swaps the wizard for the tabs.
func (m *AppModel) finishOnboarding() tea.Cmd {
	if m.onboarded {
		return nil
	}
	m.onboarded = true
	if err := m.opts.Store.SetOnboardingComplete(m.ctx, true); err != nil {
		m.log.Error("save onboarding flag", "error", err)
	}
	m.settings.Load(m.ctx)
	next := m.newTabs()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m *AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	streak := 0
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StreakProvider); ok {
			streak = sp.Streak()
		}
	}

	header := layout.RenderHeader(title, streak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)
	if m.toast != "" {
		footer = layout.RenderToast(m.toast, m.width) + "\n" + footer
	}

	content := m.router.View(m.width, layout.ContentHeight(m.height, header, footer))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if d, ok := opts.Scheduler.(deliverer); ok {
		d.OnDeliver(func(r notify.ReminderMsg) { p.Send(r) })
	}
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
