// Package onboarding is the first-run wizard that collects interests and
// difficulty and hands the resulting profile to storage.
package onboarding

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/notify"
	"github.com/challengely/challengely/internal/profile"
)

// Step is a wizard page.
type Step int

const (
	StepWelcome Step = iota
	StepIntro
	StepInterests
	StepDifficulty
)

// StepCount is the number of wizard pages.
const StepCount = 4

// ReminderAt is when the first-run daily reminder fires.
var ReminderAt = notify.At{Hour: 8, Minute: 0}

// Store is the persistence the wizard needs.
type Store interface {
	SaveProfile(ctx context.Context, p profile.UserProfile) error
}

// FinishedMsg is emitted once the wizard completes.
type FinishedMsg struct {
	Profile profile.UserProfile
}

// ReminderMsg reports the outcome of the first-run reminder request.
type ReminderMsg struct {
	Granted bool
	Err     error
}

// State is the wizard state.
type State struct {
	Step       Step
	Interests  []catalog.Category
	Difficulty catalog.Difficulty
	Complete   bool
}

// Deps are the wizard's collaborators.
type Deps struct {
	Store     Store
	Scheduler notify.Scheduler
	Feedback  haptic.Feedback
	Logger    *logger.Logger
}

type Engine struct {
	State State

	store     Store
	scheduler notify.Scheduler
	feedback  haptic.Feedback
	log       *logger.Logger
}

func New(d Deps) *Engine {
	if d.Feedback == nil {
		d.Feedback = haptic.Nop{}
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return &Engine{
		State: State{
			Interests:  []catalog.Category{},
			Difficulty: catalog.DifficultyMedium,
		},
		store:     d.Store,
		scheduler: d.Scheduler,
		feedback:  d.Feedback,
		log:       d.Logger.With("component", "onboarding"),
	}
}

// Next advances a step, finishing from the last one.
func (e *Engine) Next(ctx context.Context) tea.Cmd {
	e.feedback.Impact(haptic.Light)
	if e.State.Step < StepDifficulty {
		e.State.Step++
		return nil
	}
	return e.Finish(ctx)
}

// Previous goes back a step, stopping at the first.
func (e *Engine) Previous() {
	if e.State.Step > StepWelcome {
		e.State.Step--
	}
}

// Skip selects every category and finishes.
func (e *Engine) Skip(ctx context.Context) tea.Cmd {
	e.State.Interests = catalog.AllCategories()
	return e.Finish(ctx)
}

// ToggleInterest adds or removes cat from the selection.
func (e *Engine) ToggleInterest(cat catalog.Category) {
	e.feedback.Impact(haptic.Light)
	if i := slices.Index(e.State.Interests, cat); i >= 0 {
		e.State.Interests = slices.Delete(e.State.Interests, i, i+1)
		return
	}
	e.State.Interests = profile.NormalizeInterests(append(e.State.Interests, cat))
}

// SetDifficulty overwrites the selected difficulty.
func (e *Engine) SetDifficulty(d catalog.Difficulty) {
	e.feedback.Impact(haptic.Light)
	e.State.Difficulty = d
}

// Selected reports whether cat is in the selection.
func (e *Engine) Selected(cat catalog.Category) bool {
	return slices.Contains(e.State.Interests, cat)
}

// CanProceed reports whether Next is allowed from the current step. Only
// the interests page has a requirement.
func (e *Engine) CanProceed() bool {
	if e.State.Step == StepInterests {
		return len(e.State.Interests) > 0
	}
	return true
}

// Finish saves the profile and requests the daily reminder. The returned
// command emits FinishedMsg and, asynchronously, ReminderMsg. Repeated
// calls are no-ops.
func (e *Engine) Finish(ctx context.Context) tea.Cmd {
	if e.State.Complete {
		return nil
	}
	e.State.Complete = true

	p := profile.New()
	p.SetInterests(e.State.Interests)
	p.Difficulty = e.State.Difficulty

	if err := e.store.SaveProfile(ctx, p); err != nil {
		e.log.Error("save profile", "error", err)
	}
	e.log.Info("onboarding finished", "interests", p.Interests, "difficulty", p.Difficulty)

	finished := func() tea.Msg { return FinishedMsg{Profile: p} }
	if e.scheduler == nil {
		return finished
	}
	return tea.Batch(finished, e.requestReminder(ctx))
}

func (e *Engine) requestReminder(ctx context.Context) tea.Cmd {
	sched := e.scheduler
	return func() tea.Msg {
		granted, err := sched.RequestPermission(ctx)
		if err != nil || !granted {
			return ReminderMsg{Granted: false, Err: err}
		}
		err = sched.ScheduleDaily(ctx, ReminderAt, notify.DailyReminder)
		return ReminderMsg{Granted: true, Err: err}
	}
}
