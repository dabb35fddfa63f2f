// Package challenge runs the daily challenge: selection, the countdown
// timer and streak bookkeeping on completion.
package challenge

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/profile"
	"github.com/challengely/challengely/internal/share"
)

// Store is the persistence the engine needs.
type Store interface {
	LoadProfile(ctx context.Context) (*profile.UserProfile, error)
	UpdateProfile(ctx context.Context, fn func(*profile.UserProfile) bool) (profile.UserProfile, bool, error)
}

// Sharer saves a share card and returns where it went.
type Sharer interface {
	Save(card share.Card) (string, error)
}

// TickMsg advances the countdown of the run it belongs to.
type TickMsg struct {
	Run int
}

// SharedMsg reports the result of a share request.
type SharedMsg struct {
	Path string
	Err  error
}

// Deps are the engine's collaborators. Sharer may be nil.
type Deps struct {
	Store    Store
	Feedback haptic.Feedback
	Sharer   Sharer
	Clock    clockwork.Clock
	Logger   *logger.Logger
}

// Engine owns the challenge session state.
type Engine struct {
	State SessionState

	store    Store
	feedback haptic.Feedback
	sharer   Sharer
	clock    clockwork.Clock
	log      *logger.Logger

	// run identifies the current countdown; ticks from older runs are dropped.
	run int
}

// New creates an engine. Call Activate before use.
func New(d Deps) *Engine {
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
		State:    SessionState{Profile: profile.New()},
		store:    d.Store,
		feedback: d.Feedback,
		sharer:   d.Sharer,
		clock:    d.Clock,
		log:      d.Logger.With("component", "challenge"),
	}
}

// Activate loads the profile and selects today's challenge. Any running
// countdown is cancelled.
func (e *Engine) Activate(ctx context.Context) {
	p := profile.New()
	stored, err := e.store.LoadProfile(ctx)
	switch {
	case err != nil:
		e.log.Error("load profile", "error", err)
	case stored != nil:
		p = *stored
	}

	now := e.clock.Now()
	e.stopTimer()
	e.State.Profile = p
	e.State.Today = catalog.ForDay(p.Interests, now)
	e.State.Remaining = 0
	e.State.Total = 0
	e.State.Err = ""
	if p.CompletedOn(now) {
		e.State.Phase = PhaseCompleted
	} else {
		e.State.Phase = PhaseLocked
	}
}

// Refresh re-runs Activate.
func (e *Engine) Refresh(ctx context.Context) {
	e.Activate(ctx)
}

// Reveal shows today's challenge. Only valid while locked.
func (e *Engine) Reveal() bool {
	if e.State.Phase != PhaseLocked {
		return false
	}
	e.feedback.Impact(haptic.Light)
	e.State.Phase = PhaseRevealed
	return true
}

// Accept starts the countdown. Only valid once revealed. The returned
// command delivers the first tick.
func (e *Engine) Accept() tea.Cmd {
	if e.State.Phase != PhaseRevealed {
		return nil
	}
	e.feedback.Notify(haptic.Success)

	secs := int(e.State.Today.Duration() / time.Second)
	e.State.Phase = PhaseInProgress
	e.State.Remaining = secs
	e.State.Total = secs
	e.State.Running = true
	e.run++
	return tickCmd(e.run)
}

func tickCmd(run int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Run: run}
	})
}

// Update handles the engine's own messages and returns follow-up commands.
func (e *Engine) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Run != e.run {
			return nil
		}
		if e.Tick(ctx) {
			return tickCmd(e.run)
		}
	case SharedMsg:
		if msg.Err != nil {
			e.log.Error("share card", "error", msg.Err)
			e.State.Err = "Unable to create share card."
			e.feedback.Notify(haptic.Error)
			return nil
		}
		e.State.SharedPath = msg.Path
		e.State.Err = ""
		e.feedback.Notify(haptic.Success)
	}
	return nil
}

// Tick advances the countdown by one second, completing the challenge when
// it reaches zero. It reports whether the countdown is still running.
func (e *Engine) Tick(ctx context.Context) bool {
	if !e.State.Running || e.State.Phase != PhaseInProgress {
		return false
	}
	if e.State.Remaining > 0 {
		e.State.Remaining--
	}
	if e.State.Remaining == 0 {
		e.Complete(ctx)
		return false
	}
	return true
}

// Complete records today's completion. It is a no-op while locked and
// idempotent within a calendar day. It reports whether a new completion was
// recorded.
func (e *Engine) Complete(ctx context.Context) bool {
	if e.State.Phase == PhaseLocked {
		return false
	}
	e.stopTimer()

	now := e.clock.Now()
	id := e.State.Today.ID
	updated, wrote, err := e.store.UpdateProfile(ctx, func(p *profile.UserProfile) bool {
		return p.RecordCompletion(id, now)
	})
	if err != nil {
		// Persistence is best effort; keep the completion in memory.
		e.log.Error("save completion", "error", err)
		updated = e.State.Profile.Clone()
		wrote = updated.RecordCompletion(id, now)
	}

	e.State.Profile = updated
	e.State.Phase = PhaseCompleted
	if !wrote {
		return false
	}

	e.feedback.Notify(haptic.Success)
	e.State.Celebrations++
	e.log.Info("challenge completed", "challenge", id, "streak", updated.StreakCount)
	return true
}

// ShareCard builds the card for today's completion.
func (e *Engine) ShareCard() share.Card {
	return share.Card{
		Title:       e.State.Today.Title,
		Description: e.State.Today.Description,
		Category:    e.State.Today.Category,
		Streak:      e.State.Profile.StreakCount,
		Date:        e.clock.Now(),
	}
}

// Share renders the share card. Only valid once completed.
func (e *Engine) Share() tea.Cmd {
	if e.State.Phase != PhaseCompleted || e.sharer == nil {
		return nil
	}
	e.feedback.Impact(haptic.Light)
	card := e.ShareCard()
	sharer := e.sharer
	return func() tea.Msg {
		path, err := sharer.Save(card)
		return SharedMsg{Path: path, Err: err}
	}
}

// Run is the id of the current countdown, carried by its TickMsgs.
func (e *Engine) Run() int {
	return e.run
}

func (e *Engine) stopTimer() {
	e.State.Running = false
	e.run++
}
