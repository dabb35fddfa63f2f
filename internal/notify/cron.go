package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/challengely/challengely/internal/logger"
)

// Policy decides how permission requests are answered.
type Policy string

const (
	PolicyGranted Policy = "granted"
	PolicyDenied  Policy = "denied"
	// PolicyPrompt grants on the first request and remembers the answer.
	PolicyPrompt Policy = "prompt"
)

// ParsePolicy parses a permission policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyGranted, PolicyDenied, PolicyPrompt:
		return p, nil
	}
	return "", fmt.Errorf("unknown notification policy %q", s)
}

// CronOptions configures NewCronScheduler.
type CronOptions struct {
	Policy   Policy
	Clock    clockwork.Clock
	Location *time.Location
	Logger   *logger.Logger
}

// CronScheduler runs reminders as gocron jobs tagged by kind.
type CronScheduler struct {
	sched  gocron.Scheduler
	clock  clockwork.Clock
	policy Policy
	log    *logger.Logger

	mu      sync.Mutex
	asked   bool
	granted bool
	deliver func(ReminderMsg)
	pending map[Kind]Reminder
}

// NewCronScheduler builds and starts the scheduler. Call Shutdown when done.
func NewCronScheduler(opts CronOptions) (*CronScheduler, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Policy == "" {
		opts.Policy = PolicyPrompt
	}

	sched, err := gocron.NewScheduler(
		gocron.WithClock(opts.Clock),
		gocron.WithLocation(opts.Location),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	sched.Start()

	return &CronScheduler{
		sched:   sched,
		clock:   opts.Clock,
		policy:  opts.Policy,
		log:     opts.Logger.With("component", "notify"),
		pending: make(map[Kind]Reminder),
	}, nil
}

// OnDeliver registers the callback invoked from the job goroutine when a
// reminder fires. It replaces any earlier callback.
func (s *CronScheduler) OnDeliver(fn func(ReminderMsg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliver = fn
}

func (s *CronScheduler) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permissionLocked(), nil
}

func (s *CronScheduler) permissionLocked() bool {
	switch s.policy {
	case PolicyGranted:
		return true
	case PolicyDenied:
		return false
	}
	if !s.asked {
		s.asked = true
		s.granted = true
		s.log.Info("notification permission granted")
	}
	return s.granted
}

func (s *CronScheduler) ScheduleDaily(ctx context.Context, at At, n Notification) error {
	if err := at.Validate(); err != nil {
		return err
	}
	def := gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(at.Hour), uint(at.Minute), 0)))
	return s.schedule(ctx, def, Reminder{Kind: KindDaily, Notification: n, At: at})
}

func (s *CronScheduler) ScheduleWeekly(ctx context.Context, at At, weekday time.Weekday, n Notification) error {
	if err := at.Validate(); err != nil {
		return err
	}
	def := gocron.WeeklyJob(1,
		gocron.NewWeekdays(weekday),
		gocron.NewAtTimes(gocron.NewAtTime(uint(at.Hour), uint(at.Minute), 0)),
	)
	return s.schedule(ctx, def, Reminder{Kind: KindWeekly, Notification: n, At: at, Weekday: weekday})
}

func (s *CronScheduler) ScheduleOnce(ctx context.Context, when time.Time, n Notification) error {
	if !when.After(s.clock.Now()) {
		return fmt.Errorf("one-shot reminder at %s is not in the future", when.Format(time.RFC3339))
	}
	def := gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(when))
	return s.schedule(ctx, def, Reminder{
		Kind:         KindOnce,
		Notification: n,
		At:           At{Hour: when.Hour(), Minute: when.Minute()},
		Weekday:      when.Weekday(),
		When:         when,
	})
}

func (s *CronScheduler) schedule(ctx context.Context, def gocron.JobDefinition, r Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.permissionLocked() {
		return ErrPermissionDenied
	}

	s.sched.RemoveByTags(string(r.Kind))
	delete(s.pending, r.Kind)

	_, err := s.sched.NewJob(def,
		gocron.NewTask(s.fire, r),
		gocron.WithName(fmt.Sprintf("%s reminder", r.Kind)),
		gocron.WithTags(string(r.Kind)),
	)
	if err != nil {
		return fmt.Errorf("schedule %s reminder: %w", r.Kind, err)
	}
	s.pending[r.Kind] = r
	s.log.Info("reminder scheduled", "kind", r.Kind, "at", r.At.String())
	return nil
}

func (s *CronScheduler) fire(r Reminder) {
	s.mu.Lock()
	deliver := s.deliver
	if r.Kind == KindOnce {
		if cur, ok := s.pending[KindOnce]; ok && cur.When.Equal(r.When) {
			delete(s.pending, KindOnce)
		}
	}
	s.mu.Unlock()

	s.log.Debug("reminder fired", "kind", r.Kind)
	if deliver != nil {
		deliver(ReminderMsg{Reminder: r, FiredAt: s.clock.Now()})
	}
}

func (s *CronScheduler) Cancel(ctx context.Context, kinds ...Kind) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(kinds) == 0 {
		kinds = AllKinds()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range kinds {
		s.sched.RemoveByTags(string(k))
		delete(s.pending, k)
	}
	s.log.Info("reminders cancelled", "kinds", kinds)
	return nil
}

// Pending returns the reminders currently scheduled, in kind order.
func (s *CronScheduler) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reminder
	for _, k := range AllKinds() {
		if r, ok := s.pending[k]; ok {
			out = append(out, r)
		}
	}
	return out
}

// NextRun reports when the reminder of the given kind fires next.
func (s *CronScheduler) NextRun(kind Kind) (time.Time, bool) {
	for _, j := range s.sched.Jobs() {
		if !slices.Contains(j.Tags(), string(kind)) {
			continue
		}
		next, err := j.NextRun()
		if err != nil || next.IsZero() {
			return time.Time{}, false
		}
		return next, true
	}
	return time.Time{}, false
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *CronScheduler) Shutdown() error {
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
