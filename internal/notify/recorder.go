package notify

import (
	"context"
	"sync"
	"time"
)

// Recorder is an in-memory Scheduler for tests. Set Denied to refuse
// permission and Err to fail every schedule call.
type Recorder struct {
	mu       sync.Mutex
	Denied   bool
	Err      error
	Asked    int
	pending  map[Kind]Reminder
	Canceled []Kind
}

func (r *Recorder) RequestPermission(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Asked++
	return !r.Denied, nil
}

func (r *Recorder) ScheduleDaily(ctx context.Context, at At, n Notification) error {
	return r.add(Reminder{Kind: KindDaily, Notification: n, At: at})
}

func (r *Recorder) ScheduleWeekly(ctx context.Context, at At, weekday time.Weekday, n Notification) error {
	return r.add(Reminder{Kind: KindWeekly, Notification: n, At: at, Weekday: weekday})
}

func (r *Recorder) ScheduleOnce(ctx context.Context, when time.Time, n Notification) error {
	return r.add(Reminder{Kind: KindOnce, Notification: n, At: At{when.Hour(), when.Minute()}, Weekday: when.Weekday(), When: when})
}

func (r *Recorder) add(rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Denied {
		return ErrPermissionDenied
	}
	if r.Err != nil {
		return r.Err
	}
	if r.pending == nil {
		r.pending = make(map[Kind]Reminder)
	}
	r.pending[rem.Kind] = rem
	return nil
}

func (r *Recorder) Cancel(ctx context.Context, kinds ...Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	for _, k := range kinds {
		delete(r.pending, k)
		r.Canceled = append(r.Canceled, k)
	}
	return nil
}

// Get returns the pending reminder of the given kind.
func (r *Recorder) Get(kind Kind) (Reminder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.pending[kind]
	return rem, ok
}

// Len returns the number of pending reminders.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
