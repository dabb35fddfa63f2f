// Package notify schedules reminder notifications. Reminders are delivered
// in-process to whoever registered a delivery callback, typically the TUI.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPermissionDenied is returned when scheduling without permission.
var ErrPermissionDenied = errors.New("notification permission denied")

// At is a local time of day.
type At struct {
	Hour   int
	Minute int
}

func (a At) String() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
}

// Validate reports whether a is a real time of day.
func (a At) Validate() error {
	if a.Hour < 0 || a.Hour > 23 || a.Minute < 0 || a.Minute > 59 {
		return fmt.Errorf("invalid time of day %s", a)
	}
	return nil
}

// Kind distinguishes recurring and one-shot reminders. Scheduling a kind
// replaces any earlier reminder of the same kind.
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
	KindOnce   Kind = "once"
)

// AllKinds lists every reminder kind.
func AllKinds() []Kind {
	return []Kind{KindDaily, KindWeekly, KindOnce}
}

// Notification is what the user sees.
type Notification struct {
	Title string
	Body  string
}

// Reminder is a scheduled notification.
type Reminder struct {
	Kind         Kind
	Notification Notification
	At           At
	Weekday      time.Weekday
	// When is set for one-shot reminders only.
	When time.Time
}

// ReminderMsg is delivered when a reminder fires.
type ReminderMsg struct {
	Reminder Reminder
	FiredAt  time.Time
}

// Scheduler is the notification collaborator.
type Scheduler interface {
	// RequestPermission asks for permission to notify.
	RequestPermission(ctx context.Context) (bool, error)
	ScheduleDaily(ctx context.Context, at At, n Notification) error
	ScheduleWeekly(ctx context.Context, at At, weekday time.Weekday, n Notification) error
	ScheduleOnce(ctx context.Context, when time.Time, n Notification) error
	// Cancel removes reminders of the given kinds, or all when none given.
	Cancel(ctx context.Context, kinds ...Kind) error
}

// Canned reminder texts.
var (
	DailyReminder = Notification{
		Title: "Your daily challenge is ready!",
		Body:  "Tap to see your daily challenge!",
	}
	WeeklyReminder = Notification{
		Title: "Your weekly challenge is ready!",
		Body:  "Tap to see your weekly challenge!",
	}
	TestReminder = Notification{
		Title: "Challengely",
		Body:  "🎯 Test notification from Challengely! Your notifications are working perfectly.",
	}
)
