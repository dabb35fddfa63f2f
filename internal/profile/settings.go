package profile

import (
	"fmt"
	"time"
)

// Frequency is how often the reminder fires.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// DisplayName returns the capitalized label.
func (f Frequency) DisplayName() string {
	switch f {
	case FrequencyWeekly:
		return "Weekly"
	default:
		return "Daily"
	}
}

// ParseFrequency parses "daily" or "weekly".
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// NotificationSettings is the persisted reminder schedule.
type NotificationSettings struct {
	Enabled   bool         `json:"enabled"`
	Hour      int          `json:"hour"`
	Minute    int          `json:"minute"`
	Frequency Frequency    `json:"frequency"`
	Weekday   time.Weekday `json:"weekday"`
}

// DefaultSettings returns daily reminders at 08:00, weekly ones on Monday.
func DefaultSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:   true,
		Hour:      8,
		Minute:    0,
		Frequency: FrequencyDaily,
		Weekday:   time.Monday,
	}
}

// Normalize clamps out-of-range fields back to their defaults.
func (s NotificationSettings) Normalize() NotificationSettings {
	def := DefaultSettings()
	if s.Hour < 0 || s.Hour > 23 {
		s.Hour = def.Hour
	}
	if s.Minute < 0 || s.Minute > 59 {
		s.Minute = def.Minute
	}
	if _, err := ParseFrequency(string(s.Frequency)); err != nil {
		s.Frequency = def.Frequency
	}
	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		s.Weekday = def.Weekday
	}
	return s
}

// Clock formats the reminder time as "8:00 AM".
func (s NotificationSettings) Clock() string {
	return FormatClock(s.Hour, s.Minute)
}

// FormatClock renders hour:minute on a 12-hour clock.
func FormatClock(hour, minute int) string {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC).Format("3:04 PM")
}

// NextNotificationDisplay describes the schedule, e.g. "Daily at 8:00 AM".
func (s NotificationSettings) NextNotificationDisplay() string {
	if s.Frequency == FrequencyWeekly {
		return fmt.Sprintf("Weekly at %s", s.Clock())
	}
	return fmt.Sprintf("Daily at %s", s.Clock())
}
